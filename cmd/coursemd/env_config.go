package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-coursemd/internal/config"
)

// envPrefix marks the environment variables the CLI reads.
const envPrefix = "COURSEMD_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // COURSEMD_CONFIG: config file name or path
	ContentDir string // COURSEMD_CONTENT_DIR: lesson root directory
	OutputDir  string // COURSEMD_OUTPUT_DIR: static site directory
	Addr       string // COURSEMD_ADDR: server listen address
	LogMode    string // COURSEMD_LOG: dev, prod or quiet
	Workers    int    // COURSEMD_WORKERS: concurrent lesson renders
}

// knownEnvVars lists valid COURSEMD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"COURSEMD_CONFIG":      true,
	"COURSEMD_CONTENT_DIR": true,
	"COURSEMD_OUTPUT_DIR":  true,
	"COURSEMD_ADDR":        true,
	"COURSEMD_LOG":         true,
	"COURSEMD_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid worker counts are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("COURSEMD_CONFIG"),
		ContentDir: getenv("COURSEMD_CONTENT_DIR"),
		OutputDir:  getenv("COURSEMD_OUTPUT_DIR"),
		Addr:       getenv("COURSEMD_ADDR"),
		LogMode:    getenv("COURSEMD_LOG"),
	}

	if workers := getenv("COURSEMD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized COURSEMD_* variable.
// Helps catch typos like COURSEMD_CONTENTDIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// Flags are merged afterwards, giving: flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.ContentDir != "" {
		cfg.Content.Dir = env.ContentDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.LogMode != "" {
		cfg.Log.Mode = env.LogMode
	}
}
