package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-coursemd/internal/fileutil"
	"github.com/alnah/go-coursemd/internal/logger"
	"github.com/alnah/go-coursemd/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid field value")
)

// Field length limits.
const (
	MaxTitleLength    = 100  // Site title
	MaxTaglineLength  = 200  // Subtitle under the title
	MaxPathLength     = 4096 // Filesystem paths
	MaxBasePathLength = 200  // URL prefix, e.g. "/courses/web/"
	MaxNameLength     = 50   // Style, template set and highlight style names
	MaxAddrLength     = 100  // "host:port"
	MaxCategories     = 20
)

// DefaultCategories is the category order used when none is configured.
var DefaultCategories = []string{"html", "css", "javascript"}

// categoryPattern restricts category names to URL and directory safe slugs.
var categoryPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Config holds all configuration for the course site.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Output    OutputConfig    `yaml:"output"`
	Assets    AssetsConfig    `yaml:"assets"`
	Style     string          `yaml:"style"` // Site stylesheet name (empty = "default")
	Highlight HighlightConfig `yaml:"highlight"`
	Sanitize  bool            `yaml:"sanitize"` // Run compiled HTML through the HTML sanitizer
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Progress  ProgressConfig  `yaml:"progress"`
}

// SiteConfig defines site-wide labels.
type SiteConfig struct {
	Title    string `yaml:"title"`
	Tagline  string `yaml:"tagline"`
	BasePath string `yaml:"basePath"` // URL prefix of every page (default: "/")
}

// ContentConfig defines where lessons and videos are read from.
type ContentConfig struct {
	Dir        string   `yaml:"dir"`        // Root holding one folder per category
	Categories []string `yaml:"categories"` // Folder names, in display order
	Videos     string   `yaml:"videos"`     // Path to the curated video JSON file (empty = none)
}

// OutputConfig defines the static site output.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = "site"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"`    // Empty = use embedded assets
	TemplateSet string `yaml:"templateSet"` // Empty = "default"
}

// HighlightConfig defines code highlighting options.
type HighlightConfig struct {
	Style string `yaml:"style"` // Chroma style name (empty = "github")
}

// ServerConfig defines the HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr"` // Empty = ":8080"
}

// LogConfig defines logging output.
type LogConfig struct {
	Mode string `yaml:"mode"` // "dev", "prod" or "quiet"
}

// ProgressConfig defines where the CLI keeps learner progress.
type ProgressConfig struct {
	Dir string `yaml:"dir"` // Directory of the progress record (empty = user config dir)
}

// Validate checks field lengths and value formats.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., tests, library users).
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.tagline", c.Site.Tagline, MaxTaglineLength},
		{"site.basePath", c.Site.BasePath, MaxBasePathLength},
		{"content.dir", c.Content.Dir, MaxPathLength},
		{"content.videos", c.Content.Videos, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.templateSet", c.Assets.TemplateSet, MaxNameLength},
		{"style", c.Style, MaxNameLength},
		{"highlight.style", c.Highlight.Style, MaxNameLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"progress.dir", c.Progress.Dir, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Site.BasePath != "" && !strings.HasPrefix(c.Site.BasePath, "/") {
		return fmt.Errorf("%w: site.basePath must start with '/', got %q", ErrInvalidField, c.Site.BasePath)
	}

	if len(c.Content.Categories) > MaxCategories {
		return fmt.Errorf("%w: content.categories has %d entries, max %d", ErrInvalidField, len(c.Content.Categories), MaxCategories)
	}
	seen := make(map[string]bool, len(c.Content.Categories))
	for i, cat := range c.Content.Categories {
		if !categoryPattern.MatchString(cat) {
			return fmt.Errorf("%w: content.categories[%d] %q (use lowercase letters, digits and hyphens)", ErrInvalidField, i, cat)
		}
		if seen[cat] {
			return fmt.Errorf("%w: content.categories[%d] %q listed twice", ErrInvalidField, i, cat)
		}
		seen[cat] = true
	}

	if !logger.IsValidMode(c.Log.Mode) {
		return fmt.Errorf("%w: log.mode %q (use dev, prod or quiet)", ErrInvalidField, c.Log.Mode)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Site:      SiteConfig{Title: "WebDevArcade", Tagline: "Learn. Code. Level Up.", BasePath: "/"},
		Content:   ContentConfig{Dir: "content", Categories: append([]string(nil), DefaultCategories...)},
		Output:    OutputConfig{Dir: "site"},
		Assets:    AssetsConfig{BasePath: "", TemplateSet: "default"},
		Style:     "default",
		Highlight: HighlightConfig{Style: "github"},
		Server:    ServerConfig{Addr: ":8080"},
		Log:       LogConfig{Mode: "dev"},
	}
}

// ApplyDefaults fills empty fields from DefaultConfig.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.Site.Title == "" {
		c.Site.Title = def.Site.Title
	}
	if c.Site.BasePath == "" {
		c.Site.BasePath = def.Site.BasePath
	}
	if c.Content.Dir == "" {
		c.Content.Dir = def.Content.Dir
	}
	if len(c.Content.Categories) == 0 {
		c.Content.Categories = def.Content.Categories
	}
	if c.Output.Dir == "" {
		c.Output.Dir = def.Output.Dir
	}
	if c.Assets.TemplateSet == "" {
		c.Assets.TemplateSet = def.Assets.TemplateSet
	}
	if c.Style == "" {
		c.Style = def.Style
	}
	if c.Highlight.Style == "" {
		c.Highlight.Style = def.Highlight.Style
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Log.Mode == "" {
		c.Log.Mode = def.Log.Mode
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Empty fields are filled with defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// SearchPaths lists the files resolveConfigPath tries for name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-coursemd", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-coursemd/
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
