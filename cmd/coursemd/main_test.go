package main

// Notes:
// - runMain: we test exit codes and the output stream of each dispatch path.
//   Command behavior is covered by the per-command tests.
// - The process environment is only read by warnUnknownEnvVars; commands
//   read variables through Environment.Getenv.

import (
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	course := writeCourse(t)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "no command",
			args:       []string{"coursemd"},
			wantCode:   ExitUsage,
			wantStderr: "Usage: coursemd <command>",
		},
		{
			name:       "unknown command",
			args:       []string{"coursemd", "compile"},
			wantCode:   ExitUsage,
			wantStderr: "unknown command: compile",
		},
		{
			name:       "version",
			args:       []string{"coursemd", "version"},
			wantCode:   ExitSuccess,
			wantStdout: "coursemd dev",
		},
		{
			name:       "version flag",
			args:       []string{"coursemd", "--version"},
			wantCode:   ExitSuccess,
			wantStdout: "coursemd dev",
		},
		{
			name:       "help",
			args:       []string{"coursemd", "help"},
			wantCode:   ExitSuccess,
			wantStdout: "Commands:",
		},
		{
			name:       "help for command",
			args:       []string{"coursemd", "help", "build"},
			wantCode:   ExitSuccess,
			wantStdout: "Usage: coursemd build",
		},
		{
			name:       "render without file",
			args:       []string{"coursemd", "render"},
			wantCode:   ExitUsage,
			wantStderr: "missing argument",
		},
		{
			name:       "render wrong extension",
			args:       []string{"coursemd", "render", "notes.txt"},
			wantCode:   ExitUsage,
			wantStderr: ".md extension",
		},
		{
			name:       "render missing file",
			args:       []string{"coursemd", "render", filepath.Join(course, "html", "09-nope.md")},
			wantCode:   ExitIO,
			wantStderr: "failed to read lesson file",
		},
		{
			name:       "render bad log mode",
			args:       []string{"coursemd", "render", filepath.Join(course, "html", "02-forms.md"), "--log", "loud"},
			wantCode:   ExitUsage,
			wantStderr: "unknown log mode",
		},
		{
			name:       "render unknown flag",
			args:       []string{"coursemd", "render", "--paper", "a4"},
			wantCode:   ExitUsage,
			wantStderr: "unknown flag",
		},
		{
			name:       "build missing content dir",
			args:       []string{"coursemd", "build", filepath.Join(course, "missing")},
			wantCode:   ExitIO,
			wantStderr: "hint:",
		},
		{
			name:       "build negative workers",
			args:       []string{"coursemd", "build", course, "--workers=-1"},
			wantCode:   ExitUsage,
			wantStderr: "worker count",
		},
		{
			name:       "missing config file",
			args:       []string{"coursemd", "lessons", course, "--config", "./no-such-config.yaml"},
			wantCode:   ExitUsage,
			wantStderr: "config file not found",
		},
		{
			name:       "lessons",
			args:       []string{"coursemd", "lessons", course},
			wantCode:   ExitSuccess,
			wantStdout: "html-introduction",
		},
		{
			name:       "unknown progress action",
			args:       []string{"coursemd", "progress", "reset"},
			wantCode:   ExitUsage,
			wantStderr: "unknown progress action",
		},
		{
			name:       "highlight style unknown",
			args:       []string{"coursemd", "render", filepath.Join(course, "html", "02-forms.md"), "--highlight", "no-such-style"},
			wantCode:   ExitUsage,
			wantStderr: "no-such-style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunHelp_UnknownCommand(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv(nil)
	runHelp([]string{"nope"}, env)

	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Unknown command: nope") {
		t.Errorf("stderr = %q, want unknown command message", stderr.String())
	}
}

func TestRunHelp_EveryCommand(t *testing.T) {
	t.Parallel()

	for _, cmd := range []string{"render", "build", "serve", "lessons", "progress", "version", "help"} {
		env, stdout, _ := testEnv(nil)
		runHelp([]string{cmd}, env)
		if !strings.Contains(stdout.String(), "Usage: coursemd "+cmd) {
			t.Errorf("help %s = %q, want its usage line", cmd, stdout.String())
		}
	}
}
