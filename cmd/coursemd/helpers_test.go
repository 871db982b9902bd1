package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

// testEnv returns an Environment with captured output, no environment
// variables and a silent logger.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:    time.Now,
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(key string) string { return vars[key] },
		Logger: zap.NewNop(),
	}, stdout, stderr
}

// writeCourse creates a small course on disk and returns its root.
func writeCourse(t *testing.T) string {
	t.Helper()

	files := map[string]string{
		"html/01-introduction.md": "# Introduction\n\n## Getting Started\n\nSee [forms](02-forms.md).\n",
		"html/02-forms.md":        "# Forms\n\n:::practice title=\"Build a form\"\nAdd an input.\n```html\n<form></form>\n```\n:::\n",
		"css/01-selectors.md":     "---\ndescription: Pick elements.\n---\n# Selectors\n",
	}

	root := t.TempDir()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
