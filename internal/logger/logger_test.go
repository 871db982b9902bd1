package logger

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode    string
		wantErr error
	}{
		{"", nil},
		{"dev", nil},
		{"DEVELOPMENT", nil},
		{"prod", nil},
		{" production ", nil},
		{"quiet", nil},
		{"off", nil},
		{"verbose", ErrUnknownMode},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			t.Parallel()

			l, err := New(tt.mode)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New(%q) error = %v, want %v", tt.mode, err, tt.wantErr)
			}
			if tt.wantErr == nil && l == nil {
				t.Fatalf("New(%q) returned nil logger", tt.mode)
			}
			if got := IsValidMode(tt.mode); got != (tt.wantErr == nil) {
				t.Errorf("IsValidMode(%q) = %v, want %v", tt.mode, got, tt.wantErr == nil)
			}
		})
	}
}

func TestNew_QuietDiscards(t *testing.T) {
	t.Parallel()

	l, err := New(ModeQuiet)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.Core().Enabled(0) {
		t.Error("quiet logger should not enable any level")
	}
	Sync(l)
	Sync(nil)
}
