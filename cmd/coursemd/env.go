package main

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, logging and environment lookup.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Logger overrides the logger built from the log mode when non-nil.
	Logger *zap.Logger
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}

// getenv reads an environment variable through env.Getenv, falling back
// to os.Getenv when unset.
func (e *Environment) getenv(key string) string {
	if e.Getenv == nil {
		return os.Getenv(key)
	}
	return e.Getenv(key)
}
