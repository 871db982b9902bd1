//go:build !windows

package main

import (
	"os"
	"syscall"
)

// SIGHUP covers the terminal running `coursemd serve` being closed.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
