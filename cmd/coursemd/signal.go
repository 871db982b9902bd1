package main

import (
	"context"
	"os/signal"
)

// notifyContext returns a context canceled on the first shutdown signal:
// build stops scheduling pages and serve drains in-flight requests.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
