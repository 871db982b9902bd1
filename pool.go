package coursemd

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one lesson renders at a time.
	MinWorkers = 1

	// MaxWorkers caps concurrent lesson renders during a build.
	MaxWorkers = 8

	// cpuDivisor leaves headroom for file writes alongside rendering.
	cpuDivisor = 2
)

// ResolveWorkers determines how many lessons a build renders concurrently.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
