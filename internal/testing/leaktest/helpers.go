// Package leaktest detects goroutines left running by background workers
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// settleTimeout bounds how long Check waits for stopped workers to exit
const settleTimeout = 2 * time.Second

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	t        testing.TB
	baseline int
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	return &GoroutineChecker{t: t, baseline: settledCount(0, 20*time.Millisecond)}
}

// Check fails the test if more than tolerance goroutines outlive the baseline.
// Exiting goroutines get until settleTimeout to unwind.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	limit := g.baseline + tolerance
	if n := settledCount(limit, settleTimeout); n > limit {
		g.t.Errorf("goroutine leak: baseline=%d now=%d tolerance=%d", g.baseline, n, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and requires every goroutine it started to exit
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// settledCount polls until the goroutine count drops to target or wait elapses,
// and returns the last count seen.
func settledCount(target int, wait time.Duration) int {
	deadline := time.Now().Add(wait)
	n := runtime.NumGoroutine()
	for n > target && time.Now().Before(deadline) {
		runtime.Gosched()
		time.Sleep(5 * time.Millisecond)
		n = runtime.NumGoroutine()
	}
	return n
}
