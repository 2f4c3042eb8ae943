// Package leaktest checks that tests leave no goroutines behind.
package leaktest

import (
	"testing"

	"go.uber.org/goleak"
)

// CheckNoGoroutineLeak runs fn and fails the test if any goroutine started
// during fn is still running afterwards. Goroutines alive before fn are ignored.
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	existing := goleak.IgnoreCurrent()
	fn()
	if err := goleak.Find(existing); err != nil {
		t.Errorf("Goroutine leak: %v", err)
	}
}
