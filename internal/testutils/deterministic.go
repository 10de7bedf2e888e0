// Package testutils provides deterministic generators for Joule tests.
// These keep IDs and timestamps stable across runs while matching the
// production formats.
package testutils

import (
	"fmt"
	"time"
)

// FixedClock returns a clock function that always reports start. Useful
// for pinning audit timestamps in exports.
func FixedClock(start time.Time) func() time.Time {
	return func() time.Time { return start }
}

// SteppingClock returns a clock function that reports start and advances
// by step on every call, so ordered records stay sortable.
func SteppingClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(step)
		return t
	}
}

// IDSequence returns a generator producing prefix-1, prefix-2, and so on.
// Production code uses random UUIDs; tests swap this in for stable
// assertions.
func IDSequence(prefix string) func() string {
	seq := 0
	return func() string {
		seq++
		return fmt.Sprintf("%s-%d", prefix, seq)
	}
}
