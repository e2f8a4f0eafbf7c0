// Package anim provides the shared animation primitives: a monotonic
// millisecond clock and the easing used by every animated property.
package anim

import "time"

var start = time.Now()

// NowMs returns milliseconds from a monotonic clock. All animation
// timestamps in the compositor come from this function so that records can
// be compared against frame times directly.
func NowMs() uint32 {
	return uint32(time.Since(start).Milliseconds())
}

// EaseOutCubic is f(t) = 1 - (1-t)^3. Starts fast, decelerates.
func EaseOutCubic(t float64) float64 {
	inv := 1.0 - t
	return 1.0 - inv*inv*inv
}

// Progress clamps the elapsed/duration ratio to [0, 1].
func Progress(now, startMs uint32, durationMs uint32) float64 {
	elapsed := now - startMs
	if elapsed >= durationMs {
		return 1.0
	}
	return float64(elapsed) / float64(durationMs)
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Lerp32 is Lerp for the float32 colour channels.
func Lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}
