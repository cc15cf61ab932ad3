package filter

import (
	"os"
	"strings"
)

// Package-level state, initialized once by the platform init.
var (
	// hasWideVectors is set when the CPU has wide vector units.
	hasWideVectors bool

	// accelerated is the resolved capability after the env override.
	accelerated bool

	// hasOverride is true if ADINDEX_FILTER_KERNEL was set to a known kernel.
	hasOverride bool
)

// initCapabilities is called from the platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	accelerated = hasWideVectors

	switch strings.ToLower(strings.TrimSpace(os.Getenv("ADINDEX_FILTER_KERNEL"))) {
	case "scalar":
		accelerated, hasOverride = false, true
	case "unrolled":
		accelerated, hasOverride = true, true
	}
}

// Accelerated reports whether the unrolled kernel is available.
func Accelerated() bool {
	return accelerated
}

// HasOverride reports whether the kernel choice was forced via the environment.
func HasOverride() bool {
	return hasOverride
}

// Select returns the kernel to use for a call. When preferAccelerated is
// false, or the accelerated kernel is unavailable, it returns Scalar.
func Select(preferAccelerated bool) Kernel {
	if preferAccelerated && accelerated {
		return Unrolled{}
	}
	return Scalar{}
}

// ByName returns a kernel by its stable name.
func ByName(name string) (Kernel, bool) {
	switch name {
	case "scalar":
		return Scalar{}, true
	case "unrolled":
		return Unrolled{}, true
	default:
		return nil, false
	}
}
