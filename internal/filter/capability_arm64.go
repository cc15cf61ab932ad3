//go:build arm64

package filter

import "golang.org/x/sys/cpu"

func init() {
	hasWideVectors = cpu.ARM64.HasASIMD
	initCapabilities()
}
