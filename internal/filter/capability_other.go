//go:build !amd64 && !arm64

package filter

func init() {
	initCapabilities()
}
