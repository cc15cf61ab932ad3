// Package codec centralizes the encoding of ingested rows and reports.
//
// Both built-in codecs read and write standard JSON, so their output is
// interchangeable; they differ only in speed.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json", "gojson":
		return GoJSON{}, true
	case "":
		return Default, true
	default:
		return nil, false
	}
}

// Names lists the stable names of the built-in codecs.
func Names() []string {
	return []string{"json", "go-json"}
}

// MustMarshal is a helper for tests and benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
