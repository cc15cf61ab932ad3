package blobstore

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Opener creates a store for a parsed sink URL.
type Opener func(ctx context.Context, u *url.URL) (BlobStore, error)

var (
	openersMu sync.RWMutex
	openers   = map[string]Opener{
		"file": func(_ context.Context, u *url.URL) (BlobStore, error) {
			return NewLocalStore(filepath.FromSlash(u.Host + u.Path)), nil
		},
		"mem": func(context.Context, *url.URL) (BlobStore, error) {
			return NewMemoryStore(), nil
		},
	}
)

// Register makes an opener available for a URL scheme.
func Register(scheme string, o Opener) {
	openersMu.Lock()
	defer openersMu.Unlock()
	openers[strings.ToLower(scheme)] = o
}

// Schemes returns the registered URL schemes.
func Schemes() []string {
	openersMu.RLock()
	defer openersMu.RUnlock()

	out := make([]string, 0, len(openers))
	for s := range openers {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Open resolves raw into a store. A plain path without scheme opens a
// LocalStore.
func Open(ctx context.Context, raw string) (BlobStore, error) {
	if !strings.Contains(raw, "://") {
		return NewLocalStore(raw), nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse sink url: %w", err)
	}

	openersMu.RLock()
	o, ok := openers[strings.ToLower(u.Scheme)]
	openersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported sink scheme %q", u.Scheme)
	}
	return o(ctx, u)
}
