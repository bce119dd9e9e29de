// Package adapter defines the format-adapter capability: one
// implementation per supported on-disk representation, with the shared
// network model as the sole coupling point.
package adapter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dd0wney/cluso-candb/pkg/model"
)

// Adapter translates between one on-disk representation and the shared
// network model. Load and Dump must round-trip up to the format's
// documented normalization.
type Adapter interface {
	// Name identifies the format, e.g. "kcd".
	Name() string
	// Extensions lists the file extensions the format claims, with the
	// leading dot.
	Extensions() []string
	Load(data []byte) (*model.Network, error)
	Dump(network *model.Network) ([]byte, error)
}

var ErrUnknownFormat = errors.New("unknown format")

var (
	mu     sync.RWMutex
	byName = make(map[string]Adapter)
	byExt  = make(map[string]Adapter)
)

// Register makes an adapter available for lookup. A later registration
// for the same name or extension replaces the earlier one.
func Register(a Adapter) {
	mu.Lock()
	defer mu.Unlock()
	byName[a.Name()] = a
	for _, ext := range a.Extensions() {
		byExt[strings.ToLower(ext)] = a
	}
}

// ForName returns the adapter registered under a format name.
func ForName(name string) (Adapter, error) {
	mu.RLock()
	defer mu.RUnlock()
	a, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return a, nil
}

// ForExtension returns the adapter claiming a file extension (with or
// without the leading dot).
func ForExtension(ext string) (Adapter, error) {
	mu.RLock()
	defer mu.RUnlock()
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	a, ok := byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
	}
	return a, nil
}

// Names lists the registered format names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
