// Package registry keeps the ordered set of tests known to a test binary.
//
// Tests are appended during program initialisation, typically from
// package-level declarations spread over many files. Go fixes the order in
// which a single file's declarations run but callers must not rely on the
// order between files or packages: the engine runs tests in whatever order
// they were appended and is correct for any such order.
package registry

import (
	"strings"
	"sync"

	"github.com/dkoosis/psi/pkg/check"
)

// Body is the code of one test.
type Body func(t *check.T)

// Descriptor is a registered test.
type Descriptor struct {
	Name string
	Body Body
}

// Suite returns the part of the name before the first '.'.
func (d Descriptor) Suite() string {
	suite, _, _ := strings.Cut(d.Name, ".")
	return suite
}

// Case returns the part of the name after the first '.', or the whole name
// when it has no suite.
func (d Descriptor) Case() string {
	_, c, ok := strings.Cut(d.Name, ".")
	if !ok {
		return d.Name
	}
	return c
}

// Registry is an append-only list of descriptors. Indices are stable.
type Registry struct {
	mu      sync.RWMutex
	entries []Descriptor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register appends a test and returns its index. Duplicate names are
// accepted; a pattern matching one matches all of them.
func (r *Registry) Register(name string, body Body) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Descriptor{Name: name, Body: body})
	return len(r.entries) - 1
}

// Len returns the number of registered tests.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// At returns the descriptor at index i.
func (r *Registry) At(i int) Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[i]
}

// All returns a copy of the descriptors in registration order.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, len(r.entries))
	copy(out, r.entries)
	return out
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.entries))
	for i, d := range r.entries {
		names[i] = d.Name
	}
	return names
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultOnce.Do(func() { defaultReg = New() })
	return defaultReg
}
