// Package registry holds the append-only map from designation name to its
// parsed Specification for the lifetime of a session.
package registry

import (
	"fmt"
	"iter"
	"sync"

	"github.com/sandialabs/elucidator-go/errs"
	"github.com/sandialabs/elucidator-go/spec"
)

// Registry is append-only: once a designation is added it can never be
// removed or replaced. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*spec.Specification
	order  []string
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*spec.Specification)}
}

// Add registers s under designation. It fails with ErrDuplicateDesignation
// if designation is already registered, or ErrDesignationMismatch if s's
// own Designation field is non-empty and differs from designation.
func (r *Registry) Add(designation string, s *spec.Specification) error {
	if s.Designation != "" && s.Designation != designation {
		return fmt.Errorf("%w: %q != %q", errs.ErrDesignationMismatch, s.Designation, designation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[designation]; exists {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateDesignation, designation)
	}

	r.byName[designation] = s
	r.order = append(r.order, designation)

	return nil
}

// Get returns the Specification registered under designation, or
// ErrUnknownDesignation if none is registered.
func (r *Registry) Get(designation string) (*spec.Specification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byName[designation]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownDesignation, designation)
	}

	return s, nil
}

// Has reports whether designation is registered, without allocating an
// error value; used by Session.QueryMetadata's cheap existence check.
func (r *Registry) Has(designation string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[designation]

	return ok
}

// Iter enumerates (designation, Specification) pairs in insertion order.
// The returned sequence is a point-in-time snapshot of the insertion order
// at the time Iter is called; since the registry is append-only this can
// only ever observe a prefix-consistent view, never a torn one.
func (r *Registry) Iter() iter.Seq2[string, *spec.Specification] {
	r.mu.RLock()
	order := make([]string, len(r.order))
	copy(order, r.order)
	r.mu.RUnlock()

	return func(yield func(string, *spec.Specification) bool) {
		for _, name := range order {
			r.mu.RLock()
			s := r.byName[name]
			r.mu.RUnlock()

			if !yield(name, s) {
				return
			}
		}
	}
}

// Len returns the number of registered designations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}
