// Package catalog holds the behavioral and global code registries that a
// coding session resolves codes against.
//
// Catalogs are built once, typically by Load or Default, and sealed. After
// Seal they are read-only and safe for concurrent use. They are ordinary
// values passed to the components that need them; there is no process-wide
// registry.
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

// Catalog errors.
var (
	ErrConflict        = errors.New("code conflicts with an existing entry")
	ErrCodeNotFound    = errors.New("code not found")
	ErrIndexOutOfRange = errors.New("catalog index out of range")
	ErrSealed          = errors.New("catalog is sealed")
)

// registry is the append-only store shared by Catalog and GlobalCatalog.
type registry[T any] struct {
	mu      sync.RWMutex
	entries []T
	byValue map[int]int
	byName  map[string]int
	sealed  bool
	codeOf  func(T) types.Code
	invalid T
}

func newRegistry[T any](codeOf func(T) types.Code, invalid T) registry[T] {
	return registry[T]{
		byValue: make(map[int]int),
		byName:  make(map[string]int),
		codeOf:  codeOf,
		invalid: invalid,
	}
}

func (r *registry[T]) add(entry T) error {
	code := r.codeOf(entry)
	if code.Name == "" {
		return types.ErrInvalidName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrSealed
	}
	// The sentinel's value is reserved even though it is never stored.
	if code.Value == types.InvalidCode.Value {
		return fmt.Errorf("%w: value %d is reserved", ErrConflict, code.Value)
	}
	if _, ok := r.byValue[code.Value]; ok {
		return fmt.Errorf("%w: value %d", ErrConflict, code.Value)
	}
	if _, ok := r.byName[code.Name]; ok {
		return fmt.Errorf("%w: name %q", ErrConflict, code.Name)
	}

	r.entries = append(r.entries, entry)
	idx := len(r.entries) - 1
	r.byValue[code.Value] = idx
	r.byName[code.Name] = idx
	return nil
}

func (r *registry[T]) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *registry[T]) at(i int) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.entries) {
		var zero T
		return zero, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(r.entries))
	}
	return r.entries[i], nil
}

func (r *registry[T]) withValue(v int) (T, error) {
	if v == types.InvalidCode.Value {
		return r.invalid, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byValue[v]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: value %d", ErrCodeNotFound, v)
	}
	return r.entries[idx], nil
}

func (r *registry[T]) withName(name string) (T, error) {
	if name == types.InvalidCode.Name {
		return r.invalid, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byName[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: name %q", ErrCodeNotFound, name)
	}
	return r.entries[idx], nil
}

func (r *registry[T]) all() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *registry[T]) seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

func (r *registry[T]) isSealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}
