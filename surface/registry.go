// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"sort"
	"sync"
)

// RegistryEntry represents a registered surface backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	Priority int

	// Alloc creates surface instances.
	Alloc Allocator

	// Available reports if the backend is available on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry maps backend names to allocators, so hosts can pick a surface
// implementation by name (for example from a command-line flag).
//
// Example registration:
//
//	func init() {
//	    surface.Register("record", 5, recordingAllocator, nil)
//	}
//
// Example usage:
//
//	alloc, err := surface.AllocatorByName("record")
//	// or the best available:
//	s, err := surface.NewSurface(800, 600)
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and NewSurface.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, alloc Allocator, available func() bool) {
	globalRegistry.Register(name, priority, alloc, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// AllocatorByName returns the allocator of a registered, available backend.
func AllocatorByName(name string) (Allocator, error) {
	return globalRegistry.AllocatorByName(name)
}

// NewSurface creates a surface using the best available backend.
func NewSurface(width, height int) (Surface, error) {
	return globalRegistry.NewSurface(width, height)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, alloc Allocator, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Alloc:     alloc,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// AllocatorByName returns the allocator of a registered, available backend.
func (r *Registry) AllocatorByName(name string) (Allocator, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	return entry.Alloc, nil
}

// NewSurface creates a surface using the best available backend. Size
// errors are returned at once; other failures fall through to the next
// backend.
func (r *Registry) NewSurface(width, height int) (Surface, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var lastErr error
	for _, name := range available {
		alloc, err := r.AllocatorByName(name)
		if err != nil {
			lastErr = err
			continue
		}
		s, err := alloc(width, height)
		if err == nil {
			return s, nil
		}
		if errors.Is(err, ErrInvalidSize) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// sortedNames returns backend names sorted by priority (highest first),
// then by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// ErrNoBackendAvailable is returned when no surface backends are registered
// or available on the current system.
var ErrNoBackendAvailable = errors.New("surface: no backend available")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

// init registers the built-in ImageSurface backend.
func init() {
	Register("image", 10, DefaultAllocator, nil)
}
