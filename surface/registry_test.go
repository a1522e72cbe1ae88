// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 50, DefaultAllocator, nil)

	alloc, err := r.AllocatorByName("test")
	if err != nil {
		t.Fatalf("AllocatorByName() error = %v", err)
	}
	s, err := alloc(4, 4)
	if err != nil {
		t.Fatalf("alloc() error = %v", err)
	}
	if s.Width() != 4 {
		t.Errorf("Width() = %d, want 4", s.Width())
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("temp", 10, DefaultAllocator, nil)
	r.Unregister("temp")

	_, err := r.AllocatorByName("temp")
	var nf *BackendNotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("AllocatorByName() error = %v, want *BackendNotFoundError", err)
	}
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, DefaultAllocator, nil)
	r.Register("high", 100, DefaultAllocator, nil)
	r.Register("mid", 50, DefaultAllocator, nil)
	r.Register("also-mid", 50, DefaultAllocator, nil)

	got := r.List()
	want := []string{"high", "also-mid", "mid", "low"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestRegistryUnavailable(t *testing.T) {
	r := NewRegistry()
	r.Register("off", 100, DefaultAllocator, func() bool { return false })

	_, err := r.AllocatorByName("off")
	var ue *BackendUnavailableError
	if !errors.As(err, &ue) {
		t.Errorf("AllocatorByName() error = %v, want *BackendUnavailableError", err)
	}

	_, err = r.NewSurface(10, 10)
	if !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("NewSurface() error = %v, want ErrNoBackendAvailable", err)
	}
}

func TestRegistryNewSurfaceFallback(t *testing.T) {
	r := NewRegistry()
	r.Register("broken", 100, func(w, h int) (Surface, error) {
		return nil, &AllocError{Width: w, Height: h}
	}, nil)
	r.Register("image", 10, DefaultAllocator, nil)

	s, err := r.NewSurface(8, 8)
	if err != nil {
		t.Fatalf("NewSurface() error = %v", err)
	}
	if _, ok := s.(*ImageSurface); !ok {
		t.Errorf("NewSurface() = %T, want *ImageSurface", s)
	}

	if _, err := r.NewSurface(0, 8); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewSurface(0, 8) error = %v, want ErrInvalidSize", err)
	}
}

func TestGlobalImageBackend(t *testing.T) {
	alloc, err := AllocatorByName("image")
	if err != nil {
		t.Fatalf("AllocatorByName(image) error = %v", err)
	}
	s, err := alloc(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	found := false
	for _, name := range List() {
		if name == "image" {
			found = true
		}
	}
	if !found {
		t.Errorf("List() = %v, missing image", List())
	}
}
