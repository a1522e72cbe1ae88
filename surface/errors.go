// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
)

// Sentinel errors for the surface package.
var (
	// ErrInvalidSize is matched by every *SizeError.
	ErrInvalidSize = errors.New("surface: invalid size")

	// ErrResourceExhausted is matched by every *AllocError.
	ErrResourceExhausted = errors.New("surface: raster allocation failed")

	// ErrClosed is returned when a closed surface is snapshotted.
	ErrClosed = errors.New("surface: closed")
)

// SizeError reports a non-positive surface dimension or scale.
type SizeError struct {
	Width, Height int
	Scale         float64
}

func (e *SizeError) Error() string {
	if e.Scale != 0 {
		return fmt.Sprintf("surface: invalid size %dx%d at scale %g", e.Width, e.Height, e.Scale)
	}
	return fmt.Sprintf("surface: invalid size %dx%d", e.Width, e.Height)
}

// Is makes errors.Is(err, ErrInvalidSize) true.
func (e *SizeError) Is(target error) bool {
	return target == ErrInvalidSize
}

// AllocError reports that a raster of the requested size could not be
// allocated.
type AllocError struct {
	Width, Height int
	Err           error
}

func (e *AllocError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("surface: cannot allocate %dx%d raster: %v", e.Width, e.Height, e.Err)
	}
	return fmt.Sprintf("surface: cannot allocate %dx%d raster", e.Width, e.Height)
}

func (e *AllocError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrResourceExhausted) true.
func (e *AllocError) Is(target error) bool {
	return target == ErrResourceExhausted
}
