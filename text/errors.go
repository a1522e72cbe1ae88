package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoFont is returned when drawing with a Font that has no source
	// or a non-positive size.
	ErrNoFont = errors.New("text: font has no source or size")
)
