package theme

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for theme files that are neither YAML
// nor TOML.
var ErrUnsupportedFormat = errors.New("theme: unsupported file format")

// ParseError reports an invalid entry in a theme file.
type ParseError struct {
	Key   string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("theme: invalid value %q for %q: %v", e.Value, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
