package ggscale

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/ggscale/surface"
)

// ErrInvalidScale is wrapped by errors for NaN or infinite scale factors.
var ErrInvalidScale = errors.New("ggscale: scale factor is not finite")

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfiguration indicates an invalid size or scale factor.
	KindConfiguration
	// KindResource indicates that an off-screen raster could not be allocated.
	KindResource
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Error is a failure reported to the host.
type Error struct {
	// Op is the operation that failed (e.g., "ggscale.Paint").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf classifies err.
func KindOf(err error) ErrorKind {
	var ge *Error
	var se *surface.SizeError
	var ae *surface.AllocError
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &ge):
		return ge.Kind
	case errors.As(err, &se), errors.Is(err, ErrInvalidScale):
		return KindConfiguration
	case errors.As(err, &ae), errors.Is(err, surface.ErrResourceExhausted):
		return KindResource
	default:
		return KindUnknown
	}
}

// wrapError returns err as an *Error for op.
func wrapError(op string, err error) *Error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}
	return &Error{Op: op, Kind: KindOf(err), Err: err}
}

// ErrorReporter receives errors the renderer and controller recover from.
type ErrorReporter interface {
	ReportError(err *Error)
}

// ErrorReporterFunc adapts a function to ErrorReporter.
type ErrorReporterFunc func(err *Error)

// ReportError calls f(err).
func (f ErrorReporterFunc) ReportError(err *Error) {
	f(err)
}

// logReporter logs errors at warn level.
type logReporter struct {
	log *slog.Logger
}

func (r logReporter) ReportError(err *Error) {
	r.log.Warn("ggscale: error",
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
		slog.String("err", fmt.Sprint(err.Err)))
}
