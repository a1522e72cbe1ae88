package recording

import "github.com/gogpu/ggscale/surface"

// Allocator returns a surface.Allocator that wraps every surface alloc
// creates in a Recorder and passes the Recorder to created.
// A nil alloc creates recorders without delegates; non-positive sizes
// still fail with *surface.SizeError.
func Allocator(alloc surface.Allocator, created func(*Recorder)) surface.Allocator {
	return func(width, height int) (surface.Surface, error) {
		var r *Recorder
		if alloc == nil {
			if width <= 0 || height <= 0 {
				return nil, &surface.SizeError{Width: width, Height: height}
			}
			r = NewRecorder(width, height)
		} else {
			s, err := alloc(width, height)
			if err != nil {
				return nil, err
			}
			r = Wrap(s)
		}
		if created != nil {
			created(r)
		}
		return r, nil
	}
}

// init registers the "record" backend: image surfaces wrapped in
// recorders.
func init() {
	surface.Register("record", 5, Allocator(surface.DefaultAllocator, nil), nil)
}
