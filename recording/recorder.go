package recording

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/ggscale/surface"
	"github.com/gogpu/ggscale/text"
)

// Recorder is a Surface that records every call it receives.
// A Recorder created by Wrap forwards each call to its delegate, so the
// delegate's pixels match what an unwrapped run would produce.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	delegate      surface.Surface

	transform surface.Matrix
	color     color.Color
	lineWidth float64
	font      text.Font
	closed    bool

	ops []Op
}

// NewRecorder creates a Recorder without a delegate.
// Snapshot returns a transparent raster of the recorder's size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:     width,
		height:    height,
		transform: surface.Identity(),
		color:     color.Black,
		lineWidth: 1,
		font:      text.Font{Source: text.Default(), Size: 12},
		ops:       make([]Op, 0, 64),
	}
}

// Wrap creates a Recorder that forwards every call to s.
func Wrap(s surface.Surface) *Recorder {
	r := NewRecorder(s.Width(), s.Height())
	r.delegate = s
	r.transform = s.Transform()
	return r
}

// Delegate returns the wrapped surface, or nil.
func (r *Recorder) Delegate() surface.Surface {
	return r.delegate
}

func (r *Recorder) record(c Command) {
	r.ops = append(r.ops, Op{Command: c, Transform: r.transform})
}

// Width implements surface.Surface.
func (r *Recorder) Width() int { return r.width }

// Height implements surface.Surface.
func (r *Recorder) Height() int { return r.height }

// Size implements surface.Surface.
func (r *Recorder) Size() surface.Size { return surface.Sz(r.width, r.height) }

// Transform implements surface.Surface. Reading the transform is not
// recorded.
func (r *Recorder) Transform() surface.Matrix { return r.transform }

// SetTransform implements surface.Surface.
func (r *Recorder) SetTransform(m surface.Matrix) {
	r.transform = m
	if r.delegate != nil {
		r.delegate.SetTransform(m)
	}
	r.record(SetTransformCommand{Matrix: m})
}

// Scale implements surface.Surface.
func (r *Recorder) Scale(sx, sy float64) {
	r.transform = r.transform.Multiply(surface.ScaleMatrix(sx, sy))
	if r.delegate != nil {
		r.delegate.Scale(sx, sy)
	}
	r.record(ScaleCommand{SX: sx, SY: sy})
}

// Translate implements surface.Surface.
func (r *Recorder) Translate(dx, dy float64) {
	r.transform = r.transform.Multiply(surface.TranslateMatrix(dx, dy))
	if r.delegate != nil {
		r.delegate.Translate(dx, dy)
	}
	r.record(TranslateCommand{DX: dx, DY: dy})
}

// SetColor implements surface.Surface.
func (r *Recorder) SetColor(c color.Color) {
	if c != nil {
		r.color = c
	}
	if r.delegate != nil {
		r.delegate.SetColor(c)
	}
	r.record(SetColorCommand{Color: c})
}

// SetLineWidth implements surface.Surface.
func (r *Recorder) SetLineWidth(w float64) {
	r.lineWidth = w
	if r.delegate != nil {
		r.delegate.SetLineWidth(w)
	}
	r.record(SetLineWidthCommand{Width: w})
}

// SetFont implements surface.Surface.
func (r *Recorder) SetFont(f text.Font) {
	r.font = f
	if r.delegate != nil {
		r.delegate.SetFont(f)
	}
	r.record(SetFontCommand{Font: f})
}

// Rectangle implements surface.Surface.
func (r *Recorder) Rectangle(x, y, w, h float64) {
	if r.delegate != nil {
		r.delegate.Rectangle(x, y, w, h)
	}
	r.record(RectangleCommand{X: x, Y: y, W: w, H: h})
}

// Fill implements surface.Surface.
func (r *Recorder) Fill() {
	if r.delegate != nil {
		r.delegate.Fill()
	}
	r.record(FillCommand{})
}

// FillPreserve implements surface.Surface.
func (r *Recorder) FillPreserve() {
	if r.delegate != nil {
		r.delegate.FillPreserve()
	}
	r.record(FillPreserveCommand{})
}

// Stroke implements surface.Surface.
func (r *Recorder) Stroke() {
	if r.delegate != nil {
		r.delegate.Stroke()
	}
	r.record(StrokeCommand{Width: r.lineWidth})
}

// Clear implements surface.Surface.
func (r *Recorder) Clear(c color.Color) {
	if r.delegate != nil {
		r.delegate.Clear(c)
	}
	r.record(ClearCommand{Color: c})
}

// MeasureText implements surface.Surface. Without a delegate the current
// font measures the string.
func (r *Recorder) MeasureText(s string) (w, h float64) {
	if r.delegate != nil {
		w, h = r.delegate.MeasureText(s)
	} else {
		w, h = r.font.Measure(s)
	}
	r.record(MeasureTextCommand{Text: s})
	return w, h
}

// DrawText implements surface.Surface.
func (r *Recorder) DrawText(s string, x, y float64) {
	if r.delegate != nil {
		r.delegate.DrawText(s, x, y)
	}
	r.record(DrawTextCommand{Text: s, X: x, Y: y, Font: r.font, Color: r.color})
}

// DrawRasterImage implements surface.Surface.
func (r *Recorder) DrawRasterImage(img *surface.RasterImage, x, y float64) {
	if r.delegate != nil {
		r.delegate.DrawRasterImage(img, x, y)
	}
	r.record(DrawImageCommand{Image: img, X: x, Y: y})
}

// Snapshot implements surface.Surface.
func (r *Recorder) Snapshot() (*surface.RasterImage, error) {
	if r.closed {
		return nil, surface.ErrClosed
	}
	r.record(SnapshotCommand{})
	if r.delegate != nil {
		return r.delegate.Snapshot()
	}
	return surface.NewRasterImage(image.NewRGBA(image.Rect(0, 0, r.width, r.height))), nil
}

// Close implements surface.Surface. The delegate is closed too.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.record(CloseCommand{})
	if r.delegate != nil {
		return r.delegate.Close()
	}
	return nil
}

// Closed reports whether Close has been called.
func (r *Recorder) Closed() bool {
	return r.closed
}

// Reset drops the recorded ops and keeps the current state.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

// Finish returns an immutable Recording of the ops so far.
// The Recorder remains usable.
func (r *Recorder) Finish() *Recording {
	ops := make([]Op, len(r.ops))
	copy(ops, r.ops)
	return &Recording{width: r.width, height: r.height, ops: ops}
}

var _ surface.Surface = (*Recorder)(nil)

// Recording is an immutable list of recorded ops.
type Recording struct {
	width, height int
	ops           []Op
}

// Width returns the width of the recorded surface.
func (r *Recording) Width() int {
	return r.width
}

// Height returns the height of the recorded surface.
func (r *Recording) Height() int {
	return r.height
}

// Ops returns the recorded ops.
func (r *Recording) Ops() []Op {
	return r.ops
}

// Len returns the number of recorded ops.
func (r *Recording) Len() int {
	return len(r.ops)
}

// Types returns the command type of every op, in order.
func (r *Recording) Types() []CommandType {
	types := make([]CommandType, len(r.ops))
	for i, op := range r.ops {
		types[i] = op.Type()
	}
	return types
}

// Find returns the ops whose command has one of the given types.
func (r *Recording) Find(types ...CommandType) []Op {
	var out []Op
	for _, op := range r.ops {
		for _, t := range types {
			if op.Type() == t {
				out = append(out, op)
				break
			}
		}
	}
	return out
}

// Count returns the number of ops of type t.
func (r *Recording) Count(t CommandType) int {
	return len(r.Find(t))
}

// Index returns the position of the first op of type t at or after from,
// or -1.
func (r *Recording) Index(t CommandType, from int) int {
	for i := max(from, 0); i < len(r.ops); i++ {
		if r.ops[i].Type() == t {
			return i
		}
	}
	return -1
}

// Playback replays the drawing ops onto s. Measurement, snapshot and
// close ops are skipped.
func (r *Recording) Playback(s surface.Surface) error {
	if s == nil {
		return fmt.Errorf("recording: playback onto nil surface")
	}
	for _, op := range r.ops {
		switch c := op.Command.(type) {
		case SetTransformCommand:
			s.SetTransform(c.Matrix)
		case ScaleCommand:
			s.Scale(c.SX, c.SY)
		case TranslateCommand:
			s.Translate(c.DX, c.DY)
		case SetColorCommand:
			s.SetColor(c.Color)
		case SetLineWidthCommand:
			s.SetLineWidth(c.Width)
		case SetFontCommand:
			s.SetFont(c.Font)
		case RectangleCommand:
			s.Rectangle(c.X, c.Y, c.W, c.H)
		case FillCommand:
			s.Fill()
		case FillPreserveCommand:
			s.FillPreserve()
		case StrokeCommand:
			s.Stroke()
		case ClearCommand:
			s.Clear(c.Color)
		case DrawTextCommand:
			s.DrawText(c.Text, c.X, c.Y)
		case DrawImageCommand:
			s.DrawRasterImage(c.Image, c.X, c.Y)
		case MeasureTextCommand, SnapshotCommand, CloseCommand:
			// no pixels
		}
	}
	return nil
}

// WriteTo writes one line per op to w.
func (r *Recording) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for i, op := range r.ops {
		k, err := fmt.Fprintf(w, "%4d %v\n", i, op)
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
