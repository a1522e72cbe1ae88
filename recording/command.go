package recording

import (
	"fmt"
	"image/color"

	"github.com/gogpu/ggscale/surface"
	"github.com/gogpu/ggscale/text"
)

// CommandType identifies the type of a command.
// Each command type corresponds to one Surface method.
type CommandType uint8

const (
	// Transform commands
	CmdSetTransform CommandType = iota // Replace the transform
	CmdScale                           // Prepend a scale
	CmdTranslate                       // Prepend a translation

	// Style commands
	CmdSetColor     // Set the current color
	CmdSetLineWidth // Set the stroke width
	CmdSetFont      // Set the current font

	// Drawing commands
	CmdRectangle    // Append a rectangle to the path
	CmdFill         // Fill and consume the path
	CmdFillPreserve // Fill and keep the path
	CmdStroke       // Stroke and consume the path
	CmdClear        // Fill the whole surface
	CmdMeasureText  // Measure a string
	CmdDrawText     // Draw a string
	CmdDrawImage    // Draw a raster image

	// Lifecycle commands
	CmdSnapshot // Copy the pixels
	CmdClose    // Release the surface
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSetTransform: "SetTransform",
	CmdScale:        "Scale",
	CmdTranslate:    "Translate",
	CmdSetColor:     "SetColor",
	CmdSetLineWidth: "SetLineWidth",
	CmdSetFont:      "SetFont",
	CmdRectangle:    "Rectangle",
	CmdFill:         "Fill",
	CmdFillPreserve: "FillPreserve",
	CmdStroke:       "Stroke",
	CmdClear:        "Clear",
	CmdMeasureText:  "MeasureText",
	CmdDrawText:     "DrawText",
	CmdDrawImage:    "DrawImage",
	CmdSnapshot:     "Snapshot",
	CmdClose:        "Close",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// Op is a recorded command and the transform in effect after it ran.
type Op struct {
	Command
	Transform surface.Matrix
}

func (o Op) String() string {
	if s, ok := o.Command.(fmt.Stringer); ok {
		return fmt.Sprintf("%s ctm=%v", s, o.Transform)
	}
	return fmt.Sprintf("%v ctm=%v", o.Type(), o.Transform)
}

// --------------------------------------------------------------------------
// Transform Commands
// --------------------------------------------------------------------------

// SetTransformCommand replaces the current transform.
type SetTransformCommand struct {
	Matrix surface.Matrix
}

// Type implements Command.
func (SetTransformCommand) Type() CommandType { return CmdSetTransform }

func (c SetTransformCommand) String() string { return fmt.Sprintf("SetTransform(%v)", c.Matrix) }

// ScaleCommand prepends a scale to the current transform.
type ScaleCommand struct {
	SX, SY float64
}

// Type implements Command.
func (ScaleCommand) Type() CommandType { return CmdScale }

func (c ScaleCommand) String() string { return fmt.Sprintf("Scale(%g, %g)", c.SX, c.SY) }

// TranslateCommand prepends a translation to the current transform.
type TranslateCommand struct {
	DX, DY float64
}

// Type implements Command.
func (TranslateCommand) Type() CommandType { return CmdTranslate }

func (c TranslateCommand) String() string { return fmt.Sprintf("Translate(%g, %g)", c.DX, c.DY) }

// --------------------------------------------------------------------------
// Style Commands
// --------------------------------------------------------------------------

// SetColorCommand sets the current color.
type SetColorCommand struct {
	Color color.Color
}

// Type implements Command.
func (SetColorCommand) Type() CommandType { return CmdSetColor }

func (c SetColorCommand) String() string {
	if c.Color == nil {
		return "SetColor(nil)"
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("SetColor(#%02x%02x%02x%02x)", n.R, n.G, n.B, n.A)
}

// SetLineWidthCommand sets the stroke width.
type SetLineWidthCommand struct {
	Width float64
}

// Type implements Command.
func (SetLineWidthCommand) Type() CommandType { return CmdSetLineWidth }

func (c SetLineWidthCommand) String() string { return fmt.Sprintf("SetLineWidth(%g)", c.Width) }

// SetFontCommand sets the current font.
type SetFontCommand struct {
	Font text.Font
}

// Type implements Command.
func (SetFontCommand) Type() CommandType { return CmdSetFont }

func (c SetFontCommand) String() string { return fmt.Sprintf("SetFont(%v)", c.Font) }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// RectangleCommand appends a closed rectangle to the current path.
type RectangleCommand struct {
	X, Y, W, H float64
}

// Type implements Command.
func (RectangleCommand) Type() CommandType { return CmdRectangle }

func (c RectangleCommand) String() string {
	return fmt.Sprintf("Rectangle(%g, %g, %g, %g)", c.X, c.Y, c.W, c.H)
}

// FillCommand fills and consumes the current path.
type FillCommand struct{}

// Type implements Command.
func (FillCommand) Type() CommandType { return CmdFill }

// FillPreserveCommand fills the current path and keeps it.
type FillPreserveCommand struct{}

// Type implements Command.
func (FillPreserveCommand) Type() CommandType { return CmdFillPreserve }

// StrokeCommand strokes and consumes the current path.
type StrokeCommand struct {
	// Width is the line width in effect.
	Width float64
}

// Type implements Command.
func (StrokeCommand) Type() CommandType { return CmdStroke }

func (c StrokeCommand) String() string { return fmt.Sprintf("Stroke(width=%g)", c.Width) }

// ClearCommand fills the whole surface, ignoring the transform.
type ClearCommand struct {
	Color color.Color
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// MeasureTextCommand measures a string with the current font.
type MeasureTextCommand struct {
	Text string
}

// Type implements Command.
func (MeasureTextCommand) Type() CommandType { return CmdMeasureText }

func (c MeasureTextCommand) String() string { return fmt.Sprintf("MeasureText(%q)", c.Text) }

// DrawTextCommand draws a string with its line box at (X, Y).
type DrawTextCommand struct {
	Text  string
	X, Y  float64
	Font  text.Font
	Color color.Color
}

// Type implements Command.
func (DrawTextCommand) Type() CommandType { return CmdDrawText }

func (c DrawTextCommand) String() string {
	return fmt.Sprintf("DrawText(%q, %g, %g)", c.Text, c.X, c.Y)
}

// DrawImageCommand draws a raster image at (X, Y) at native size.
type DrawImageCommand struct {
	Image *surface.RasterImage
	X, Y  float64
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

func (c DrawImageCommand) String() string {
	if c.Image == nil {
		return fmt.Sprintf("DrawImage(nil, %g, %g)", c.X, c.Y)
	}
	return fmt.Sprintf("DrawImage(%v, %g, %g)", c.Image.Size(), c.X, c.Y)
}

// --------------------------------------------------------------------------
// Lifecycle Commands
// --------------------------------------------------------------------------

// SnapshotCommand copies the surface pixels.
type SnapshotCommand struct{}

// Type implements Command.
func (SnapshotCommand) Type() CommandType { return CmdSnapshot }

// CloseCommand releases the surface.
type CloseCommand struct{}

// Type implements Command.
func (CloseCommand) Type() CommandType { return CmdClose }
