// Package text provides font selection, measurement and drawing.
//
// The pipeline separates a heavyweight FontSource (parsed font data,
// shared across the application) from Font, a small value naming a source
// and a size in user units:
//
//   - Measurement uses go-text/typesetting's HarfBuzz shaper for advances.
//   - Drawing uses golang.org/x/image/font/opentype faces, cached per
//     device pixel size.
//
// # Example usage
//
//	f := text.Font{Source: text.Default(), Size: 12}
//	w, h := f.Measure("Hello")
//	_ = f.Draw(img, "Hello", 10, 10, color.Black, 2) // 24px glyphs
//
// Drawing at a scale renders glyphs at Size*scale pixels rather than
// resampling 1x glyphs, so upscaled rasters keep their detail.
package text
