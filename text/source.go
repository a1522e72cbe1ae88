package text

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggscale/internal/cache"
)

// defaultFaceCacheSize is the number of sized faces kept per source.
const defaultFaceCacheSize = 16

// FontSource represents a loaded font file.
// One FontSource serves any number of sizes.
// FontSource is heavyweight and should be shared across the application.
//
// FontSource is safe for concurrent use.
type FontSource struct {
	name    string
	ot      *opentype.Font
	hinting font.Hinting

	// mu serializes shaping and glyph drawing; neither the HarfBuzz
	// shaper nor opentype faces are safe for concurrent use.
	mu     sync.Mutex
	gt     *gtfont.Face // nil if go-text rejected the data
	shaper shaping.HarfbuzzShaper
	faces  *cache.Cache[fixed.Int26_6, font.Face]
}

// SourceOption configures a FontSource.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	hinting   font.Hinting
	cacheSize int
}

// WithHinting sets the glyph hinting used for drawing.
// The default, font.HintingNone, keeps advances proportional to size so
// text drawn at 2x lines up with text drawn at 1x.
func WithHinting(h font.Hinting) SourceOption {
	return func(c *sourceConfig) {
		c.hinting = h
	}
}

// WithFaceCacheSize sets how many sized faces are kept.
func WithFaceCacheSize(n int) SourceOption {
	return func(c *sourceConfig) {
		c.cacheSize = n
	}
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := sourceConfig{hinting: font.HintingNone, cacheSize: defaultFaceCacheSize}
	for _, opt := range opts {
		opt(&config)
	}

	ot, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	s := &FontSource{
		ot:      ot,
		hinting: config.hinting,
		faces:   cache.New[fixed.Int26_6, font.Face](config.cacheSize),
	}
	s.faces.OnEvict(func(_ fixed.Int26_6, f font.Face) {
		_ = f.Close()
	})

	// Measurement falls back to opentype advances without go-text.
	if gt, err := gtfont.ParseTTF(bytes.NewReader(data)); err == nil {
		s.gt = gtfont.NewFace(gt.Font)
	}

	s.name = "Unknown Font"
	if name, err := ot.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		s.name = name
	}
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data, opts...)
}

var defaultSource = sync.OnceValue(func() *FontSource {
	s, err := NewFontSource(goregular.TTF)
	if err != nil {
		panic("text: embedded Go Regular font failed to parse: " + err.Error())
	}
	return s
})

// Default returns the shared Go Regular font source.
func Default() *FontSource {
	return defaultSource()
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	return s.name
}

// Close releases the cached faces. The source stays usable; faces are
// recreated on demand.
func (s *FontSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faces.Clear()
	return nil
}

// face returns the opentype face for a pixel size. Caller must hold s.mu.
func (s *FontSource) face(size float64) (font.Face, error) {
	key := toFixed(size)
	if key <= 0 {
		return nil, ErrNoFont
	}
	return s.faces.GetOrCreate(key, func() (font.Face, error) {
		return opentype.NewFace(s.ot, &opentype.FaceOptions{
			Size:    fromFixed(key),
			DPI:     72,
			Hinting: s.hinting,
		})
	})
}

// metrics returns the face metrics at size.
func (s *FontSource) metrics(size float64) (Metrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	face, err := s.face(size)
	if err != nil {
		return Metrics{}, err
	}
	m := face.Metrics()
	ascent := fromFixed(m.Ascent)
	descent := math.Abs(fromFixed(m.Descent))
	return Metrics{
		Ascent:    ascent,
		Descent:   descent,
		LineGap:   max(fromFixed(m.Height)-ascent-descent, 0),
		XHeight:   fromFixed(m.XHeight),
		CapHeight: fromFixed(m.CapHeight),
	}, nil
}

// advance returns the horizontal advance of str at size.
func (s *FontSource) advance(str string, size float64) float64 {
	if str == "" {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gt == nil {
		face, err := s.face(size)
		if err != nil {
			return 0
		}
		return fromFixed(font.MeasureString(face, str))
	}

	runes := []rune(str)
	out := s.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      s.gt,
		Size:      toFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})
	return fromFixed(out.Advance)
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
