package theme

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/ggscale/text"
)

// Well-known names.
const (
	Background = "background"
	Foreground = "foreground"
	Secondary  = "secondary"
	Accent     = "accent"
	Label      = "label"
)

// DefaultFontSize is the size of fonts a theme does not size.
const DefaultFontSize = 12

var defaultColors = map[string]color.Color{
	Background: color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff},
	Foreground: color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff},
	Secondary:  color.NRGBA{R: 0x70, G: 0x70, B: 0x70, A: 0xff},
	Accent:     color.NRGBA{R: 0xd0, G: 0x34, B: 0x2c, A: 0xff},
}

// Theme resolves color and font names. It is safe for concurrent use;
// Replace swaps its contents atomically with respect to lookups.
type Theme struct {
	mu     sync.RWMutex
	colors map[string]color.Color
	fonts  map[string]text.Font
}

// New creates a theme holding only the defaults.
func New() *Theme {
	return &Theme{
		colors: map[string]color.Color{},
		fonts:  map[string]text.Font{},
	}
}

// Color returns the color for name, falling back to the default palette
// and then to opaque black.
func (t *Theme) Color(name string) color.Color {
	key := foldKey(name)
	t.mu.RLock()
	c, ok := t.colors[key]
	t.mu.RUnlock()
	if ok {
		return c
	}
	if c, ok := defaultColors[key]; ok {
		return c
	}
	return color.Black
}

// Font returns the font for name, falling back to Go Regular at
// DefaultFontSize.
func (t *Theme) Font(name string) text.Font {
	t.mu.RLock()
	f, ok := t.fonts[foldKey(name)]
	t.mu.RUnlock()
	if ok {
		return f
	}
	return text.Font{Source: text.Default(), Size: DefaultFontSize}
}

// SetColor overrides a color.
func (t *Theme) SetColor(name string, c color.Color) {
	t.mu.Lock()
	t.colors[foldKey(name)] = c
	t.mu.Unlock()
}

// SetFont overrides a font.
func (t *Theme) SetFont(name string, f text.Font) {
	t.mu.Lock()
	t.fonts[foldKey(name)] = f
	t.mu.Unlock()
}

// Replace copies the entries of other into t, dropping t's own.
func (t *Theme) Replace(other *Theme) {
	other.mu.RLock()
	colors := make(map[string]color.Color, len(other.colors))
	for k, v := range other.colors {
		colors[k] = v
	}
	fonts := make(map[string]text.Font, len(other.fonts))
	for k, v := range other.fonts {
		fonts[k] = v
	}
	other.mu.RUnlock()

	t.mu.Lock()
	t.colors = colors
	t.fonts = fonts
	t.mu.Unlock()
}

// Format is a theme file format.
type Format int

const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return "unknown"
	}
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

type fileFont struct {
	File string  `yaml:"file" toml:"file"`
	Size float64 `yaml:"size" toml:"size"`
}

type file struct {
	Colors map[string]string   `yaml:"colors" toml:"colors"`
	Fonts  map[string]fileFont `yaml:"fonts" toml:"fonts"`
}

// Load reads a theme file. Font files are resolved relative to the
// theme file's directory.
func Load(path string) (*Theme, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- theme path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	return Parse(data, format, filepath.Dir(path))
}

// Parse decodes theme data. dir anchors relative font paths.
func Parse(data []byte, format Format, dir string) (*Theme, error) {
	var f file
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("theme: decode yaml: %w", err)
		}
	case TOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("theme: decode toml: %w", err)
		}
	default:
		return nil, ErrUnsupportedFormat
	}

	t := New()
	for name, value := range f.Colors {
		c, err := ParseColor(value)
		if err != nil {
			return nil, &ParseError{Key: "colors." + name, Value: value, Err: err}
		}
		t.colors[foldKey(name)] = c
	}

	sources := map[string]*text.FontSource{}
	for name, fe := range f.Fonts {
		size := fe.Size
		if size == 0 {
			size = DefaultFontSize
		}
		if size < 0 {
			return nil, &ParseError{Key: "fonts." + name, Value: fmt.Sprint(size), Err: fmt.Errorf("negative size")}
		}
		src := text.Default()
		if fe.File != "" {
			p := fe.File
			if !filepath.IsAbs(p) {
				p = filepath.Join(dir, p)
			}
			if sources[p] == nil {
				s, err := text.NewFontSourceFromFile(p)
				if err != nil {
					return nil, &ParseError{Key: "fonts." + name, Value: fe.File, Err: err}
				}
				sources[p] = s
			}
			src = sources[p]
		}
		t.fonts[foldKey(name)] = text.Font{Source: src, Size: size}
	}
	return t, nil
}

// foldKey normalizes a name for lookup. A Caser keeps state, so each call
// gets its own.
func foldKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
