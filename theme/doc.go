// Package theme resolves symbolic color and font names.
//
// A Theme maps names such as "background" or "label" to colors and
// fonts. Names are case-insensitive. Lookups of unknown names fall back to
// the built-in defaults, so a theme file only lists what it changes:
//
//	# theme.yaml
//	colors:
//	  background: "#1e1e1e"
//	  accent: "#ff8800cc"
//	fonts:
//	  label:
//	    size: 14
//	    file: fonts/Inter.ttf   # relative to the theme file
//
// TOML files with the same keys are accepted; the format follows the file
// extension. A Watcher reloads a theme file when it changes on disk.
package theme
