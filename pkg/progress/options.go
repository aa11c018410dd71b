// ABOUTME: Functional options for Controller: bar characters and debug output.
// ABOUTME: Validates bar runes are single-cell via go-runewidth; invalid runes fall back.

package progress

import (
	"io"

	"github.com/mattn/go-runewidth"
)

// Default bar characters.
const (
	DefaultFill  = '#'
	DefaultEmpty = '.'
)

// Option customizes a Controller.
type Option func(*Controller)

// WithBarStyle sets the runes used for the filled and remaining bar
// segments. Runes that do not occupy exactly one terminal cell (wide
// CJK runes, combining marks, control characters) are rejected and the
// corresponding default is kept, since the bar math assumes one cell
// per segment.
func WithBarStyle(fill, empty rune) Option {
	return func(c *Controller) {
		if runewidth.RuneWidth(fill) == 1 {
			c.fill = fill
		}
		if runewidth.RuneWidth(empty) == 1 {
			c.empty = empty
		}
	}
}

// WithDebugWriter redirects Debug output away from os.Stderr.
// Intended for tests.
func WithDebugWriter(w io.Writer) Option {
	return func(c *Controller) {
		if w != nil {
			c.debugW = w
		}
	}
}
