// ABOUTME: Controller pins a one-line progress bar to the terminal's bottom row.
// ABOUTME: Owns the scroll-region lifecycle; degrades to silent no-ops without a TTY.

package progress

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// barOverhead is the fixed width consumed around the bar segments:
// "[" + "] " + three percent digits + "%".
const barOverhead = 7

// state tracks the controller lifecycle so out-of-order calls become
// harmless no-ops instead of corrupting the scroll region.
type state int

const (
	stateUninitialized state = iota
	stateActive
	stateTornDown
)

// Sentinel errors for the unexported operation results. The public
// surface never returns them; tests assert on them directly instead of
// inferring failure from the absence of output.
var (
	errTerminalUnavailable = errors.New("terminal unavailable")
	errNotActive           = errors.New("controller not active")
)

// Controller manages the controlling terminal's scroll region so one
// progress line can be redrawn on the bottom row while the caller's
// stdout and stderr scroll normally above it.
//
// Call order is Init, any number of Render calls, Deinit. Every
// operation re-queries the terminal geometry and silently no-ops when
// no usable terminal is present, so the controller is safe to use
// unconditionally in scripts whose output may be redirected.
//
// A Controller is not safe for concurrent use; it drives a single
// shared terminal and expects one rendering goroutine.
type Controller struct {
	dev    Device
	fill   rune
	empty  rune
	debugW io.Writer
	state  state
}

// New returns a Controller bound to the process's controlling terminal.
// When no controlling terminal is available (redirected output, CI,
// daemons) the controller is permanently disabled and every operation
// is a silent no-op.
func New(opts ...Option) *Controller {
	tty, err := OpenTTY()
	if err != nil {
		return NewWithDevice(nil, opts...)
	}
	return NewWithDevice(tty, opts...)
}

// NewWithDevice returns a Controller driving the given device. A nil
// device yields a disabled controller. Intended for tests and for
// embedding in programs that manage the terminal fd themselves.
func NewWithDevice(dev Device, opts ...Option) *Controller {
	c := &Controller{
		dev:    dev,
		fill:   DefaultFill,
		empty:  DefaultEmpty,
		debugW: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init reserves the terminal's bottom row by shrinking the scroll
// region to rows 1..rows-1. Safe to call with no terminal present.
// Calling Init again while active is a no-op.
func (c *Controller) Init() { _ = c.init() }

// Render repaints the progress bar for current out of total work units.
// The bar is fully repainted from a fresh geometry query on every call,
// so terminal resizes between calls are picked up and repeated calls
// never accumulate drift. No-op unless Init succeeded.
func (c *Controller) Render(current, total int) { _ = c.render(current, total) }

// Deinit restores the full-height scroll region, clears the bar row,
// and emits a newline so subsequent output starts cleanly. Safe to call
// unconditionally: it is a no-op when Init never succeeded, and calling
// it twice is a no-op the second time. Callers should arrange for it to
// run on every exit path, including signal-driven ones.
func (c *Controller) Deinit() { _ = c.deinit() }

// Debug writes one formatted diagnostic line to the controller's debug
// writer (os.Stderr by default), never to the terminal device, so it
// interleaves with scrolling output without disturbing the pinned bar.
// Works regardless of lifecycle state or terminal availability.
func (c *Controller) Debug(format string, args ...any) {
	fmt.Fprintf(c.debugW, format+"\n", args...)
}

// Close releases the underlying device if it holds an fd. It does not
// restore terminal state; call Deinit first.
func (c *Controller) Close() error {
	if closer, ok := c.dev.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Controller) init() error {
	if c.state == stateActive {
		return nil
	}
	if c.dev == nil {
		return errTerminalUnavailable
	}

	rows, _, err := c.dev.Geometry()
	if err != nil {
		return fmt.Errorf("%w: %v", errTerminalUnavailable, err)
	}
	if rows < 2 {
		// Nothing left to scroll in after reserving a row.
		return fmt.Errorf("%w: terminal too short (%d rows)", errTerminalUnavailable, rows)
	}

	// The leading newline scrolls once so reserving the bottom row never
	// swallows the line the cursor currently sits on; the trailing
	// cursor-up compensates for it after the restore.
	var b strings.Builder
	b.WriteByte('\n')
	b.WriteString(saveCursor)
	b.WriteString(setScrollRegion(1, rows-1))
	b.WriteString(restoreCursor)
	b.WriteString(cursorUp)

	if _, err := io.WriteString(c.dev, b.String()); err != nil {
		return fmt.Errorf("%w: %v", errTerminalUnavailable, err)
	}
	c.state = stateActive
	return nil
}

func (c *Controller) render(current, total int) error {
	if c.state != stateActive {
		return errNotActive
	}

	rows, cols, err := c.dev.Geometry()
	if err != nil {
		return fmt.Errorf("%w: %v", errTerminalUnavailable, err)
	}
	barWidth := cols - barOverhead
	if barWidth < 1 {
		// Too narrow for even one segment; leave the row alone.
		return nil
	}

	filled, percent := barFill(barWidth, current, total)

	var b strings.Builder
	b.Grow(len(saveCursor) + len(clearToEOL) + len(restoreCursor) + barWidth + barOverhead + 16)
	b.WriteString(saveCursor)
	b.WriteString(moveTo(rows, 1))
	b.WriteString(clearToEOL)
	composeBar(&b, c.fill, c.empty, barWidth, filled, percent)
	b.WriteString(restoreCursor)

	if _, err := io.WriteString(c.dev, b.String()); err != nil {
		return fmt.Errorf("%w: %v", errTerminalUnavailable, err)
	}
	return nil
}

func (c *Controller) deinit() error {
	if c.state != stateActive {
		return errNotActive
	}
	// Torn down regardless of what follows: if the terminal vanished
	// there is no scroll region left to reset, and renders must stop.
	c.state = stateTornDown

	rows, _, err := c.dev.Geometry()
	if err != nil {
		return fmt.Errorf("%w: %v", errTerminalUnavailable, err)
	}

	var b strings.Builder
	b.WriteString(setScrollRegion(1, rows))
	b.WriteString(moveTo(rows, 1))
	b.WriteString(clearToEOL)
	b.WriteByte('\n')

	if _, err := io.WriteString(c.dev, b.String()); err != nil {
		return fmt.Errorf("%w: %v", errTerminalUnavailable, err)
	}
	return nil
}

// barFill computes the filled segment count and the percentage, both by
// floor division, clamped to their valid ranges. A non-positive total
// renders as an empty bar at 0% rather than dividing by zero, keeping
// the never-break-the-caller contract.
func barFill(barWidth, current, total int) (filled, percent int) {
	if total <= 0 {
		return 0, 0
	}
	if current < 0 {
		current = 0
	}
	if current > total {
		current = total
	}
	return barWidth * current / total, current * 100 / total
}

// composeBar writes "[###....] nnn%" with exactly barWidth segment
// runes, so the rendered line is always barWidth+barOverhead cells.
func composeBar(b *strings.Builder, fill, empty rune, barWidth, filled, percent int) {
	b.WriteByte('[')
	for i := 0; i < barWidth; i++ {
		if i < filled {
			b.WriteRune(fill)
		} else {
			b.WriteRune(empty)
		}
	}
	fmt.Fprintf(b, "] %3d%%", percent)
}
