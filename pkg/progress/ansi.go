// ABOUTME: ANSI/VT100 escape sequence constructors used to drive the terminal.
// ABOUTME: Sequences are bit-exact; all drawing goes through these helpers.

package progress

import "fmt"

const (
	// saveCursor and restoreCursor are the DEC private save/restore pair.
	// Note the device holds a single save slot, not a stack; nesting a
	// second save discards the first.
	saveCursor    = "\0337"
	restoreCursor = "\0338"

	// clearToEOL erases from the cursor to the end of the line.
	clearToEOL = "\033[0K"

	// cursorUp moves the cursor up one line.
	cursorUp = "\033[1A"
)

// moveTo returns the sequence positioning the cursor at (row, col),
// both 1-based.
func moveTo(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}

// setScrollRegion returns the sequence restricting scrolling to the
// inclusive 1-based row range top..bottom (DECSTBM).
func setScrollRegion(top, bottom int) string {
	return fmt.Sprintf("\033[%d;%dr", top, bottom)
}
