// ABOUTME: Defines the Device interface for controlling-terminal geometry and output.
// ABOUTME: Abstracts the terminal so implementations can target /dev/tty or a test fake.

package progress

import "io"

// Device abstracts the controlling terminal: a fresh geometry query and
// a raw byte sink for escape sequences. Geometry must be re-queried on
// every call, never cached by the implementation, so that resizes are
// picked up between renders.
type Device interface {
	// Geometry returns the terminal's current dimensions. An error means
	// the terminal is unavailable (closed, detached, not a tty).
	Geometry() (rows, cols int, err error)

	io.Writer
}
