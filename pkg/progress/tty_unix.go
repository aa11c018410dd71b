// ABOUTME: TTY is the real Device backed by the process's controlling terminal.
// ABOUTME: Opens /dev/tty directly so redirected stdout/stderr stay untouched.

//go:build unix

package progress

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ttyPath is the conventional name of the controlling terminal on Unix.
const ttyPath = "/dev/tty"

// compile-time check: TTY must satisfy Device.
var _ Device = (*TTY)(nil)

// TTY is a Device bound to the controlling terminal device node. All
// writes bypass the process's standard streams, so callers are free to
// redirect stdout (including binary payloads) without the bar leaking
// into the redirected data.
type TTY struct {
	f *os.File
}

// OpenTTY opens the controlling terminal. It fails when the process has
// no controlling terminal (daemons, CI, setsid children) or when the
// device node is not actually a terminal.
func OpenTTY() (*TTY, error) {
	f, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", ttyPath, err)
	}
	if !term.IsTerminal(int(f.Fd())) {
		f.Close()
		return nil, fmt.Errorf("%s is not a terminal", ttyPath)
	}
	return &TTY{f: f}, nil
}

// Geometry queries the terminal size with TIOCGWINSZ on the device fd.
// Queried fresh on every call; a stale cached size after a resize is
// exactly the failure this design avoids.
func (t *TTY) Geometry() (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("querying terminal size: %w", err)
	}
	if ws.Row == 0 || ws.Col == 0 {
		return 0, 0, fmt.Errorf("terminal reports zero size")
	}
	return int(ws.Row), int(ws.Col), nil
}

// Write sends bytes to the terminal device.
func (t *TTY) Write(p []byte) (int, error) {
	n, err := t.f.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to %s: %w", ttyPath, err)
	}
	return n, nil
}

// Close releases the device fd.
func (t *TTY) Close() error {
	return t.f.Close()
}
