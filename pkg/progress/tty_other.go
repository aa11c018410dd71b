// ABOUTME: Non-Unix fallback: no controlling-terminal device is available.
// ABOUTME: Windows console APIs are out of scope; controllers degrade to no-ops.

//go:build !unix

package progress

import "errors"

// TTY is unavailable on this platform.
type TTY struct{}

// OpenTTY always fails on non-Unix platforms, leaving the controller
// disabled (every operation a silent no-op).
func OpenTTY() (*TTY, error) {
	return nil, errors.New("no controlling terminal device on this platform")
}

func (t *TTY) Geometry() (rows, cols int, err error) {
	return 0, 0, errors.New("no controlling terminal device on this platform")
}

func (t *TTY) Write(p []byte) (int, error) {
	return 0, errors.New("no controlling terminal device on this platform")
}

func (t *TTY) Close() error { return nil }
