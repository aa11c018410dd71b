// ABOUTME: VirtualDevice implements Device for testing without a real TTY.
// ABOUTME: Captures output and serves scripted geometry, including forced failures.

package progress

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
)

// errVirtualUnavailable is what a VirtualDevice returns when scripted
// to simulate a missing terminal.
var errVirtualUnavailable = errors.New("virtual terminal unavailable")

// VirtualDevice is a fake Device for unit tests. It records written
// output and answers geometry queries from a configurable size, an
// optional per-call script, or a forced failure.
type VirtualDevice struct {
	mu          sync.Mutex
	buf         bytes.Buffer
	rows        int
	cols        int
	script      [][2]int
	unavailable bool
	queryCount  int
}

// NewVirtualDevice returns a VirtualDevice with the given dimensions.
func NewVirtualDevice(rows, cols int) *VirtualDevice {
	return &VirtualDevice{
		rows: rows,
		cols: cols,
	}
}

// Geometry returns the next scripted size if a script is set, the
// configured size otherwise, or an error when unavailability is forced.
func (v *VirtualDevice) Geometry() (rows, cols int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.queryCount++
	if v.unavailable {
		return 0, 0, errVirtualUnavailable
	}
	if len(v.script) > 0 {
		next := v.script[0]
		v.script = v.script[1:]
		v.rows, v.cols = next[0], next[1]
	}
	return v.rows, v.cols, nil
}

// Write appends data to the internal buffer.
func (v *VirtualDevice) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// --- Test helpers (not part of Device) ---

// Output returns everything written so far.
func (v *VirtualDevice) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Reset clears the output buffer.
func (v *VirtualDevice) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
}

// SetSize updates the dimensions returned by subsequent Geometry calls.
func (v *VirtualDevice) SetSize(rows, cols int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rows, v.cols = rows, cols
}

// ScriptSizes queues {rows, cols} pairs consumed one per Geometry call,
// for resize-adaptivity tests.
func (v *VirtualDevice) ScriptSizes(sizes ...[2]int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.script = append(v.script, sizes...)
}

// SetUnavailable forces Geometry to fail, simulating a detached or
// absent controlling terminal.
func (v *VirtualDevice) SetUnavailable(unavailable bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.unavailable = unavailable
}

// QueryCount returns how many times Geometry was called.
func (v *VirtualDevice) QueryCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.queryCount
}
