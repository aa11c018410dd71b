// ABOUTME: Test harness for running the pinbar binary, with or without a PTY
// ABOUTME: Builds the binary once per run; polls captured output with timeouts

package e2e

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/creack/pty"
)

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
)

// buildPinbar compiles cmd/pinbar once and returns the binary path.
func buildPinbar(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "pinbar-e2e-")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, "pinbar")

		cmd := exec.Command("go", "build", "-o", binPath, "github.com/mauromedda/pinbar/cmd/pinbar")
		cmd.Dir = ".."
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = fmt.Errorf("building pinbar: %v\n%s", err, out)
		}
	})
	if buildErr != nil {
		t.Fatal(buildErr)
	}
	return binPath
}

// session is one pinbar run attached to a PTY sized 24x80.
type session struct {
	cmd  *exec.Cmd
	ptmx *os.File

	mu  sync.Mutex
	out bytes.Buffer

	exitCh chan error
}

// startSession launches pinbar under a fresh PTY and begins capturing
// everything the child writes to it.
func startSession(t *testing.T, args ...string) *session {
	t.Helper()

	cmd := exec.Command(buildPinbar(t), args...)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("starting pinbar under pty: %v", err)
	}

	s := &session{
		cmd:    cmd,
		ptmx:   ptmx,
		exitCh: make(chan error, 1),
	}

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				s.mu.Lock()
				s.out.Write(buf[:n])
				s.mu.Unlock()
			}
			if err != nil {
				// EIO is the normal Linux signal that the child side closed.
				return
			}
		}
	}()

	go func() {
		s.exitCh <- cmd.Wait()
	}()

	return s
}

// output returns everything captured from the PTY so far.
func (s *session) output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

// expectString polls until the PTY output contains sub or the timeout
// elapses.
func (s *session) expectString(t *testing.T, sub string, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.output(), sub) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in output:\n%q", sub, s.output())
}

// waitExit waits for the child to exit, failing the test on timeout or
// a non-zero exit status.
func (s *session) waitExit(t *testing.T, timeout time.Duration) {
	t.Helper()

	select {
	case err := <-s.exitCh:
		if err != nil {
			t.Fatalf("pinbar exited with error: %v\noutput:\n%q", err, s.output())
		}
	case <-time.After(timeout):
		t.Fatalf("pinbar did not exit within %v\noutput:\n%q", timeout, s.output())
	}
}

// waitExitErr waits for the child to exit and returns its error, for
// tests that expect a non-zero status.
func (s *session) waitExitErr(t *testing.T, timeout time.Duration) error {
	t.Helper()

	select {
	case err := <-s.exitCh:
		return err
	case <-time.After(timeout):
		t.Fatalf("pinbar did not exit within %v\noutput:\n%q", timeout, s.output())
		return nil
	}
}

// interrupt delivers SIGINT to the child.
func (s *session) interrupt(t *testing.T) {
	t.Helper()

	if err := s.cmd.Process.Signal(syscall.SIGINT); err != nil {
		t.Fatalf("signaling pinbar: %v", err)
	}
}

func (s *session) close() {
	_ = s.cmd.Process.Kill()
	_ = s.ptmx.Close()
}
