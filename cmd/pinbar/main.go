// ABOUTME: Demo CLI entry point: simulated parallel workload under a pinned progress bar
// ABOUTME: Parses flags, merges config, guarantees terminal teardown on interrupt

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/pinbar/internal/config"
	pblog "github.com/mauromedda/pinbar/internal/log"
	"github.com/mauromedda/pinbar/pkg/progress"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	defaultSteps   = 100
	defaultDelay   = 50 * time.Millisecond
	defaultWorkers = 4

	// renderInterval paces the bar repaint independently of task pace.
	renderInterval = 50 * time.Millisecond
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("pinbar %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run merges flags over config, sets up the controller with guaranteed
// teardown, and drives the simulated workload.
func run(args cliArgs) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	settings, err := config.Load(cwd)
	if err != nil {
		return err
	}

	steps := firstNonZero(args.steps, settings.Steps, defaultSteps)
	workers := firstNonZero(args.workers, settings.Workers, defaultWorkers)
	delay := args.delay
	if delay == 0 {
		delay = time.Duration(settings.DelayMS) * time.Millisecond
	}
	if delay == 0 {
		delay = defaultDelay
	}

	if args.verbose || settings.Verbose {
		pblog.SetLevel(pblog.LevelDebug)
	}

	fill := pickRune(args.fill, settings.Fill, progress.DefaultFill)
	empty := pickRune(args.empty, settings.Empty, progress.DefaultEmpty)

	c := progress.New(progress.WithBarStyle(fill, empty))
	defer c.Close()

	c.Init()
	// Deinit must run on every exit path; the signal branch below
	// returns through this defer as well.
	defer c.Deinit()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	pblog.Debug("starting %d steps across %d workers, %s per step", steps, workers, delay)

	var done atomic.Int64
	g, ctx := errgroup.WithContext(context.Background())

	tasks := make(chan int)
	g.Go(func() error {
		defer close(tasks)
		for i := 1; i <= steps; i++ {
			select {
			case tasks <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for task := range tasks {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(delay):
				}
				done.Add(1)
				// Normal program output: scrolls above the pinned bar.
				fmt.Printf("completed work unit %d\n", task)
				pblog.Debug("work unit %d finished", task)
			}
			return nil
		})
	}

	// All terminal calls stay on this goroutine; the library does not
	// synchronize concurrent renders.
	ticker := time.NewTicker(renderInterval)
	defer ticker.Stop()

	for {
		select {
		case sig := <-sigCh:
			return fmt.Errorf("interrupted by %v", sig)
		case <-ticker.C:
			n := int(done.Load())
			c.Render(n, steps)
			if n >= steps {
				if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				c.Render(steps, steps)
				return nil
			}
		}
	}
}

// firstNonZero returns the first non-zero value.
func firstNonZero(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

// pickRune returns the first rune of the flag value, else of the config
// value, else the fallback.
func pickRune(flagVal, cfgVal string, fallback rune) rune {
	if flagVal != "" {
		r, _ := utf8.DecodeRuneInString(flagVal)
		return r
	}
	if cfgVal != "" {
		r, _ := utf8.DecodeRuneInString(cfgVal)
		return r
	}
	return fallback
}
