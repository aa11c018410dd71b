// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --steps, --delay, --workers, --fill, --empty, --verbose, --version

package main

import (
	"flag"
	"time"
)

type cliArgs struct {
	steps   int
	delay   time.Duration
	workers int
	fill    string
	empty   string
	verbose bool
	version bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.IntVar(&args.steps, "steps", 0, "Number of work units to simulate (default 100)")
	flag.DurationVar(&args.delay, "delay", 0, "Delay per work unit (default 50ms)")
	flag.IntVar(&args.workers, "workers", 0, "Concurrent workers (default 4)")
	flag.StringVar(&args.fill, "fill", "", "Bar fill character (default '#')")
	flag.StringVar(&args.empty, "empty", "", "Bar remainder character (default '.')")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging on stderr")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}
