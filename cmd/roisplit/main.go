// Command roisplit splits a 4D probabilistic atlas into one file per labeled
// region, named after the region.
//
// It parses flags, validates configuration and paths, and either runs
// system diagnostics (--check) or the split/rename pipeline.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/backmassage/roisplit/internal/check"
	"github.com/backmassage/roisplit/internal/config"
	"github.com/backmassage/roisplit/internal/display"
	"github.com/backmassage/roisplit/internal/logging"
	"github.com/backmassage/roisplit/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Bootstrap: no logger yet, so problems go straight to stderr.
	cfg := config.DefaultConfig()
	if err := config.Parse(&cfg, args, version, stdout); err != nil {
		return usageError(stderr, err)
	}
	if err := cfg.Validate(); err != nil {
		return usageError(stderr, err)
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(stderr, "roisplit: %v\n", err)
		return exitError
	}
	defer log.Close()

	display.PrintBanner(stdout)

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return exitError
		}
		return exitOK
	}

	log.Info("=== roisplit v%s (%s) ===", version, commit)
	log.Debug(cfg.Verbose, "Run id: %s", log.RunID())

	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		return exitError
	}

	// Cancel on SIGINT/SIGTERM: the splitter is killed and the scratch
	// directory is still removed.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping…")
			cancel()
		case <-ctx.Done():
		}
	}()

	if _, err := pipeline.Run(ctx, &cfg, log); err != nil {
		if cfg.Debug {
			log.Error("%+v", err)
		} else {
			log.Error("%v", err)
		}
		return exitError
	}
	return exitOK
}

// usageError reports a bootstrap failure. Help and version requests exit 0;
// bad arguments exit 2 like other Unix tools.
func usageError(stderr io.Writer, err error) int {
	if errors.Is(err, config.ErrHelp) {
		return exitOK
	}
	fmt.Fprintf(stderr, "roisplit: %v\n", err)
	var aerr *config.ArgumentError
	if errors.As(err, &aerr) {
		fmt.Fprintln(stderr, "Try 'roisplit --help' for more information.")
		return exitUsage
	}
	return exitError
}
