// Package check provides system diagnostics (--check mode) and the
// pre-run dependency validation (CheckDeps) for the FSL tools.
package check

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/backmassage/roisplit/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrSplitterNotFound = errors.New("volume splitter not found (install FSL, set FSLDIR, or pass --splitter)")
	ErrCounterNotFound  = errors.New("fslnvols not found (needed for --dry-run)")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck logs the resolved FSL environment and tool availability.
// It returns false when the splitter is unusable.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	if dir := os.Getenv("FSLDIR"); dir != "" {
		log.Info("FSLDIR: %s", dir)
	} else {
		log.Warn("FSLDIR is not set")
	}
	if ot := os.Getenv("FSLOUTPUTTYPE"); ot != "" {
		log.Info("FSLOUTPUTTYPE: %s (split files: .%s)", ot, cfg.Extension)
	} else {
		log.Info("FSLOUTPUTTYPE unset (split files: .%s)", cfg.Extension)
	}
	if cfg.ConfigFile != "" {
		log.Info("Config file: %s", cfg.ConfigFile)
	}

	ok := true
	if path, err := exec.LookPath(cfg.Splitter); err != nil {
		log.Error("Splitter not found: %s", cfg.Splitter)
		ok = false
	} else {
		log.Success("Splitter: %s", path)
	}
	if path, err := exec.LookPath(cfg.VolumeCounter); err != nil {
		log.Warn("fslnvols not found: %s (--dry-run unavailable)", cfg.VolumeCounter)
	} else {
		log.Success("Volume counter: %s", path)
	}
	return ok
}

// CheckDeps is the pre-run validation: the splitter must resolve to an
// executable, and in dry-run mode so must the volume counter.
func CheckDeps(cfg *config.Config) error {
	if cfg.DryRun {
		if _, err := exec.LookPath(cfg.VolumeCounter); err != nil {
			return errors.Wrap(ErrCounterNotFound, cfg.VolumeCounter)
		}
		return nil
	}
	if _, err := exec.LookPath(cfg.Splitter); err != nil {
		return errors.Wrap(ErrSplitterNotFound, cfg.Splitter)
	}
	return nil
}
