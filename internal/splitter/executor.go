package splitter

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/backmassage/roisplit/internal/config"
)

// Result holds the outcome of a single splitter invocation.
type Result struct {
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int // -1 when the process did not exit normally or never started.
	Err      error
}

// Execute builds and runs the splitter synchronously. Both output streams
// are captured; in verbose mode they are also tee'd to the terminal.
// The exit status is not interpreted here; see [Result.Check].
func Execute(ctx context.Context, cfg *config.Config, atlasPath, prefix string) Result {
	args := Build(cfg, atlasPath, prefix)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stdoutBuf, stderrBuf bytes.Buffer
	if cfg.Verbose {
		cmd.Stdout = io.MultiWriter(&stdoutBuf, os.Stdout)
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	code := -1
	if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
	}
	return Result{
		Args:     args,
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		ExitCode: code,
		Err:      err,
	}
}

// Check converts a failed run into an error: *ExitError when the splitter
// ran and exited non-zero (or was killed), *StartError when it could not be
// started at all. A successful run returns nil.
func (r Result) Check() error {
	if r.Err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(r.Err, &exitErr) {
		return errors.WithStack(&ExitError{
			Args:     r.Args,
			ExitCode: r.ExitCode,
			Stdout:   r.Stdout,
			Stderr:   r.Stderr,
			Err:      r.Err,
		})
	}
	return errors.WithStack(&StartError{Args: r.Args, Err: r.Err})
}
