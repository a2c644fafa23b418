package splitter

import (
	"fmt"
	"regexp"
	"strings"
)

// ExitError reports a splitter that ran but failed. The captured output is
// attached for diagnostics.
type ExitError struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Args[0], e.ExitCode)
	if out := lastLine(e.Stderr); out != "" {
		msg += ": " + out
	}
	if hint := Hint(e.Stderr); hint != "" {
		msg += " (" + hint + ")"
	}
	return msg
}

func (e *ExitError) Unwrap() error { return e.Err }

// Output is the captured stderr, falling back to stdout when stderr is empty.
func (e *ExitError) Output() string {
	if strings.TrimSpace(e.Stderr) != "" {
		return e.Stderr
	}
	return e.Stdout
}

// StartError reports a splitter that could not be started (not found, not
// executable).
type StartError struct {
	Args []string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("run %s: %v", e.Args[0], e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// Pre-compiled patterns for classifying fslsplit stderr.
var (
	reUnreadableImage = regexp.MustCompile(
		`(?i)Image Exception|could not open|failed to read|no image files match`)

	reWriteFailure = regexp.MustCompile(
		`(?i)failed to write|could not write|no space left|permission denied`)
)

// Hint returns a short human explanation for known splitter failures, or
// the empty string.
func Hint(stderr string) string {
	switch {
	case reUnreadableImage.MatchString(stderr):
		return "atlas image could not be read"
	case reWriteFailure.MatchString(stderr):
		return "split volumes could not be written"
	default:
		return ""
	}
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
