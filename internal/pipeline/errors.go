package pipeline

import "fmt"

// MissingOutputError reports a label whose split volume file does not exist
// after splitting. It aborts the run; earlier labels stay moved.
type MissingOutputError struct {
	Index int
	Label string
	Path  string
}

func (e *MissingOutputError) Error() string {
	return fmt.Sprintf("no split volume for label %d (%q): %s does not exist", e.Index, e.Label, e.Path)
}
