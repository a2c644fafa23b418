// Package scratch manages the per-run directory the splitter writes into.
package scratch

import (
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const prefix = "roisplit-"

// Dir is a uniquely named scratch directory. Release it with a deferred
// [Dir.Release] so it is removed on every exit path.
type Dir struct {
	path   string
	keep   bool
	remove func(string) error
}

// New creates a scratch directory under base (os.TempDir() when empty).
// When keep is set, Release leaves the directory in place.
func New(base string, keep bool) (*Dir, error) {
	if base != "" {
		if err := os.MkdirAll(base, 0o755); err != nil {
			return nil, errors.Wrap(err, "create scratch parent")
		}
	}
	p, err := os.MkdirTemp(base, prefix)
	if err != nil {
		return nil, errors.Wrap(err, "create scratch directory")
	}
	return &Dir{path: p, keep: keep, remove: os.RemoveAll}, nil
}

// Path is the directory path.
func (d *Dir) Path() string { return d.path }

// Kept reports whether Release will leave the directory in place.
func (d *Dir) Kept() bool { return d.keep }

// Prefix is the output prefix handed to the splitter: the path with a
// trailing separator, so split files land inside the directory.
func (d *Dir) Prefix() string { return d.path + string(os.PathSeparator) }

// Release removes the directory and everything in it. It is safe to call
// more than once.
func (d *Dir) Release() error {
	if d == nil || d.keep || d.path == "" {
		return nil
	}
	if err := d.remove(d.path); err != nil {
		return errors.Wrapf(err, "remove scratch directory %s", d.path)
	}
	return nil
}

// ReleaseInto releases d and folds a release failure into *errp, keeping
// the original error first. Meant for use with defer:
//
//	defer scratch.ReleaseInto(dir, &err)
func ReleaseInto(d *Dir, errp *error) {
	rerr := d.Release()
	if rerr == nil {
		return
	}
	if *errp == nil {
		*errp = rerr
		return
	}
	*errp = multierror.Append(*errp, rerr)
}
