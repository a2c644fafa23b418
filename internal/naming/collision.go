package naming

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/backmassage/roisplit/internal/config"
)

// CollisionError reports an output file that already exists under the
// "error" collision policy.
type CollisionError struct {
	Path string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("output file already exists: %s", e.Path)
}

// Resolution is the outcome of resolving one output name.
type Resolution struct {
	Name     string // File name inside the destination directory.
	Replaces bool   // Name exists and will be overwritten.
}

// CollisionResolver decides the final output name for a label when the
// destination already holds a file of that name, typically from an earlier
// run. Label indices are unique, so names cannot collide within one run.
type CollisionResolver struct {
	dir    string
	policy config.CollisionPolicy
	exists func(path string) bool
}

// NewCollisionResolver creates a resolver for files moved into dir.
func NewCollisionResolver(dir string, policy config.CollisionPolicy) *CollisionResolver {
	return &CollisionResolver{dir: dir, policy: policy, exists: fileExists}
}

// Resolve returns the output name for (index, text, ext) under the
// resolver's policy:
//
//	overwrite: the canonical name, Replaces set when it exists
//	error:     *CollisionError when the canonical name exists
//	suffix:    "<index>_<slug>-N.<ext>" with the smallest free N >= 2
func (cr *CollisionResolver) Resolve(index int, text, ext string) (Resolution, error) {
	slug := Slugify(text)
	name := outputName(index, slug, ext)
	if !cr.exists(filepath.Join(cr.dir, name)) {
		return Resolution{Name: name}, nil
	}

	switch cr.policy {
	case config.CollisionError:
		return Resolution{}, errors.WithStack(&CollisionError{Path: filepath.Join(cr.dir, name)})
	case config.CollisionSuffix:
		for n := 2; ; n++ {
			candidate := outputName(index, fmt.Sprintf("%s-%d", slug, n), ext)
			if !cr.exists(filepath.Join(cr.dir, candidate)) {
				return Resolution{Name: candidate}, nil
			}
		}
	default:
		return Resolution{Name: name, Replaces: true}, nil
	}
}

func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
