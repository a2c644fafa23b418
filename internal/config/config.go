// Package config holds runtime configuration: defaults, CLI flag parsing, the
// optional YAML config file, FSL environment resolution and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// --- Enum types for validated string fields ---

// CollisionPolicy decides what happens when an output name already exists in
// the output directory, left there by an earlier run. Label indices are
// unique, so one run never produces the same name twice.
type CollisionPolicy string

const (
	CollisionOverwrite CollisionPolicy = "overwrite" // Replace the existing file (default).
	CollisionError     CollisionPolicy = "error"     // Abort the run.
	CollisionSuffix    CollisionPolicy = "suffix"    // Append -2, -3, ... to the slug.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultSplitter is the splitter looked up on PATH when neither --splitter
// nor FSLDIR point somewhere else.
const DefaultSplitter = "fslsplit"

// DefaultExtension is used when FSLOUTPUTTYPE is unset.
const DefaultExtension = "nii.gz"

// Config holds all runtime settings. It is populated by [DefaultConfig], then
// by [Parse], and passed by pointer to the packages that need it.
type Config struct {
	// Paths (set from positional args).
	AtlasPath  string
	LabelsPath string
	OutputDir  string

	// Splitter settings.
	Splitter          string // Resolved by Resolve: --splitter, $FSLDIR/bin/fslsplit, "fslsplit".
	VolumeCounter     string // fslnvols, resolved next to the splitter.
	Extension         string // Split file extension without leading dot.
	ScratchDir        string // Parent of the scratch dir; empty means os.TempDir().
	IgnoreSplitStatus bool   // Legacy: do not fail on a non-zero splitter exit.

	// Behavior.
	OnCollision CollisionPolicy // Default: "overwrite".
	KeepScratch bool
	DryRun      bool

	// Display and logging.
	Debug     bool
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string
	CheckOnly bool

	// ConfigFile is the YAML file the values above were partly read from, if any.
	ConfigFile string
}

// DefaultConfig returns a Config with all defaults. Extension and Splitter are
// left empty so [Config.Resolve] can fill them from the FSL environment.
func DefaultConfig() Config {
	return Config{
		OnCollision: CollisionOverwrite,
		ColorMode:   ColorAuto,
	}
}

// ArgumentError reports a missing or malformed command-line argument or
// configuration value.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return e.Msg }

func argErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&ArgumentError{Msg: fmt.Sprintf(format, args...)})
}

// Resolve fills values that depend on the environment: the splitter binary
// from FSLDIR and the extension from FSLOUTPUTTYPE. getenv is os.Getenv in
// production.
func (c *Config) Resolve(getenv func(string) string) error {
	fslDir := getenv("FSLDIR")
	if c.Splitter == "" {
		c.Splitter = fslBinary(fslDir, DefaultSplitter)
	}
	if c.VolumeCounter == "" {
		if strings.ContainsRune(c.Splitter, filepath.Separator) {
			c.VolumeCounter = filepath.Join(filepath.Dir(c.Splitter), "fslnvols")
		} else {
			c.VolumeCounter = fslBinary(fslDir, "fslnvols")
		}
	}
	if c.Extension == "" {
		ext, err := ExtensionForOutputType(getenv("FSLOUTPUTTYPE"))
		if err != nil {
			return err
		}
		c.Extension = ext
	}
	c.Extension = strings.TrimPrefix(c.Extension, ".")
	return nil
}

// fslBinary returns $FSLDIR/bin/name when it exists, otherwise the bare name
// for a PATH lookup.
func fslBinary(fslDir, name string) string {
	if fslDir == "" {
		return name
	}
	p := filepath.Join(fslDir, "bin", name)
	if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
		return p
	}
	return name
}

// ExtensionForOutputType maps an FSLOUTPUTTYPE value to the extension
// fslsplit writes. An empty value yields [DefaultExtension].
func ExtensionForOutputType(outputType string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(outputType)) {
	case "", "NIFTI_GZ", "NIFTI2_GZ":
		return DefaultExtension, nil
	case "NIFTI", "NIFTI2":
		return "nii", nil
	default:
		return "", argErrorf("unsupported FSLOUTPUTTYPE %q (set --ext explicitly)", outputType)
	}
}

// Validate checks enum fields and, unless in CheckOnly mode, that all three
// positional paths are present and that the output directory exists.
func (c *Config) Validate() error {
	switch c.OnCollision {
	case CollisionOverwrite, CollisionError, CollisionSuffix:
		// valid
	default:
		return argErrorf("invalid collision policy %q (use 'overwrite', 'error' or 'suffix')", c.OnCollision)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return argErrorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.Extension == "" || strings.ContainsRune(c.Extension, filepath.Separator) {
		return argErrorf("invalid extension %q", c.Extension)
	}

	if c.CheckOnly {
		return nil
	}
	if c.AtlasPath == "" || c.LabelsPath == "" || c.OutputDir == "" {
		return argErrorf("need exactly <atlas> <labels.xml> <outdir>")
	}
	fi, err := os.Stat(c.OutputDir)
	if err != nil {
		return argErrorf("output directory %s: %v", c.OutputDir, err)
	}
	if !fi.IsDir() {
		return argErrorf("output path %s is not a directory", c.OutputDir)
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}
