package config

// This file implements CLI parsing with go-flags. Options that the user did
// not pass leave the Config untouched, so values from the YAML config file
// and DefaultConfig hold unless overridden. go-flags itself applies the env
// fallbacks declared in the struct tags.

import (
	"fmt"
	"io"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// ErrHelp is returned by [Parse] after --help or --version output was
// written. Callers should exit successfully.
var ErrHelp = errors.New("help requested")

// options mirrors the command line. Bools are only ever applied when true.
type options struct {
	ConfigFile        string `short:"c" long:"config" env:"ROISPLIT_CONFIG" value-name:"FILE" description:"YAML config file"`
	Splitter          string `long:"splitter" env:"ROISPLIT_SPLITTER" value-name:"PATH" description:"Volume splitter binary (default: $FSLDIR/bin/fslsplit or fslsplit on PATH)"`
	Extension         string `long:"ext" value-name:"EXT" description:"Extension of split files (default: from FSLOUTPUTTYPE, else nii.gz)"`
	ScratchDir        string `long:"scratch-dir" env:"ROISPLIT_SCRATCH_DIR" value-name:"DIR" description:"Parent directory for the scratch directory"`
	OnCollision       string `long:"on-collision" choice:"overwrite" choice:"error" choice:"suffix" description:"What to do when an output file already exists from an earlier run"`
	IgnoreSplitStatus bool   `long:"ignore-split-status" description:"Do not fail when the splitter exits non-zero (legacy behavior)"`
	KeepScratch       bool   `long:"keep-scratch" description:"Keep the scratch directory after the run"`
	DryRun            bool   `short:"n" long:"dry-run" description:"Show planned renames; do not split or move"`
	Debug             bool   `short:"d" long:"debug" description:"Debug logging and stack traces on failure"`
	Verbose           bool   `short:"v" long:"verbose" description:"Show splitter output"`
	Color             bool   `long:"color" description:"Force colored logs"`
	NoColor           bool   `long:"no-color" description:"Disable colored logs"`
	LogFile           string `short:"l" long:"log" value-name:"FILE" description:"Append logs to file"`
	Check             bool   `long:"check" description:"Run diagnostics and exit"`
	Version           bool   `short:"V" long:"version" description:"Print version and exit"`

	Args struct {
		Atlas  string `positional-arg-name:"atlas" description:"Atlas volume file; regions are stored as volumes"`
		Labels string `positional-arg-name:"labels.xml" description:"Atlas XML with <data><label index=\"N\">"`
		OutDir string `positional-arg-name:"outdir" description:"Existing output directory"`
		Rest   []string
	} `positional-args:"yes"`
}

// Parse parses args (without the program name) into cfg. Precedence is
// flags > env > config file > defaults. Help and version output go to stdout
// and yield [ErrHelp]; any other problem is an [ArgumentError].
func Parse(cfg *Config, args []string, version string, stdout io.Writer) error {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "roisplit"
	parser.Usage = "[OPTIONS] <atlas> <labels.xml> <outdir>"
	parser.ShortDescription = "Split an atlas into one file per labeled region"

	if _, err := parser.ParseArgs(args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, ferr.Message)
			return ErrHelp
		}
		return argErrorf("%v", err)
	}

	if opts.Version {
		fmt.Fprintln(stdout, "roisplit v"+version)
		return ErrHelp
	}
	if len(opts.Args.Rest) > 0 {
		return argErrorf("unexpected arguments: %v", opts.Args.Rest)
	}

	if opts.ConfigFile != "" {
		if err := LoadFile(cfg, opts.ConfigFile); err != nil {
			return err
		}
	}
	applyOptions(cfg, &opts)
	return cfg.Resolve(os.Getenv)
}

// applyOptions copies set options into cfg.
func applyOptions(cfg *Config, o *options) {
	setString(&cfg.Splitter, o.Splitter)
	setString(&cfg.Extension, o.Extension)
	setString(&cfg.ScratchDir, o.ScratchDir)
	setString(&cfg.LogFile, o.LogFile)
	if o.OnCollision != "" {
		cfg.OnCollision = CollisionPolicy(o.OnCollision)
	}

	cfg.IgnoreSplitStatus = cfg.IgnoreSplitStatus || o.IgnoreSplitStatus
	cfg.KeepScratch = cfg.KeepScratch || o.KeepScratch
	cfg.DryRun = o.DryRun
	cfg.Debug = o.Debug
	cfg.Verbose = o.Verbose || o.Debug
	cfg.CheckOnly = o.Check

	if o.NoColor {
		cfg.ColorMode = ColorNever
	} else if o.Color {
		cfg.ColorMode = ColorAlways
	}

	cfg.AtlasPath = o.Args.Atlas
	cfg.LabelsPath = o.Args.Labels
	cfg.OutputDir = NormalizeDirArg(o.Args.OutDir)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
