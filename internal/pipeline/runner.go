package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/backmassage/roisplit/internal/atlas"
	"github.com/backmassage/roisplit/internal/config"
	"github.com/backmassage/roisplit/internal/display"
	"github.com/backmassage/roisplit/internal/logging"
	"github.com/backmassage/roisplit/internal/naming"
	"github.com/backmassage/roisplit/internal/probe"
	"github.com/backmassage/roisplit/internal/scratch"
	"github.com/backmassage/roisplit/internal/splitter"
)

// maxOutputLines bounds how much captured splitter output is logged on failure.
const maxOutputLines = 20

// Run is the top-level entry point: read labels → split → move each
// labeled volume. Labels are processed in document order and the first
// error aborts the run.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (stats RunStats, err error) {
	md, err := atlas.ReadLabels(cfg.LabelsPath)
	if err != nil {
		return stats, err
	}
	stats.Labels = len(md.Labels)
	logHeader(cfg, log, md)

	if cfg.DryRun {
		err = dryRun(ctx, cfg, log, md.Labels, &stats)
		logSummary(cfg, log, &stats)
		return stats, err
	}

	dir, err := scratch.New(cfg.ScratchDir, cfg.KeepScratch)
	if err != nil {
		return stats, err
	}
	defer scratch.ReleaseInto(dir, &err)
	if dir.Kept() {
		log.Warn("Keeping scratch directory: %s", dir.Path())
	} else {
		log.Debug(cfg.Verbose, "Scratch directory: %s", dir.Path())
	}

	if err := split(ctx, cfg, log, dir); err != nil {
		return stats, err
	}

	vols, err := splitter.Volumes(dir.Path(), cfg.Extension)
	if err != nil {
		return stats, err
	}
	stats.Volumes = len(vols)
	log.Info("Split into %d volume(s)", stats.Volumes)

	resolver := naming.NewCollisionResolver(cfg.OutputDir, cfg.OnCollision)
	for i, label := range md.Labels {
		if ctx.Err() != nil {
			return stats, errors.Wrap(ctx.Err(), "interrupted")
		}
		if err := moveLabel(cfg, log, dir, resolver, label, i, &stats); err != nil {
			return stats, err
		}
	}

	logSummary(cfg, log, &stats)
	return stats, nil
}

// split runs the splitter into dir. A splitter that cannot start is always
// an error; a non-zero exit is one unless IgnoreSplitStatus is set, in which
// case missing volumes surface later as MissingOutputError.
func split(ctx context.Context, cfg *config.Config, log *logging.Logger, dir *scratch.Dir) error {
	log.Info("Splitting %s", filepath.Base(cfg.AtlasPath))
	result := splitter.Execute(ctx, cfg, cfg.AtlasPath, dir.Prefix())
	log.Debug(cfg.Verbose, "Ran: %s (exit %d)", strings.Join(result.Args, " "), result.ExitCode)

	err := result.Check()
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), "interrupted")
	}
	var exitErr *splitter.ExitError
	if !errors.As(err, &exitErr) {
		return err
	}
	if cfg.IgnoreSplitStatus {
		log.Warn("Splitter exited with status %d; continuing (--ignore-split-status)", exitErr.ExitCode)
		logOutput(log.Warn, exitErr.Output())
		return nil
	}
	logOutput(log.Error, exitErr.Output())
	return err
}

// moveLabel moves the split volume for one label into the output directory.
func moveLabel(
	cfg *config.Config,
	log *logging.Logger,
	dir *scratch.Dir,
	resolver *naming.CollisionResolver,
	label atlas.Label,
	i int,
	stats *RunStats,
) error {
	splitName := naming.SplitName(label.Index, cfg.Extension)
	src := filepath.Join(dir.Path(), splitName)

	fi, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.WithStack(&MissingOutputError{Index: label.Index, Label: label.Text, Path: src})
		}
		return errors.WithStack(err)
	}

	res, err := resolver.Resolve(label.Index, label.Text, cfg.Extension)
	if err != nil {
		return err
	}
	if res.Replaces {
		log.Warn("Overwriting existing %s", res.Name)
	}

	if err := moveFile(src, filepath.Join(cfg.OutputDir, res.Name)); err != nil {
		return err
	}
	stats.Moved++
	stats.Bytes += fi.Size()
	log.Info("[%d/%d] %s -> %s", i+1, stats.Labels, splitName, res.Name)
	return nil
}

// dryRun reports the planned renames using the volume count from fslnvols.
// Nothing is split or moved.
func dryRun(ctx context.Context, cfg *config.Config, log *logging.Logger, labels []atlas.Label, stats *RunStats) error {
	n, err := probe.VolumeCount(ctx, cfg, cfg.AtlasPath)
	if err != nil {
		return err
	}
	stats.Volumes = n
	log.Info("Atlas has %d volume(s)", n)

	resolver := naming.NewCollisionResolver(cfg.OutputDir, cfg.OnCollision)
	for i, label := range labels {
		splitName := naming.SplitName(label.Index, cfg.Extension)
		if label.Index >= n {
			stats.Missing++
			log.Warn("[DRY] [%d/%d] %s: no such volume; a real run stops here", i+1, len(labels), splitName)
			continue
		}
		res, err := resolver.Resolve(label.Index, label.Text, cfg.Extension)
		if err != nil {
			log.Warn("[DRY] [%d/%d] %s: %v", i+1, len(labels), splitName, err)
			continue
		}
		suffix := ""
		if res.Replaces {
			suffix = " (overwrites)"
		}
		log.Success("[DRY] [%d/%d] %s -> %s%s", i+1, len(labels), splitName, res.Name, suffix)
	}
	return nil
}

func logHeader(cfg *config.Config, log *logging.Logger, md *atlas.Metadata) {
	if md.Header.Name != "" {
		log.Info("Atlas: %s", md.Header.Name)
	}
	log.Info("Labels: %d from %s", len(md.Labels), cfg.LabelsPath)
	log.Info("Out:    %s", cfg.OutputDir)
	if cfg.DryRun {
		log.Warn("DRY RUN: nothing will be split or moved")
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	if cfg.DryRun {
		log.Info("Planned %d of %d label(s); %d without a volume", stats.Labels-stats.Missing, stats.Labels, stats.Missing)
		return
	}
	log.Success("Moved %d ROI volume(s) (%s) into %s", stats.Moved, display.FormatBytes(stats.Bytes), cfg.OutputDir)
	if n := stats.Unlabeled(); n > 0 {
		log.Debug(cfg.Verbose, "%d split volume(s) had no label and were discarded", n)
	}
}

// logOutput logs the last lines of captured tool output.
func logOutput(logf func(string, ...interface{}), out string) {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) > maxOutputLines {
		lines = lines[len(lines)-maxOutputLines:]
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		logf("  | %s", line)
	}
}
