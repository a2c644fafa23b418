package probe

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/backmassage/roisplit/internal/config"
)

// VolumeCount runs cfg.VolumeCounter (fslnvols) against path and returns
// the number of volumes it reports.
func VolumeCount(ctx context.Context, cfg *config.Config, path string) (int, error) {
	cmd := exec.CommandContext(ctx, cfg.VolumeCounter, path)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return 0, errors.Errorf("%s %q: %v: %s", cfg.VolumeCounter, path, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return 0, errors.Wrapf(err, "%s %q", cfg.VolumeCounter, path)
	}
	return ParseCount(out)
}

// ParseCount parses fslnvols output: a single non-negative integer,
// possibly surrounded by whitespace. Exported for testing without FSL.
func ParseCount(out []byte) (int, error) {
	s := strings.TrimSpace(string(out))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("parse volume count %q", s)
	}
	if n < 0 {
		return 0, errors.Errorf("negative volume count %d", n)
	}
	return n, nil
}
