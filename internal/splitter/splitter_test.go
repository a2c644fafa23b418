package splitter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/roisplit/internal/config"
	"github.com/backmassage/roisplit/internal/fsltest"
)

func TestBuild(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Splitter = "/opt/fsl/bin/fslsplit"
	args := Build(&cfg, "atlas.nii.gz", "/tmp/roisplit-1/")
	assert.Equal(t, []string{"/opt/fsl/bin/fslsplit", "atlas.nii.gz", "/tmp/roisplit-1/"}, args)
}

func TestExecute_Success(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Splitter = fsltest.Splitter(t, dir)
	atlasPath := fsltest.Atlas(t, dir, 3)

	res := Execute(context.Background(), &cfg, atlasPath, out+string(os.PathSeparator))
	require.NoError(t, res.Check())
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "split 3 volumes")

	vols, err := Volumes(out, "nii.gz")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, vols)
}

func TestExecute_NonZeroExit(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Splitter = fsltest.FailingSplitter(t, dir)

	res := Execute(context.Background(), &cfg, "broken.nii.gz", t.TempDir()+"/")
	assert.Equal(t, 1, res.ExitCode)

	err := res.Check()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "want ExitError, got %T", err)
	assert.Equal(t, 1, exitErr.ExitCode)
	assert.Contains(t, exitErr.Output(), "Image Exception")
	assert.Contains(t, err.Error(), "exited with status 1")
	assert.Contains(t, err.Error(), "atlas image could not be read")
}

func TestExecute_NotFound(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Splitter = filepath.Join(t.TempDir(), "no-such-fslsplit")

	res := Execute(context.Background(), &cfg, "atlas.nii.gz", t.TempDir()+"/")
	assert.Equal(t, -1, res.ExitCode)

	err := res.Check()
	var startErr *StartError
	require.True(t, errors.As(err, &startErr), "want StartError, got %T", err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExecute_Cancelled(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Splitter = fsltest.Splitter(t, dir)
	atlasPath := fsltest.Atlas(t, dir, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Execute(ctx, &cfg, atlasPath, t.TempDir()+"/")
	assert.Error(t, res.Check())
}

func TestHint(t *testing.T) {
	tests := []struct {
		stderr string
		want   string
	}{
		{"Image Exception : #22 :: Failed to read volume x", "atlas image could not be read"},
		{"ERROR: could not open image atlas", "atlas image could not be read"},
		{"Error: failed to write /tmp/x/0000.nii.gz", "split volumes could not be written"},
		{"No space left on device", "split volumes could not be written"},
		{"segfault", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Hint(tt.stderr), tt.stderr)
	}
}

func TestVolumes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002.nii.gz", "0000.nii.gz", "10000.nii.gz", "0001.nii", "x0003.nii.gz", "004.nii.gz", "0005.nii.gz.tmp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "0006.nii.gz"), 0o755))

	vols, err := Volumes(dir, "nii.gz")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 10000}, vols)

	vols, err = Volumes(dir, "nii")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, vols)

	_, err = Volumes(filepath.Join(dir, "missing"), "nii.gz")
	assert.Error(t, err)
}

func TestExitError_OutputFallsBackToStdout(t *testing.T) {
	e := &ExitError{Args: []string{"fslsplit"}, ExitCode: 2, Stdout: "usage: fslsplit"}
	assert.Equal(t, "usage: fslsplit", e.Output())
	assert.Equal(t, "fslsplit exited with status 2", e.Error())
}
