// Package fsltest provides fake FSL tools for tests. The fake atlas is a
// text file holding its volume count; the fake fslsplit writes one small
// file per volume and the fake fslnvols prints the count.
package fsltest

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
)

const splitScript = `#!/bin/sh
# usage: fslsplit <input> <prefix>
n=$(cat "$1") || exit 1
i=0
while [ "$i" -lt "$n" ]; do
	printf 'volume %d' "$i" > "$2$(printf '%04d' "$i").${FAKE_FSL_EXT:-nii.gz}"
	i=$((i + 1))
done
echo "split $n volumes"
`

const failScript = `#!/bin/sh
echo "Image Exception : #22 :: Failed to read volume $1" >&2
exit 1
`

const countScript = `#!/bin/sh
cat "$1" || exit 1
`

// Splitter writes a working fake fslsplit into dir and returns its path.
// Tests are skipped where /bin/sh scripts cannot run.
func Splitter(t *testing.T, dir string) string {
	t.Helper()
	return script(t, dir, "fslsplit", splitScript)
}

// FailingSplitter writes a fake fslsplit that fails like a corrupt input.
func FailingSplitter(t *testing.T, dir string) string {
	t.Helper()
	return script(t, dir, "fslsplit", failScript)
}

// Counter writes a fake fslnvols into dir and returns its path.
func Counter(t *testing.T, dir string) string {
	t.Helper()
	return script(t, dir, "fslnvols", countScript)
}

// Atlas writes a fake atlas with n volumes and returns its path.
func Atlas(t *testing.T, dir string, n int) string {
	t.Helper()
	path := filepath.Join(dir, "atlas.nii.gz")
	if err := os.WriteFile(path, []byte(strconv.Itoa(n)+"\n"), 0o644); err != nil {
		t.Fatalf("write atlas: %v", err)
	}
	return path
}

// Labels writes an atlas XML document with the given data section body and
// returns its path.
func Labels(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "atlas.xml")
	doc := `<?xml version="1.0" encoding="ISO-8859-1"?>` + "\n<atlas version=\"1.0\">\n" +
		"<header><name>Test Atlas</name><type>Probabilistic</type></header>\n" +
		"<data>\n" + body + "</data>\n</atlas>\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write labels: %v", err)
	}
	return path
}

func script(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
