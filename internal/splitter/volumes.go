package splitter

import (
	"os"
	"regexp"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// Volumes returns the indices of the split files present in dir, sorted
// ascending. Only names of the form "<4+ digits>.<ext>" count.
func Volumes(dir, ext string) ([]int, error) {
	re := regexp.MustCompile(`^([0-9]{4,})\.` + regexp.QuoteMeta(ext) + `$`)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "list split volumes")
	}
	var out []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}
