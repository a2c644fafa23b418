package pipeline

// RunStats tracks counters across a run.
type RunStats struct {
	Labels  int   // Labels read from the metadata file.
	Volumes int   // Volumes split (or, in dry-run, reported by fslnvols).
	Moved   int   // Files moved into the output directory.
	Missing int   // Dry-run only: labels with no matching volume.
	Bytes   int64 // Total size of moved files.
}

// Unlabeled returns how many volumes no label asked for. Never negative.
func (s *RunStats) Unlabeled() int {
	if n := s.Volumes - s.Labels; n > 0 {
		return n
	}
	return 0
}
