package diffs

import "fmt"

// Aggregate sums a set of diffs. Every diff counts as a changed file, even
// one without lines (binary or mode-only changes).
func Aggregate(diffs []Diff) Stats {
	s := Stats{FilesChanged: len(diffs)}
	for _, d := range diffs {
		s.Insertions += d.Insertions()
		s.Deletions += d.Deletions()
	}
	return s
}

// String renders the summary the way git's shortstat does.
func (s Stats) String() string {
	return fmt.Sprintf("%d %s changed, %d %s(+), %d %s(-)",
		s.FilesChanged, plural(s.FilesChanged, "file", "files"),
		s.Insertions, plural(s.Insertions, "insertion", "insertions"),
		s.Deletions, plural(s.Deletions, "deletion", "deletions"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
