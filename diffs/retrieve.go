package diffs

import (
	"sort"

	"github.com/interpretive-systems/contrast/internal/gitx"
	"github.com/interpretive-systems/contrast/internal/logging"
)

// Options tunes a retrieval. The zero value asks for no context lines; use
// DefaultOptions for git's defaults.
type Options struct {
	ContextLines     int
	IncludeUntracked bool
	DetectRenames    bool
}

// DefaultOptions is the uninstructed comparison: three context lines, no
// untracked files, no rename detection.
func DefaultOptions() Options {
	return Options{ContextLines: gitx.DefaultContextLines}
}

// Retriever runs the HEAD vs working tree pipeline. A Retriever holds no
// repository state between calls, so it may be shared between goroutines.
type Retriever struct {
	log      logging.Logger
	accessor *gitx.Accessor
}

// NewRetriever returns a Retriever; a nil log discards log output.
func NewRetriever(opts Options, log logging.Logger) *Retriever {
	if log == nil {
		log = logging.Nop()
	}
	return &Retriever{
		log: log,
		accessor: gitx.NewAccessor(gitx.Options{
			ContextLines:     opts.ContextLines,
			IncludeUntracked: opts.IncludeUntracked,
			DetectRenames:    opts.DetectRenames,
		}),
	}
}

// GetDiffs retrieves the diffs of the repository at path with DefaultOptions.
func GetDiffs(path string) ([]Diff, Stats, error) {
	return NewRetriever(DefaultOptions(), nil).GetDiffs(path)
}

// GetDiffs returns one Diff per changed file, sorted by file name, and their
// Stats. On failure it returns a *DiffParsingError and no diffs.
func (r *Retriever) GetDiffs(path string) ([]Diff, Stats, error) {
	deltas, err := r.accessor.OpenAndDiff(path)
	if err != nil {
		r.log.Warn("diff retrieval failed", "path", path, "error", err)
		return nil, Stats{}, &DiffParsingError{Path: path, Err: err}
	}

	diffs := make([]Diff, 0, len(deltas))
	for _, d := range deltas {
		diffs = append(diffs, fromDelta(d))
	}
	sort.SliceStable(diffs, func(i, j int) bool {
		return diffs[i].FileName < diffs[j].FileName
	})
	stats := Aggregate(diffs)

	r.log.Debug("diffs retrieved",
		"path", path,
		"files", stats.FilesChanged,
		"insertions", stats.Insertions,
		"deletions", stats.Deletions)
	return diffs, stats, nil
}
