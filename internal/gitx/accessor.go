package gitx

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultContextLines matches git's default unified context.
const DefaultContextLines = 3

// Options tunes the comparison.
type Options struct {
	ContextLines     int
	IncludeUntracked bool
	DetectRenames    bool
}

// DefaultOptions returns the uninstructed comparison: three context lines,
// no untracked files and no rename detection.
func DefaultOptions() Options {
	return Options{ContextLines: DefaultContextLines}
}

// Accessor produces the raw HEAD vs working tree comparison.
type Accessor struct {
	Options Options
	Runner  GitRunner // if nil, uses the real git subprocess
}

// NewAccessor returns an Accessor using the git binary.
func NewAccessor(opts Options) *Accessor {
	return &Accessor{Options: opts}
}

// OpenAndDiff opens the repository at path and returns one raw delta per
// changed file. Nothing in the repository or work tree is modified.
func (a *Accessor) OpenAndDiff(path string) ([]RawFileDelta, error) {
	repo, err := Open(path)
	if err != nil {
		return nil, err
	}
	return a.Diff(repo)
}

// Diff compares the HEAD tree of an opened repository with its work tree.
func (a *Accessor) Diff(repo *Repository) ([]RawFileDelta, error) {
	run := a.Runner
	if run == nil {
		run = defaultGitRunner
	}

	args := a.diffArgs(repo.Head.String())
	out, err := run(repo.Root, args...)
	if err != nil {
		return nil, gitError(args, err)
	}
	deltas, err := ParseUnified(strings.NewReader(out))
	if err != nil {
		return nil, err
	}

	if !a.Options.IncludeUntracked {
		return deltas, nil
	}
	untracked, err := a.untracked(run, repo.Root)
	if err != nil {
		return nil, err
	}
	return append(deltas, untracked...), nil
}

func (a *Accessor) baseArgs() []string {
	ctx := a.Options.ContextLines
	if ctx < 0 {
		ctx = 0
	}
	return []string{
		"diff",
		"--no-color",
		"--no-ext-diff",
		"--no-textconv",
		"--src-prefix=a/",
		"--dst-prefix=b/",
		"-U" + strconv.Itoa(ctx),
	}
}

func (a *Accessor) diffArgs(head string) []string {
	args := a.baseArgs()
	if a.Options.DetectRenames {
		args = append(args, "--find-renames")
	} else {
		args = append(args, "--no-renames")
	}
	return append(args, head, "--")
}

// untracked diffs every untracked, non-ignored file against /dev/null.
func (a *Accessor) untracked(run GitRunner, root string) ([]RawFileDelta, error) {
	lsArgs := []string{"ls-files", "--others", "--exclude-standard", "-z"}
	out, err := run(root, lsArgs...)
	if err != nil {
		return nil, gitError(lsArgs, err)
	}
	var deltas []RawFileDelta
	for _, p := range strings.Split(out, "\x00") {
		// Nested repositories are listed as "dir/"; they have no content to diff.
		if p == "" || strings.HasSuffix(p, "/") {
			continue
		}
		args := append(a.baseArgs(), "--no-index", "--", "/dev/null", p)
		patch, err := run(root, args...)
		// --no-index exits 1 when the files differ, which is always the case here.
		if err != nil && !isExitCode(err, 1) {
			return nil, gitError(args, err)
		}
		parsed, err := ParseUnified(strings.NewReader(patch))
		if err != nil {
			return nil, fmt.Errorf("untracked %s: %w", p, err)
		}
		if len(parsed) == 0 {
			// Empty files produce no patch at all.
			deltas = append(deltas, RawFileDelta{Path: p, Status: StatusUntracked})
			continue
		}
		for _, d := range parsed {
			d.Path = p
			d.OldPath = ""
			d.Status = StatusUntracked
			deltas = append(deltas, d)
		}
	}
	return deltas, nil
}
