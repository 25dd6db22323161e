// Package diffs models the difference between a repository's HEAD commit and
// its working tree: one Diff per changed file, made of classified lines and
// hunk headers, plus project-wide Stats.
//
// Every value is rebuilt on each retrieval and never mutated afterwards.
// Consumers replace their whole collection on refresh.
package diffs

import "fmt"

// Origin classifies a diff line.
type Origin int

const (
	Context Origin = iota
	Addition
	Deletion
)

func (o Origin) String() string {
	switch o {
	case Addition:
		return "addition"
	case Deletion:
		return "deletion"
	default:
		return "context"
	}
}

// Marker returns the unified diff prefix for the origin.
func (o Origin) Marker() byte {
	switch o {
	case Addition:
		return '+'
	case Deletion:
		return '-'
	default:
		return ' '
	}
}

func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Origin) UnmarshalText(b []byte) error {
	switch string(b) {
	case "context":
		*o = Context
	case "addition":
		*o = Addition
	case "deletion":
		*o = Deletion
	default:
		return fmt.Errorf("unknown origin %q", b)
	}
	return nil
}

// Line is one row of a file's diff. Line numbers are 1-based and 0 means the
// line does not exist on that side: additions have no old number, deletions
// have no new number, context lines keep both.
type Line struct {
	Origin        Origin `json:"origin"`
	OldLineNumber int    `json:"old_line_number,omitempty"`
	NewLineNumber int    `json:"new_line_number,omitempty"`
	Content       string `json:"content"`
}

// DisplayNumber is the number shown next to the line: the old number for
// deletions and the new number otherwise.
func (l Line) DisplayNumber() int {
	if l.Origin == Deletion {
		return l.OldLineNumber
	}
	return l.NewLineNumber
}

// Header marks a hunk boundary. It refers to lines only by number; see
// Diff.HeadersFor.
type Header struct {
	AnchorLine int    `json:"anchor_line"`
	Content    string `json:"content"`
}

// Diff is the full diff of one file.
type Diff struct {
	FileName string   `json:"file_name"`
	Lines    []Line   `json:"lines"`
	Headers  []Header `json:"headers"`

	// OldFileName is set when the file was renamed or copied.
	OldFileName string `json:"old_file_name,omitempty"`
	Binary      bool   `json:"binary,omitempty"`
}

// Insertions counts the addition lines of the file.
func (d Diff) Insertions() int { return d.count(Addition) }

// Deletions counts the deletion lines of the file.
func (d Diff) Deletions() int { return d.count(Deletion) }

func (d Diff) count(o Origin) int {
	n := 0
	for _, l := range d.Lines {
		if l.Origin == o {
			n++
		}
	}
	return n
}

// LongestLineNumber returns the largest display number in the diff, which
// bounds the width of a line-number gutter.
func (d Diff) LongestLineNumber() int {
	longest := 0
	for _, l := range d.Lines {
		if n := l.DisplayNumber(); n > longest {
			longest = n
		}
	}
	return longest
}

// Stats aggregates a whole retrieval.
type Stats struct {
	FilesChanged int `json:"files_changed"`
	Insertions   int `json:"insertions"`
	Deletions    int `json:"deletions"`
}
