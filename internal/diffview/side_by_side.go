package diffview

import "github.com/interpretive-systems/contrast/diffs"

// RowKind represents the semantic type of a side-by-side row.
type RowKind int

const (
	RowContext RowKind = iota
	RowAdd
	RowDel
	RowReplace
	RowHunk
)

// Row represents a single visual row for side-by-side rendering.
// A line number of 0 means the side is empty.
type Row struct {
	Left    string
	Right   string
	LeftNo  int
	RightNo int
	Kind    RowKind
	Meta    string // for hunk header text
}

// BuildRows lays out a Diff as side-by-side rows.
// It uses a simple pairing strategy within each hunk: deletions are paired
// with subsequent additions as replacements; any remaining lines are shown
// as left-only (deletions) or right-only (additions). Hunk header rows are
// placed above the context line they are anchored to. Lines never pair
// across hunks, whether or not the hunk opens with context.
func BuildRows(d diffs.Diff) []Row {
	rows := make([]Row, 0, len(d.Lines)+len(d.Headers))
	pendingDel := make([]diffs.Line, 0)
	spans := hunkSpans(d.Headers)
	hunk, lastNew := -1, 0

	flushPending := func() {
		for _, dl := range pendingDel {
			rows = append(rows, Row{Left: dl.Content, LeftNo: dl.OldLineNumber, Kind: RowDel})
		}
		pendingDel = pendingDel[:0]
	}

	for _, line := range d.Lines {
		if hs := d.HeadersFor(line); len(hs) > 0 {
			flushPending()
			for _, h := range hs {
				rows = append(rows, Row{Kind: RowHunk, Meta: h.Content})
			}
		}

		if h := hunkOf(spans, line); h >= 0 && h != hunk {
			flushPending()
			hunk, lastNew = h, 0
		}

		switch line.Origin {
		case diffs.Context:
			flushPending()
			lastNew = line.NewLineNumber
			rows = append(rows, Row{
				Left: line.Content, LeftNo: line.OldLineNumber,
				Right: line.Content, RightNo: line.NewLineNumber,
				Kind: RowContext,
			})
		case diffs.Deletion:
			if n := len(pendingDel); n > 0 && line.OldLineNumber != pendingDel[n-1].OldLineNumber+1 {
				flushPending()
			}
			pendingDel = append(pendingDel, line)
		case diffs.Addition:
			if len(pendingDel) > 0 && lastNew != 0 && line.NewLineNumber != lastNew+1 {
				flushPending()
			}
			lastNew = line.NewLineNumber
			if len(pendingDel) > 0 {
				// Pair with the earliest pending deletion
				dl := pendingDel[0]
				pendingDel = pendingDel[1:]
				rows = append(rows, Row{
					Left: dl.Content, LeftNo: dl.OldLineNumber,
					Right: line.Content, RightNo: line.NewLineNumber,
					Kind: RowReplace,
				})
			} else {
				rows = append(rows, Row{Right: line.Content, RightNo: line.NewLineNumber, Kind: RowAdd})
			}
		}
	}
	flushPending()
	return rows
}

type span struct{ old, new diffs.Span }

// hunkSpans parses the ranges of every header; unparsable headers get an
// empty span so indices stay aligned with d.Headers.
func hunkSpans(hs []diffs.Header) []span {
	out := make([]span, len(hs))
	for i, h := range hs {
		if o, n, ok := h.Spans(); ok {
			out[i] = span{old: o, new: n}
		}
	}
	return out
}

// hunkOf returns the index of the hunk holding line, or -1 if none does.
func hunkOf(spans []span, l diffs.Line) int {
	for i, s := range spans {
		switch l.Origin {
		case diffs.Deletion:
			if s.old.Contains(l.OldLineNumber) {
				return i
			}
		default:
			if s.new.Contains(l.NewLineNumber) {
				return i
			}
		}
	}
	return -1
}
