package gitx

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// ParseUnified parses `git diff` output into raw file deltas, in the order
// the files appear in the patch.
func ParseUnified(r io.Reader) ([]RawFileDelta, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}
	out := make([]RawFileDelta, 0, len(files))
	for _, f := range files {
		out = append(out, convertFile(f))
	}
	return out, nil
}

func convertFile(f *gitdiff.File) RawFileDelta {
	d := RawFileDelta{
		Path:   f.NewName,
		Status: fileStatus(f),
		Binary: f.IsBinary,
	}
	if d.Path == "" {
		d.Path = f.OldName
	}
	if f.IsRename || f.IsCopy {
		d.OldPath = f.OldName
	}
	if f.IsBinary {
		return d
	}
	for _, frag := range f.TextFragments {
		d.Hunks = append(d.Hunks, convertFragment(frag))
	}
	return d
}

func fileStatus(f *gitdiff.File) Status {
	switch {
	case f.IsNew:
		return StatusAdded
	case f.IsDelete:
		return StatusDeleted
	case f.IsRename:
		return StatusRenamed
	case f.IsCopy:
		return StatusCopied
	default:
		return StatusModified
	}
}

func convertFragment(frag *gitdiff.TextFragment) RawHunk {
	h := RawHunk{
		OldStart: int(frag.OldPosition),
		OldLines: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewLines: int(frag.NewLines),
		Header:   formatHeader(frag),
		Lines:    make([]RawLine, 0, len(frag.Lines)),
	}
	if len(frag.Lines) > 0 && frag.Lines[0].Op == gitdiff.OpContext {
		h.Anchor = h.NewStart
	}

	oldNo, newNo := h.OldStart, h.NewStart
	for _, l := range frag.Lines {
		content := strings.TrimSuffix(l.Line, "\n")
		var eof byte
		switch l.Op {
		case gitdiff.OpAdd:
			h.Lines = append(h.Lines, RawLine{Origin: OriginAddition, NewLineNo: newNo, Content: content})
			newNo++
			eof = OriginAddEOFNL
		case gitdiff.OpDelete:
			h.Lines = append(h.Lines, RawLine{Origin: OriginDeletion, OldLineNo: oldNo, Content: content})
			oldNo++
			eof = OriginDelEOFNL
		default:
			h.Lines = append(h.Lines, RawLine{Origin: OriginContext, OldLineNo: oldNo, NewLineNo: newNo, Content: content})
			oldNo++
			newNo++
			eof = OriginContextEOFNL
		}
		if l.NoEOL() {
			h.Lines = append(h.Lines, RawLine{Origin: eof, Content: noNewlineText})
		}
	}
	return h
}

// formatHeader renders the hunk header the way git prints it: a count of 1
// is omitted from a range.
func formatHeader(frag *gitdiff.TextFragment) string {
	s := "@@ -" + formatRange(frag.OldPosition, frag.OldLines) +
		" +" + formatRange(frag.NewPosition, frag.NewLines) + " @@"
	if c := strings.TrimSpace(frag.Comment); c != "" {
		s += " " + c
	}
	return s
}

func formatRange(start, lines int64) string {
	if lines == 1 {
		return strconv.FormatInt(start, 10)
	}
	return strconv.FormatInt(start, 10) + "," + strconv.FormatInt(lines, 10)
}
