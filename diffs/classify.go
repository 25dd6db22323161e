package diffs

import "github.com/interpretive-systems/contrast/internal/gitx"

// Classify turns a raw patch line into a Line. It never fails: '+' is an
// addition, '-' a deletion and every other marker is context. Numbers that
// do not belong to the origin's side are dropped.
func Classify(marker byte, oldNo, newNo int, content string) Line {
	oldNo, newNo = lineNo(oldNo), lineNo(newNo)
	switch marker {
	case gitx.OriginAddition:
		return Line{Origin: Addition, NewLineNumber: newNo, Content: content}
	case gitx.OriginDeletion:
		return Line{Origin: Deletion, OldLineNumber: oldNo, Content: content}
	default:
		return Line{Origin: Context, OldLineNumber: oldNo, NewLineNumber: newNo, Content: content}
	}
}

// Renders reports whether a raw line with the given marker becomes a Line.
// End-of-file newline notices, binary notices and file or hunk header
// records carry no text of the file and are skipped.
func Renders(marker byte) bool {
	switch marker {
	case gitx.OriginContextEOFNL, gitx.OriginAddEOFNL, gitx.OriginDelEOFNL,
		gitx.OriginBinary, gitx.OriginFileHeader, gitx.OriginHunkHeader:
		return false
	}
	return true
}

// lineNo normalizes "absent" markers (git uses -1) to 0.
func lineNo(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
