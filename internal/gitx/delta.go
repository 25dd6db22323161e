package gitx

// Line origins as git reports them in a patch.
const (
	OriginContext      byte = ' '
	OriginAddition     byte = '+'
	OriginDeletion     byte = '-'
	OriginContextEOFNL byte = '=' // context line had no trailing newline
	OriginAddEOFNL     byte = '>' // added line has no trailing newline
	OriginDelEOFNL     byte = '<' // deleted line had no trailing newline
	OriginFileHeader   byte = 'F'
	OriginHunkHeader   byte = 'H'
	OriginBinary       byte = 'B'
)

// noNewlineText is the payload carried by the EOF newline origins.
const noNewlineText = `\ No newline at end of file`

// Status classifies a file delta.
type Status string

const (
	StatusModified  Status = "modified"
	StatusAdded     Status = "added"
	StatusDeleted   Status = "deleted"
	StatusRenamed   Status = "renamed"
	StatusCopied    Status = "copied"
	StatusUntracked Status = "untracked"
)

// RawLine is one patch line with its origin marker. Line numbers are
// 1-based; 0 means the line does not exist on that side.
type RawLine struct {
	Origin    byte
	OldLineNo int
	NewLineNo int
	Content   string
}

// RawHunk is one @@ block of a file delta.
type RawHunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	// Anchor is the new-side number of the context line opening the hunk,
	// or 0 when the hunk opens with a change.
	Anchor int
	Header string
	Lines  []RawLine
}

// RawFileDelta is the raw comparison result for a single file.
type RawFileDelta struct {
	Path    string
	OldPath string
	Status  Status
	Binary  bool
	Hunks   []RawHunk
}

// Created reports whether the delta brings the whole file into existence.
func (d RawFileDelta) Created() bool {
	return d.Status == StatusAdded || d.Status == StatusUntracked
}
