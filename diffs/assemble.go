package diffs

import "github.com/interpretive-systems/contrast/internal/gitx"

// Assemble builds the Diff of one file. Lines and headers keep the order
// they are given in.
func Assemble(fileName string, lines []Line, headers []Header) Diff {
	if lines == nil {
		lines = []Line{}
	}
	if headers == nil {
		headers = []Header{}
	}
	return Diff{FileName: fileName, Lines: lines, Headers: headers}
}

// fromDelta classifies and assembles one raw file delta. Created files have
// no headers: the entire file is the body.
func fromDelta(d gitx.RawFileDelta) Diff {
	var lines []Line
	var headers []Header
	for _, h := range d.Hunks {
		if !d.Created() {
			headers = append(headers, NewHeader(h.Anchor, h.Header))
		}
		for _, rl := range h.Lines {
			if !Renders(rl.Origin) {
				continue
			}
			lines = append(lines, Classify(rl.Origin, rl.OldLineNo, rl.NewLineNo, rl.Content))
		}
	}
	diff := Assemble(d.Path, lines, headers)
	diff.OldFileName = d.OldPath
	diff.Binary = d.Binary
	return diff
}
