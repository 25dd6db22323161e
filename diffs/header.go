package diffs

import (
	"strconv"
	"strings"
)

// NewHeader builds the header of a hunk whose opening context line has the
// given new-side number (0 if the hunk opens with a change).
func NewHeader(anchor int, content string) Header {
	return Header{AnchorLine: lineNo(anchor), Content: content}
}

// Range returns the "@@ -a,b +c,d @@" part of the header.
func (h Header) Range() string {
	parts := strings.SplitN(h.Content, " ", 5)
	if len(parts) < 4 {
		return h.Content
	}
	return strings.Join(parts[:4], " ")
}

// Section returns the text git printed after the range, usually the
// enclosing function.
func (h Header) Section() string {
	parts := strings.SplitN(h.Content, " ", 5)
	if len(parts) < 5 {
		return ""
	}
	return parts[4]
}

// Span is a line range of one side of a hunk. Lines may be 0.
type Span struct {
	Start int
	Lines int
}

// Contains reports whether line number n falls inside the span.
func (s Span) Contains(n int) bool {
	return n >= s.Start && n < s.Start+s.Lines
}

// Spans parses the old and new ranges of the header. A count omitted by
// git means one line.
func (h Header) Spans() (oldSpan, newSpan Span, ok bool) {
	parts := strings.Fields(h.Range())
	if len(parts) != 4 || parts[0] != "@@" || parts[3] != "@@" {
		return Span{}, Span{}, false
	}
	oldSpan, ok1 := parseSpan(parts[1], '-')
	newSpan, ok2 := parseSpan(parts[2], '+')
	return oldSpan, newSpan, ok1 && ok2
}

func parseSpan(s string, sign byte) (Span, bool) {
	if len(s) < 2 || s[0] != sign {
		return Span{}, false
	}
	start, count, found := strings.Cut(s[1:], ",")
	st, err := strconv.Atoi(start)
	if err != nil {
		return Span{}, false
	}
	n := 1
	if found {
		if n, err = strconv.Atoi(count); err != nil {
			return Span{}, false
		}
	}
	return Span{Start: st, Lines: n}, true
}

// matches is the association rule: a header sits above the context line
// whose new number equals its anchor. Added and deleted lines never match,
// even when their number collides with the anchor.
func (h Header) matches(l Line) bool {
	return l.Origin == Context && h.AnchorLine != 0 && l.NewLineNumber == h.AnchorLine
}

// HeadersFor returns the headers to show immediately before line.
func (d Diff) HeadersFor(line Line) []Header {
	var out []Header
	for _, h := range d.Headers {
		if h.matches(line) {
			out = append(out, h)
		}
	}
	return out
}

// AnchorIndex returns the index in d.Lines of the line h precedes.
func (d Diff) AnchorIndex(h Header) (int, bool) {
	for i, l := range d.Lines {
		if h.matches(l) {
			return i, true
		}
	}
	return -1, false
}
