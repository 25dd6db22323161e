package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/interpretive-systems/contrast/diffs"
	"github.com/interpretive-systems/contrast/internal/diffview"
)

// DefaultWidth is used for side-by-side layout when the terminal width is unknown.
const DefaultWidth = 120

// Printer writes diffs and stats as text.
type Printer struct {
	Color      bool
	SideBySide bool
	Width      int
	st         styles
}

// NewPrinter returns a Printer for theme t.
func NewPrinter(t Theme, color bool) *Printer {
	return &Printer{Color: color, Width: DefaultWidth, st: newStyles(t, color)}
}

// Summary writes the project heading and the stats line.
func (p *Printer) Summary(w io.Writer, project, commit string, s diffs.Stats) error {
	if project != "" {
		if _, err := fmt.Fprintln(w, p.st.title.Render(project)); err != nil {
			return err
		}
	}
	if commit != "" {
		if _, err := fmt.Fprintln(w, p.st.gutter.Render("HEAD "+commit)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, p.Stats(s))
	return err
}

// Stats renders the stats line with insertions and deletions colored.
func (p *Printer) Stats(s diffs.Stats) string {
	parts := strings.SplitN(s.String(), ", ", 3)
	if len(parts) != 3 {
		return s.String()
	}
	return parts[0] + ", " + p.st.add.Render(parts[1]) + ", " + p.st.del.Render(parts[2])
}

// Diffs writes every diff in order.
func (p *Printer) Diffs(w io.Writer, ds []diffs.Diff) error {
	for i, d := range ds {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := p.Diff(w, d); err != nil {
			return err
		}
	}
	return nil
}

// Diff writes one file: a title, then either "No content" or the body.
func (p *Printer) Diff(w io.Writer, d diffs.Diff) error {
	if _, err := fmt.Fprintln(w, p.title(d)); err != nil {
		return err
	}
	if len(d.Lines) == 0 {
		_, err := fmt.Fprintln(w, p.st.gutter.Render("No content"))
		return err
	}
	if p.SideBySide {
		return p.sideBySide(w, d)
	}
	return p.unified(w, d)
}

func (p *Printer) title(d diffs.Diff) string {
	name := d.FileName
	if d.OldFileName != "" && d.OldFileName != d.FileName {
		name = d.OldFileName + " → " + d.FileName
	}
	s := p.st.title.Render(name)
	var notes []string
	if d.Binary {
		notes = append(notes, "binary")
	}
	if ins, del := d.Insertions(), d.Deletions(); ins+del > 0 {
		notes = append(notes, p.st.add.Render("+"+strconv.Itoa(ins))+" "+p.st.del.Render("-"+strconv.Itoa(del)))
	}
	if len(notes) > 0 {
		s += " " + p.st.divider.Render("(") + strings.Join(notes, ", ") + p.st.divider.Render(")")
	}
	return s
}

// header renders the @@ range in the meta color and the section plainly.
func (p *Printer) header(h diffs.Header) string {
	s := p.st.meta.Render(h.Range())
	if sec := h.Section(); sec != "" {
		s += " " + sec
	}
	return s
}

func (p *Printer) unified(w io.Writer, d diffs.Diff) error {
	digits := len(strconv.Itoa(d.LongestLineNumber()))
	blank := strings.Repeat(" ", digits)
	for _, line := range d.Lines {
		for _, h := range d.HeadersFor(line) {
			if _, err := fmt.Fprintf(w, "%s %s\n", blank, p.header(h)); err != nil {
				return err
			}
		}
		gutter := p.st.gutter.Render(padLeft(strconv.Itoa(line.DisplayNumber()), digits))
		body := string(line.Origin.Marker()) + expandTabs(line.Content)
		switch line.Origin {
		case diffs.Addition:
			body = p.st.add.Render(body)
		case diffs.Deletion:
			body = p.st.del.Render(body)
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", gutter, body); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) sideBySide(w io.Writer, d diffs.Diff) error {
	width := p.Width
	if width <= 0 {
		width = DefaultWidth
	}
	digits := len(strconv.Itoa(d.LongestLineNumber()))
	// per side: gutter, space, marker; between sides: " │ "
	col := (width - 2*digits - 7) / 2
	if col < 10 {
		col = 10
	}
	sep := p.st.divider.Render("│")

	side := func(no int, marker byte, text string, kind diffview.RowKind) string {
		num := ""
		if no > 0 {
			num = strconv.Itoa(no)
		}
		cell := padExact(clipToWidth(string(marker)+expandTabs(text), col+1), col+1)
		switch kind {
		case diffview.RowAdd:
			cell = p.st.add.Render(cell)
		case diffview.RowDel:
			cell = p.st.del.Render(cell)
		}
		return p.st.gutter.Render(padLeft(num, digits)) + " " + cell
	}

	for _, r := range diffview.BuildRows(d) {
		var out string
		switch r.Kind {
		case diffview.RowHunk:
			out = p.header(diffs.Header{Content: r.Meta})
			out = truncateToWidth(out, width)
		case diffview.RowContext:
			out = side(r.LeftNo, ' ', r.Left, r.Kind) + " " + sep + " " + side(r.RightNo, ' ', r.Right, r.Kind)
		case diffview.RowAdd:
			out = side(0, ' ', "", diffview.RowContext) + " " + sep + " " + side(r.RightNo, '+', r.Right, diffview.RowAdd)
		case diffview.RowDel:
			out = side(r.LeftNo, '-', r.Left, diffview.RowDel) + " " + sep + " " + side(0, ' ', "", diffview.RowContext)
		case diffview.RowReplace:
			out = side(r.LeftNo, '-', r.Left, diffview.RowDel) + " " + sep + " " + side(r.RightNo, '+', r.Right, diffview.RowAdd)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(out, " ")); err != nil {
			return err
		}
	}
	return nil
}
