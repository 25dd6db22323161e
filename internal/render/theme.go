package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme defines customizable colors for rendering.
type Theme struct {
	AddColor     string `yaml:"add"`
	DelColor     string `yaml:"del"`
	MetaColor    string `yaml:"meta"`
	DividerColor string `yaml:"divider"`
	GutterColor  string `yaml:"gutter"`
}

func darkTheme() Theme {
	return Theme{
		AddColor:     "34",
		DelColor:     "196",
		MetaColor:    "38",
		DividerColor: "240",
		GutterColor:  "244",
	}
}

func lightTheme() Theme {
	return Theme{
		AddColor:     "22",
		DelColor:     "9",
		MetaColor:    "27",
		DividerColor: "244",
		GutterColor:  "240",
	}
}

// GetTheme returns the requested base theme ("dark" unless "light").
func GetTheme(name string) Theme {
	if name == "light" {
		return lightTheme()
	}
	return darkTheme()
}

// Merge overlays the non-empty colors of o onto t.
func (t Theme) Merge(o Theme) Theme {
	if o.AddColor != "" {
		t.AddColor = o.AddColor
	}
	if o.DelColor != "" {
		t.DelColor = o.DelColor
	}
	if o.MetaColor != "" {
		t.MetaColor = o.MetaColor
	}
	if o.DividerColor != "" {
		t.DividerColor = o.DividerColor
	}
	if o.GutterColor != "" {
		t.GutterColor = o.GutterColor
	}
	return t
}

// styles are the lipgloss styles derived from a Theme for one output.
type styles struct {
	add, del, meta, divider, gutter, title lipgloss.Style
}

func newStyles(t Theme, color bool) styles {
	r := lipgloss.NewRenderer(io.Discard)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		add:     r.NewStyle().Foreground(lipgloss.Color(t.AddColor)),
		del:     r.NewStyle().Foreground(lipgloss.Color(t.DelColor)),
		meta:    r.NewStyle().Foreground(lipgloss.Color(t.MetaColor)),
		divider: r.NewStyle().Foreground(lipgloss.Color(t.DividerColor)),
		gutter:  r.NewStyle().Foreground(lipgloss.Color(t.GutterColor)),
		title:   r.NewStyle().Bold(true),
	}
}
