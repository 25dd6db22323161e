package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// clipToWidth truncates s to at most w visual columns without ellipsis.
func clipToWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return ansi.Truncate(s, w, "")
}

// padExact pads s with spaces to exactly w columns (ANSI-aware).
func padExact(s string, w int) string {
	vw := ansi.StringWidth(s)
	if vw >= w {
		return s
	}
	return s + strings.Repeat(" ", w-vw)
}

// padLeft right-aligns s in w columns.
func padLeft(s string, w int) string {
	vw := ansi.StringWidth(s)
	if vw >= w {
		return s
	}
	return strings.Repeat(" ", w-vw) + s
}

// truncateToWidth truncates to width with an ellipsis if needed.
func truncateToWidth(s string, w int) string {
	if w <= 0 {
		return s
	}
	return ansi.Truncate(s, w, "…")
}

// expandTabs keeps column math honest for tab-indented source.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
