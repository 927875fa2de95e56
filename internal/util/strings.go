// Package util holds terminal text helpers shared by the CLI commands.
package util

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks truncated output.
const Ellipsis = "..."

// TruncateANSI shortens s to maxWidth visual columns, ending it with
// Ellipsis. Escape sequences are preserved. A maxWidth of 0 or less means no
// limit.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= 0 || lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(Ellipsis) {
		return Ellipsis[:maxWidth]
	}
	return ansi.Truncate(s, maxWidth, Ellipsis)
}

// PadRight appends spaces until s spans width visual columns.
func PadRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
