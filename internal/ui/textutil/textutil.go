// Package textutil measures and clips text by terminal columns.
package textutil

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks clipped text.
const Ellipsis = "…"

// Width returns the number of terminal columns s occupies. ANSI escapes
// do not count.
func Width(s string) int {
	return lipgloss.Width(s)
}

// Truncate clips plain s to at most maxWidth columns, ending in Ellipsis
// when anything was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// Middle keeps the first and last keep runes of s joined by Ellipsis.
// Strings too short to shorten are returned unchanged.
func Middle(s string, keep int) string {
	r := []rune(s)
	if keep <= 0 || len(r) <= 2*keep+2 {
		return s
	}
	return string(r[:keep]) + Ellipsis + string(r[len(r)-keep:])
}
