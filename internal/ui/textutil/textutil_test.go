package textutil

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"https://example.com/a.gif", 100, "https://example.com/a.gif"},
		{"https://example.com/a.gif", 10, "https://e…"},
		{"abc", 0, ""},
		{"日本語テキスト", 5, "日本…"},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.max)
		assert.Equal(t, tt.want, got, "Truncate(%q, %d)", tt.in, tt.max)
		assert.LessOrEqual(t, Width(got), max(tt.max, 0))
	}
}

func TestMiddle(t *testing.T) {
	assert.Equal(t, "Toke…Q5DA", Middle("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", 4))
	assert.Equal(t, "short", Middle("short", 4))
	assert.Equal(t, "abcdefghij", Middle("abcdefghij", 4))
	assert.Equal(t, "abcdefghij", Middle("abcdefghij", 0))
}

func TestWidthIgnoresStyling(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("gif")
	assert.Equal(t, 3, Width(styled))
}
