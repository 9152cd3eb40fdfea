package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		name     string
		r        rune
		expected int
	}{
		{"ASCII letter", 'A', 1},
		{"Emoji", '😀', 2},
		{"Kanji", '名', 2},
		{"Katakana", 'カ', 2},
		{"Combining acute", '\u0301', 0},
		{"Tab", '\t', 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RuneWidth(tt.r))
		})
	}
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 10, StringWidth("Home Wi-Fi"))
	assert.Equal(t, 4, StringWidth("名刺"))
	assert.Equal(t, 9, StringWidth("Event名刺"))
	assert.Equal(t, 0, StringWidth(""))
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"ASCII fits", "Menu", 10, "Menu"},
		{"ASCII truncated", "Business card", 8, "Business"},
		{"wide rune is not split", "名刺カード", 5, "名刺"},
		{"mixed truncated before wide rune", "QR名刺", 3, "QR"},
		{"emoji kept whole", "😀Hi", 2, "😀"},
		{"zero width", "Menu", 0, ""},
		{"negative width", "Menu", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateToWidth(tt.input, tt.maxWidth)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, StringWidth(got), max(tt.maxWidth, 0))
		})
	}
}

func TestTruncateToWidthWithEllipsis(t *testing.T) {
	assert.Equal(t, "Menu", TruncateToWidthWithEllipsis("Menu", 10))
	assert.Equal(t, "Busin...", TruncateToWidthWithEllipsis("Business card", 8))
	assert.Equal(t, "名...", TruncateToWidthWithEllipsis("名刺カード", 6))
	assert.Equal(t, "Bu", TruncateToWidthWithEllipsis("Business card", 2))
}

func TestPadStringToWidth(t *testing.T) {
	assert.Equal(t, "Hi   ", PadStringToWidth("Hi", 5))
	assert.Equal(t, "名刺 ", PadStringToWidth("名刺", 5))
	assert.Equal(t, "Hello", PadStringToWidth("Hello", 3))
	assert.Equal(t, "     ", PadStringToWidth("", 5))
}

func TestColumnOf(t *testing.T) {
	runes := []rune("QR名刺")
	assert.Equal(t, 0, ColumnOf(runes, 0))
	assert.Equal(t, 2, ColumnOf(runes, 2))
	assert.Equal(t, 4, ColumnOf(runes, 3))
	assert.Equal(t, 6, ColumnOf(runes, 10))
}
