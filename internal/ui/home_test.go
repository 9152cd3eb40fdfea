package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHomeScreenContent(t *testing.T) {
	home := NewHomeScreen("MicroQRArt")

	content := strings.Join(home.GetContent(), "\n")
	assert.Contains(t, content, "MicroQRArt")
	assert.Contains(t, content, "0 QR codes")
	assert.Contains(t, content, ":export")

	home.SetCount(1)
	assert.Contains(t, strings.Join(home.GetContent(), "\n"), "1 QR code\n")

	home.SetCount(12)
	assert.Contains(t, strings.Join(home.GetContent(), "\n"), "12 QR codes")
}
