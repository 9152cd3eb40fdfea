package theme

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// HexToColor converts a hex color string (#RRGGBB or #RGB) to tcell.Color
func HexToColor(hexColor string) tcell.Color {
	hexColor = strings.TrimPrefix(hexColor, "#")

	// Handle short form (#RGB)
	if len(hexColor) == 3 {
		hexColor = string(hexColor[0]) + string(hexColor[0]) +
			string(hexColor[1]) + string(hexColor[1]) +
			string(hexColor[2]) + string(hexColor[2])
	}

	if len(hexColor) != 6 {
		return tcell.ColorDefault
	}

	c, err := colorful.Hex("#" + hexColor)
	if err != nil {
		return tcell.ColorDefault
	}
	return fromColorful(c)
}

// ParseColor handles #RRGGBB, #RGB, rgb(r,g,b) and tcell color names.
// The boolean is false when the string is not a color.
func ParseColor(colorStr string) (tcell.Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))

	switch {
	case colorStr == "":
		return tcell.ColorDefault, false
	case colorStr == "default":
		return tcell.ColorDefault, true
	case strings.HasPrefix(colorStr, "#"):
		c := HexToColor(colorStr)
		return c, c != tcell.ColorDefault
	case strings.HasPrefix(colorStr, "rgb(") && strings.HasSuffix(colorStr, ")"):
		inner := strings.TrimSuffix(strings.TrimPrefix(colorStr, "rgb("), ")")
		parts := strings.Split(inner, ",")
		if len(parts) != 3 {
			return tcell.ColorDefault, false
		}
		var rgb [3]int32
		for i, part := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || v < 0 || v > 255 {
				return tcell.ColorDefault, false
			}
			rgb[i] = int32(v)
		}
		return tcell.NewRGBColor(rgb[0], rgb[1], rgb[2]), true
	}

	if c := tcell.GetColor(colorStr); c != tcell.ColorDefault {
		return c, true
	}
	return tcell.ColorDefault, false
}

// Blend mixes two colors in Lab space; t=0 gives from, t=1 gives to.
// Colors without an RGB value (the terminal default) are returned unblended.
func Blend(from, to tcell.Color, t float64) tcell.Color {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	a, okA := toColorful(from)
	b, okB := toColorful(to)
	if !okA || !okB {
		return to
	}
	return fromColorful(a.BlendLab(b, t).Clamped())
}

func toColorful(c tcell.Color) (colorful.Color, bool) {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ColorToStyle creates a style with a specific foreground color
func ColorToStyle(fgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor)
}

// ColorPairToStyle creates a style with specific foreground and background colors
func ColorPairToStyle(fgColor, bgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor).Background(bgColor)
}
