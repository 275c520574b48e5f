package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ByLCY/codeshot/layout"
)

// ParseColor 解析 #rgb、#rrggbb 与 #rrggbbaa 形式的颜色。
func ParseColor(s string) (layout.Color, error) {
	s = strings.TrimSpace(s)
	alpha := 255
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return layout.Color{}, fmt.Errorf("bad color %q: %w", s, err)
		}
		alpha = int(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return layout.Color{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return layout.RGBA(int(r), int(g), int(b), alpha), nil
}

// MustColor is ParseColor for values already checked by Validate; bad input yields fallback.
func MustColor(s string, fallback layout.Color) layout.Color {
	if s == "" {
		return fallback
	}
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// Layout converts the highlight range into its layout form. A zero End means a single line.
func (h HighlightLine) Layout() (layout.LineHighlight, error) {
	col, err := ParseColor(h.Color)
	if err != nil {
		return layout.LineHighlight{}, err
	}
	end := h.End
	if end == 0 {
		end = h.Start
	}
	return layout.LineHighlight{Start: h.Start, End: end, Color: col}, nil
}
