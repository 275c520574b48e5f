package layout

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Text 是不参与语法高亮的纯文本组件（窗口标题、水印等）。
type Text struct {
	Content    string  `json:"content"`
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	LineHeight float64 `json:"lineHeight"`
	Color      Color   `json:"color"`
	Width      float64 `json:"width"`
}

// NewText 构造文本组件，并借助 Typesetter 测量最长行的宽度。
// ts 为空时按等宽字符估算。
func NewText(content, family string, fontSize, lineHeight float64, col Color, ts Typesetter) (*Text, error) {
	t := &Text{
		Content:    content,
		FontFamily: family,
		FontSize:   fontSize,
		LineHeight: lineHeight,
		Color:      col,
	}
	for _, line := range SplitLines(content) {
		var w float64
		if ts != nil {
			measured, err := ts.MeasureText(line, family, fontSize)
			if err != nil {
				return nil, fmt.Errorf("测量文本 %q 失败: %w", line, err)
			}
			w = measured
		} else {
			w = float64(runewidth.StringWidth(line)) * CharWidth * fontSize / LineNumberFontSize
		}
		if w > t.Width {
			t.Width = w
		}
	}
	return t, nil
}

// Style 使用测量得到的宽度与行数 × 行高作为固有尺寸。
func (t *Text) Style() RawStyle {
	lines := strings.Count(t.Content, "\n") + 1
	return DefaultStyle().Size(Num(t.Width), Num(float64(lines)*t.LineHeight))
}

// Controls 是窗口左上角的三个圆形按钮。
type Controls struct {
	Radius float64 `json:"radius"`
	Gap    float64 `json:"gap"`
	Colors []Color `json:"colors"`
}

// DefaultControls returns the red/yellow/green window buttons.
func DefaultControls() *Controls {
	return &Controls{
		Radius: 6,
		Gap:    8,
		Colors: []Color{RGB(255, 95, 86), RGB(255, 189, 46), RGB(39, 201, 63)},
	}
}

// Style 宽度为所有按钮直径与间隔之和，高度为一个直径。
func (c *Controls) Style() RawStyle {
	n := float64(len(c.Colors))
	w := n * 2 * c.Radius
	if n > 1 {
		w += (n - 1) * c.Gap
	}
	return DefaultStyle().Size(Num(w), Num(2*c.Radius))
}
