package layout

import (
	"strconv"
	"strings"
)

const (
	// LineNumberFontSize 是行号使用的固定字号。
	LineNumberFontSize = 14.0
	// LineNumberGap 是行号与代码块之间的固定间距。
	LineNumberGap = 10.0
)

// LineNumberColor 是行号使用的固定暗色，行号不参与语法高亮。
var LineNumberColor = RGB(73, 81, 98)

// LineNumber 是行号栏组件。零值处于禁用状态，ShouldRender 返回 false。
type LineNumber struct {
	LineHeight float64  `json:"lineHeight"`
	Content    []string `json:"content"`
	Digits     int      `json:"digits"`
	enabled    bool
}

// NewLineNumber 为 lineCount 行生成右对齐的行号。start 为 nil 表示未开启行号，
// 负数起始行按 0 处理，保证所有行号等宽。
func NewLineNumber(lineCount int, start *int, lineHeight float64) *LineNumber {
	if start == nil || lineCount <= 0 {
		return &LineNumber{}
	}
	first := max(*start, 0)
	last := first + lineCount - 1
	digits := len(strconv.Itoa(last))
	content := make([]string, 0, lineCount)
	for n := first; n <= last; n++ {
		content = append(content, padLeft(strconv.Itoa(n), digits))
	}
	return &LineNumber{
		LineHeight: lineHeight,
		Content:    content,
		Digits:     digits,
		enabled:    true,
	}
}

// Enabled reports whether the gutter contributes to layout and drawing.
func (l *LineNumber) Enabled() bool { return l != nil && l.enabled }

// Style 宽度为 CharWidth × 位数，高度为行数 × 行高，右侧固定留出间距。
func (l *LineNumber) Style() RawStyle {
	if !l.Enabled() {
		return DefaultStyle().Size(Num(0), Num(0))
	}
	return DefaultStyle().
		Size(Num(CharWidth*float64(l.Digits)), Num(float64(len(l.Content))*l.LineHeight)).
		WithMargin(Edges{Right: LineNumberGap})
}

// Text joins the per-line strings into one block.
func (l *LineNumber) Text() string {
	return strings.Join(l.Content, "\n")
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
