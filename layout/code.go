package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

const (
	// CharWidth 是等宽字体单个字符的固定宽度（逻辑像素）。
	CharWidth = 9.05
	// MinWidth 是代码块的最小宽度。
	MinWidth = 100.0
	// TabWidth 是制表符展开的列宽。
	TabWidth = 4
)

// Code 是代码块组件，构造时即完成文本预处理，之后内容不可变。
type Code struct {
	Value      string          `json:"value"`
	LineHeight float64         `json:"lineHeight"`
	FontSize   float64         `json:"fontSize"`
	Highlights []LineHighlight `json:"highlights,omitempty"`
}

// LineHighlight 为 [Start, End]（1 起始，含两端）范围内的行绘制背景色带。
type LineHighlight struct {
	Start int   `json:"start"`
	End   int   `json:"end"`
	Color Color `json:"color"`
}

// Contains reports whether the 1-based line number lies in the range.
func (h LineHighlight) Contains(line int) bool {
	return line >= h.Start && line <= h.End
}

// NewCode prepares value and returns a code component.
func NewCode(value string, lineHeight, fontSize float64) *Code {
	return &Code{
		Value:      PrepareCode(value),
		LineHeight: lineHeight,
		FontSize:   fontSize,
	}
}

// Lines returns the prepared text split into lines.
func (c *Code) Lines() []string {
	return SplitLines(c.Value)
}

// Style 由内容得出固有尺寸，与父节点无关。
func (c *Code) Style() RawStyle {
	w, h := CalcWHWithMinWidth(c.Value, CharWidth, c.LineHeight)
	return DefaultStyle().Size(Num(w), Num(h))
}

// PrepareCode 统一换行符、展开制表符并去掉末尾的空行。
// 文本先规范化为 NFC，组合字符与预组字符占用相同的列宽。
func PrepareCode(code string) string {
	code = norm.NFC.String(code)
	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = strings.ReplaceAll(code, "\r", "\n")
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = ExpandTabs(line, TabWidth)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// ExpandTabs replaces tabs with spaces up to the next tab stop.
func ExpandTabs(line string, tabWidth int) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	if tabWidth < 1 {
		tabWidth = 1
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// SplitLines 按 \n 切分；空文本视为一行。
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// CalcWH 返回文本的宽高：最长行的显示宽度 × charWidth，行数 × lineHeight。
func CalcWH(text string, charWidth, lineHeight float64) (float64, float64) {
	lines := SplitLines(text)
	longest := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > longest {
			longest = w
		}
	}
	return float64(longest) * charWidth, float64(len(lines)) * lineHeight
}

// CalcWHWithMinWidth 与 CalcWH 相同，但宽度不小于 MinWidth。
func CalcWHWithMinWidth(text string, charWidth, lineHeight float64) (float64, float64) {
	w, h := CalcWH(text, charWidth, lineHeight)
	if w < MinWidth {
		w = MinWidth
	}
	return w, h
}
