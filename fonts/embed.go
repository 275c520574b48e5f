package fonts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
)

// DefaultFamily 是内置等宽字体的名称，任何字体都找不到时使用它。
const DefaultFamily = "Go Mono"

// Style 区分同一字体族中的四种字形。
type Style uint8

const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold-italic"
	default:
		return "regular"
	}
}

// StyleOf combines bold/italic flags into a Style.
func StyleOf(bold, italic bool) Style {
	switch {
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	default:
		return Regular
	}
}

var builtin = map[Style][]byte{
	Regular:    gomono.TTF,
	Bold:       gomonobold.TTF,
	Italic:     gomonoitalic.TTF,
	BoldItalic: gomonobolditalic.TTF,
}

// Builtin returns the four embedded Go Mono faces.
func Builtin() Faces {
	out := make(Faces, len(builtin))
	for style, data := range builtin {
		out[style] = data
	}
	return out
}

// Load 返回字体的字节数据，path 可写为 "embed:bold" 这类内置字形名，或者普通文件路径。
func Load(path string) ([]byte, error) {
	if name, ok := strings.CutPrefix(path, "embed:"); ok {
		style, ok := parseStyleName(name)
		if !ok {
			return nil, fmt.Errorf("未知的内置字形 %s", name)
		}
		return builtin[style], nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}

func parseStyleName(name string) (Style, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "regular", "gomono":
		return Regular, true
	case "bold", "gomonobold":
		return Bold, true
	case "italic", "gomonoitalic":
		return Italic, true
	case "bold-italic", "bolditalic", "gomonobolditalic":
		return BoldItalic, true
	default:
		return Regular, false
	}
}
