package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/codeshot/config"
	"github.com/ByLCY/codeshot/fonts"
	"github.com/ByLCY/codeshot/highlight"
	"github.com/ByLCY/codeshot/layout"
)

// Renderer 将布局结果输出为最终文件，例如 PNG、PDF 或 SVG。
// Render 返回生成的二进制数据以及可能的错误；失败时不返回部分结果。
type Renderer interface {
	Render(tree *layout.Tree, result *layout.Result, rc *Context) ([]byte, error)
}

// Context 是一次渲染任务的只读上下文，在遍历开始前构造完毕。
type Context struct {
	ScaleFactor float64
	Theme       *highlight.Provider
	Fonts       fonts.Source
	Params      *config.Snapshot
	Format      Format
}

// Format is an output encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
)

// ParseFormat 解析输出格式；空字符串视为 PNG。
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPNG, nil
	case FormatPNG, FormatPDF, FormatSVG:
		return f, nil
	case "jpg", "jpeg":
		return "", fmt.Errorf("%w %s（请使用 png）", ErrUnsupportedFormat, s)
	default:
		return "", fmt.Errorf("%w %s", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath picks the format from a file extension, falling back to def.
func FormatFromPath(path string, def Format) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil && filepath.Ext(path) != "" {
		return f
	}
	return def
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}
