// Package config describes one code snapshot: the code, the window around it and
// how the image is produced. Snapshots come from the DSL (FromDocument) or from
// JSON (the HTTP server); defaults come from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/codeshot/binding"
	"github.com/ByLCY/codeshot/layout"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid snapshot")

// Snapshot is the fully described input of one render job.
type Snapshot struct {
	Name      string     `json:"name,omitempty"`
	Code      Code       `json:"code"`
	Window    Window     `json:"window"`
	Watermark *Watermark `json:"watermark,omitempty"`
	Fonts     Fonts      `json:"fonts"`
	Output    Output     `json:"output"`
}

// Code 描述代码块本身。
type Code struct {
	Content    string          `json:"content"`
	Source     string          `json:"source,omitempty"`
	Language   string          `json:"language,omitempty"`
	File       string          `json:"file,omitempty"`
	FontFamily string          `json:"fontFamily,omitempty"`
	FontSize   float64         `json:"fontSize,omitempty"`
	LineHeight string          `json:"lineHeight,omitempty"`
	LineNumber *LineNumber     `json:"lineNumber,omitempty"`
	Highlights []HighlightLine `json:"highlights,omitempty"`
}

// LineNumber 存在即表示开启行号。
type LineNumber struct {
	StartNumber int `json:"start"`
}

// HighlightLine marks lines Start..End (1-based, inclusive) with a background color.
type HighlightLine struct {
	Start int    `json:"start"`
	End   int    `json:"end,omitempty"`
	Color string `json:"color"`
}

// Window 是包裹代码的窗口外观。
type Window struct {
	Title    string  `json:"title,omitempty"`
	Controls *bool   `json:"controls,omitempty"`
	// nil 表示未设置，使用默认值；显式的 0 会被保留。
	Margin  *float64 `json:"margin,omitempty"`
	Padding *float64 `json:"padding,omitempty"`
	Radius  *float64 `json:"radius,omitempty"`
}

// MarginPX returns the margin around the window, zero when unset.
func (w Window) MarginPX() float64 { return deref(w.Margin) }

// PaddingPX returns the padding inside the window, zero when unset.
func (w Window) PaddingPX() float64 { return deref(w.Padding) }

// RadiusPX returns the corner radius of the window, zero when unset.
func (w Window) RadiusPX() float64 { return deref(w.Radius) }

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func orDefault(p *float64, def float64) *float64 {
	if p != nil {
		return p
	}
	return &def
}

// ShowControls reports whether the traffic-light buttons are drawn.
func (w Window) ShowControls() bool {
	return w.Controls == nil || *w.Controls
}

// Watermark 是图片底部的一行文字。
type Watermark struct {
	Text     string  `json:"text"`
	Color    string  `json:"color,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
}

// Fonts configures where font files are looked up.
type Fonts struct {
	Dir string `json:"dir,omitempty"`
}

// Output controls rasterization and encoding.
type Output struct {
	Scale      float64 `json:"scale,omitempty"`
	Theme      string  `json:"theme,omitempty"`
	Background string  `json:"background,omitempty"`
	Format     string  `json:"format,omitempty"`
}

// ApplyDefaults fills every unset field from d.
func (s *Snapshot) ApplyDefaults(d Defaults) {
	c := &s.Code
	if c.FontFamily == "" {
		c.FontFamily = d.FontFamily
	}
	if c.FontSize == 0 {
		c.FontSize = d.FontSize
	}
	if c.LineHeight == "" {
		c.LineHeight = d.LineHeight
	}
	w := &s.Window
	if w.Controls == nil {
		show := d.Window.Controls
		w.Controls = &show
	}
	w.Margin = orDefault(w.Margin, d.Window.Margin)
	w.Padding = orDefault(w.Padding, d.Window.Padding)
	w.Radius = orDefault(w.Radius, d.Window.Radius)
	if wm := s.Watermark; wm != nil {
		if wm.Color == "" {
			wm.Color = d.Watermark.Color
		}
		if wm.FontSize == 0 {
			wm.FontSize = d.Watermark.FontSize
		}
	}
	if s.Fonts.Dir == "" {
		s.Fonts.Dir = d.FontsDir
	}
	o := &s.Output
	if o.Scale == 0 {
		o.Scale = d.Scale
	}
	if o.Theme == "" {
		o.Theme = d.Theme
	}
	if o.Background == "" {
		o.Background = d.Background
	}
	if o.Format == "" {
		o.Format = d.Format
	}
}

// Bind 展开标题和水印中的 ${...} 占位符。file 与 language 总是可用。
func (s *Snapshot) Bind(data any) {
	scope := binding.Merge(data, map[string]any{
		"file":     s.Code.File,
		"language": s.Code.Language,
		"name":     s.Name,
	})
	s.Window.Title = binding.Interpolate(s.Window.Title, scope)
	if s.Watermark != nil {
		s.Watermark.Text = binding.Interpolate(s.Watermark.Text, scope)
	}
}

// ResolveSource loads Code.Source relative to baseDir when no inline content is given.
func (s *Snapshot) ResolveSource(baseDir string) error {
	if s.Code.Content != "" || s.Code.Source == "" {
		return nil
	}
	path := s.Code.Source
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取代码文件 %s 失败: %w", s.Code.Source, err)
	}
	s.Code.Content = string(data)
	if s.Code.File == "" {
		s.Code.File = filepath.Base(s.Code.Source)
	}
	return nil
}

// LineHeightPX resolves the configured line height against the font size.
func (c Code) LineHeightPX() (float64, error) {
	spec, ok := layout.ParseLineHeight(c.LineHeight)
	if !ok {
		return 0, fmt.Errorf("%w: line-height %q", ErrInvalid, c.LineHeight)
	}
	return spec.Resolve(c.FontSize), nil
}

// StartLine returns the configured first line number, or nil when line numbers are off.
func (c Code) StartLine() *int {
	if c.LineNumber == nil {
		return nil
	}
	start := c.LineNumber.StartNumber
	return &start
}

// Validate 检查快照是否可以渲染。错误均包装 ErrInvalid。
func (s *Snapshot) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Code.Content) == "" {
		errs = append(errs, errors.New("code content is empty"))
	}
	if s.Code.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("font size must be positive, got %g", s.Code.FontSize))
	}
	if _, ok := layout.ParseLineHeight(s.Code.LineHeight); !ok {
		errs = append(errs, fmt.Errorf("bad line height %q", s.Code.LineHeight))
	}
	if ln := s.Code.LineNumber; ln != nil && ln.StartNumber < 0 {
		errs = append(errs, fmt.Errorf("start line must not be negative, got %d", ln.StartNumber))
	}
	for i, h := range s.Code.Highlights {
		if h.Start < 1 || (h.End != 0 && h.End < h.Start) {
			errs = append(errs, fmt.Errorf("highlight %d: bad range %d-%d", i, h.Start, h.End))
		}
		if _, err := ParseColor(h.Color); err != nil {
			errs = append(errs, fmt.Errorf("highlight %d: %w", i, err))
		}
	}
	if s.Output.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %g", s.Output.Scale))
	}
	if s.Output.Background != "" {
		if _, err := ParseColor(s.Output.Background); err != nil {
			errs = append(errs, fmt.Errorf("background: %w", err))
		}
	}
	if wm := s.Watermark; wm != nil && wm.Color != "" {
		if _, err := ParseColor(wm.Color); err != nil {
			errs = append(errs, fmt.Errorf("watermark: %w", err))
		}
	}
	if w := s.Window; w.MarginPX() < 0 || w.PaddingPX() < 0 || w.RadiusPX() < 0 {
		errs = append(errs, errors.New("window margin, padding and radius must not be negative"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
