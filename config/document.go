package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ByLCY/codeshot/dsl"
	"github.com/ByLCY/codeshot/layout"
)

// Load 解析 DSL 文件并生成快照：相对路径的 source 与字体目录按文件所在目录解析。
func Load(path string, data any, defaults Defaults) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开 DSL 文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析 DSL 失败: %w", err)
	}
	s, err := convert(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := s.ResolveSource(dir); err != nil {
		return nil, err
	}
	if s.Fonts.Dir != "" && !filepath.IsAbs(s.Fonts.Dir) {
		s.Fonts.Dir = filepath.Join(dir, s.Fonts.Dir)
	}
	s.ApplyDefaults(defaults)
	s.Bind(data)
	return s, nil
}

// FromDocument converts a parsed DSL document, applies defaults and expands placeholders.
func FromDocument(doc *dsl.Document, data any, defaults Defaults) (*Snapshot, error) {
	s, err := convert(doc)
	if err != nil {
		return nil, err
	}
	s.ApplyDefaults(defaults)
	s.Bind(data)
	return s, nil
}

func convert(doc *dsl.Document) (*Snapshot, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	s := &Snapshot{Name: doc.Name}
	seen := map[string]bool{}
	for _, sec := range doc.Sections {
		kind := sec.Kind()
		if seen[kind] {
			return nil, fmt.Errorf("重复的 %s 段", kind)
		}
		seen[kind] = true

		var err error
		switch {
		case sec.Code != nil:
			err = convertCode(&s.Code, sec.Code)
		case sec.Window != nil:
			err = convertWindow(&s.Window, sec.Window)
		case sec.Watermark != nil:
			s.Watermark = &Watermark{}
			err = convertWatermark(s.Watermark, sec.Watermark)
		case sec.Fonts != nil:
			err = eachAssignment(sec.Fonts, kind, func(key string, v *dsl.Value) error {
				if key != "dir" {
					return errUnknownKey
				}
				s.Fonts.Dir = v.Text()
				return nil
			})
		case sec.Output != nil:
			err = convertOutput(&s.Output, sec.Output)
		}
		if err != nil {
			return nil, err
		}
	}
	if !seen["code"] {
		return nil, fmt.Errorf("缺少 code 段")
	}
	return s, nil
}

func convertCode(c *Code, sec *dsl.CodeSection) error {
	if sec.Language != nil {
		c.Language = *sec.Language
	}
	for _, st := range sec.Block.Statements {
		if st.Text != nil {
			c.Content = string(st.Text.Value)
		}
	}
	err := eachAssignment(sec.Block, "code", func(key string, v *dsl.Value) error {
		var err error
		switch key {
		case "content":
			c.Content = v.Text()
		case "source", "src":
			c.Source = v.Text()
		case "file":
			c.File = v.Text()
		case "language":
			c.Language = v.Text()
		case "font-family":
			c.FontFamily = v.Text()
		case "font-size":
			c.FontSize, err = length(v)
		case "line-height":
			c.LineHeight = v.Text()
		default:
			return errUnknownKey
		}
		return err
	})
	if err != nil {
		return err
	}

	for _, cmd := range sec.Block.Commands() {
		switch cmd.Name {
		case "line-number":
			ln, err := convertLineNumber(cmd)
			if err != nil {
				return err
			}
			c.LineNumber = ln
		case "highlight":
			h, err := convertHighlight(cmd)
			if err != nil {
				return err
			}
			c.Highlights = append(c.Highlights, h)
		default:
			return fmt.Errorf("code 段中未知的指令 %s（行 %d）", cmd.Name, cmd.Pos.Line)
		}
	}
	return nil
}

// convertLineNumber accepts `line-number`, `line-number 5` and `line-number { start: 5 }`.
func convertLineNumber(cmd *dsl.Command) (*LineNumber, error) {
	ln := &LineNumber{StartNumber: 1}
	if len(cmd.Args) > 0 {
		n, err := strconv.Atoi(cmd.Args[0].Value)
		if err != nil {
			return nil, fmt.Errorf("line-number 起始行无效 %q: %w", cmd.Args[0].Value, err)
		}
		ln.StartNumber = n
	}
	err := eachAssignment(cmd.Block, "line-number", func(key string, v *dsl.Value) error {
		if key != "start" {
			return errUnknownKey
		}
		n, err := strconv.Atoi(v.Text())
		if err != nil {
			return err
		}
		ln.StartNumber = n
		return nil
	})
	return ln, err
}

// convertHighlight accepts `highlight <line> <color>` and `highlight <start> <end> <color>`.
func convertHighlight(cmd *dsl.Command) (HighlightLine, error) {
	args := cmd.Args
	if len(args) < 2 || len(args) > 3 {
		return HighlightLine{}, fmt.Errorf("highlight 需要 2 或 3 个参数（行 %d）", cmd.Pos.Line)
	}
	var h HighlightLine
	var err error
	if h.Start, err = strconv.Atoi(args[0].Value); err != nil {
		return HighlightLine{}, fmt.Errorf("highlight 起始行无效 %q: %w", args[0].Value, err)
	}
	if len(args) == 3 {
		if h.End, err = strconv.Atoi(args[1].Value); err != nil {
			return HighlightLine{}, fmt.Errorf("highlight 结束行无效 %q: %w", args[1].Value, err)
		}
	}
	h.Color = args[len(args)-1].Value
	return h, nil
}

func convertWindow(w *Window, block *dsl.Block) error {
	return eachAssignment(block, "window", func(key string, v *dsl.Value) error {
		var err error
		switch key {
		case "title":
			w.Title = v.Text()
		case "controls":
			var show bool
			show, err = strconv.ParseBool(v.Text())
			w.Controls = &show
		case "margin":
			w.Margin, err = lengthPtr(v)
		case "padding":
			w.Padding, err = lengthPtr(v)
		case "radius":
			w.Radius, err = lengthPtr(v)
		default:
			return errUnknownKey
		}
		return err
	})
}

func convertWatermark(wm *Watermark, block *dsl.Block) error {
	return eachAssignment(block, "watermark", func(key string, v *dsl.Value) error {
		var err error
		switch key {
		case "text":
			wm.Text = v.Text()
		case "color":
			wm.Color = v.Text()
		case "font-size":
			wm.FontSize, err = length(v)
		default:
			return errUnknownKey
		}
		return err
	})
}

func convertOutput(o *Output, block *dsl.Block) error {
	return eachAssignment(block, "output", func(key string, v *dsl.Value) error {
		var err error
		switch key {
		case "scale":
			o.Scale, err = strconv.ParseFloat(v.Text(), 64)
		case "theme":
			o.Theme = v.Text()
		case "background":
			o.Background = v.Text()
		case "format":
			o.Format = v.Text()
		default:
			return errUnknownKey
		}
		return err
	})
}

var errUnknownKey = errors.New("unknown key")

func eachAssignment(block *dsl.Block, section string, fn func(key string, v *dsl.Value) error) error {
	for _, a := range block.Assignments() {
		if err := fn(a.Key, a.Value); err != nil {
			if errors.Is(err, errUnknownKey) {
				return fmt.Errorf("%s 段中未知的属性 %s", section, a.Key)
			}
			return fmt.Errorf("%s.%s: %w", section, a.Key, err)
		}
	}
	return nil
}

// length 解析绝对长度并换算为逻辑像素，不接受百分比。
func length(v *dsl.Value) (float64, error) {
	if v == nil || v.Number == nil {
		return 0, fmt.Errorf("需要数值，得到 %q", v.Text())
	}
	l := layout.ParseRawLengthStr(*v.Number)
	if l.Unit == layout.UnitPercent {
		return 0, fmt.Errorf("不支持单位 %s: %q", l.Unit, *v.Number)
	}
	return l.ToPX(), nil
}

func lengthPtr(v *dsl.Value) (*float64, error) {
	n, err := length(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
