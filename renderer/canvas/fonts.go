package canvasrenderer

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/codeshot/fonts"
	"github.com/ByLCY/codeshot/layout"
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	styles map[canvas.FontStyle]bool
	origin fonts.Origin
}

// face 返回指定字形的字体面；缺失的字形回退到常规体。size 为逻辑像素。
func (e *fontFamilyEntry) face(size float64, col layout.Color, style canvas.FontStyle) *canvas.FontFace {
	if !e.styles[style] {
		style = canvas.FontRegular
	}
	return e.family.Face(layout.FacePoints(size), colorFromLayout(col), style, canvas.FontNormal)
}

// fontCache 按 (字体目录, 字体族) 缓存已加载的字体族，可在多个任务之间共享。
type fontCache struct {
	mu       sync.Mutex
	families map[string]*fontFamilyEntry
	logger   *log.Logger
}

func newFontCache(logger *log.Logger) *fontCache {
	return &fontCache{families: map[string]*fontFamilyEntry{}, logger: logger}
}

func (c *fontCache) family(src fonts.Source, name string) (*fontFamilyEntry, error) {
	if name == "" {
		name = fonts.DefaultFamily
	}
	key := src.Dir + "|" + name
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.families[key]; ok {
		return entry, nil
	}

	faces, origin, err := src.Lookup(name)
	if err != nil {
		return nil, err
	}
	entry, err := loadFamily(name, faces, origin)
	if err != nil {
		if origin == fonts.OriginBuiltin {
			return nil, err
		}
		c.logger.Warn("字体加载失败，使用内置字体", "family", name, "origin", origin, "err", err)
		entry, err = loadFamily(fonts.DefaultFamily, fonts.Builtin(), fonts.OriginBuiltin)
		if err != nil {
			return nil, err
		}
	}
	c.logger.Debug("字体已加载", "family", name, "origin", entry.origin, "styles", len(entry.styles))
	c.families[key] = entry
	return entry, nil
}

func loadFamily(name string, faces fonts.Faces, origin fonts.Origin) (*fontFamilyEntry, error) {
	family := canvas.NewFontFamily(name)
	entry := &fontFamilyEntry{family: family, styles: map[canvas.FontStyle]bool{}, origin: origin}
	for _, style := range []fonts.Style{fonts.Regular, fonts.Bold, fonts.Italic, fonts.BoldItalic} {
		data, ok := faces[style]
		if !ok {
			continue
		}
		cs := canvasStyle(style)
		if err := family.LoadFont(data, 0, cs); err != nil {
			if style == fonts.Regular {
				return nil, fmt.Errorf("加载字体 %s (%s) 失败: %w", name, style, err)
			}
			continue
		}
		entry.styles[cs] = true
	}
	if !entry.styles[canvas.FontRegular] {
		return nil, fmt.Errorf("字体 %s 缺少常规字形", name)
	}
	return entry, nil
}

func canvasStyle(s fonts.Style) canvas.FontStyle {
	switch s {
	case fonts.Bold:
		return canvas.FontBold
	case fonts.Italic:
		return canvas.FontRegular | canvas.FontItalic
	case fonts.BoldItalic:
		return canvas.FontBold | canvas.FontItalic
	default:
		return canvas.FontRegular
	}
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(c.A)/255.0)
}
