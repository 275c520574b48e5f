package canvasrenderer

import (
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/codeshot/fonts"
	"github.com/ByLCY/codeshot/highlight"
	"github.com/ByLCY/codeshot/layout"
)

// FontRenderer 把已着色的行绘制到画布上，每个 Line 占一个行高。
// 坐标、字号与行高均为逻辑像素（画布上的 mm）。
type FontRenderer struct {
	FontSize    float64
	LineHeight  float64
	ScaleFactor float64
	Source      fonts.Source

	cache *fontCache
}

// DrawText draws lines inside the box (x, y, w, h). Lines below the box are skipped;
// w is advisory since measured glyph widths may exceed the monospace estimate.
// The text of each line is vertically centred in its line box.
func (f *FontRenderer) DrawText(dc *canvas.Context, x, y, w, h float64, lines []highlight.Line) error {
	for i, line := range lines {
		top := y + float64(i)*f.LineHeight
		if top+f.LineHeight > y+h+1e-6 {
			break
		}
		cursor := x
		for _, span := range line {
			entry, err := f.cache.family(f.Source, span.Style.FontFamily)
			if err != nil {
				return err
			}
			style := canvasStyle(fonts.StyleOf(span.Style.Bold, span.Style.Italic))
			face := entry.face(f.FontSize, span.Style.Color, style)

			// 基线：行顶 + 半行距 + 上升部
			metrics := face.Metrics()
			baseline := top + (f.LineHeight-metrics.LineHeight)/2 + metrics.Ascent
			dc.DrawText(cursor, baseline, canvas.NewTextLine(face, span.Text, canvas.Left))

			width := face.TextWidth(span.Text)
			if span.Style.Underline {
				f.underline(dc, span.Style.Color, cursor, baseline, width)
			}
			cursor += width
		}
	}
	return nil
}

// underline 绘制一条一个设备像素粗的下划线。
func (f *FontRenderer) underline(dc *canvas.Context, col layout.Color, x, baseline, width float64) {
	thickness := 1.0
	if f.ScaleFactor > 0 {
		thickness = 1 / f.ScaleFactor
	}
	dc.SetFillColor(colorFromLayout(col))
	dc.DrawPath(x, baseline+thickness, canvas.Rectangle(width, thickness))
}
