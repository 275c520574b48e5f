package canvasrenderer

import (
	"errors"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/codeshot/fonts"
	"github.com/ByLCY/codeshot/highlight"
	"github.com/ByLCY/codeshot/layout"
	"github.com/ByLCY/codeshot/renderer"
)

var errNoTheme = errors.New("渲染上下文缺少主题")

// Draw 执行渲染阶段：按布局顺序逐个绘制节点，后绘制的兄弟节点覆盖先绘制的。
func (r *Renderer) Draw(dc *canvas.Context, tree *layout.Tree, result *layout.Result, rc *renderer.Context) error {
	return renderer.Walk(tree, result, func(n *layout.Node, box, parent layout.Box) error {
		switch n.Kind {
		case layout.KindContainer:
			drawContainer(dc, n.Container, box)
			return nil
		case layout.KindCode:
			return r.drawCode(dc, n, box, parent, rc)
		case layout.KindLineNumber:
			return r.drawLineNumber(dc, n, box, rc)
		case layout.KindText:
			return r.drawText(dc, n, box, rc)
		case layout.KindControls:
			drawControls(dc, n.Controls, box)
			return nil
		default:
			return nil
		}
	})
}

func drawContainer(dc *canvas.Context, style layout.RawStyle, box layout.Box) {
	if style.Background == nil || style.Background.A == 0 {
		return
	}
	dc.SetFillColor(colorFromLayout(*style.Background))
	if style.Radius > 0 {
		dc.DrawPath(box.X, box.Y, canvas.RoundedRectangle(box.Width, box.Height, style.Radius))
		return
	}
	dc.DrawPath(box.X, box.Y, canvas.Rectangle(box.Width, box.Height))
}

func (r *Renderer) drawCode(dc *canvas.Context, n *layout.Node, box, parent layout.Box, rc *renderer.Context) error {
	if rc.Theme == nil {
		return renderer.Fail(renderer.StageHighlight, n, errNoTheme)
	}
	code := n.Code
	family, language, file := fonts.DefaultFamily, "", ""
	if p := rc.Params; p != nil {
		family, language, file = p.Code.FontFamily, p.Code.Language, p.Code.File
	}

	lines, err := rc.Theme.Parse(highlight.New(code.Value, family, language, file))
	if err != nil {
		return renderer.Fail(renderer.StageHighlight, n, err)
	}

	drawHighlightBands(dc, code, box, parent)

	fr := r.fontRenderer(rc, code.FontSize, code.LineHeight)
	if err := fr.DrawText(dc, box.X, box.Y, box.Width, box.Height, lines); err != nil {
		return renderer.Fail(renderer.StageFont, n, err)
	}
	return nil
}

// drawHighlightBands 在文字之前为标记的行铺满编辑区宽度的色带。
func drawHighlightBands(dc *canvas.Context, code *layout.Code, box, parent layout.Box) {
	if len(code.Highlights) == 0 {
		return
	}
	x, w := box.X, box.Width
	if content := parent.Content(); content.Width > 0 {
		x, w = content.X, content.Width
	}
	count := len(code.Lines())
	for line := 1; line <= count; line++ {
		for _, h := range code.Highlights {
			if !h.Contains(line) {
				continue
			}
			dc.SetFillColor(colorFromLayout(h.Color))
			dc.DrawPath(x, box.Y+float64(line-1)*code.LineHeight, canvas.Rectangle(w, code.LineHeight))
			break
		}
	}
}

func (r *Renderer) drawLineNumber(dc *canvas.Context, n *layout.Node, box layout.Box, rc *renderer.Context) error {
	ln := n.LineNumber
	family := fonts.DefaultFamily
	if rc.Params != nil {
		family = rc.Params.Code.FontFamily
	}
	style := highlight.SpanStyle{Color: layout.LineNumberColor, FontFamily: family}
	lines := make([]highlight.Line, 0, len(ln.Content))
	for _, s := range ln.Content {
		lines = append(lines, highlight.Line{{Text: s, Style: style}})
	}
	fr := r.fontRenderer(rc, layout.LineNumberFontSize, ln.LineHeight)
	if err := fr.DrawText(dc, box.X, box.Y, box.Width, box.Height, lines); err != nil {
		return renderer.Fail(renderer.StageFont, n, err)
	}
	return nil
}

func (r *Renderer) drawText(dc *canvas.Context, n *layout.Node, box layout.Box, rc *renderer.Context) error {
	t := n.Text
	style := highlight.SpanStyle{Color: t.Color, FontFamily: t.FontFamily}
	var lines []highlight.Line
	for _, s := range layout.SplitLines(t.Content) {
		lines = append(lines, highlight.Line{{Text: s, Style: style}})
	}
	fr := r.fontRenderer(rc, t.FontSize, t.LineHeight)
	if err := fr.DrawText(dc, box.X, box.Y, box.Width, box.Height, lines); err != nil {
		return renderer.Fail(renderer.StageFont, n, err)
	}
	return nil
}

func drawControls(dc *canvas.Context, c *layout.Controls, box layout.Box) {
	for i, col := range c.Colors {
		cx := box.X + c.Radius + float64(i)*(2*c.Radius+c.Gap)
		cy := box.Y + c.Radius
		dc.SetFillColor(colorFromLayout(col))
		dc.DrawPath(cx, cy, canvas.Circle(c.Radius))
	}
}
