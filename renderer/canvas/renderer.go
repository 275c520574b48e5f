package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/codeshot/fonts"
	"github.com/ByLCY/codeshot/layout"
	"github.com/ByLCY/codeshot/renderer"
)

// Renderer draws layout results via github.com/tdewolff/canvas.
type Renderer struct {
	fonts  fonts.Source
	cache  *fontCache
	logger *log.Logger
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	// Fonts is used for text measurement; drawing uses the render context's source.
	Fonts  fonts.Source
	Logger *log.Logger
}

// NewRenderer creates a renderer that measures text with the given font source.
func NewRenderer(src fonts.Source) *Renderer { return NewRendererWithOptions(Options{Fonts: src}) }

// NewRendererWithOptions creates a renderer. The font cache lives as long as the renderer.
func NewRendererWithOptions(opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Renderer{
		fonts:  opts.Fonts,
		cache:  newFontCache(logger),
		logger: logger,
	}
}

// Render 执行绘制并按 rc.Format 编码。任何节点绘制失败都会中止并返回错误，不产生部分图片。
func (r *Renderer) Render(tree *layout.Tree, result *layout.Result, rc *renderer.Context) ([]byte, error) {
	if result == nil || len(result.Order) == 0 || result.Width <= 0 || result.Height <= 0 {
		return nil, renderer.ErrEmptyResult
	}
	if rc == nil {
		return nil, fmt.Errorf("渲染上下文为空")
	}

	c := canvas.New(result.Width, result.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	if err := r.Draw(ctx, tree, result, rc); err != nil {
		return nil, err
	}

	data, err := r.encode(c, result, rc)
	if err != nil {
		return nil, renderer.Fail(renderer.StageEncode, nil, err)
	}
	r.logger.Debug("encoded", "format", rc.Format, "nodes", len(result.Order), "bytes", len(data))
	return data, nil
}

func (r *Renderer) encode(c *canvas.Canvas, result *layout.Result, rc *renderer.Context) ([]byte, error) {
	var buf bytes.Buffer
	switch rc.Format {
	case renderer.FormatPDF:
		writer := pdf.New(&buf, result.Width, result.Height, nil)
		r.applyMeta(writer, rc)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case renderer.FormatSVG:
		writer := svg.New(&buf, result.Width, result.Height, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	case renderer.FormatPNG, "":
		scale := rc.ScaleFactor
		if scale <= 0 {
			scale = 1
		}
		img := rasterizer.Draw(c, canvas.DPMM(scale), canvas.DefaultColorSpace)
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("编码 PNG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的输出格式 %s", rc.Format)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, rc *renderer.Context) {
	if writer == nil || rc.Params == nil {
		return
	}
	p := rc.Params
	title := p.Window.Title
	if title == "" {
		title = p.Name
	}
	writer.SetInfo(title, p.Code.File, p.Code.Language, "", "codeshot")
}

// MeasureText 实现 layout.Typesetter 接口，返回最长一行的宽度（逻辑像素）。
func (r *Renderer) MeasureText(content, fontFamily string, fontSize float64) (float64, error) {
	entry, err := r.cache.family(r.fonts, fontFamily)
	if err != nil {
		return 0, renderer.Fail(renderer.StageFont, nil, err)
	}
	face := entry.face(fontSize, layout.RGB(0, 0, 0), canvas.FontRegular)
	var widest float64
	for _, line := range layout.SplitLines(content) {
		widest = max(widest, face.TextWidth(line))
	}
	return widest, nil
}

func (r *Renderer) fontRenderer(rc *renderer.Context, fontSize, lineHeight float64) *FontRenderer {
	return &FontRenderer{
		FontSize:    fontSize,
		LineHeight:  lineHeight,
		ScaleFactor: rc.ScaleFactor,
		Source:      rc.Fonts,
		cache:       r.cache,
	}
}
