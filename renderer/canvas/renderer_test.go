package canvasrenderer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/codeshot/config"
	"github.com/ByLCY/codeshot/fonts"
	"github.com/ByLCY/codeshot/highlight"
	"github.com/ByLCY/codeshot/layout"
	"github.com/ByLCY/codeshot/renderer"
)

func testContext(t *testing.T, language string, format renderer.Format) *renderer.Context {
	t.Helper()
	provider, err := highlight.NewProvider("dracula", nil, nil)
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	return &renderer.Context{
		ScaleFactor: 1,
		Theme:       provider,
		Params: &config.Snapshot{Code: config.Code{
			Language:   language,
			FontFamily: fonts.DefaultFamily,
		}},
		Format: format,
	}
}

// editor 构造一个带背景、窗口按钮、行号与代码的最小组件树。
func editor(t *testing.T, r *Renderer) (*layout.Tree, *layout.Result) {
	t.Helper()
	tree := layout.NewTree()
	root := tree.AddContainer(layout.NoParent, layout.DefaultStyle().
		WithPadding(layout.Uniform(8)).
		Fill(layout.RGB(40, 42, 54), 6))
	tree.AddControls(root, layout.DefaultControls())
	row := tree.AddContainer(root, layout.DefaultStyle().Align(layout.Row, 0))
	code := layout.NewCode("package main\n\nfunc main() {}", 20, 14)
	code.Highlights = []layout.LineHighlight{{Start: 3, End: 3, Color: layout.RGBA(255, 255, 255, 32)}}
	one := 1
	tree.AddLineNumber(row, layout.NewLineNumber(len(code.Lines()), &one, 20))
	tree.AddCode(row, code)
	title, err := layout.NewText("main.go", fonts.DefaultFamily, 12, 16, layout.RGB(200, 200, 200), r)
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	tree.AddText(root, title)
	return tree, layout.Compute(tree, layout.Options{})
}

// TestRenderIsDeterministic 验证同一输入渲染两次得到完全相同的字节。
func TestRenderIsDeterministic(t *testing.T) {
	r := NewRenderer(fonts.Source{})
	tree, res := editor(t, r)
	rc := testContext(t, "go", renderer.FormatPNG)

	first, err := r.Render(tree, res, rc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := r.Render(tree, res, rc)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("two renders of the same tree differ")
	}
	if !bytes.HasPrefix(first, []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG")
	}
}

func TestRenderVectorFormats(t *testing.T) {
	r := NewRenderer(fonts.Source{})
	tree, res := editor(t, r)

	pdfBytes, err := r.Render(tree, res, testContext(t, "go", renderer.FormatPDF))
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	svgBytes, err := r.Render(tree, res, testContext(t, "go", renderer.FormatSVG))
	if err != nil {
		t.Fatalf("svg: %v", err)
	}
	if !bytes.Contains(svgBytes, []byte("<svg")) {
		t.Fatalf("output is not an SVG")
	}
}

// 未知语言应在高亮阶段失败，并且不返回任何图片数据。
func TestRenderUnsupportedLanguage(t *testing.T) {
	r := NewRenderer(fonts.Source{})
	tree, res := editor(t, r)

	data, err := r.Render(tree, res, testContext(t, "no-such-language", renderer.FormatPNG))
	if data != nil {
		t.Fatalf("partial output returned on error")
	}
	var re *renderer.RenderError
	if !errors.As(err, &re) || re.Stage != renderer.StageHighlight || re.Kind != layout.KindCode {
		t.Fatalf("expected highlight RenderError, got %v", err)
	}
	if !errors.Is(err, highlight.ErrUnsupportedSyntax) {
		t.Fatalf("cause lost: %v", err)
	}
}

func TestRenderEmptyResult(t *testing.T) {
	r := NewRenderer(fonts.Source{})
	_, err := r.Render(layout.NewTree(), &layout.Result{}, testContext(t, "go", renderer.FormatPNG))
	if !errors.Is(err, renderer.ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}

func TestMeasureTextMonospace(t *testing.T) {
	r := NewRenderer(fonts.Source{})
	short, err := r.MeasureText("abc", fonts.DefaultFamily, 14)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	long, err := r.MeasureText("abcdef\nxy", fonts.DefaultFamily, 14)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if short <= 0 {
		t.Fatalf("width must be positive, got %g", short)
	}
	if diff := long - 2*short; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("monospace widths should scale with length: %g vs %g", long, short)
	}
}

func TestFontCacheReusesFamilies(t *testing.T) {
	r := NewRenderer(fonts.Source{})
	a, err := r.cache.family(fonts.Source{}, "Unknown Family")
	if err != nil {
		t.Fatalf("family: %v", err)
	}
	b, err := r.cache.family(fonts.Source{}, "Unknown Family")
	if err != nil {
		t.Fatalf("family: %v", err)
	}
	if a != b {
		t.Fatalf("family should be cached")
	}
	if a.origin != fonts.OriginBuiltin || len(a.styles) != 4 {
		t.Fatalf("unknown family should fall back to builtin Go Mono: %+v", a)
	}
}

func TestCanvasStyleAndColor(t *testing.T) {
	if canvasStyle(fonts.BoldItalic) != canvas.FontBold|canvas.FontItalic {
		t.Fatalf("bold italic mapping wrong")
	}
	_, _, _, a := colorFromLayout(layout.RGBA(255, 255, 255, 0)).RGBA()
	if a != 0 {
		t.Fatalf("alpha must be kept, got %d", a)
	}
}
