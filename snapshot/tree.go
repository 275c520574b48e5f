package snapshot

import (
	"fmt"

	"github.com/ByLCY/codeshot/config"
	"github.com/ByLCY/codeshot/highlight"
	"github.com/ByLCY/codeshot/layout"
)

const (
	// titleGap separates the window controls from the title.
	titleGap = 12.0
	// sectionGap separates the title bar from the editor and the window from the watermark.
	sectionGap = 16.0
	// textLineFactor is the line height of chrome text relative to its font size.
	textLineFactor = 1.4
)

// Nodes records the ids of the interesting nodes of a snapshot tree.
type Nodes struct {
	Root, Window, TitleBar, Editor    layout.NodeID
	Controls, Title, LineNumber, Code layout.NodeID
	Watermark                         layout.NodeID
}

// BuildTree 组装快照的组件树：
//
//	root(Column, 背景, padding=margin)
//	└─ window(Column, 主题背景, 圆角, padding)
//	   ├─ titlebar(Row: controls, title)
//	   └─ editor(Row: line numbers, code)
//	└─ watermark
//
// 没有按钮和标题时省略 titlebar；未开启行号时行号节点存在但不参与布局。
func BuildTree(params *config.Snapshot, theme *highlight.Theme, ts layout.Typesetter) (*layout.Tree, Nodes, error) {
	nodes := Nodes{
		TitleBar: layout.NoParent, Controls: layout.NoParent, Title: layout.NoParent,
		Watermark: layout.NoParent,
	}
	lineHeight, err := params.Code.LineHeightPX()
	if err != nil {
		return nil, nodes, err
	}
	background := config.MustColor(params.Output.Background, layout.RGBA(0, 0, 0, 0))

	tree := layout.NewTree()
	nodes.Root = tree.AddContainer(layout.NoParent, layout.DefaultStyle().
		WithPadding(layout.Uniform(params.Window.MarginPX())).
		Fill(background, 0))
	nodes.Window = tree.AddContainer(nodes.Root, layout.DefaultStyle().
		WithPadding(layout.Uniform(params.Window.PaddingPX())).
		Fill(theme.Background(), params.Window.RadiusPX()))

	title := params.Window.Title
	if params.Window.ShowControls() || title != "" {
		nodes.TitleBar = tree.AddContainer(nodes.Window, layout.DefaultStyle().
			Align(layout.Row, titleGap).
			WithMargin(layout.Edges{Bottom: sectionGap}))
		if params.Window.ShowControls() {
			nodes.Controls = tree.AddControls(nodes.TitleBar, layout.DefaultControls())
		}
		if title != "" {
			fg := theme.Foreground()
			fg.A = 200
			txt, err := layout.NewText(title, params.Code.FontFamily, params.Code.FontSize,
				params.Code.FontSize*textLineFactor, fg, ts)
			if err != nil {
				return nil, nodes, fmt.Errorf("窗口标题: %w", err)
			}
			nodes.Title = tree.AddText(nodes.TitleBar, txt)
		}
	}

	code := layout.NewCode(params.Code.Content, lineHeight, params.Code.FontSize)
	for _, h := range params.Code.Highlights {
		lh, err := h.Layout()
		if err != nil {
			return nil, nodes, err
		}
		code.Highlights = append(code.Highlights, lh)
	}
	nodes.Editor = tree.AddContainer(nodes.Window, layout.DefaultStyle().Align(layout.Row, 0))
	nodes.LineNumber = tree.AddLineNumber(nodes.Editor,
		layout.NewLineNumber(len(code.Lines()), params.Code.StartLine(), lineHeight))
	nodes.Code = tree.AddCode(nodes.Editor, code)

	if wm := params.Watermark; wm != nil && wm.Text != "" {
		col := config.MustColor(wm.Color, layout.RGB(255, 255, 255))
		txt, err := layout.NewText(wm.Text, params.Code.FontFamily, wm.FontSize, wm.FontSize*textLineFactor, col, ts)
		if err != nil {
			return nil, nodes, fmt.Errorf("水印: %w", err)
		}
		nodes.Watermark = tree.AddText(nodes.Root, txt)
		tree.Node(nodes.Watermark).Container.Margin = layout.Edges{Top: sectionGap}
	}
	return tree, nodes, nil
}
