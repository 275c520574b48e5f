package layout

import (
	"errors"
	"testing"
)

func editorTree(start *int) (*Tree, NodeID, NodeID, NodeID) {
	tree := NewTree()
	root := tree.AddContainer(NoParent, DefaultStyle().Align(Row, 0).WithPadding(Uniform(10)))
	code := NewCode("a\nbb\nccc", 20, 14)
	ln := tree.AddLineNumber(root, NewLineNumber(len(code.Lines()), start, 20))
	cd := tree.AddCode(root, code)
	return tree, root, ln, cd
}

func TestComputeRowWithLineNumbers(t *testing.T) {
	tree, root, ln, cd := editorTree(intPtr(1))
	res := Compute(tree, Options{})

	lnBox, ok := res.Box(ln)
	if !ok {
		t.Fatalf("行号节点缺少布局结果")
	}
	if lnBox.X != 10 || lnBox.Y != 10 || !approx(lnBox.Width, CharWidth) || lnBox.Height != 60 {
		t.Fatalf("行号盒子不符: %#v", lnBox)
	}
	codeBox, _ := res.Box(cd)
	if !approx(codeBox.X, 10+CharWidth+LineNumberGap) || codeBox.Y != 10 {
		t.Fatalf("代码块位置应计入行号的右边距: %#v", codeBox)
	}
	if codeBox.Width != MinWidth || codeBox.Height != 60 {
		t.Fatalf("代码块尺寸不符: %#v", codeBox)
	}
	rootBox, _ := res.Box(root)
	wantW := 10 + CharWidth + LineNumberGap + MinWidth + 10
	if !approx(rootBox.Width, wantW) || rootBox.Height != 80 {
		t.Fatalf("根容器尺寸不符: %#v", rootBox)
	}
	if !approx(res.Width, wantW) || res.Height != 80 {
		t.Fatalf("结果尺寸不符: %g x %g", res.Width, res.Height)
	}
}

// 未开启行号时，行号节点不参与布局，代码块直接从内容区域起点开始。
func TestComputeSkipsHiddenNodes(t *testing.T) {
	tree, root, ln, cd := editorTree(nil)
	res := Compute(tree, Options{})
	if _, ok := res.Box(ln); ok {
		t.Fatalf("禁用的行号节点不应有盒子")
	}
	for _, id := range res.Order {
		if id == ln {
			t.Fatalf("禁用的行号节点不应出现在绘制顺序中")
		}
	}
	codeBox, _ := res.Box(cd)
	if codeBox.X != 10 {
		t.Fatalf("代码块 X 期望 10，实际 %g", codeBox.X)
	}
	rootBox, _ := res.Box(root)
	if rootBox.Width != MinWidth+20 {
		t.Fatalf("隐藏节点不应贡献尺寸: %#v", rootBox)
	}

	tree.Node(cd).Hidden = true
	res = Compute(tree, Options{})
	if rootBox, _ := res.Box(root); rootBox.Width != 20 || rootBox.Height != 20 {
		t.Fatalf("全部子节点隐藏时容器只剩内边距: %#v", rootBox)
	}
}

// margin 只推动后续兄弟节点，不改变节点自身尺寸。
func TestComputeMarginAccumulates(t *testing.T) {
	tree := NewTree()
	root := tree.AddContainer(NoParent, DefaultStyle())
	first := tree.AddContainer(root, DefaultStyle().Size(Num(10), Num(10)).WithMargin(Edges{Top: 2, Bottom: 5, Left: 3}))
	second := tree.AddContainer(root, DefaultStyle().Size(Num(10), Num(10)))
	res := Compute(tree, Options{})

	a, _ := res.Box(first)
	b, _ := res.Box(second)
	if a.X != 3 || a.Y != 2 || a.Width != 10 || a.Height != 10 {
		t.Fatalf("第一个节点盒子不符: %#v", a)
	}
	if b.X != 0 || b.Y != 17 {
		t.Fatalf("第二个节点应位于 (0,17)，实际 (%g,%g)", b.X, b.Y)
	}
	rootBox, _ := res.Box(root)
	if rootBox.Width != 13 || rootBox.Height != 27 {
		t.Fatalf("容器尺寸应包含子节点 margin: %#v", rootBox)
	}
}

func TestComputeGap(t *testing.T) {
	tree := NewTree()
	root := tree.AddContainer(NoParent, DefaultStyle().Align(Row, 8))
	tree.AddContainer(root, DefaultStyle().Size(Num(10), Num(4)))
	last := tree.AddContainer(root, DefaultStyle().Size(Num(10), Num(6)))
	res := Compute(tree, Options{})
	if b, _ := res.Box(last); b.X != 18 {
		t.Fatalf("gap 未生效: %#v", b)
	}
	if b, _ := res.Box(root); b.Width != 28 || b.Height != 6 {
		t.Fatalf("容器尺寸不符: %#v", b)
	}
}

func TestComputePercentResolvesAgainstParentContent(t *testing.T) {
	tree := NewTree()
	root := tree.AddContainer(NoParent, DefaultStyle().Size(Num(200), Num(100)).WithPadding(Edges{Left: 20, Right: 20}))
	child := tree.AddContainer(root, DefaultStyle().Size(Percent(50), Percent(25)))
	grandchild := tree.AddContainer(child, DefaultStyle().Size(Percent(100), Num(5)))
	res := Compute(tree, Options{})

	cb, _ := res.Box(child)
	if cb.X != 20 || cb.Width != 80 || cb.Height != 25 {
		t.Fatalf("百分比子节点盒子不符: %#v", cb)
	}
	gb, _ := res.Box(grandchild)
	if gb.Width != 80 || gb.Height != 5 {
		t.Fatalf("嵌套百分比盒子不符: %#v", gb)
	}
}

// TestComputeResolutionOrder 验证确定性的解析顺序：任何节点都在其父节点之后出现。
func TestComputeResolutionOrder(t *testing.T) {
	tree := NewTree()
	root := tree.AddContainer(NoParent, DefaultStyle().Size(Num(300), Num(300)))
	a := tree.AddContainer(root, DefaultStyle().Size(Percent(50), Percent(50)).Align(Row, 0))
	tree.AddContainer(a, DefaultStyle().Size(Percent(10), Num(1)))
	tree.AddContainer(a, DefaultStyle().Size(Num(3), Percent(10)))
	tree.AddContainer(root, DefaultStyle().Size(Num(1), Num(1)))

	first := Compute(tree, Options{})
	second := Compute(tree, Options{})
	if len(first.Order) != tree.Len() {
		t.Fatalf("绘制顺序应包含全部 %d 个节点，实际 %d", tree.Len(), len(first.Order))
	}
	seen := map[NodeID]bool{}
	for i, id := range first.Order {
		if p := tree.Node(id).Parent; p != NoParent && !seen[p] {
			t.Fatalf("节点 %d 在父节点 %d 之前被解析", id, p)
		}
		seen[id] = true
		if second.Order[i] != id {
			t.Fatalf("两次布局的顺序不一致")
		}
	}
}

// 根节点使用百分比但没有视口，属于编程错误。
func TestComputePercentRootWithoutViewportPanics(t *testing.T) {
	tree := NewTree()
	tree.AddContainer(NoParent, DefaultStyle().Size(Percent(50), Num(10)))

	func() {
		defer func() {
			r := recover()
			err, ok := r.(error)
			if !ok || !errors.Is(err, ErrUnresolvedParent) {
				t.Fatalf("期望 ErrUnresolvedParent panic，实际 %v", r)
			}
		}()
		Compute(tree, Options{})
	}()

	res := Compute(tree, Options{Viewport: &Box{Width: 400, Height: 100}})
	if b, _ := res.Box(tree.Root()); b.Width != 200 || b.Height != 10 {
		t.Fatalf("有视口时应正常解析: %#v", b)
	}
}

func TestComputeEmptyTree(t *testing.T) {
	res := Compute(NewTree(), Options{})
	if len(res.Order) != 0 || res.Width != 0 || res.Height != 0 {
		t.Fatalf("空树应得到空结果: %#v", res)
	}
}
