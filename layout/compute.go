package layout

// Compute 对组件树执行布局，返回不可变的 Result。布局本身不会失败。
//
// 分两步深度优先遍历：
//  1. measure 自底向上计算固有尺寸（Num、内容尺寸、Dynamic 容器撑开的尺寸），
//     百分比尺寸在此阶段记为 0；
//  2. place 自顶向下解析百分比尺寸并确定位置。父节点总是先于子节点解析。
//
// margin 只影响节点自身的偏移以及后续兄弟节点的位置，不改变节点盒子的尺寸。
func Compute(t *Tree, opts Options) *Result {
	res := &Result{Boxes: map[NodeID]Box{}}
	root := t.Root()
	if root == NoParent {
		return res
	}
	n := t.Node(root)
	if !n.ShouldRender() {
		return res
	}

	c := &computer{tree: t, intrinsic: map[NodeID][2]float64{}, res: res}
	c.measure(root)

	var parent Box
	resolved := false
	if opts.Viewport != nil {
		parent = opts.Viewport.Content()
		resolved = true
	}
	style := n.Style()
	box := c.place(root, parent, resolved, parent.X+style.Margin.Left, parent.Y+style.Margin.Top)
	res.Width = box.X + box.Width + style.Margin.Right
	res.Height = box.Y + box.Height + style.Margin.Bottom
	return res
}

type computer struct {
	tree      *Tree
	intrinsic map[NodeID][2]float64
	res       *Result
}

func (c *computer) visibleChildren(n *Node) []*Node {
	var out []*Node
	for _, id := range n.Children() {
		child := c.tree.Node(id)
		if child.ShouldRender() {
			out = append(out, child)
		}
	}
	return out
}

func (c *computer) measure(id NodeID) (float64, float64) {
	n := c.tree.Node(id)
	style := n.Style()

	var mainSum, crossMax float64
	children := c.visibleChildren(n)
	for _, child := range children {
		w, h := c.measure(child.ID)
		cs := child.Style()
		outerW := w + cs.Margin.Horizontal()
		outerH := h + cs.Margin.Vertical()
		if style.Direction == Row {
			mainSum += outerW
			crossMax = max(crossMax, outerH)
		} else {
			mainSum += outerH
			crossMax = max(crossMax, outerW)
		}
	}
	if len(children) > 1 {
		mainSum += float64(len(children)-1) * style.Gap
	}

	dynW, dynH := crossMax, mainSum
	if style.Direction == Row {
		dynW, dynH = mainSum, crossMax
	}
	w := intrinsicAxis(style.Width, dynW+style.Padding.Horizontal())
	h := intrinsicAxis(style.Height, dynH+style.Padding.Vertical())
	c.intrinsic[id] = [2]float64{w, h}
	return w, h
}

func intrinsicAxis(s Size, dynamic float64) float64 {
	switch s.Kind {
	case SizeNum:
		return s.Value
	case SizeDynamic:
		return dynamic
	default:
		return 0
	}
}

func (c *computer) place(id NodeID, parent Box, parentResolved bool, x, y float64) Box {
	n := c.tree.Node(id)
	style := n.Style()
	in := c.intrinsic[id]

	w, h := in[0], in[1]
	if style.Width.Kind == SizePercent {
		w = resolvePercent(style.Width, parent.Width, parentResolved)
	}
	if style.Height.Kind == SizePercent {
		h = resolvePercent(style.Height, parent.Height, parentResolved)
	}

	box := Box{X: x, Y: y, Width: w, Height: h, Padding: style.Padding, Parent: n.Parent}
	c.res.Boxes[id] = box
	c.res.Order = append(c.res.Order, id)

	content := box.Content()
	offset := 0.0
	for _, child := range c.visibleChildren(n) {
		cs := child.Style()
		cx := content.X + cs.Margin.Left
		cy := content.Y + cs.Margin.Top
		if style.Direction == Row {
			cx += offset
		} else {
			cy += offset
		}
		cb := c.place(child.ID, content, true, cx, cy)
		if style.Direction == Row {
			offset += cs.Margin.Left + cb.Width + cs.Margin.Right + style.Gap
		} else {
			offset += cs.Margin.Top + cb.Height + cs.Margin.Bottom + style.Gap
		}
	}
	return box
}
