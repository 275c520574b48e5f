package layout

// 该文件定义布局结果与基础几何类型，供布局计算、渲染与调试 JSON 共用。

// Result 保存一次布局计算的不可变结果：每个可渲染节点的盒子与绘制顺序。
// 渲染阶段只读消费 Result，不再重新遍历组件树来推导坐标。
type Result struct {
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Boxes  map[NodeID]Box `json:"boxes"`
	// Order 为先序遍历得到的绘制顺序，仅包含 ShouldRender 为 true 的节点。
	Order []NodeID `json:"order"`
}

// Box 记录节点解析后的位置与尺寸（逻辑像素）。
type Box struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding Edges   `json:"padding"`
	Parent  NodeID  `json:"parent"`
}

// Content 返回去掉内边距后的内容区域。
func (b Box) Content() Box {
	return Box{
		X:      b.X + b.Padding.Left,
		Y:      b.Y + b.Padding.Top,
		Width:  nonNegative(b.Width - b.Padding.Left - b.Padding.Right),
		Height: nonNegative(b.Height - b.Padding.Top - b.Padding.Bottom),
		Parent: b.Parent,
	}
}

// Box 返回节点的盒子；隐藏节点或未知节点返回 false。
func (r *Result) Box(id NodeID) (Box, bool) {
	if r == nil {
		return Box{}, false
	}
	b, ok := r.Boxes[id]
	return b, ok
}

// Edges 表示四个方向的间距（margin / padding）。
type Edges struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Uniform returns edges with the same inset on all four sides.
func Uniform(v float64) Edges { return Edges{Top: v, Right: v, Bottom: v, Left: v} }

// Horizontal returns left + right.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns top + bottom.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// Color 采用 0-255 的 RGBA 数值，A 为 0 表示完全透明。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
	A int `json:"a"`
}

// RGB returns an opaque color.
func RGB(r, g, b int) Color { return Color{R: r, G: g, B: b, A: 255} }

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a int) Color { return Color{R: r, G: g, B: b, A: a} }

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
