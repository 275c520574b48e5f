package layout

// Options 配置布局阶段；目前仅用于给百分比尺寸的根节点提供视口。
type Options struct {
	// Viewport 为根节点的父盒子。为零值时根节点不能使用百分比尺寸。
	Viewport *Box
}

// Typesetter 负责测量文本宽度，由渲染器实现，避免 layout 依赖具体字体后端。
type Typesetter interface {
	MeasureText(content string, fontFamily string, fontSize float64) (float64, error)
}
