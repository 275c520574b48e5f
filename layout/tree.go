package layout

import "fmt"

// NodeID 是节点在 Tree 中的下标。
type NodeID int

// NoParent marks the root of a tree.
const NoParent NodeID = -1

// Kind 枚举组件种类。组件集合是封闭的，所有行为通过 switch 分派。
type Kind uint8

const (
	KindContainer Kind = iota
	KindCode
	KindLineNumber
	KindText
	KindControls
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindCode:
		return "code"
	case KindLineNumber:
		return "line-number"
	case KindText:
		return "text"
	case KindControls:
		return "controls"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Node 是组件树中的一个节点，按 Kind 持有对应的内容。
type Node struct {
	ID       NodeID
	Kind     Kind
	Parent   NodeID
	Hidden   bool
	children []NodeID

	// Container 的样式；其他种类由内容计算样式，仅使用其中的 Margin。
	Container RawStyle

	Code       *Code
	LineNumber *LineNumber
	Text       *Text
	Controls   *Controls
}

// ShouldRender 决定布局与绘制是否访问该节点。
func (n *Node) ShouldRender() bool {
	if n == nil || n.Hidden {
		return false
	}
	switch n.Kind {
	case KindLineNumber:
		return n.LineNumber != nil && n.LineNumber.Enabled()
	case KindCode:
		return n.Code != nil
	case KindText:
		return n.Text != nil && n.Text.Content != ""
	case KindControls:
		return n.Controls != nil
	default:
		return true
	}
}

// Children 返回按绘制顺序排列的子节点。
func (n *Node) Children() []NodeID {
	return n.children
}

// Style 按需计算节点的原始样式，不做缓存，因此可以依赖节点当前内容。
func (n *Node) Style() RawStyle {
	switch n.Kind {
	case KindCode:
		return n.Code.Style().WithMargin(n.Container.Margin)
	case KindLineNumber:
		return n.LineNumber.Style()
	case KindText:
		return n.Text.Style().WithMargin(n.Container.Margin)
	case KindControls:
		return n.Controls.Style().WithMargin(n.Container.Margin)
	default:
		return n.Container
	}
}

// Tree 是组件节点的 arena，独占所有节点。
type Tree struct {
	nodes []Node
}

// NewTree creates an empty tree.
func NewTree() *Tree { return &Tree{} }

// Add 追加节点并挂到 parent 下，返回新节点的 ID。第一个节点必须以 NoParent 作为根。
func (t *Tree) Add(parent NodeID, n Node) NodeID {
	id := NodeID(len(t.nodes))
	if parent == NoParent {
		if len(t.nodes) > 0 {
			panic("layout: tree already has a root")
		}
	} else if !t.valid(parent) {
		panic(fmt.Sprintf("layout: unknown parent %d", parent))
	}
	n.ID = id
	n.Parent = parent
	n.children = nil
	t.nodes = append(t.nodes, n)
	if parent != NoParent {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	return id
}

// AddContainer adds a container node with the given style.
func (t *Tree) AddContainer(parent NodeID, style RawStyle) NodeID {
	return t.Add(parent, Node{Kind: KindContainer, Container: style})
}

// AddCode adds a code node.
func (t *Tree) AddCode(parent NodeID, c *Code) NodeID {
	return t.Add(parent, Node{Kind: KindCode, Code: c})
}

// AddLineNumber adds a line-number node.
func (t *Tree) AddLineNumber(parent NodeID, ln *LineNumber) NodeID {
	return t.Add(parent, Node{Kind: KindLineNumber, LineNumber: ln})
}

// AddText adds a plain text node.
func (t *Tree) AddText(parent NodeID, txt *Text) NodeID {
	return t.Add(parent, Node{Kind: KindText, Text: txt})
}

// AddControls adds a window-controls node.
func (t *Tree) AddControls(parent NodeID, c *Controls) NodeID {
	return t.Add(parent, Node{Kind: KindControls, Controls: c})
}

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id NodeID) *Node {
	if !t.valid(id) {
		return nil
	}
	return &t.nodes[id]
}

// Root returns the root id, or NoParent for an empty tree.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return NoParent
	}
	return 0
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}
