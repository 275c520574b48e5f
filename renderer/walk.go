package renderer

import "github.com/ByLCY/codeshot/layout"

// VisitFunc draws one node. parent is the box of the node's parent, or the zero
// Box for the root.
type VisitFunc func(n *layout.Node, box, parent layout.Box) error

// Walk 按 Result.Order 的先序顺序访问节点，遇到第一个错误立即停止并返回。
// 隐藏的节点不在 Order 中，因此永远不会被访问。
func Walk(tree *layout.Tree, result *layout.Result, fn VisitFunc) error {
	if result == nil || len(result.Order) == 0 {
		return ErrEmptyResult
	}
	for _, id := range result.Order {
		n := tree.Node(id)
		if n == nil {
			continue
		}
		box, ok := result.Box(id)
		if !ok {
			continue
		}
		parent, _ := result.Box(box.Parent)
		if err := fn(n, box, parent); err != nil {
			return err
		}
	}
	return nil
}
