package renderer

import (
	"errors"
	"fmt"

	"github.com/ByLCY/codeshot/layout"
)

// ErrEmptyResult is returned when a layout result has nothing to draw.
var ErrEmptyResult = errors.New("render: empty layout result")

// ErrUnsupportedFormat is returned for output formats other than png, pdf and svg.
var ErrUnsupportedFormat = errors.New("不支持的输出格式")

// Stage names the part of the render pass that failed.
type Stage string

const (
	StageHighlight Stage = "highlight"
	StageFont      Stage = "font"
	StageEncode    Stage = "encode"
)

// RenderError 记录失败的阶段与节点；布局本身不会产生错误。
type RenderError struct {
	Stage Stage
	Node  layout.NodeID
	Kind  layout.Kind
	Err   error
}

func (e *RenderError) Error() string {
	if e.Stage == StageEncode {
		return fmt.Sprintf("render %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("render %s: %s node %d: %v", e.Stage, e.Kind, e.Node, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Fail wraps err as a RenderError for node n; nil stays nil.
func Fail(stage Stage, n *layout.Node, err error) error {
	if err == nil {
		return nil
	}
	var re *RenderError
	if errors.As(err, &re) {
		return err
	}
	e := &RenderError{Stage: stage, Node: layout.NoParent, Err: err}
	if n != nil {
		e.Node, e.Kind = n.ID, n.Kind
	}
	return e
}
