package layout

import (
	"errors"
	"fmt"
)

// ErrUnresolvedParent 表示在父节点尺寸解析之前尝试解析百分比尺寸，属于编程错误。
var ErrUnresolvedParent = errors.New("layout: percentage size resolved before its parent")

// SizeKind tags a Size value.
type SizeKind uint8

const (
	SizeDynamic SizeKind = iota // 由子节点撑开（仅容器使用）
	SizeNum                     // 绝对逻辑像素
	SizePercent                 // 父节点内容区域同方向的百分比
)

// Size 是带标签的尺寸请求。
type Size struct {
	Kind  SizeKind `json:"kind"`
	Value float64  `json:"value"`
}

// Num returns an absolute size.
func Num(v float64) Size { return Size{Kind: SizeNum, Value: v} }

// Percent returns a size relative to the parent's content box (0-100 scale).
func Percent(p float64) Size { return Size{Kind: SizePercent, Value: p} }

// Dynamic returns a size computed from the node's children.
func Dynamic() Size { return Size{Kind: SizeDynamic} }

func (s Size) String() string {
	switch s.Kind {
	case SizeNum:
		return fmt.Sprintf("%gpx", s.Value)
	case SizePercent:
		return fmt.Sprintf("%g%%", s.Value)
	default:
		return "dynamic"
	}
}

// resolvePercent 将百分比解析为像素。parentResolved 为 false 时直接 panic，
// 以便在测试中暴露错误的解析顺序。
func resolvePercent(s Size, parent float64, parentResolved bool) float64 {
	if !parentResolved {
		panic(ErrUnresolvedParent)
	}
	return parent * s.Value / 100
}

// Direction 决定容器内子节点的排列方向。
type Direction uint8

const (
	Column Direction = iota
	Row
)

// RawStyle 是组件声明的原始样式：尺寸请求 + 间距，以及容器的装饰属性。
type RawStyle struct {
	Width      Size      `json:"width"`
	Height     Size      `json:"height"`
	Margin     Edges     `json:"margin"`
	Padding    Edges     `json:"padding"`
	Direction  Direction `json:"direction"`
	Gap        float64   `json:"gap,omitempty"`
	Background *Color    `json:"background,omitempty"`
	Radius     float64   `json:"radius,omitempty"`
}

// DefaultStyle 返回尺寸为 Dynamic、间距为零、纵向排列的样式。
func DefaultStyle() RawStyle {
	return RawStyle{Width: Dynamic(), Height: Dynamic(), Direction: Column}
}

// Size sets width and height.
func (s RawStyle) Size(w, h Size) RawStyle {
	s.Width, s.Height = w, h
	return s
}

// WithMargin sets the margin.
func (s RawStyle) WithMargin(m Edges) RawStyle {
	s.Margin = m
	return s
}

// WithPadding sets the padding.
func (s RawStyle) WithPadding(p Edges) RawStyle {
	s.Padding = p
	return s
}

// Align sets the child direction and gap.
func (s RawStyle) Align(d Direction, gap float64) RawStyle {
	s.Direction, s.Gap = d, gap
	return s
}

// Fill sets a background color and corner radius.
func (s RawStyle) Fill(c Color, radius float64) RawStyle {
	s.Background = &c
	s.Radius = radius
	return s
}
