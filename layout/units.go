package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for length and line-height.
//
// 布局统一使用逻辑像素（px）。渲染时 1px 对应画布上的 1mm，
// 再由渲染器按 scale factor 光栅化，因此字号换算到字体系统的 pt 时使用 MmToPt。

// Unit represents the original unit of a length value as specified in DSL.
type Unit int

const (
	UnitNone    Unit = iota // unit-less numbers, treated as px for lengths
	UnitPX                  // logical pixels
	UnitPT                  // typographic points (1pt = 4/3px)
	UnitPercent             // percentage of the parent axis
)

// Conversion constants.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	PtToPx = 4.0 / 3.0
)

// String returns the DSL suffix of the unit.
func (u Unit) String() string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	case UnitPercent:
		return "%"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToPX converts an absolute length to logical pixels. Percentages have no
// absolute value and are returned as-is.
func (l Length) ToPX() float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value * PtToPx
	default:
		return l.Value
	}
}

// Size converts the length into a layout Size request.
func (l Length) Size() Size {
	if l.Unit == UnitPercent {
		return Percent(l.Value)
	}
	return Num(l.ToPX())
}

// ParseRawLengthStr parses a DSL length string preserving its unit.
func ParseRawLengthStr(value string) Length {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{Value: 0, Unit: UnitNone}
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"%", UnitPercent}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{Value: 0, Unit: UnitNone}
	}
	return Length{Value: f, Unit: unit}
}

// FacePoints 将逻辑像素字号换算为字体系统使用的 pt（1px 对应画布 1mm）。
func FacePoints(px float64) float64 { return px * MmToPt }

// LineHeightKind distinguishes factor-based vs absolute line-height specification.
type LineHeightKind int

const (
	LineHeightFactor LineHeightKind = iota
	LineHeightAbsolute
)

// LineHeightSpec preserves original author intent: either a factor (e.g., 1.4x) or an absolute length (e.g., 20px).
type LineHeightSpec struct {
	Kind   LineHeightKind `json:"kind"`
	Factor float64        `json:"factor,omitempty"`
	Len    Length         `json:"len,omitempty"`
}

// Resolve computes the absolute line height in px using the given font size in px.
func (s LineHeightSpec) Resolve(fontSize float64) float64 {
	switch s.Kind {
	case LineHeightFactor:
		return fontSize * s.Factor
	case LineHeightAbsolute:
		return s.Len.ToPX()
	default:
		return fontSize * 1.4
	}
}

// ParseLineHeight parses "1.4x" as a factor and any other length as absolute.
func ParseLineHeight(value string) (LineHeightSpec, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if strings.HasSuffix(v, "x") && !strings.HasSuffix(v, "px") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "x"), 64)
		if err != nil || f <= 0 {
			return LineHeightSpec{}, false
		}
		return LineHeightSpec{Kind: LineHeightFactor, Factor: f}, true
	}
	l := ParseRawLengthStr(v)
	if l.Value <= 0 || l.Unit == UnitPercent {
		return LineHeightSpec{}, false
	}
	return LineHeightSpec{Kind: LineHeightAbsolute, Len: l}, true
}
