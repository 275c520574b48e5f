package layout

import (
	"reflect"
	"strconv"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestLineNumberScenarioThreeLines(t *testing.T) {
	code := NewCode("a\nbb\nccc", 20, 14)
	ln := NewLineNumber(len(code.Lines()), intPtr(1), 20)
	if want := []string{"1", "2", "3"}; !reflect.DeepEqual(ln.Content, want) {
		t.Fatalf("行号内容期望 %v，实际 %v", want, ln.Content)
	}
	if ln.Digits != 1 {
		t.Fatalf("位数期望 1，实际 %d", ln.Digits)
	}
}

// 11 行从 1 开始：最大行号 11，位数为 2，第一行渲染为 " 1"。
func TestLineNumberScenarioElevenLines(t *testing.T) {
	ln := NewLineNumber(11, intPtr(1), 20)
	if ln.Digits != 2 {
		t.Fatalf("位数期望 2，实际 %d", ln.Digits)
	}
	if ln.Content[0] != " 1" || ln.Content[10] != "11" {
		t.Fatalf("行号填充不符: first=%q last=%q", ln.Content[0], ln.Content[10])
	}
}

// TestLineNumberInvariants 验证：行号数量等于行数，且每一项长度都等于最大行号的位数。
func TestLineNumberInvariants(t *testing.T) {
	for _, start := range []int{0, 1, 7, 95, 998} {
		for count := 1; count <= 120; count++ {
			ln := NewLineNumber(count, intPtr(start), 18)
			if len(ln.Content) != count {
				t.Fatalf("start=%d count=%d: 行号数量 %d", start, count, len(ln.Content))
			}
			digits := len(strconv.Itoa(start + count - 1))
			if ln.Digits != digits {
				t.Fatalf("start=%d count=%d: 位数 %d != %d", start, count, ln.Digits, digits)
			}
			for i, s := range ln.Content {
				if len(s) != digits {
					t.Fatalf("start=%d count=%d: 第 %d 项 %q 长度不等于 %d", start, count, i, s, digits)
				}
			}
		}
	}
}

// 负数起始行按 0 处理，行号仍然等宽。
func TestLineNumberNegativeStart(t *testing.T) {
	ln := NewLineNumber(12, intPtr(-10), 18)
	if ln.Content[0] != " 0" || ln.Content[11] != "11" || ln.Digits != 2 {
		t.Fatalf("负数起始行未按 0 处理: %q digits=%d", ln.Content, ln.Digits)
	}
	for i, s := range ln.Content {
		if len(s) != ln.Digits {
			t.Fatalf("第 %d 项 %q 长度不等于 %d", i, s, ln.Digits)
		}
	}
}

func TestLineNumberStyle(t *testing.T) {
	ln := NewLineNumber(11, intPtr(1), 20)
	st := ln.Style()
	if !approx(st.Width.Value, 2*CharWidth) || st.Height.Value != 220 {
		t.Fatalf("行号尺寸不符: %v x %v", st.Width, st.Height)
	}
	if st.Margin.Right != LineNumberGap {
		t.Fatalf("右边距期望 %g，实际 %g", LineNumberGap, st.Margin.Right)
	}
	if ln.Text() != " 1\n 2\n 3\n 4\n 5\n 6\n 7\n 8\n 9\n10\n11" {
		t.Fatalf("拼接文本不符: %q", ln.Text())
	}
}

// line_number 未配置时组件处于默认状态：不渲染、尺寸为 0。
func TestLineNumberDisabled(t *testing.T) {
	ln := NewLineNumber(5, nil, 20)
	if ln.Enabled() {
		t.Fatalf("未配置起始行号时不应启用")
	}
	st := ln.Style()
	if st.Width.Value != 0 || st.Height.Value != 0 || st.Margin != (Edges{}) {
		t.Fatalf("禁用状态下尺寸与间距应为 0: %#v", st)
	}
	tree := NewTree()
	root := tree.AddContainer(NoParent, DefaultStyle())
	id := tree.AddLineNumber(root, ln)
	if tree.Node(id).ShouldRender() {
		t.Fatalf("禁用的行号节点 ShouldRender 应为 false")
	}
}
