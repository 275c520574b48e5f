package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/codeshot/dsl"
)

const sampleDSL = "\n" +
	"snapshot Demo v1 {\n" +
	"  code go {\n" +
	"    file: \"main.go\"\n" +
	"    font-family: \"Go Mono\"\n" +
	"    font-size: 14px\n" +
	"    line-height: 1.4x\n" +
	"    line-number { start: 10 }\n" +
	"    highlight 2 4 #ffffff20\n" +
	"    content: `package main\n\nfunc main() {}\n`\n" +
	"  }\n" +
	"\n" +
	"  // window chrome\n" +
	"  window {\n" +
	"    title: \"${file}\"\n" +
	"    controls: true\n" +
	"    margin: 82; padding: 20\n" +
	"  }\n" +
	"  watermark { text: \"codeshot\" }\n" +
	"  output {\n" +
	"    theme: monokai\n" +
	"    background: #ABB8C3\n" +
	"  }\n" +
	"}\n"

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Name != "Demo" {
		t.Fatalf("expected snapshot name Demo, got %s", doc.Name)
	}
	if doc.Version != "v1" {
		t.Fatalf("expected version v1, got %s", doc.Version)
	}
	if len(doc.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(doc.Sections))
	}
	kinds := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind())
	}
	if got := strings.Join(kinds, ","); got != "code,window,watermark,output" {
		t.Fatalf("unexpected section order: %s", got)
	}

	code := doc.Sections[0].Code
	if code.Language == nil || *code.Language != "go" {
		t.Fatalf("expected language go, got %v", code.Language)
	}
	assigns := code.Block.Assignments()
	if len(assigns) != 5 {
		t.Fatalf("expected 5 code assignments, got %d", len(assigns))
	}
	if assigns[0].Key != "file" || assigns[0].Value.Text() != "main.go" {
		t.Fatalf("unexpected file assignment: %+v", assigns[0])
	}
	if assigns[2].Key != "font-size" || assigns[2].Value.Text() != "14px" {
		t.Fatalf("unexpected font-size: %s", assigns[2].Value.Text())
	}
	if assigns[3].Value.Text() != "1.4x" {
		t.Fatalf("unexpected line-height: %s", assigns[3].Value.Text())
	}
	content := assigns[4]
	if content.Key != "content" || content.Value.String == nil {
		t.Fatalf("content should be a raw string, got %+v", content.Value)
	}
	if got := string(*content.Value.String); got != "package main\n\nfunc main() {}\n" {
		t.Fatalf("raw string mangled: %q", got)
	}

	cmds := code.Block.Commands()
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if cmds[0].Name != "line-number" || cmds[0].Block == nil {
		t.Fatalf("expected line-number block, got %+v", cmds[0])
	}
	if start := cmds[0].Block.Assignments()[0]; start.Key != "start" || start.Value.Text() != "10" {
		t.Fatalf("unexpected start: %+v", start)
	}
	hl := cmds[1]
	if hl.Name != "highlight" || len(hl.Args) != 3 {
		t.Fatalf("unexpected highlight command: %+v", hl)
	}
	if hl.Args[2].Type != "Color" || hl.Args[2].Value != "#ffffff20" {
		t.Fatalf("8-digit color should lex as one token, got %+v", hl.Args[2])
	}

	window := doc.Sections[1].Body().Assignments()
	if len(window) != 4 {
		t.Fatalf("expected 4 window assignments, got %d", len(window))
	}
	if window[0].Value.Text() != "${file}" {
		t.Fatalf("title lost interpolation: %s", window[0].Value.Text())
	}
	if window[1].Value.Expr == nil || window[1].Value.Text() != "true" {
		t.Fatalf("controls should be an expression, got %+v", window[1].Value)
	}

	output := doc.Sections[3].Body().Assignments()
	if output[0].Value.Text() != "monokai" {
		t.Fatalf("unexpected theme: %s", output[0].Value.Text())
	}
	if output[1].Value.Color == nil || *output[1].Value.Color != "#ABB8C3" {
		t.Fatalf("unexpected background: %+v", output[1].Value)
	}
}

func TestParseRejectsUnknownSection(t *testing.T) {
	_, err := dsl.ParseString("snapshot X v1 {\n  page { }\n}\n")
	if err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

// 代码块也可以直接写一个字符串字面量作为内容。
func TestParseTextLiteralContent(t *testing.T) {
	doc, err := dsl.ParseString("snapshot X v1 {\n  code {\n    `a\tb`\n  }\n}\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	code := doc.Sections[0].Code
	if code.Language != nil {
		t.Fatalf("language should be empty, got %s", *code.Language)
	}
	lit := code.Block.Statements[0].Text
	if lit == nil || string(lit.Value) != "a\tb" {
		t.Fatalf("unexpected literal: %+v", code.Block.Statements[0])
	}
}
