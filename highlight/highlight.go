// Package highlight turns source text into styled spans using chroma.
//
// A Highlighter holds the text to highlight; Parse resolves a lexer through a
// SyntaxSet, tokenises the text and maps every token onto the Theme, yielding
// one Line of Spans per source line. Highlighting never draws anything.
package highlight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"

	"github.com/ByLCY/codeshot/layout"
)

// Sentinel errors for highlighting.
var (
	// ErrUnsupportedSyntax is returned when an explicitly requested language has no lexer.
	ErrUnsupportedSyntax = errors.New("unsupported syntax")

	// ErrUnknownTheme is returned when a theme name is not registered.
	ErrUnknownTheme = errors.New("unknown theme")
)

// SpanStyle describes how a span is drawn.
type SpanStyle struct {
	Color      layout.Color `json:"color"`
	Bold       bool         `json:"bold,omitempty"`
	Italic     bool         `json:"italic,omitempty"`
	Underline  bool         `json:"underline,omitempty"`
	FontFamily string       `json:"fontFamily"`
}

// Span is a run of text sharing one style.
type Span struct {
	Text  string    `json:"text"`
	Style SpanStyle `json:"style"`
}

// Line is the ordered list of spans of one source line.
type Line []Span

// Text returns the concatenated text of the line.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Highlighter highlights a single piece of code.
type Highlighter struct {
	Code       string
	FontFamily string
	Language   string
	FileName   string
}

// New creates a Highlighter. language and fileName may be empty, in which case
// the lexer is picked from the other one or from the content.
func New(code, fontFamily, language, fileName string) *Highlighter {
	return &Highlighter{Code: code, FontFamily: fontFamily, Language: language, FileName: fileName}
}

// Parse tokenises the code and returns one Line per source line. The number of
// lines always equals strings.Count(code, "\n")+1.
func (h *Highlighter) Parse(theme *Theme, set *SyntaxSet) ([]Line, error) {
	if theme == nil || set == nil {
		return nil, errors.New("highlight: theme and syntax set are required")
	}
	lexer, err := set.Resolve(h.Language, h.FileName, h.Code)
	if err != nil {
		return nil, err
	}
	it, err := lexer.Tokenise(nil, h.Code)
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", lexer.Config().Name, err)
	}

	want := strings.Count(h.Code, "\n") + 1
	lines := make([]Line, 0, want)
	current := Line{}
	for _, tok := range it.Tokens() {
		if tok == chroma.EOF {
			break
		}
		style := theme.spanStyle(tok.Type, h.FontFamily)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, current)
				current = Line{}
			}
			if part == "" {
				continue
			}
			current = appendSpan(current, Span{Text: part, Style: style})
		}
	}
	lines = append(lines, current)

	// lexers may add or drop a trailing newline; keep the line count stable.
	for len(lines) < want {
		lines = append(lines, Line{})
	}
	return lines[:want], nil
}

// appendSpan merges adjacent spans that share a style.
func appendSpan(line Line, s Span) Line {
	if n := len(line); n > 0 && line[n-1].Style == s.Style {
		line[n-1].Text += s.Text
		return line
	}
	return append(line, s)
}
