package highlight

import (
	"fmt"
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/ByLCY/codeshot/layout"
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "dracula"

// Theme maps token types onto colors and font styles.
type Theme struct {
	name  string
	style *chroma.Style
}

// LoadTheme looks up a registered chroma style by name.
func LoadTheme(name string) (*Theme, error) {
	if name == "" {
		name = DefaultTheme
	}
	style, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	return &Theme{name: name, style: style}, nil
}

// ThemeNames returns the sorted names of all registered themes.
func ThemeNames() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the theme name.
func (t *Theme) Name() string { return t.name }

// Background returns the editor background color of the theme.
func (t *Theme) Background() layout.Color {
	entry := t.style.Get(chroma.Background)
	if !entry.Background.IsSet() {
		return layout.RGB(40, 42, 54)
	}
	return fromColour(entry.Background)
}

// Foreground returns the default text color of the theme.
func (t *Theme) Foreground() layout.Color {
	entry := t.style.Get(chroma.Background)
	if !entry.Colour.IsSet() {
		return layout.RGB(248, 248, 242)
	}
	return fromColour(entry.Colour)
}

func (t *Theme) spanStyle(tt chroma.TokenType, family string) SpanStyle {
	entry := t.style.Get(tt)
	col := t.Foreground()
	if entry.Colour.IsSet() {
		col = fromColour(entry.Colour)
	}
	return SpanStyle{
		Color:      col,
		Bold:       entry.Bold == chroma.Yes,
		Italic:     entry.Italic == chroma.Yes,
		Underline:  entry.Underline == chroma.Yes,
		FontFamily: family,
	}
}

func fromColour(c chroma.Colour) layout.Color {
	return layout.RGB(int(c.Red()), int(c.Green()), int(c.Blue()))
}
