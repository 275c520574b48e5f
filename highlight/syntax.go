package highlight

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// SyntaxSet resolves chroma lexers and caches the coalesced result per key.
type SyntaxSet struct {
	mu    sync.RWMutex
	cache map[string]chroma.Lexer
}

// NewSyntaxSet creates an empty syntax set backed by chroma's lexer registry.
func NewSyntaxSet() *SyntaxSet {
	return &SyntaxSet{cache: make(map[string]chroma.Lexer)}
}

// Resolve picks a lexer: an explicit language wins and must exist; otherwise the
// file name, then content analysis, then plain text.
func (s *SyntaxSet) Resolve(language, fileName, code string) (chroma.Lexer, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	key := "lang:" + language
	if language == "" {
		key = "file:" + fileName
	}
	if language != "" || fileName != "" {
		s.mu.RLock()
		lexer, ok := s.cache[key]
		s.mu.RUnlock()
		if ok {
			return lexer, nil
		}
	}

	var lexer chroma.Lexer
	switch {
	case language != "":
		lexer = lexers.Get(language)
		if lexer == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedSyntax, language)
		}
	case fileName != "":
		lexer = lexers.Match(fileName)
	}
	if lexer == nil {
		// content analysis results are not cached; they depend on the text.
		if lexer = lexers.Analyse(code); lexer == nil {
			lexer = lexers.Fallback
		}
		return chroma.Coalesce(lexer), nil
	}

	lexer = chroma.Coalesce(lexer)
	s.mu.Lock()
	s.cache[key] = lexer
	s.mu.Unlock()
	return lexer, nil
}

// LanguageNames returns the names of all registered lexers.
func LanguageNames() []string {
	return lexers.Names(false)
}
