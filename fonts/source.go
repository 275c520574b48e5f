package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Faces holds raw font data per style. Regular must be present for a usable family.
type Faces map[Style][]byte

// Origin tells where a family was found.
type Origin string

const (
	OriginDir      Origin = "dir"
	OriginEmbedded Origin = "embedded"
	OriginBuiltin  Origin = "builtin"
)

// Source 描述字体的查找顺序：字体目录 → 调用方提供的字节 → 内置 Go Mono。
type Source struct {
	// Dir 中的 .ttf/.otf 文件按文件名匹配字体族，例如 "JetBrainsMono-Bold.ttf"。
	Dir string
	// Embedded 按字体族名提供字节数据。
	Embedded map[string]Faces
}

// Lookup resolves family. It only fails when the fonts directory cannot be read.
func (s Source) Lookup(family string) (Faces, Origin, error) {
	if family == "" {
		family = DefaultFamily
	}
	if s.Dir != "" {
		faces, err := scanDir(s.Dir, family)
		if err != nil {
			return nil, "", err
		}
		if faces[Regular] != nil {
			return faces, OriginDir, nil
		}
	}
	if faces, ok := s.Embedded[family]; ok && faces[Regular] != nil {
		return faces, OriginEmbedded, nil
	}
	return Builtin(), OriginBuiltin, nil
}

func scanDir(dir, family string) (Faces, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("读取字体目录 %s 失败: %w", dir, err)
	}
	want := normalize(family)
	faces := Faces{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		base := normalize(strings.TrimSuffix(name, filepath.Ext(name)))
		rest, ok := strings.CutPrefix(base, want)
		if !ok {
			continue
		}
		style, ok := DetectStyle(rest)
		if !ok {
			continue
		}
		if _, seen := faces[style]; seen {
			continue
		}
		data, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		faces[style] = data
	}
	return faces, nil
}

// DetectStyle 根据文件名中字体族之后的部分判断字形；无法识别的字重（Light、Medium 等）返回 false。
func DetectStyle(suffix string) (Style, bool) {
	s := normalize(suffix)
	switch s {
	case "", "regular", "book", "normal":
		return Regular, true
	case "bold":
		return Bold, true
	case "italic", "oblique", "regularitalic":
		return Italic, true
	case "bolditalic", "boldoblique", "italicbold":
		return BoldItalic, true
	default:
		return Regular, false
	}
}

func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, s)
}
