package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ByLCY/codeshot/fonts"
)

// Defaults 是快照未显式配置时使用的取值，可以从 TOML 文件覆盖：
//
//	theme = "dracula"
//	font_family = "Go Mono"
//	line_height = "1.4x"
//
//	[window]
//	margin = 82
type Defaults struct {
	Theme      string            `toml:"theme"`
	FontFamily string            `toml:"font_family"`
	FontsDir   string            `toml:"fonts_dir"`
	FontSize   float64           `toml:"font_size"`
	LineHeight string            `toml:"line_height"`
	Scale      float64           `toml:"scale"`
	Format     string            `toml:"format"`
	Background string            `toml:"background"`
	Window     WindowDefaults    `toml:"window"`
	Watermark  WatermarkDefaults `toml:"watermark"`
}

// WindowDefaults holds the default window chrome.
type WindowDefaults struct {
	Controls bool    `toml:"controls"`
	Margin   float64 `toml:"margin"`
	Padding  float64 `toml:"padding"`
	Radius   float64 `toml:"radius"`
}

// WatermarkDefaults holds the default watermark look.
type WatermarkDefaults struct {
	Color    string  `toml:"color"`
	FontSize float64 `toml:"font_size"`
}

// BuiltinDefaults returns the defaults used when no TOML file is given.
func BuiltinDefaults() Defaults {
	return Defaults{
		Theme:      "dracula",
		FontFamily: fonts.DefaultFamily,
		FontSize:   14,
		LineHeight: "1.4x",
		Scale:      3,
		Format:     "png",
		Background: "#ABB8C3",
		Window: WindowDefaults{
			Controls: true,
			Margin:   82,
			Padding:  20,
			Radius:   12,
		},
		Watermark: WatermarkDefaults{
			Color:    "#ffffff",
			FontSize: 14,
		},
	}
}

// LoadDefaults 读取 TOML 文件并覆盖内置默认值；path 为空时直接返回内置默认值。
// 未知的键视为错误，避免拼写错误被静默忽略。
func LoadDefaults(path string) (Defaults, error) {
	d := BuiltinDefaults()
	if path == "" {
		return d, nil
	}
	md, err := toml.DecodeFile(path, &d)
	if err != nil {
		return Defaults{}, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Defaults{}, fmt.Errorf("配置文件 %s 含有未知的键: %s", path, strings.Join(keys, ", "))
	}
	return d, nil
}
