package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/codeshot/config"
	"github.com/ByLCY/codeshot/layout"
	"github.com/ByLCY/codeshot/renderer"
	"github.com/ByLCY/codeshot/snapshot"
)

type renderOptions struct {
	output   string
	data     string
	debugDir string
	config   string
	format   string
	watch    bool
}

// job 是一个输入文件及其输出位置。
type job struct {
	input  string
	output string
	params *config.Snapshot
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <file>...",
		Short: "将快照描述文件渲染为 PNG、PDF 或 SVG",
		Long: `render 读取一个或多个快照描述文件并输出图片。

只有一个输入时 -o 可以是文件路径（扩展名决定格式）；多个输入时 -o 是输出目录。
未指定 -o 时图片写在输入文件旁边。`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := runRender(ctx, args, opts); err != nil {
				if !opts.watch {
					return err
				}
				loggerFromContext(ctx).Error("渲染失败", "err", err)
			}
			if opts.watch {
				return watch(ctx, args, opts)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "输出文件或目录")
	cmd.Flags().StringVar(&opts.data, "data", "", "绑定到 ${...} 占位符的 JSON 数据")
	cmd.Flags().StringVar(&opts.debugDir, "debug", "", "布局调试 JSON 的输出目录")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML 默认值文件")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "输出格式: png, pdf, svg（覆盖文件中的设置）")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "文件变化时重新渲染")
	return cmd
}

// runRender 串联加载、渲染与写出，返回本轮处理的任务。
func runRender(ctx context.Context, inputs []string, opts renderOptions) ([]job, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	jobs, err := planJobs(inputs, opts)
	if err != nil {
		return nil, err
	}
	params := make([]*config.Snapshot, len(jobs))
	for i, j := range jobs {
		params[i] = j.params
	}
	images, err := snapshot.TakeAll(ctx, params, snapshot.Options{Logger: logger})
	if err != nil {
		return jobs, err
	}

	for i, img := range images {
		j := jobs[i]
		if opts.debugDir != "" {
			if err := writeDebug(img, filepath.Join(opts.debugDir, stem(j.input)+".layout.json")); err != nil {
				return jobs, err
			}
		}
		if err := writeImage(img, j.output); err != nil {
			return jobs, err
		}
		logger.Debug("wrote snapshot", "file", j.output, "size", fmt.Sprintf("%.0fx%.0f", img.Width*img.Scale, img.Height*img.Scale))
	}
	prog.done(fmt.Sprintf("已生成 %d 张图片", len(images)))
	return jobs, nil
}

// planJobs 加载所有输入并决定输出路径与格式。
func planJobs(inputs []string, opts renderOptions) ([]job, error) {
	defaults, err := config.LoadDefaults(opts.config)
	if err != nil {
		return nil, err
	}
	var data any
	if opts.data != "" {
		if err := json.Unmarshal([]byte(opts.data), &data); err != nil {
			return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}

	outDir := ""
	if opts.output != "" && (len(inputs) > 1 || isDir(opts.output)) {
		outDir = opts.output
	}

	jobs := make([]job, 0, len(inputs))
	for _, in := range inputs {
		params, err := config.Load(in, data, defaults)
		if err != nil {
			return nil, err
		}
		if opts.format != "" {
			params.Output.Format = opts.format
		}
		if params.Name == "" {
			params.Name = stem(in)
		}

		out := opts.output
		if outDir == "" && out != "" {
			if f := renderer.FormatFromPath(out, ""); f != "" {
				params.Output.Format = string(f)
			}
		}
		format, err := renderer.ParseFormat(params.Output.Format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in, err)
		}
		switch {
		case outDir != "":
			out = filepath.Join(outDir, stem(in)+"."+string(format))
		case out == "":
			out = strings.TrimSuffix(in, filepath.Ext(in)) + "." + string(format)
		}
		jobs = append(jobs, job{input: in, output: out, params: params})
	}
	return jobs, nil
}

func writeImage(img *snapshot.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return fmt.Errorf("写入图片文件失败: %w", err)
	}
	return nil
}

func writeDebug(img *snapshot.Image, path string) error {
	if err := layout.WriteDebugJSON(img.Tree, img.Layout, path); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isDir(path string) bool {
	if strings.HasSuffix(path, string(os.PathSeparator)) {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
