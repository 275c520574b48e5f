package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce merges the burst of events an editor produces for one save.
const debounce = 150 * time.Millisecond

// watch 监听输入文件及其引用的代码文件，变化后重新渲染，直到 ctx 结束。
// 监听的是所在目录而不是文件本身，这样重命名式保存也能被捕获。
func watch(ctx context.Context, inputs []string, opts renderOptions) error {
	logger := loggerFromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听失败: %w", err)
	}
	defer w.Close()

	files := map[string]bool{}
	dirs := map[string]bool{}
	track := func(jobs []job) error {
		for _, p := range watchedFiles(inputs, jobs) {
			files[p] = true
			dir := filepath.Dir(p)
			if dirs[dir] {
				continue
			}
			if err := w.Add(dir); err != nil {
				return fmt.Errorf("监听目录 %s 失败: %w", dir, err)
			}
			dirs[dir] = true
		}
		return nil
	}
	jobs, err := planJobs(inputs, opts)
	if err != nil {
		// 只监听输入文件本身，修好后会重新规划
		logger.Warn("plan failed", "err", err)
	}
	if err := track(jobs); err != nil {
		return err
	}
	logger.Info("watching for changes", "files", len(files))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("file changed", "file", ev.Name, "op", ev.Op)
			pending = time.After(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		case <-pending:
			pending = nil
			jobs, err := runRender(ctx, inputs, opts)
			if err != nil {
				logger.Error("渲染失败", "err", err)
			}
			if err := track(jobs); err != nil {
				logger.Warn("watch error", "err", err)
			}
		}
	}
}

// watchedFiles returns the absolute paths of the inputs and of every code file they reference.
func watchedFiles(inputs []string, jobs []job) []string {
	var out []string
	for _, in := range inputs {
		if abs, err := filepath.Abs(in); err == nil {
			out = append(out, abs)
		}
	}
	for _, j := range jobs {
		src := j.params.Code.Source
		if src == "" {
			continue
		}
		if !filepath.IsAbs(src) {
			src = filepath.Join(filepath.Dir(j.input), src)
		}
		if abs, err := filepath.Abs(src); err == nil {
			out = append(out, abs)
		}
	}
	return out
}
