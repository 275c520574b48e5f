package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

const demoSnapshot = `snapshot Demo v1 {
  code go {
    source: "main.go"
    line-number
    highlight 3 #ffffff20
  }
  window { title: "${file} - ${author:-anon}" }
  output { scale: 1 }
}
`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	path := filepath.Join(dir, "demo.snap")
	if err := os.WriteFile(path, []byte(demoSnapshot), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

// TestPlanJobsOutputs 验证输出路径与格式的推导规则。
func TestPlanJobsOutputs(t *testing.T) {
	in := writeFixture(t)
	dir := filepath.Dir(in)

	jobs, err := planJobs([]string{in}, renderOptions{data: `{"author":"ann"}`})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if want := filepath.Join(dir, "demo.png"); jobs[0].output != want {
		t.Fatalf("expected %s, got %s", want, jobs[0].output)
	}
	if got := jobs[0].params.Window.Title; got != "main.go - ann" {
		t.Fatalf("title not bound: %q", got)
	}

	jobs, err = planJobs([]string{in}, renderOptions{output: filepath.Join(dir, "out", "shot.svg")})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if jobs[0].params.Output.Format != "svg" {
		t.Fatalf("extension should select svg, got %s", jobs[0].params.Output.Format)
	}

	jobs, err = planJobs([]string{in, in}, renderOptions{output: filepath.Join(dir, "many"), format: "pdf"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if want := filepath.Join(dir, "many", "demo.pdf"); jobs[1].output != want {
		t.Fatalf("expected %s, got %s", want, jobs[1].output)
	}

	if _, err := planJobs([]string{in}, renderOptions{format: "gif"}); err == nil {
		t.Fatalf("unknown format should fail")
	}
	if _, err := planJobs([]string{in}, renderOptions{data: "{"}); err == nil {
		t.Fatalf("bad data JSON should fail")
	}
}

func TestRenderWritesImageAndDebug(t *testing.T) {
	in := writeFixture(t)
	dir := filepath.Dir(in)
	out := filepath.Join(dir, "out.png")
	debugDir := filepath.Join(dir, "debug")

	root := newRootCmd()
	root.SetArgs([]string{"render", in, "-o", out, "--debug", debugDir})
	root.SetErr(&bytes.Buffer{})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG")
	}
	dump, err := os.ReadFile(filepath.Join(debugDir, "demo.layout.json"))
	if err != nil {
		t.Fatalf("read debug: %v", err)
	}
	if !bytes.Contains(dump, []byte(`"line-number"`)) {
		t.Fatalf("debug dump misses node kinds: %s", dump)
	}
}

func TestRenderMissingFile(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"render", filepath.Join(t.TempDir(), "missing.snap")})
	root.SetErr(&bytes.Buffer{})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("missing input should fail")
	}
}

func TestListCommands(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"themes"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("themes: %v", err)
	}
	if !strings.Contains(out.String(), "dracula") {
		t.Fatalf("themes output misses dracula:\n%s", out.String())
	}

	out.Reset()
	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"languages", "--filter", "golang"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("languages: %v", err)
	}
	if strings.Contains(out.String(), "Python") {
		t.Fatalf("filter not applied:\n%s", out.String())
	}
}

func TestWatchedFiles(t *testing.T) {
	in := writeFixture(t)
	jobs, err := planJobs([]string{in}, renderOptions{})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	files := watchedFiles([]string{in}, jobs)
	if len(files) != 2 || filepath.Base(files[1]) != "main.go" {
		t.Fatalf("expected snapshot and source, got %v", files)
	}
}

// 失败的命令通过日志输出错误，取消时返回 130。
func TestExitCode(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.InfoLevel))

	if code := exitCode(ctx, nil); code != 0 {
		t.Fatalf("expected 0, got %d", code)
	}
	if code := exitCode(ctx, fmt.Errorf("render: %w", context.Canceled)); code != 130 {
		t.Fatalf("expected 130, got %d", code)
	}
	if buf.Len() != 0 {
		t.Fatalf("cancellation should not be logged: %s", buf.String())
	}
	if code := exitCode(ctx, errors.New("boom")); code != 1 {
		t.Fatalf("expected 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "boom") || !strings.Contains(buf.String(), "ERRO") {
		t.Fatalf("error not logged: %q", buf.String())
	}
}

// 初始规划失败时仍然开始监听，并记录警告。
func TestWatchLogsPlanFailure(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.snap")
	if err := os.WriteFile(in, []byte("snapshot {"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(withLogger(context.Background(), newLogger(&buf, log.DebugLevel)))
	cancel()

	if err := watch(ctx, []string{in}, renderOptions{}); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if !strings.Contains(buf.String(), "plan failed") {
		t.Fatalf("plan failure not logged: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "watching for changes") {
		t.Fatalf("watch should start despite the failure: %q", buf.String())
	}
}
