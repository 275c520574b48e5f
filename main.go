package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if code := exitCode(ctx, newRootCmd().ExecuteContext(ctx)); code != 0 {
		os.Exit(code)
	}
}

// exitCode logs a failed command and maps it to a process exit code.
func exitCode(ctx context.Context, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		loggerFromContext(ctx).Error(err)
		return 1
	}
}

// newRootCmd 组装 codeshot 命令树。
func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "codeshot",
		Short:         "codeshot 将代码片段渲染为带窗口外观的图片",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newThemesCmd())
	root.AddCommand(newLanguagesCmd())
	return root
}
