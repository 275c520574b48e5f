package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ByLCY/codeshot/config"
	"github.com/ByLCY/codeshot/server"
)

func newServeCmd() *cobra.Command {
	var (
		addr       string
		configPath string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 渲染服务",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			defaults, err := config.LoadDefaults(configPath)
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr: addr,
				Handler: server.New(server.Options{
					Defaults: defaults,
					Logger:   logger,
					Timeout:  timeout,
				}).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			logger.Info("listening", "addr", addr)

			select {
			case err := <-errc:
				return fmt.Errorf("HTTP 服务异常退出: %w", err)
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "监听地址")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML 默认值文件")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "单次渲染超时")
	return cmd
}
