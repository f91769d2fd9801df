package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/horizon/internal/config"
	"github.com/dusk-indust/horizon/internal/mcptools"
	"github.com/dusk-indust/horizon/internal/viewserver"
)

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON view API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}
			ix, err := a.loadIndex()
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return viewserver.NewServer(ix, a.logger).Run(ctx, a.cfg.ListenAddr())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then "+config.DefaultAddr+")")
	return cmd
}

func newServeMCPCmd(a *app) *cobra.Command {
	var (
		addr  string
		stdio bool
	)
	cmd := &cobra.Command{
		Use:   "serve-mcp",
		Short: "Expose the index as MCP tools over streamable HTTP or stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}
			ix, err := a.loadIndex()
			if err != nil {
				return err
			}
			svc := mcptools.NewHorizonService(ix, a.logger)

			ctx, stop := signalContext(cmd.Context())
			defer stop()
			if stdio {
				return mcptools.RunMCPServerStdio(ctx, svc)
			}
			return mcptools.RunMCPServer(ctx, svc, a.cfg.ListenAddr())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then "+config.DefaultAddr+")")
	cmd.Flags().BoolVar(&stdio, "stdio", false, "serve MCP on stdin/stdout instead of HTTP")
	return cmd
}
