package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/databricks-mcp/internal/common"
	"github.com/bobmcallan/databricks-mcp/internal/config"
	"github.com/bobmcallan/databricks-mcp/internal/databricks"
	"github.com/bobmcallan/databricks-mcp/internal/mcp"
	"github.com/bobmcallan/databricks-mcp/internal/server"
)

// shutdownTimeout bounds the graceful shutdown of the HTTP transports.
const shutdownTimeout = 10 * time.Second

type options struct {
	configFiles []string
	transport   string
	port        int
	logLevel    string
}

// rootCmd builds the databricks-mcp command tree.
func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "databricks-mcp",
		Short:         "databricks-mcp exposes the Databricks REST API as MCP tools.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), opts)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "databricks-mcp: %v\n", err)
			}
			return err
		},
	}

	cmd.Flags().StringSliceVarP(&opts.configFiles, "config", "c", []string{"databricks-mcp.toml"}, "Config file; repeat to merge several, later files win")
	cmd.Flags().StringVar(&opts.transport, "transport", "", "Transport: stdio, sse or http")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Listen port for the sse and http transports")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")

	cmd.AddCommand(versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			config.LoadVersionFromFile()
			fmt.Fprintf(cmd.OutOrStdout(), "databricks-mcp %s\n", config.GetFullVersion())
		},
	}
}

func run(ctx context.Context, opts *options) error {
	config.LoadVersionFromFile()

	cfg, err := config.LoadFromFiles(opts.configFiles...)
	if err != nil {
		return err
	}
	config.ApplyFlagOverrides(cfg, opts.transport, opts.port, opts.logLevel)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)
	logger.Info().
		Str("version", config.GetVersion()).
		Str("transport", cfg.Server.Transport).
		Str("auth", authMode(cfg.Databricks)).
		Msg("starting databricks-mcp")

	client := databricks.NewClient(cfg.Databricks, logger)
	mcpSrv := mcp.NewServer(cfg, client, logger)

	if cfg.Server.Transport == config.TransportStdio {
		// Stdio transport: reads stdin, writes stdout
		return mcpserver.ServeStdio(mcpSrv)
	}
	return serveHTTP(ctx, cfg, mcpSrv, logger)
}

// serveHTTP runs the sse or http transport until SIGINT/SIGTERM, then
// shuts the listener down gracefully.
func serveHTTP(ctx context.Context, cfg *config.Config, mcpSrv *mcpserver.MCPServer, logger *common.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, mcpSrv, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(srv.Start)

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			// Open SSE streams keep Shutdown waiting until the deadline.
			logger.Warn().Str("error", err.Error()).Msg("graceful shutdown incomplete")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Str("error", err.Error()).Msg("HTTP transport failed")
		return err
	}
	return nil
}

func authMode(cfg config.DatabricksConfig) string {
	if cfg.UsesOAuth() {
		return "oauth-m2m"
	}
	return "token"
}
