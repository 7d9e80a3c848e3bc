package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/concord"
	"github.com/aretw0/concord/internal/adapters/mcp"
	"github.com/aretw0/concord/internal/config"
	"github.com/aretw0/concord/internal/logging"
	"github.com/aretw0/concord/internal/session"
)

// serveCmd starts the MCP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts Concord as an MCP Server.
This lets AI agents (like Claude Desktop) manage a Discord server as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}

		transport := cfg.Transport
		if cmd.Flags().Changed("transport") || transport == "" {
			transport, _ = cmd.Flags().GetString("transport")
		}
		port := cfg.Port
		if cmd.Flags().Changed("port") || port == 0 {
			port, _ = cmd.Flags().GetInt("port")
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		token, err := session.ResolveToken(
			session.FromValue(cfg.Token),
			session.FromEnv(session.EnvToken),
			session.FromEnv(session.EnvTokenAlt),
		)
		if err != nil {
			logger.Error("credential resolution failed", "err", err)
			os.Exit(1)
		}

		sys, err := concord.New(token,
			concord.WithLogger(logger),
			concord.WithDefaultGuild(cfg.DefaultGuildID),
			concord.WithMetrics(prometheus.DefaultRegisterer),
		)
		if err != nil {
			logger.Error("wiring failed", "err", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// The session must be live before the first tool call arrives. A
		// rejected credential is fatal here, not surfaced per call.
		if err := sys.Session.Open(ctx); err != nil {
			logger.Error("session establishment failed", "err", err)
			os.Exit(1)
		}
		defer sys.Session.Close()

		srv := mcp.NewServer(sys.Dispatcher, sys.Registry, concord.Version, logger)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout.
			log.SetOutput(os.Stderr)
			logger.Info("starting MCP server (stdio)", "tools", sys.Registry.Len())
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP server execution failed", "err", err)
				os.Exit(1)
			}
		case "sse":
			logger.Info("starting MCP server (SSE)", "port", port, "tools", sys.Registry.Len())
			if err := srv.ServeSSE(ctx, port); err != nil {
				if err != http.ErrServerClosed {
					logger.Error("MCP server execution failed", "err", err)
					os.Exit(1)
				}
			}
			logger.Info("MCP server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	serveCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
