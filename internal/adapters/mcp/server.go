// Package mcp exposes the Concord dispatch core as a Model Context
// Protocol server over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/concord/internal/dispatcher"
	"github.com/aretw0/concord/pkg/domain"
	"github.com/aretw0/concord/pkg/registry"
	"github.com/aretw0/concord/pkg/schema"
)

// Server bridges the tool registry and dispatcher onto an MCP server.
type Server struct {
	dispatcher *dispatcher.Dispatcher
	mcpServer  *server.MCPServer
	logger     *slog.Logger
}

// NewServer declares every registered tool on a fresh MCP server bound to
// the dispatcher.
func NewServer(d *dispatcher.Dispatcher, reg *registry.Registry, version string, logger *slog.Logger) *Server {
	s := &Server{
		dispatcher: d,
		mcpServer:  server.NewMCPServer("concord", version),
		logger:     logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for _, spec := range reg.Specs() {
		s.mcpServer.AddTool(toolFromSpec(spec), s.handler(spec.Name))
	}
	return s
}

// toolFromSpec converts a registry spec into the MCP tool declaration.
// The registry schema stays the single source of truth: what the client
// sees is derived, never hand-maintained.
func toolFromSpec(spec registry.ToolSpec) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(spec.Description)}
	for _, f := range spec.Params {
		opts = append(opts, propertyOption(f))
	}
	return mcp.NewTool(spec.Name, opts...)
}

func propertyOption(f schema.Field) mcp.ToolOption {
	var props []mcp.PropertyOption
	if f.Required {
		props = append(props, mcp.Required())
	}
	if f.Description != "" {
		props = append(props, mcp.Description(f.Description))
	}

	switch t := f.Type.(type) {
	case *schema.EnumType:
		props = append(props, mcp.Enum(t.Values()...))
		return mcp.WithString(f.Name, props...)
	case *schema.IntType, *schema.IntRangeType:
		return mcp.WithNumber(f.Name, props...)
	case *schema.BoolType:
		return mcp.WithBoolean(f.Name, props...)
	case *schema.SliceType:
		props = append(props, mcp.Items(map[string]any{"type": itemTypeName(t.Elem())}))
		return mcp.WithArray(f.Name, props...)
	default:
		// Strings and snowflakes both travel as JSON strings.
		return mcp.WithString(f.Name, props...)
	}
}

func itemTypeName(t schema.Type) string {
	switch t.(type) {
	case *schema.IntType, *schema.IntRangeType:
		return "number"
	case *schema.BoolType:
		return "boolean"
	default:
		return "string"
	}
}

// handler adapts one tool's dispatch into the MCP result shape. The whole
// normalized envelope is serialized so clients can key retry decisions off
// the stable error kind.
func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := s.dispatcher.Dispatch(ctx, domain.ToolCallRequest{
			Name: name,
			Args: request.GetArguments(),
		})

		body, err := json.Marshal(res)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
		}
		if res.Status == domain.StatusError {
			return mcp.NewToolResultError(string(body)), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE, with health and
// Prometheus metrics endpoints on the same mux.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	r := chi.NewRouter()
	r.Use(corsMiddleware)
	r.Handle("/sse", sseServer.SSEHandler())
	r.Handle("/message", sseServer.MessageHandler())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	httpServer := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
