package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/aretw0/marquee/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const stateURI = "marquee://state"

// PreviewResponse is the result of the preview_chunks tool.
type PreviewResponse struct {
	Layout domain.Layout `json:"layout" jsonschema_description:"The normalized layout the text was chunked with"`
	Chunks []string      `json:"chunks" jsonschema_description:"Chunks in display order, lines joined by newlines"`
}

// Server wraps the Marquee Engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("marquee-mcp", strings.TrimSpace(marquee.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: preview_chunks
	previewTool := mcp.NewTool("preview_chunks",
		mcp.WithDescription("Split text into display chunks without saving or showing anything. Omitted layout fields use the current settings."),
		mcp.WithString("message", mcp.Required(), mcp.Description("Text to chunk")),
		mcp.WithNumber("width", mcp.Description("Characters per line (5-32)")),
		mcp.WithNumber("lines", mcp.Description("Lines per chunk (1-5)")),
		mcp.WithNumber("indent", mcp.Description("Spaces prepended to every line")),
		mcp.WithOutputSchema[PreviewResponse](),
	)
	s.mcpServer.AddTool(previewTool, mcp.NewStructuredToolHandler(s.handlePreview))

	// TOOL: submit_message
	submitTool := mcp.NewTool("submit_message",
		mcp.WithDescription("Save text and settings, then start (send), stop (stop) or only preview (save) the scrolling display."),
		mcp.WithString("message", mcp.Required(), mcp.Description("Text to show")),
		mcp.WithString("action", mcp.Description("One of save, send, stop. Defaults to save.")),
		mcp.WithBoolean("enabled", mcp.Description("Allow showing on screen. Defaults to the current value.")),
		mcp.WithNumber("width", mcp.Description("Characters per line (5-32)")),
		mcp.WithNumber("lines", mcp.Description("Lines per chunk (1-5)")),
		mcp.WithNumber("interval", mcp.Description("Seconds per chunk (1-60)")),
		mcp.WithNumber("indent", mcp.Description("Spaces prepended to every line")),
		mcp.WithOutputSchema[domain.View](),
	)
	s.mcpServer.AddTool(submitTool, mcp.NewStructuredToolHandler(s.handleSubmit))

	// TOOL: get_state
	s.mcpServer.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Get the stored text, settings, scrolling status and current chunks."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.engine.View(ctx))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handlePreview(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PreviewResponse, error) {
	message, _ := args["message"].(string)
	clean, err := runner.SanitizeInput(message)
	if err != nil {
		s.logger.Warn("MCP Preview: Input rejected", "err", err, "size", len(message))
		return PreviewResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	sub := domain.Submission{
		Width:  numberArg(args, "width"),
		Lines:  numberArg(args, "lines"),
		Indent: numberArg(args, "indent"),
	}
	layout := sub.Apply(s.engine.Layout()).Normalize()

	return PreviewResponse{
		Layout: layout,
		Chunks: domain.ChunkStrings(s.engine.Preview(clean, layout)),
	}, nil
}

func (s *Server) handleSubmit(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.View, error) {
	message, _ := args["message"].(string)
	clean, err := runner.SanitizeInput(message)
	if err != nil {
		s.logger.Warn("MCP Submit: Input rejected", "err", err, "size", len(message))
		return domain.View{}, fmt.Errorf("input rejected: %w", err)
	}

	action, _ := args["action"].(string)
	enabled, ok := args["enabled"].(bool)
	if !ok {
		enabled = s.engine.Snapshot().Enabled
	}

	return s.engine.Submit(ctx, domain.Submission{
		Message:  clean,
		Enabled:  enabled,
		Width:    numberArg(args, "width"),
		Lines:    numberArg(args, "lines"),
		Interval: numberArg(args, "interval"),
		Indent:   numberArg(args, "indent"),
		Action:   domain.ParseAction(action),
	}), nil
}

func (s *Server) registerResources() {
	// EXPOSE: marquee://state
	s.mcpServer.AddResource(mcp.NewResource(stateURI, "Current Marquee State",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.View(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to encode state: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      stateURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

// numberArg renders a numeric tool argument as the raw form string the
// domain parser expects. Missing or non-numeric values yield "".
func numberArg(args map[string]interface{}, key string) string {
	switch v := args[key].(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return ""
	}
}
