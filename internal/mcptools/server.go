package mcptools

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewHorizonMCPServer creates an MCP server with the horizon tools registered.
func NewHorizonMCPServer(svc *HorizonService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "horizon",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:         "count_children",
		Description:  "Count the direct children of a record. Unknown ids have zero children.",
		OutputSchema: countChildrenSchema(),
	}, svc.CountChildren)

	mcp.AddTool(server, &mcp.Tool{
		Name:         "get_children",
		Description:  "List the direct children of a record in input order. Unknown ids have no children.",
		OutputSchema: getChildrenSchema(),
	}, svc.GetChildren)

	mcp.AddTool(server, &mcp.Tool{
		Name:         "get_parent",
		Description:  "Return the parent id of a record, or null for a root. Fails for unknown ids.",
		OutputSchema: getParentSchema(),
	}, svc.GetParent)

	mcp.AddTool(server, &mcp.Tool{
		Name:         "get_view",
		Description:  "Build the horizon view around a record: nearby ancestors and their siblings plus descendants, as {nodes, edges} for a graph renderer. Fails for unknown ids.",
		OutputSchema: getViewSchema(),
	}, svc.GetView)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stats",
		Description: "Summarize the record index: record, root, orphan and leaf counts, and the default view limits.",
	}, svc.GetStats)

	return server
}

// RunMCPServer starts an HTTP server exposing the horizon MCP tools.
func RunMCPServer(ctx context.Context, svc *HorizonService, addr string) error {
	server := NewHorizonMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		if err := httpServer.Shutdown(context.Background()); err != nil {
			svc.logger.Warn("mcp server shutdown failed", "err", err)
		}
	}()

	svc.logger.Info("mcp server listening", slog.String("addr", addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	svc.logger.Info("mcp server stopped")
	return nil
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, svc *HorizonService) error {
	return NewHorizonMCPServer(svc).Run(ctx, &mcp.StdioTransport{})
}
