package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/exportlog"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the template catalog and the
// page renderer to AI agents.
type Server struct {
	catalog *catalog.Catalog
	exports *exportlog.Store
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server. exports may be nil, in which case
// renders are not recorded.
func NewServer(cat *catalog.Catalog, exports *exportlog.Store) *Server {
	if cat == nil {
		cat = catalog.Builtin()
	}
	s := &Server{
		catalog: cat,
		exports: exports,
	}

	s.mcp = server.NewMCPServer(
		"webinv",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listTemplatesTool, s.handleListTemplates)
	s.mcp.AddTool(getTemplateTool, s.handleGetTemplate)
	s.mcp.AddTool(listBlocksTool, s.handleListBlocks)
	s.mcp.AddTool(renderTemplateTool, s.handleRenderTemplate)
	s.mcp.AddTool(renderDocumentTool, s.handleRenderDocument)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
