package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ogtechminds/orgchart/internal/orgchart"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes org chart tools.
type Server struct {
	charts *orgchart.Service
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server reading charts from charts.
func NewServer(charts *orgchart.Service) *Server {
	s := &Server{charts: charts}

	s.mcp = server.NewMCPServer(
		"orgchart",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listTeamsTool, s.handleListTeams)
	s.mcp.AddTool(getOrgChartTool, s.handleGetOrgChart)
	s.mcp.AddTool(findMemberTool, s.handleFindMember)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
