package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listTeamsTool defines the list_teams MCP tool.
var listTeamsTool = mcp.NewTool("list_teams",
	mcp.WithDescription("List the configured team tags and which one is the default."),
)

// getOrgChartTool defines the get_org_chart MCP tool.
var getOrgChartTool = mcp.NewTool("get_org_chart",
	mcp.WithDescription("Get a team's organisation chart, either as laid-out JSON or as a Mermaid diagram."),
	mcp.WithString("team",
		mcp.Description("Team tag (defaults to the configured default team)"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default mermaid)"),
		mcp.Enum("mermaid", "json"),
	),
)

// findMemberTool defines the find_member MCP tool.
var findMemberTool = mcp.NewTool("find_member",
	mcp.WithDescription("Find members by name and show each one's reporting chain up to the top of their team."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Case-insensitive substring of the member's name"),
	),
	mcp.WithString("team",
		mcp.Description("Restrict the search to one team tag"),
	),
)
