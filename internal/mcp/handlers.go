package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ogtechminds/orgchart/internal/diagrams"
	"github.com/ogtechminds/orgchart/internal/hierarchy"
	"github.com/ogtechminds/orgchart/internal/orgchart"
)

// handleListTeams returns the configured team tags with their sizes.
func (s *Server) handleListTeams(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := s.charts.Options()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d team(s):\n", len(opts.Teams)))
	for _, t := range opts.Teams {
		root, err := s.charts.Tree(ctx, t)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("loading %s failed: %v", t, err)), nil
		}
		label := t
		if t == opts.DefaultTeam {
			label += " (default)"
		}
		sb.WriteString(fmt.Sprintf("- %s: %d member(s)\n", label, hierarchy.Count(root)))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetOrgChart renders a team's chart as Mermaid or JSON.
func (s *Server) handleGetOrgChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	team, err := s.charts.ResolveTeam(request.GetString("team", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch format := request.GetString("format", "mermaid"); format {
	case "mermaid":
		root, err := s.charts.Tree(ctx, team)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("building chart failed: %v", err)), nil
		}
		if root == nil {
			return mcp.NewToolResultText(fmt.Sprintf("Team %s has no members yet.", team)), nil
		}
		return mcp.NewToolResultText(diagrams.Mermaid(root)), nil
	case "json":
		chart, err := s.charts.Chart(ctx, team)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("building chart failed: %v", err)), nil
		}
		data, err := json.MarshalIndent(orgchart.ChartResponse{Team: team, Empty: chart == nil, Chart: chart}, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding chart failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q (want mermaid or json)", format)), nil
	}
}

// match is a member found by name, with its chain from the team root.
type match struct {
	Team  string
	Chain []hierarchy.Member
}

// handleFindMember searches member names and reports each hit's chain.
func (s *Server) handleFindMember(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}

	teams := s.charts.Options().Teams
	if t := request.GetString("team", ""); t != "" {
		team, err := s.charts.ResolveTeam(t)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		teams = []string{team}
	}

	var matches []match
	for _, team := range teams {
		root, err := s.charts.Tree(ctx, team)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("loading %s failed: %v", team, err)), nil
		}
		matches = append(matches, findByName(root, team, name)...)
	}

	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No member matching %q.", name)), nil
	}
	return mcp.NewToolResultText(formatMatches(matches)), nil
}

// findByName walks the tree in pre-order collecting members whose name
// contains query, each with its path from the root.
func findByName(root *hierarchy.Node, team, query string) []match {
	if root == nil {
		return nil
	}
	query = strings.ToLower(query)
	var out []match
	var walk func(n *hierarchy.Node, path []hierarchy.Member)
	walk = func(n *hierarchy.Node, path []hierarchy.Member) {
		path = append(path[:len(path):len(path)], n.Member)
		if strings.Contains(strings.ToLower(n.Member.Name), query) {
			out = append(out, match{Team: team, Chain: path})
		}
		for _, c := range n.Children {
			walk(c, path)
		}
	}
	walk(root, nil)
	return out
}

// formatMatches renders matches with the member first and its chain of
// managers up to the root below it.
func formatMatches(matches []match) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d member(s):\n", len(matches)))

	for i, m := range matches {
		self := m.Chain[len(m.Chain)-1]
		sb.WriteString(fmt.Sprintf("\n--- Member %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("Name: %s\n", self.Name))
		if self.Role != "" {
			sb.WriteString(fmt.Sprintf("Role: %s\n", self.Role))
		}
		sb.WriteString(fmt.Sprintf("Team: %s\n", m.Team))
		if self.LinkedInURL != "" {
			sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", self.LinkedInURL))
		}
		if len(m.Chain) == 1 {
			sb.WriteString("Reports to: nobody (top of the team)\n")
			continue
		}
		sb.WriteString("Reports to:\n")
		for j := len(m.Chain) - 2; j >= 0; j-- {
			up := m.Chain[j]
			if up.Role != "" {
				sb.WriteString(fmt.Sprintf("  %s (%s)\n", up.Name, up.Role))
			} else {
				sb.WriteString(fmt.Sprintf("  %s\n", up.Name))
			}
		}
	}

	return sb.String()
}
