package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ogtechminds/orgchart/internal/db"
	"github.com/ogtechminds/orgchart/internal/hierarchy"
	"github.com/ogtechminds/orgchart/internal/members"
	"github.com/ogtechminds/orgchart/internal/orgchart"
)

func setupTest(t *testing.T) *Server {
	t.Helper()
	d, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	store := members.NewStore(d)
	seed := []members.Member{
		{ID: "1", Name: "Asha Rao", Role: "President", Team: "TSSM"},
		{ID: "2", Name: "Ravi", Role: "Tech Lead", Team: "TSSM", ParentID: "1"},
		{ID: "3", Name: "Meera", Team: "TSSM", ParentID: "2", LinkedInURL: "https://linkedin.com/in/meera"},
		{ID: "9", Name: "Asha Iyer", Role: "President", Team: "JSPM"},
	}
	if err := store.Upsert(context.Background(), seed); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	svc := orgchart.NewService(store, orgchart.Options{
		Bounds:      hierarchy.Bounds{Width: 400, Height: 300},
		Teams:       []string{"TSSM", "JSPM"},
		DefaultTeam: "TSSM",
	})
	return NewServer(svc)
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_teams", listTeamsTool, "list_teams"},
		{"get_org_chart", getOrgChartTool, "get_org_chart"},
		{"find_member", findMemberTool, "find_member"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := setupTest(t)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.charts == nil {
		t.Error("chart service not set")
	}
}

func TestHandleListTeams(t *testing.T) {
	srv := setupTest(t)
	result, err := srv.handleListTeams(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "- TSSM (default): 3 member(s)") || !strings.Contains(text, "- JSPM: 1 member(s)") {
		t.Errorf("unexpected output:\n%s", text)
	}
}

func TestHandleGetOrgChart(t *testing.T) {
	srv := setupTest(t)
	ctx := context.Background()

	t.Run("mermaid default", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleGetOrgChart(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := resultText(t, result)
		if !strings.HasPrefix(text, "graph TD") || !strings.Contains(text, "Meera") {
			t.Errorf("unexpected mermaid:\n%s", text)
		}
	})

	t.Run("json", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"team": "JSPM", "format": "json"}

		result, err := srv.handleGetOrgChart(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := resultText(t, result)
		if !strings.Contains(text, `"team": "JSPM"`) || !strings.Contains(text, "Asha Iyer") {
			t.Errorf("unexpected json:\n%s", text)
		}
	})

	t.Run("unknown team", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"team": "NOPE"}

		result, err := srv.handleGetOrgChart(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for unknown team")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"format": "png"}

		result, err := srv.handleGetOrgChart(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for unknown format")
		}
	})
}

func TestHandleFindMember(t *testing.T) {
	srv := setupTest(t)
	ctx := context.Background()

	t.Run("chain to root", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"name": "meera"}

		result, err := srv.handleFindMember(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := resultText(t, result)
		for _, want := range []string{"Found 1 member(s)", "Name: Meera", "LinkedIn: https://linkedin.com/in/meera", "  Ravi (Tech Lead)\n  Asha Rao (President)"} {
			if !strings.Contains(text, want) {
				t.Errorf("output missing %q:\n%s", want, text)
			}
		}
	})

	t.Run("across teams", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"name": "Asha"}

		result, err := srv.handleFindMember(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := resultText(t, result)
		if !strings.Contains(text, "Found 2 member(s)") || !strings.Contains(text, "nobody (top of the team)") {
			t.Errorf("unexpected output:\n%s", text)
		}
	})

	t.Run("team filter", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"name": "Asha", "team": "JSPM"}

		result, err := srv.handleFindMember(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := resultText(t, result)
		if !strings.Contains(text, "Found 1 member(s)") || !strings.Contains(text, "Asha Iyer") {
			t.Errorf("unexpected output:\n%s", text)
		}
	})

	t.Run("no match", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"name": "zed"}

		result, err := srv.handleFindMember(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Error("no match should not be an error")
		}
	})

	t.Run("missing name", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleFindMember(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing name")
		}
	})
}

func TestFindByNameCycleSafe(t *testing.T) {
	root := hierarchy.Build([]hierarchy.Member{
		{ID: "a", Name: "Root"},
		{ID: "b", Name: "Loop One", ParentID: "c"},
		{ID: "c", Name: "Loop Two", ParentID: "b"},
	})
	got := findByName(root, "TSSM", "loop")
	if len(got) != 2 {
		t.Fatalf("matches = %d, want 2", len(got))
	}
	for _, m := range got {
		if m.Chain[0].ID != "a" {
			t.Errorf("chain should start at root, got %s", m.Chain[0].ID)
		}
	}
}
