package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/db"
	"github.com/web-inv/sitebuilder/internal/exportlog"
)

func setupServer(t *testing.T) (*Server, *exportlog.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	exports := exportlog.NewStore(database)
	return NewServer(catalog.Builtin(), exports), exports
}

// extractText gets the text content from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		tool     mcp.Tool
		wantName string
	}{
		{listTemplatesTool, "list_templates"},
		{getTemplateTool, "get_template"},
		{listBlocksTool, "list_blocks"},
		{renderTemplateTool, "render_template"},
		{renderDocumentTool, "render_document"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
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
	srv := NewServer(nil, nil)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.catalog == nil || srv.catalog.Len() == 0 {
		t.Error("nil catalog should fall back to the built-in templates")
	}
}

func TestHandleListTemplates(t *testing.T) {
	srv, _ := setupServer(t)
	ctx := context.Background()

	t.Run("all", func(t *testing.T) {
		result, err := srv.handleListTemplates(ctx, call(map[string]any{}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := extractText(result)
		for _, id := range []string{"startup-modern", "landing-saas", "fitness-energy"} {
			if !strings.Contains(text, id) {
				t.Errorf("listing missing %s", id)
			}
		}
	})

	t.Run("category", func(t *testing.T) {
		result, _ := srv.handleListTemplates(ctx, call(map[string]any{"category": "Portfolio"}))
		text := extractText(result)
		if !strings.Contains(text, "portfolio-creative") {
			t.Errorf("expected portfolio-creative, got:\n%s", text)
		}
		if strings.Contains(text, "startup-modern") {
			t.Error("category filter not applied")
		}
	})

	t.Run("empty category", func(t *testing.T) {
		result, _ := srv.handleListTemplates(ctx, call(map[string]any{"category": "Custom"}))
		if result.IsError {
			t.Error("empty listing should not be an error")
		}
		if !strings.Contains(extractText(result), "No templates") {
			t.Errorf("unexpected text: %s", extractText(result))
		}
	})
}

func TestHandleGetTemplate(t *testing.T) {
	srv, _ := setupServer(t)
	ctx := context.Background()

	result, err := srv.handleGetTemplate(ctx, call(map[string]any{"id": "landing-saas"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", extractText(result))
	}
	var tmpl catalog.Template
	if err := json.Unmarshal([]byte(extractText(result)), &tmpl); err != nil {
		t.Fatalf("decoding template: %v", err)
	}
	if tmpl.ID != "landing-saas" || len(tmpl.Sections) == 0 {
		t.Errorf("got %+v", tmpl)
	}

	result, _ = srv.handleGetTemplate(ctx, call(map[string]any{"id": "nope"}))
	if !result.IsError {
		t.Error("expected error for unknown template")
	}

	result, _ = srv.handleGetTemplate(ctx, call(map[string]any{}))
	if !result.IsError {
		t.Error("expected error for missing id")
	}
}

func TestHandleListBlocks(t *testing.T) {
	srv, _ := setupServer(t)
	result, _ := srv.handleListBlocks(context.Background(), call(nil))
	text := extractText(result)
	for _, want := range []string{"hero: Hero Section", "footer: Footer"} {
		if !strings.Contains(text, want) {
			t.Errorf("blocks missing %q", want)
		}
	}
}

func TestHandleRenderTemplate(t *testing.T) {
	srv, exports := setupServer(t)
	ctx := context.Background()

	result, err := srv.handleRenderTemplate(ctx, call(map[string]any{"id": "startup-modern"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := extractText(result)
	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Errorf("expected a full page, got %.60q", html)
	}

	entries, err := exports.Query(ctx, exportlog.QueryFilter{Source: exportlog.SourceMCP})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 || entries[0].DocumentID != "startup-modern" || entries[0].Bytes != len(html) {
		t.Errorf("export log = %+v", entries)
	}

	result, _ = srv.handleRenderTemplate(ctx, call(map[string]any{"id": "nope"}))
	if !result.IsError {
		t.Error("expected error for unknown template")
	}
}

func TestHandleRenderDocument(t *testing.T) {
	srv, _ := setupServer(t)
	ctx := context.Background()

	t.Run("yaml", func(t *testing.T) {
		src := `
id: acme
title: Acme Rockets
sections:
  - id: hero
    type: hero
    content:
      title: Lift Off
`
		result, _ := srv.handleRenderDocument(ctx, call(map[string]any{"document": src}))
		if result.IsError {
			t.Fatalf("unexpected tool error: %s", extractText(result))
		}
		html := extractText(result)
		if !strings.Contains(html, "Lift Off") || !strings.Contains(html, "<title>Acme Rockets</title>") {
			t.Errorf("rendered page missing content:\n%s", html)
		}
	})

	t.Run("template json", func(t *testing.T) {
		result, _ := srv.handleRenderDocument(ctx, call(map[string]any{"document": `{"template": "landing-saas", "title": "Mine"}`}))
		if result.IsError {
			t.Fatalf("unexpected tool error: %s", extractText(result))
		}
		if !strings.Contains(extractText(result), "<title>Mine</title>") {
			t.Error("title override not applied")
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, src := range []string{"template: nope\n", "bogus: 1\n", "{not json"} {
			result, _ := srv.handleRenderDocument(ctx, call(map[string]any{"document": src}))
			if !result.IsError {
				t.Errorf("%q: expected tool error", src)
			}
		}
	})
}
