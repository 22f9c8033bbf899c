package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/content"
	"github.com/web-inv/sitebuilder/internal/docfile"
	"github.com/web-inv/sitebuilder/internal/exportlog"
	"github.com/web-inv/sitebuilder/internal/render"
)

func (s *Server) handleListTemplates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := request.GetString("category", "")

	var templates []catalog.Template
	if category == "" {
		templates = s.catalog.List()
	} else {
		templates = s.catalog.Filter(catalog.Category(category))
	}

	if len(templates) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No templates found in category %q.", category)), nil
	}
	return mcp.NewToolResultText(formatTemplates(templates)), nil
}

func (s *Server) handleGetTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	tmpl, ok := s.catalog.Get(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("template %q not found; use list_templates to see available ids", id)), nil
	}

	data, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode template: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleListBlocks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	for _, b := range content.Blocks() {
		fmt.Fprintf(&sb, "%s: %s (%s)\n", b.Kind, b.Name, b.Category)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleRenderTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	tmpl, ok := s.catalog.Get(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("template %q not found", id)), nil
	}
	return s.renderResult(ctx, render.FromTemplate(tmpl))
}

func (s *Server) handleRenderDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := request.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: document"), nil
	}

	f, err := docfile.Parse([]byte(src))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid document: %v", err)), nil
	}
	doc, err := f.Document(s.catalog)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid document: %v", err)), nil
	}
	return s.renderResult(ctx, doc)
}

func (s *Server) renderResult(ctx context.Context, doc render.Document) (*mcp.CallToolResult, error) {
	page, err := render.HTML(doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	if s.exports != nil {
		err := s.exports.Log(ctx, exportlog.Entry{
			Action:     exportlog.ActionExport,
			Source:     exportlog.SourceMCP,
			DocumentID: doc.ID,
			Filename:   render.Filename(doc.ID),
			Bytes:      len(page),
			Sections:   len(doc.Sections),
		})
		if err != nil {
			log.Printf("mcp: recording export of %s: %v", doc.ID, err)
		}
	}

	return mcp.NewToolResultText(string(page)), nil
}

// formatTemplates lists templates one per line for agent consumption.
func formatTemplates(templates []catalog.Template) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d template(s):\n", len(templates))
	for _, t := range templates {
		fmt.Fprintf(&sb, "\n%s: %s\n", t.ID, t.Name)
		fmt.Fprintf(&sb, "Category: %s\n", t.Category)
		fmt.Fprintf(&sb, "Rating: %.1f, Downloads: %d\n", t.Rating, t.Downloads)
		fmt.Fprintf(&sb, "Sections: %d\n", len(t.Sections))
		if t.Description != "" {
			sb.WriteString(t.Description)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
