package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listTemplatesTool = mcp.NewTool("list_templates",
	mcp.WithDescription("List the website templates in the catalog with their category, rating and download count."),
	mcp.WithString("category",
		mcp.Description("Only list templates in this category"),
		mcp.Enum("Business", "E-commerce", "Portfolio", "Restaurant", "Fitness", "Landing Page", "Custom"),
	),
)

var getTemplateTool = mcp.NewTool("get_template",
	mcp.WithDescription("Get a template's full definition as JSON, including its palette and ordered sections."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Template id, e.g. landing-saas"),
	),
)

var listBlocksTool = mcp.NewTool("list_blocks",
	mcp.WithDescription("List the section kinds that can be used in a document."),
)

var renderTemplateTool = mcp.NewTool("render_template",
	mcp.WithDescription("Render a catalog template to a standalone HTML page."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Template id"),
	),
)

// renderDocumentTool accepts the same YAML or JSON format as site files
// read by `webinv build`.
var renderDocumentTool = mcp.NewTool("render_document",
	mcp.WithDescription("Render a page description (YAML or JSON with optional template, title, palette and sections) to a standalone HTML page."),
	mcp.WithString("document",
		mcp.Required(),
		mcp.Description("Document source in YAML or JSON"),
	),
)
