package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/asafar/dockb"
)

// New creates a fully configured MCP server with all tools registered.
func New(kb *dockb.KnowledgeBase, refresher Refresher, version string) *mcp.Server {
	t := &Tools{KB: kb, Refresher: refresher}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "dockb",
		Version: version,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_api_methods",
		Description: "Search the vendor API documentation by method name, endpoint path or description",
	}, t.Search)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_api_method_details",
		Description: "Get full documentation for one API method: endpoint, parameters, example and source page",
	}, t.Details)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_all_api_methods",
		Description: "List every known API method grouped by endpoint prefix",
	}, t.List)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_knowledge_base",
		Description: "Re-scrape the documentation portal and rebuild the knowledge base",
	}, t.Update)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_knowledge_base_status",
		Description: "Report how many methods are known and when they were last refreshed",
	}, t.Status)

	return srv
}
