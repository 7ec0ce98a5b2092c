// Package mcp exposes the knowledge base as Model Context Protocol tools so
// coding assistants can query the vendor API documentation directly.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/asafar/dockb"
)

// Refresher is the subset of the refresh driver the tools need.
type Refresher interface {
	Refresh(ctx context.Context) (*dockb.Run, error)
}

// Tools holds references needed by the tool handlers.
type Tools struct {
	KB        *dockb.KnowledgeBase
	Refresher Refresher
}

// maxSearchResults caps how many matches a search renders; the summary line
// still reports the full match count.
const maxSearchResults = 10

// --- Input types ---

type SearchInput struct {
	Query string `json:"query" jsonschema:"Search term matched against method names, endpoints and descriptions"`
}

type DetailsInput struct {
	Key string `json:"key" jsonschema:"Method key, usually the endpoint path (e.g. /device/status)"`
}

type ListInput struct{}

type UpdateInput struct{}

type StatusInput struct{}

// --- Handlers ---

// Search returns the methods matching a case-insensitive substring query.
func (t *Tools) Search(_ context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, any, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return toolError("Search query is required."), nil, nil
	}

	matches := t.KB.Search(query)
	total := len(matches)
	if len(matches) > maxSearchResults {
		matches = matches[:maxSearchResults]
	}
	return toolText(dockb.RenderSearchResults(query, matches, total)), nil, nil
}

// Details returns one method by key. An exact match is preferred; failing
// that, a single fuzzy match is returned, and multiple fuzzy matches are
// listed for disambiguation.
func (t *Tools) Details(_ context.Context, _ *mcp.CallToolRequest, input DetailsInput) (*mcp.CallToolResult, any, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return toolError("Method key is required."), nil, nil
	}

	if rec, ok := t.KB.Details(key); ok {
		return toolText(dockb.RenderDetails(rec)), nil, nil
	}

	matches := t.KB.Search(key)
	switch len(matches) {
	case 0:
		return toolError("No method found for %q. Try search_api_methods first.", key), nil, nil
	case 1:
		return toolText(dockb.RenderDetails(matches[0])), nil, nil
	default:
		keys := make([]string, len(matches))
		for i, m := range matches {
			keys[i] = m.Key
		}
		return toolError("No exact match for %q. Did you mean one of: %s", key, strings.Join(keys, ", ")), nil, nil
	}
}

// List returns every known method key grouped by endpoint prefix.
func (t *Tools) List(_ context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, any, error) {
	groups := t.KB.GroupByPrefix()
	total := t.KB.Stats().Records
	return toolText(dockb.RenderGroups(groups, total)), nil, nil
}

// Update triggers a knowledge-base refresh and reports its outcome.
func (t *Tools) Update(ctx context.Context, _ *mcp.CallToolRequest, _ UpdateInput) (*mcp.CallToolResult, any, error) {
	if t.Refresher == nil {
		return toolError("Refresh is not available in this mode."), nil, nil
	}

	run, err := t.Refresher.Refresh(ctx)
	if err != nil {
		return toolError("Refresh failed: %s", dockb.ErrorMessage(err)), nil, nil
	}
	return toolText(fmt.Sprintf(
		"Knowledge base updated: %d methods from %d pages (%d pages failed).",
		run.Records, run.PagesFetched, run.PagesFailed,
	)), nil, nil
}

// Status reports record counts and the last update time.
func (t *Tools) Status(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, any, error) {
	return toolText(dockb.RenderStatus(t.KB.Stats())), nil, nil
}

// --- Result helpers ---

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
