package dockb

import (
	"fmt"
	"strings"
	"time"
)

// Markdown rendering shared by the report writer, the CLI, and the tool
// server. Everything here is a plain rendering of knowledge-base data.

// RenderSearchResults formats search matches. The caller caps the matches
// slice for display and passes the uncapped total.
func RenderSearchResults(query string, matches []MethodRecord, total int) string {
	if total == 0 {
		return fmt.Sprintf("No API methods found matching %q", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d API methods matching %q:\n\n", total, query)
	for _, rec := range matches {
		fmt.Fprintf(&b, "**%s**\n", rec.Key)
		if rec.HTTPMethod != "" && rec.Endpoint != "" {
			fmt.Fprintf(&b, "  `%s %s`\n", rec.HTTPMethod, rec.Endpoint)
		}
		if rec.Description != "" {
			fmt.Fprintf(&b, "  %s\n", rec.Description)
		}
		b.WriteString("\n")
	}
	if rest := total - len(matches); rest > 0 {
		fmt.Fprintf(&b, "... and %d more results\n", rest)
	}
	return b.String()
}

// RenderDetails formats one record as a markdown document.
func RenderDetails(rec MethodRecord) string {
	var b strings.Builder

	title := rec.Name
	if title == "" {
		title = rec.Key
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if rec.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", rec.Description)
	}
	if rec.HTTPMethod != "" && rec.Endpoint != "" {
		fmt.Fprintf(&b, "## Endpoint\n```\n%s %s\n```\n\n", rec.HTTPMethod, rec.Endpoint)
	}
	if len(rec.Parameters) > 0 {
		b.WriteString("## Parameters\n")
		b.WriteString(renderParameterTable(rec.Parameters))
		b.WriteString("\n")
	}
	if rec.Example != "" {
		fmt.Fprintf(&b, "## Example\n```json\n%s\n```\n\n", rec.Example)
	}
	if rec.Response != "" {
		fmt.Fprintf(&b, "## Response\n%s\n\n", rec.Response)
	}
	if rec.SourceURL != "" {
		fmt.Fprintf(&b, "Source: %s\n", rec.SourceURL)
	}
	return b.String()
}

// RenderGroups formats the grouped key listing.
func RenderGroups(groups []Group, total int) string {
	if total == 0 {
		return "No API methods available in the knowledge base. Try refreshing it."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Available API Methods (%d total)\n", total)
	for _, g := range groups {
		fmt.Fprintf(&b, "\n### %s\n", strings.ToUpper(g.Prefix))
		for _, key := range g.Keys {
			fmt.Fprintf(&b, "- %s\n", key)
		}
	}
	return b.String()
}

// RenderStatus formats knowledge-base status.
func RenderStatus(st Stats) string {
	var b strings.Builder
	b.WriteString("## Knowledge Base Status\n\n")
	fmt.Fprintf(&b, "- **Total API methods**: %d\n", st.Records)
	if st.LastUpdate.IsZero() {
		b.WriteString("- **Last updated**: never\n")
	} else {
		fmt.Fprintf(&b, "- **Last updated**: %s\n", st.LastUpdate.Format("2006-01-02 15:04:05"))
		age := time.Since(st.LastUpdate)
		fmt.Fprintf(&b, "- **Age**: %dd %dh\n", int(age.Hours())/24, int(age.Hours())%24)
	}
	if st.Records > 0 {
		b.WriteString("\n### Statistics\n")
		fmt.Fprintf(&b, "- Methods with parameters: %d\n", st.WithParameters)
		fmt.Fprintf(&b, "- Methods with examples: %d\n", st.WithExamples)
	}
	return b.String()
}

// RenderReport renders the whole snapshot as the generated documentation
// file. The report is regenerated in full on every save, never patched.
func RenderReport(snap *Snapshot, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("# API Documentation Knowledge Base\n")
	fmt.Fprintf(&b, "*Generated on: %s*\n\n", generatedAt.Format("2006-01-02 15:04:05"))

	if snap.Len() == 0 {
		b.WriteString("**No API data was collected. This might be due to authentication issues or changes in the website structure.**\n\n")
		b.WriteString("## Manual Steps Required\n")
		b.WriteString("1. Visit the portal manually and log in\n")
		b.WriteString("2. Navigate to the API documentation\n")
		b.WriteString("3. Check whether the portal's login flow or page structure changed\n")
		return b.String()
	}

	b.WriteString("## API Methods\n\n")
	for _, rec := range snap.Records() {
		title := rec.Name
		if title == "" {
			title = rec.Key
		}
		fmt.Fprintf(&b, "### %s\n", title)
		if rec.Description != "" {
			fmt.Fprintf(&b, "%s\n", rec.Description)
		}
		b.WriteString("\n")
		if rec.HTTPMethod != "" && rec.Endpoint != "" {
			fmt.Fprintf(&b, "```\n%s %s\n```\n\n", rec.HTTPMethod, rec.Endpoint)
		}
		if len(rec.Parameters) > 0 {
			b.WriteString("**Parameters:**\n")
			b.WriteString(renderParameterTable(rec.Parameters))
			b.WriteString("\n")
		}
		if rec.Example != "" {
			fmt.Fprintf(&b, "**Example:**\n```json\n%s\n```\n\n", rec.Example)
		}
		b.WriteString("---\n\n")
	}
	return b.String()
}

func renderParameterTable(params []Parameter) string {
	var b strings.Builder
	b.WriteString("| Name | Type | Description | Required |\n")
	b.WriteString("|------|------|-------------|----------|\n")
	for _, p := range params {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			escapePipes(p.Name), escapePipes(p.Type),
			escapePipes(p.Description), escapePipes(p.Required))
	}
	return b.String()
}

// escapePipes keeps free-form cell text from breaking the table.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
