package dockb_test

import (
	"testing"
	"time"

	"github.com/asafar/dockb"
	"github.com/stretchr/testify/assert"
)

func TestRenderSearchResults(t *testing.T) {
	t.Parallel()

	t.Run("reports no matches", func(t *testing.T) {
		t.Parallel()

		out := dockb.RenderSearchResults("door", nil, 0)

		assert.Contains(t, out, `No API methods found matching "door"`)
	})

	t.Run("lists matches with method and endpoint", func(t *testing.T) {
		t.Parallel()

		matches := []dockb.MethodRecord{
			{Key: "/door/open", HTTPMethod: "POST", Endpoint: "/door/open", Description: "Opens the door"},
		}

		out := dockb.RenderSearchResults("door", matches, 1)

		assert.Contains(t, out, "Found 1 API methods")
		assert.Contains(t, out, "**/door/open**")
		assert.Contains(t, out, "`POST /door/open`")
		assert.Contains(t, out, "Opens the door")
	})

	t.Run("notes truncated results", func(t *testing.T) {
		t.Parallel()

		matches := []dockb.MethodRecord{{Key: "/a"}}

		out := dockb.RenderSearchResults("a", matches, 12)

		assert.Contains(t, out, "... and 11 more results")
	})
}

func TestRenderDetails(t *testing.T) {
	t.Parallel()

	rec := dockb.MethodRecord{
		Key:         "/door/open",
		Name:        "Open Door",
		HTTPMethod:  "POST",
		Endpoint:    "/door/open",
		Description: "Opens the door lock.",
		Parameters:  []dockb.Parameter{{Name: "door_id", Type: "int", Description: "Door number", Required: "yes"}},
		Example:     `{"door_id": 1}`,
		Response:    "200 OK on success.",
		SourceURL:   "https://example.com/docs/door",
	}

	out := dockb.RenderDetails(rec)

	assert.Contains(t, out, "# Open Door")
	assert.Contains(t, out, "POST /door/open")
	assert.Contains(t, out, "| door_id | int | Door number | yes |")
	assert.Contains(t, out, `{"door_id": 1}`)
	assert.Contains(t, out, "200 OK on success.")
	assert.Contains(t, out, "Source: https://example.com/docs/door")
}

func TestRenderGroups(t *testing.T) {
	t.Parallel()

	groups := []dockb.Group{
		{Prefix: "door", Keys: []string{"/door/open"}},
		{Prefix: "other", Keys: []string{"Device Overview"}},
	}

	out := dockb.RenderGroups(groups, 2)

	assert.Contains(t, out, "(2 total)")
	assert.Contains(t, out, "### DOOR")
	assert.Contains(t, out, "- /door/open")
	assert.Contains(t, out, "### OTHER")
}

func TestRenderStatus(t *testing.T) {
	t.Parallel()

	t.Run("never updated", func(t *testing.T) {
		t.Parallel()

		out := dockb.RenderStatus(dockb.Stats{})

		assert.Contains(t, out, "never")
	})

	t.Run("includes statistics when populated", func(t *testing.T) {
		t.Parallel()

		st := dockb.Stats{Records: 4, LastUpdate: time.Now(), WithParameters: 2, WithExamples: 1}

		out := dockb.RenderStatus(st)

		assert.Contains(t, out, "**Total API methods**: 4")
		assert.Contains(t, out, "Methods with parameters: 2")
		assert.Contains(t, out, "Methods with examples: 1")
	})
}

func TestRenderReport(t *testing.T) {
	t.Parallel()

	t.Run("empty knowledge base renders manual steps", func(t *testing.T) {
		t.Parallel()

		out := dockb.RenderReport(dockb.NewSnapshot(), time.Now())

		assert.Contains(t, out, "No API data was collected")
		assert.Contains(t, out, "Manual Steps Required")
	})

	t.Run("renders one section per record", func(t *testing.T) {
		t.Parallel()

		snap := dockb.NewSnapshot()
		snap.Add(dockb.MethodRecord{
			Key:        "/door/open",
			HTTPMethod: "POST",
			Endpoint:   "/door/open",
			Parameters: []dockb.Parameter{{Name: "door_id"}},
			Example:    `{"door_id": 1}`,
		}, dockb.FirstWins)

		out := dockb.RenderReport(snap, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))

		assert.Contains(t, out, "*Generated on: 2026-08-01 12:00:00*")
		assert.Contains(t, out, "### /door/open")
		assert.Contains(t, out, "POST /door/open")
		assert.Contains(t, out, "| door_id |")
		assert.Contains(t, out, "**Example:**")
	})
}
