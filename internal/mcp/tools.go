package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *sdkmcp.Server, h *Handler) {
	addTool(server, &sdkmcp.Tool{
		Name:        "list_categories",
		Description: "List all categories, ordered by name",
	}, h.ListCategories)

	addTool(server, &sdkmcp.Tool{
		Name:        "create_category",
		Description: "Create a category. Returns the existing category when the name is taken",
	}, h.CreateCategory)

	addTool(server, &sdkmcp.Tool{
		Name:        "list_tracked_items",
		Description: "List tracked issues and pull requests with their live GitHub state, newest first. Items whose state could not be loaded carry an error field",
	}, h.ListTrackedItems)

	addTool(server, &sdkmcp.Tool{
		Name:        "get_tracked_item",
		Description: "Get one tracked item with its live GitHub state",
	}, h.GetTrackedItem)

	addTool(server, &sdkmcp.Tool{
		Name:        "track_item",
		Description: "Start tracking a GitHub issue or pull request URL under a category",
	}, h.TrackItem)

	addTool(server, &sdkmcp.Tool{
		Name:        "untrack_item",
		Description: "Stop tracking an item. The category is kept",
	}, h.UntrackItem)
}

// addTool adapts a handler method to the SDK's typed tool handler. The SDK
// renders the output as JSON text content and turns errors into tool errors.
func addTool[In, Out any](server *sdkmcp.Server, tool *sdkmcp.Tool, fn func(context.Context, In) (Out, error)) {
	sdkmcp.AddTool(server, tool, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, Out, error) {
		out, err := fn(ctx, in)
		return nil, out, err
	})
}
