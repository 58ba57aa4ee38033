package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `statustracker keeps a list of GitHub issues and pull requests and reports their live state.

Core concepts:
- Category: a named bucket for tracked items. Names are unique.
- Tracked item: a GitHub issue or pull request URL, tagged Feature or Bug, in one category.
- Live state: title, open/closed state and labels, fetched from GitHub on every read. Nothing upstream is cached.

Workflow:
1) list_tracked_items to see everything. Items whose state could not be loaded have title "load failed" and an error field.
2) track_item with github_url + category_name (+ type). Missing categories are created.
3) untrack_item with the id from list_tracked_items.

Docs:
- tracker://docs/index
- tracker://docs/errors
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "tracker://docs/index",
		Name:        "docs_index",
		Title:       "statustracker docs index",
		Description: "Accepted URL forms and what each tool returns.",
		Content: `# statustracker

## Accepted URLs

- ` + "`https://github.com/<owner>/<repo>/issues/<n>`" + `
- ` + "`https://github.com/<owner>/<repo>/pull/<n>`" + `

Trailing paths, query strings and fragments are ignored. The number must be positive.
A URL can be tracked once; tracking it again fails with DUPLICATE.

## Tools

- ` + "`list_categories`" + `, ` + "`create_category`" + `
- ` + "`list_tracked_items`" + ` (optional ` + "`type`" + ` and ` + "`category`" + ` filters)
- ` + "`get_tracked_item`" + `, ` + "`track_item`" + `, ` + "`untrack_item`" + `

A failed GitHub fetch never hides an item from the list. It is reported with
state ` + "`unknown`" + ` and an ` + "`error`" + ` message instead.
`,
	},
	{
		URI:         "tracker://docs/errors",
		Name:        "docs_errors",
		Title:       "Error codes",
		Description: "Error codes returned by tools and how to recover.",
		Content: `# Error codes

| Code | Meaning |
| --- | --- |
| INVALID_INPUT | github_url or category_name missing, or type not Feature/Bug |
| INVALID_REFERENCE | URL is not a GitHub issue or pull request URL |
| DUPLICATE | URL already tracked |
| NOT_FOUND | no tracked item or category with that id |
| UPSTREAM_NOT_FOUND | GitHub answered 404 while tracking |
| RATE_LIMITED | GitHub answered 403; retry later or set GITHUB_TOKEN |
| UPSTREAM_ERROR | any other GitHub failure while tracking |

Nothing is stored when track_item fails.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
