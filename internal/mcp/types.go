package mcp

import (
	"time"

	"github.com/rpggio/statustracker/internal/domain/category"
	"github.com/rpggio/statustracker/internal/domain/tracked"
)

// Tool inputs.

type ListCategoriesParams struct{}

type CreateCategoryParams struct {
	Name string `json:"name" jsonschema:"Category name; an existing category with the same name is returned unchanged"`
}

type ListTrackedItemsParams struct {
	Type     string `json:"type,omitempty" jsonschema:"Only return items of this type (Feature or Bug)"`
	Category string `json:"category,omitempty" jsonschema:"Only return items in this category name"`
}

type GetTrackedItemParams struct {
	ID string `json:"id" jsonschema:"Tracked item ID"`
}

type TrackItemParams struct {
	GitHubURL    string `json:"github_url" jsonschema:"GitHub issue or pull request URL"`
	CategoryName string `json:"category_name" jsonschema:"Category name; created when missing"`
	Type         string `json:"type,omitempty" jsonschema:"Feature or Bug (default Bug)"`
}

type UntrackItemParams struct {
	ID string `json:"id" jsonschema:"Tracked item ID"`
}

// Tool outputs.

type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type CreateCategoryResponse struct {
	Category CategoryResponse `json:"category"`
	Created  bool             `json:"created"`
}

type LabelResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TrackedItemResponse struct {
	ID           string          `json:"id"`
	GitHubURL    string          `json:"github_url"`
	CategoryName string          `json:"category_name"`
	Type         string          `json:"type"`
	Owner        string          `json:"owner"`
	Repo         string          `json:"repo"`
	IssueNumber  int             `json:"issue_number"`
	TrackedAt    string          `json:"tracked_at"`
	Title        string          `json:"title"`
	State        string          `json:"state"`
	Labels       []LabelResponse `json:"labels"`
	GitHubType   string          `json:"github_type,omitempty"`
	URL          string          `json:"url,omitempty"`
	UpdatedAt    string          `json:"updated_at,omitempty"`
	Error        string          `json:"error,omitempty"`
}

type TrackedItemListResponse struct {
	Items    []TrackedItemResponse `json:"items"`
	Degraded int                   `json:"degraded"`
}

type UntrackItemResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func categoryResponse(cat category.Category) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID,
		Name:      cat.Name,
		CreatedAt: formatTime(cat.CreatedAt),
	}
}

func trackedItemResponse(rec tracked.Record) TrackedItemResponse {
	labels := make([]LabelResponse, 0, len(rec.Labels))
	for _, l := range rec.Labels {
		labels = append(labels, LabelResponse{Name: l.Name, Color: l.Color})
	}
	resp := TrackedItemResponse{
		ID:           rec.ID,
		GitHubURL:    rec.GitHubURL,
		CategoryName: rec.CategoryName,
		Type:         string(rec.Type),
		Owner:        rec.Owner,
		Repo:         rec.Repo,
		IssueNumber:  rec.Number,
		TrackedAt:    formatTime(rec.TrackedAt),
		Title:        rec.Title,
		State:        string(rec.State),
		Labels:       labels,
		GitHubType:   string(rec.Kind),
		URL:          rec.URL,
		Error:        rec.Error,
	}
	if rec.UpdatedAt != nil {
		resp.UpdatedAt = formatTime(*rec.UpdatedAt)
	}
	return resp
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
