package mcp

import (
	"context"
	"strings"

	"github.com/rpggio/statustracker/internal/domain/category"
	"github.com/rpggio/statustracker/internal/domain/tracked"
)

// CategoryService defines category operations needed by MCP.
type CategoryService interface {
	List(ctx context.Context) ([]category.Category, error)
	Ensure(ctx context.Context, name string) (*category.Category, bool, error)
}

// TrackedService defines tracked item operations needed by MCP.
type TrackedService interface {
	ListWithLiveState(ctx context.Context) ([]tracked.Record, error)
	Get(ctx context.Context, id string) (*tracked.Record, error)
	Create(ctx context.Context, req tracked.CreateRequest) (*tracked.Record, error)
	Delete(ctx context.Context, id string) error
}

// Services contains all domain services needed by MCP.
type Services struct {
	Categories CategoryService
	Tracked    TrackedService
}

// Handler implements the MCP tools on top of the domain services.
type Handler struct {
	categories CategoryService
	tracked    TrackedService
}

// NewHandler creates a new MCP handler.
func NewHandler(services Services) *Handler {
	return &Handler{
		categories: services.Categories,
		tracked:    services.Tracked,
	}
}

func (h *Handler) ListCategories(ctx context.Context, _ ListCategoriesParams) (CategoryListResponse, error) {
	cats, err := h.categories.List(ctx)
	if err != nil {
		return CategoryListResponse{}, mapError(err)
	}
	resp := CategoryListResponse{Categories: make([]CategoryResponse, 0, len(cats))}
	for _, cat := range cats {
		resp.Categories = append(resp.Categories, categoryResponse(cat))
	}
	return resp, nil
}

func (h *Handler) CreateCategory(ctx context.Context, req CreateCategoryParams) (CreateCategoryResponse, error) {
	cat, created, err := h.categories.Ensure(ctx, req.Name)
	if err != nil {
		return CreateCategoryResponse{}, mapError(err)
	}
	return CreateCategoryResponse{Category: categoryResponse(*cat), Created: created}, nil
}

// ListTrackedItems returns every tracked item with its live state. The
// optional filters are applied after reconciliation so the full list keeps
// its newest-first order.
func (h *Handler) ListTrackedItems(ctx context.Context, req ListTrackedItemsParams) (TrackedItemListResponse, error) {
	records, err := h.tracked.ListWithLiveState(ctx)
	if err != nil {
		return TrackedItemListResponse{}, mapError(err)
	}

	resp := TrackedItemListResponse{Items: make([]TrackedItemResponse, 0, len(records))}
	for _, rec := range records {
		if req.Type != "" && !strings.EqualFold(string(rec.Type), req.Type) {
			continue
		}
		if req.Category != "" && rec.CategoryName != strings.TrimSpace(req.Category) {
			continue
		}
		if rec.Degraded() {
			resp.Degraded++
		}
		resp.Items = append(resp.Items, trackedItemResponse(rec))
	}
	return resp, nil
}

func (h *Handler) GetTrackedItem(ctx context.Context, req GetTrackedItemParams) (TrackedItemResponse, error) {
	rec, err := h.tracked.Get(ctx, req.ID)
	if err != nil {
		return TrackedItemResponse{}, mapError(err)
	}
	return trackedItemResponse(*rec), nil
}

func (h *Handler) TrackItem(ctx context.Context, req TrackItemParams) (TrackedItemResponse, error) {
	rec, err := h.tracked.Create(ctx, tracked.CreateRequest{
		SourceURL:      req.GitHubURL,
		CategoryName:   req.CategoryName,
		Classification: tracked.Classification(req.Type),
	})
	if err != nil {
		return TrackedItemResponse{}, mapError(err)
	}
	return trackedItemResponse(*rec), nil
}

func (h *Handler) UntrackItem(ctx context.Context, req UntrackItemParams) (UntrackItemResponse, error) {
	if err := h.tracked.Delete(ctx, req.ID); err != nil {
		return UntrackItemResponse{}, mapError(err)
	}
	return UntrackItemResponse{Success: true, Message: "issue deleted"}, nil
}
