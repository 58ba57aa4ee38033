package tracked

import (
	"context"

	"github.com/rpggio/statustracker/internal/domain/category"
	"github.com/rpggio/statustracker/internal/github"
)

// Repository provides persistence for tracked items.
type Repository interface {
	// ListWithCategory returns every item, newest first.
	ListWithCategory(ctx context.Context) ([]ItemWithCategory, error)
	Get(ctx context.Context, id string) (*ItemWithCategory, error)
	GetBySourceURL(ctx context.Context, sourceURL string) (*Item, error)
	Create(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error
}

// CategoryResolver resolves a category by name, creating it on first use.
type CategoryResolver interface {
	Ensure(ctx context.Context, name string) (*category.Category, bool, error)
}

// Fetcher loads live upstream state.
type Fetcher interface {
	Fetch(ctx context.Context, owner, repo string, number int) (*github.Snapshot, error)
}
