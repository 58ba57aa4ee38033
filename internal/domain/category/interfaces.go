package category

import "context"

// Repository provides persistence for categories.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id string) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	// CreateIfAbsent inserts cat unless its name is taken, and returns the
	// stored row together with whether this call created it.
	CreateIfAbsent(ctx context.Context, cat *Category) (*Category, bool, error)
}
