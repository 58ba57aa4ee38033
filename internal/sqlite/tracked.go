package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/statustracker/internal/domain/tracked"
	"github.com/rpggio/statustracker/internal/repository"
)

// TrackedRepository implements tracked.Repository for SQLite
type TrackedRepository struct {
	db *DB
}

// NewTrackedRepository creates a new TrackedRepository
func NewTrackedRepository(db *DB) *TrackedRepository {
	return &TrackedRepository{db: db}
}

const trackedWithCategoryColumns = `
	t.id, t.source_url, t.category_id, t.classification,
	t.owner, t.repo, t.item_number, t.created_at, c.name
`

// ListWithCategory returns every tracked item joined with its category name, newest first
func (r *TrackedRepository) ListWithCategory(ctx context.Context) ([]tracked.ItemWithCategory, error) {
	query := `
		SELECT` + trackedWithCategoryColumns + `
		FROM tracked_items t
		JOIN categories c ON c.id = t.category_id
		ORDER BY t.created_at DESC, t.rowid DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked items: %w", err)
	}
	defer rows.Close()

	items := []tracked.ItemWithCategory{}
	for rows.Next() {
		item, err := scanItemWithCategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracked item rows: %w", err)
	}

	return items, nil
}

// Get retrieves a tracked item with its category name
func (r *TrackedRepository) Get(ctx context.Context, id string) (*tracked.ItemWithCategory, error) {
	query := `
		SELECT` + trackedWithCategoryColumns + `
		FROM tracked_items t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = ?
	`

	item, err := scanItemWithCategory(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetBySourceURL retrieves a tracked item by its unique source URL
func (r *TrackedRepository) GetBySourceURL(ctx context.Context, sourceURL string) (*tracked.Item, error) {
	query := `
		SELECT id, source_url, category_id, classification, owner, repo, item_number, created_at
		FROM tracked_items
		WHERE source_url = ?
	`

	var item tracked.Item
	err := r.db.QueryRowContext(ctx, query, sourceURL).Scan(
		&item.ID,
		&item.SourceURL,
		&item.CategoryID,
		&item.Classification,
		&item.Owner,
		&item.Repo,
		&item.Number,
		&item.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tracked item: %w", err)
	}

	return &item, nil
}

// Create inserts a tracked item
func (r *TrackedRepository) Create(ctx context.Context, item *tracked.Item) error {
	query := `
		INSERT INTO tracked_items (
			id, source_url, category_id, classification,
			owner, repo, item_number, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.SourceURL,
		item.CategoryID,
		item.Classification,
		item.Owner,
		item.Repo,
		item.Number,
		item.CreatedAt,
	)
	if err != nil {
		return classifyWriteError("failed to create tracked item", err)
	}

	return nil
}

// Delete removes a tracked item by ID
func (r *TrackedRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tracked_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tracked item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItemWithCategory(row rowScanner) (*tracked.ItemWithCategory, error) {
	var item tracked.ItemWithCategory
	err := row.Scan(
		&item.ID,
		&item.SourceURL,
		&item.CategoryID,
		&item.Classification,
		&item.Owner,
		&item.Repo,
		&item.Number,
		&item.CreatedAt,
		&item.CategoryName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan tracked item: %w", err)
	}
	return &item, nil
}
