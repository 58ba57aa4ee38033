package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/statustracker/internal/domain/category"
	"github.com/rpggio/statustracker/internal/repository"
)

// CategoryRepository implements category.Repository for SQLite
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories ordered by name
func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	query := `
		SELECT id, name, created_at
		FROM categories
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	cats := []category.Category{}
	for rows.Next() {
		var cat category.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cats = append(cats, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return cats, nil
}

// Get retrieves a category by ID
func (r *CategoryRepository) Get(ctx context.Context, id string) (*category.Category, error) {
	return r.getOne(ctx, `SELECT id, name, created_at FROM categories WHERE id = ?`, id)
}

// GetByName retrieves a category by its unique name
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	return r.getOne(ctx, `SELECT id, name, created_at FROM categories WHERE name = ?`, name)
}

// CreateIfAbsent inserts the category unless the name exists, then returns the stored row
func (r *CategoryRepository) CreateIfAbsent(ctx context.Context, cat *category.Category) (*category.Category, bool, error) {
	query := `
		INSERT INTO categories (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, cat.ID, cat.Name, cat.CreatedAt)
	if err != nil {
		return nil, false, classifyWriteError("failed to create category", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	stored, err := r.GetByName(ctx, cat.Name)
	if err != nil {
		return nil, false, err
	}

	return stored, rowsAffected > 0, nil
}

func (r *CategoryRepository) getOne(ctx context.Context, query string, arg any) (*category.Category, error) {
	var cat category.Category
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&cat.ID, &cat.Name, &cat.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &cat, nil
}
