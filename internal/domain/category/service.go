package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/statustracker/internal/repository"
)

// Service handles category operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new category service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// List returns all categories ordered by name.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	if cats == nil {
		cats = []Category{}
	}
	return cats, nil
}

// Get fetches a category by ID.
func (s *Service) Get(ctx context.Context, id string) (*Category, error) {
	cat, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("getting category: %w", err)
	}
	return cat, nil
}

// Ensure returns the category with the given name, creating it when missing.
// created reports whether this call inserted the row.
func (s *Service) Ensure(ctx context.Context, name string) (cat *Category, created bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrInvalidInput
	}

	existing, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("getting category by name: %w", err)
	}

	cat, created, err = s.repo.CreateIfAbsent(ctx, &Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, false, fmt.Errorf("creating category: %w", err)
	}
	if created {
		s.logger.Info("category created", "id", cat.ID, "name", cat.Name)
	}
	return cat, created, nil
}
