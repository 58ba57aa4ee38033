package tracked

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/statustracker/internal/github"
	"github.com/rpggio/statustracker/internal/repository"
)

// Service reconciles tracked items with their live upstream state.
type Service struct {
	items          Repository
	categories     CategoryResolver
	fetcher        Fetcher
	maxConcurrency int
	logger         *slog.Logger
}

// NewService creates a new tracked item service. maxConcurrency bounds the
// fetches issued while listing; zero or less leaves them unbounded.
func NewService(
	items Repository,
	categories CategoryResolver,
	fetcher Fetcher,
	maxConcurrency int,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		items:          items,
		categories:     categories,
		fetcher:        fetcher,
		maxConcurrency: maxConcurrency,
		logger:         logger,
	}
}

// CreateRequest describes a request to start tracking an issue or pull request.
type CreateRequest struct {
	SourceURL      string
	CategoryName   string
	Classification Classification
}

// ListWithLiveState returns every tracked item, newest first, merged with
// its live state. Upstream failures become degraded records; only store
// failures are returned as errors.
func (s *Service) ListWithLiveState(ctx context.Context) ([]Record, error) {
	items, err := s.items.ListWithCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tracked items: %w", err)
	}

	records := mapOrdered(s.maxConcurrency, items, func(item ItemWithCategory) Record {
		return s.reconcile(ctx, item)
	})

	return records, nil
}

// Get returns one tracked item merged with its live state.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("getting tracked item: %w", err)
	}

	rec := s.reconcile(ctx, *item)
	return &rec, nil
}

// Create starts tracking an issue or pull request. The live state is
// fetched before anything is written, so an unreachable reference is
// refused and leaves the store untouched.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Record, error) {
	if err := ValidateCreateInput(&req); err != nil {
		return nil, err
	}

	_, err := s.items.GetBySourceURL(ctx, req.SourceURL)
	if err == nil {
		return nil, ErrDuplicate
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking for duplicate: %w", err)
	}

	ref, err := github.ParseURL(req.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReference, err)
	}

	snap, err := s.fetcher.Fetch(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}

	cat, _, err := s.categories.Ensure(ctx, req.CategoryName)
	if err != nil {
		return nil, fmt.Errorf("resolving category: %w", err)
	}

	item := Item{
		ID:             uuid.NewString(),
		SourceURL:      req.SourceURL,
		CategoryID:     cat.ID,
		Classification: req.Classification,
		Owner:          ref.Owner,
		Repo:           ref.Repo,
		Number:         ref.Number,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.items.Create(ctx, &item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("creating tracked item: %w", err)
	}

	s.logger.Info("tracked item created",
		"id", item.ID,
		"url", item.SourceURL,
		"category", cat.Name,
		"type", item.Classification,
	)

	rec := newRecord(ItemWithCategory{Item: item, CategoryName: cat.Name}, snap)
	return &rec, nil
}

// Delete stops tracking the item with the given ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("deleting tracked item: %w", err)
	}
	s.logger.Info("tracked item deleted", "id", id)
	return nil
}

func (s *Service) reconcile(ctx context.Context, item ItemWithCategory) Record {
	snap, err := s.fetcher.Fetch(ctx, item.Owner, item.Repo, item.Number)
	if err != nil {
		s.logger.Warn("live state unavailable", "id", item.ID, "url", item.SourceURL, "error", err)
		return degradedRecord(item, err)
	}
	return newRecord(item, snap)
}
