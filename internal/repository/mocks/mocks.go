package mocks

import (
	"context"

	"github.com/rpggio/statustracker/internal/domain/category"
	"github.com/rpggio/statustracker/internal/domain/tracked"
	"github.com/rpggio/statustracker/internal/github"
	"github.com/stretchr/testify/mock"
)

// CategoryRepository is a mock for category.Repository.
type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]category.Category); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CategoryRepository) Get(ctx context.Context, id string) (*category.Category, error) {
	args := m.Called(ctx, id)
	if cat, ok := args.Get(0).(*category.Category); ok {
		return cat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CategoryRepository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	args := m.Called(ctx, name)
	if cat, ok := args.Get(0).(*category.Category); ok {
		return cat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CategoryRepository) CreateIfAbsent(ctx context.Context, cat *category.Category) (*category.Category, bool, error) {
	args := m.Called(ctx, cat)
	if stored, ok := args.Get(0).(*category.Category); ok {
		return stored, args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

// CategoryResolver is a mock for tracked.CategoryResolver.
type CategoryResolver struct {
	mock.Mock
}

func (m *CategoryResolver) Ensure(ctx context.Context, name string) (*category.Category, bool, error) {
	args := m.Called(ctx, name)
	if cat, ok := args.Get(0).(*category.Category); ok {
		return cat, args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

// TrackedRepository is a mock for tracked.Repository.
type TrackedRepository struct {
	mock.Mock
}

func (m *TrackedRepository) ListWithCategory(ctx context.Context) ([]tracked.ItemWithCategory, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]tracked.ItemWithCategory); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TrackedRepository) Get(ctx context.Context, id string) (*tracked.ItemWithCategory, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*tracked.ItemWithCategory); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TrackedRepository) GetBySourceURL(ctx context.Context, sourceURL string) (*tracked.Item, error) {
	args := m.Called(ctx, sourceURL)
	if item, ok := args.Get(0).(*tracked.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TrackedRepository) Create(ctx context.Context, item *tracked.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *TrackedRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Fetcher is a mock for tracked.Fetcher.
type Fetcher struct {
	mock.Mock
}

func (m *Fetcher) Fetch(ctx context.Context, owner, repo string, number int) (*github.Snapshot, error) {
	args := m.Called(ctx, owner, repo, number)
	if snap, ok := args.Get(0).(*github.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}
