package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/statustracker/internal/domain/category"
	"github.com/rpggio/statustracker/internal/repository"
	"github.com/rpggio/statustracker/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_EnsureReturnsExisting(t *testing.T) {
	ctx := context.Background()
	existing := &category.Category{ID: "c1", Name: "infra"}

	repo := &mocks.CategoryRepository{}
	repo.On("GetByName", ctx, "infra").Return(existing, nil)

	svc := category.NewService(repo, nil)
	cat, created, err := svc.Ensure(ctx, "  infra ")
	require.NoError(t, err)
	require.False(t, created)
	require.Same(t, existing, cat)
	repo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestCategoryService_EnsureCreates(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CategoryRepository{}
	repo.On("GetByName", ctx, "infra").Return(nil, repository.ErrNotFound)
	repo.On("CreateIfAbsent", ctx, mock.MatchedBy(func(c *category.Category) bool {
		return c.Name == "infra" && c.ID != ""
	})).Return(&category.Category{ID: "new", Name: "infra"}, true, nil)

	svc := category.NewService(repo, nil)
	cat, created, err := svc.Ensure(ctx, "infra")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "new", cat.ID)
}

func TestCategoryService_EnsureValidation(t *testing.T) {
	svc := category.NewService(&mocks.CategoryRepository{}, nil)
	_, _, err := svc.Ensure(context.Background(), "   ")
	require.ErrorIs(t, err, category.ErrInvalidInput)
}

func TestCategoryService_Get(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CategoryRepository{}
	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)
	repo.On("Get", ctx, "broken").Return(nil, errors.New("disk gone"))

	svc := category.NewService(repo, nil)
	_, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, category.ErrCategoryNotFound)

	_, err = svc.Get(ctx, "broken")
	require.Error(t, err)
	require.NotErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestCategoryService_ListNeverNil(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CategoryRepository{}
	repo.On("List", ctx).Return(nil, nil)

	svc := category.NewService(repo, nil)
	cats, err := svc.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, cats)
}
