package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rpggio/statustracker/internal/domain/tracked"
	"github.com/rpggio/statustracker/internal/repository"
	"github.com/stretchr/testify/require"
)

func seedCategory(t *testing.T, db *DB, id, name string) {
	t.Helper()
	_, _, err := NewCategoryRepository(db).CreateIfAbsent(context.Background(), newCategory(id, name))
	require.NoError(t, err)
}

func newItem(id, categoryID string, number int, createdAt time.Time) *tracked.Item {
	return &tracked.Item{
		ID:             id,
		SourceURL:      fmt.Sprintf("https://github.com/acme/widgets/issues/%d", number),
		CategoryID:     categoryID,
		Classification: tracked.ClassBug,
		Owner:          "acme",
		Repo:           "widgets",
		Number:         number,
		CreatedAt:      createdAt,
	}
}

func countTracked(t *testing.T, db *DB) int {
	t.Helper()
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tracked_items`).Scan(&count))
	return count
}

func TestTrackedRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	seedCategory(t, db, "c1", "infra")
	repo := NewTrackedRepository(db)
	ctx := context.Background()

	item := newItem("t1", "c1", 42, time.Now().UTC())
	item.Classification = tracked.ClassFeature
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "infra", got.CategoryName)
	require.Equal(t, tracked.ClassFeature, got.Classification)
	require.Equal(t, 42, got.Number)
	require.Equal(t, "acme", got.Owner)
	require.Equal(t, "widgets", got.Repo)

	byURL, err := repo.GetBySourceURL(ctx, item.SourceURL)
	require.NoError(t, err)
	require.Equal(t, "t1", byURL.ID)

	_, err = repo.Get(ctx, "missing")
	require.Equal(t, repository.ErrNotFound, err)

	_, err = repo.GetBySourceURL(ctx, "https://github.com/acme/widgets/issues/999")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestTrackedRepository_DuplicateSourceURL(t *testing.T) {
	db := NewTestDB(t)
	seedCategory(t, db, "c1", "infra")
	repo := NewTrackedRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newItem("t1", "c1", 42, time.Now().UTC())))
	before := countTracked(t, db)

	err := repo.Create(ctx, newItem("t2", "c1", 42, time.Now().UTC()))
	require.ErrorIs(t, err, repository.ErrDuplicate)
	require.Equal(t, before, countTracked(t, db))
}

func TestTrackedRepository_UnknownCategory(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTrackedRepository(db)

	err := repo.Create(context.Background(), newItem("t1", "missing", 1, time.Now().UTC()))
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestTrackedRepository_ListNewestFirst(t *testing.T) {
	db := NewTestDB(t)
	seedCategory(t, db, "c1", "infra")
	seedCategory(t, db, "c2", "ui")
	repo := NewTrackedRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newItem("old", "c1", 1, base)))
	require.NoError(t, repo.Create(ctx, newItem("newest", "c2", 2, base.Add(2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newItem("middle", "c1", 3, base.Add(time.Hour))))

	items, err := repo.ListWithCategory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "newest", items[0].ID)
	require.Equal(t, "ui", items[0].CategoryName)
	require.Equal(t, "middle", items[1].ID)
	require.Equal(t, "old", items[2].ID)
	require.Equal(t, "infra", items[2].CategoryName)
}

func TestTrackedRepository_ListEmpty(t *testing.T) {
	db := NewTestDB(t)

	items, err := NewTrackedRepository(db).ListWithCategory(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestTrackedRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	seedCategory(t, db, "c1", "infra")
	repo := NewTrackedRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newItem("t1", "c1", 1, time.Now().UTC())))

	require.NoError(t, repo.Delete(ctx, "t1"))
	require.Equal(t, 0, countTracked(t, db))

	before := countTracked(t, db)
	require.Equal(t, repository.ErrNotFound, repo.Delete(ctx, "t1"))
	require.Equal(t, before, countTracked(t, db))

	// the category is left in place
	_, err := NewCategoryRepository(db).Get(ctx, "c1")
	require.NoError(t, err)
}
