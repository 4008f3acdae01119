package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/testutil"
)

func TestPostRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUsers(t, db, 1)
	repo := NewPostRepository(db, WithClock(testutil.NewClock().Now))
	ctx := context.Background()

	media := "https://cdn.example.com/a.png"
	p := &model.Post{AuthorID: 1, Content: "hello", MediaURL: &media, CommentsEnabled: false}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, int64(1), got.AuthorID)
	assert.Equal(t, "user1", got.Username)
	assert.Equal(t, "User 1", got.FullName)
	require.NotNil(t, got.MediaURL)
	assert.Equal(t, media, *got.MediaURL)
	assert.False(t, got.CommentsEnabled)
	assert.False(t, got.IsDeleted)

	_, err = repo.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepository_Update(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUsers(t, db, 2)
	repo := NewPostRepository(db, WithClock(testutil.NewClock().Now))
	ctx := context.Background()
	p := mustPost(t, repo, 1, "draft")

	t.Run("partial update by author", func(t *testing.T) {
		disabled := false
		got, err := repo.Update(ctx, p.ID, 1, PostUpdate{CommentsEnabled: &disabled})
		require.NoError(t, err)
		assert.Equal(t, "draft", got.Content)
		assert.False(t, got.CommentsEnabled)
		assert.True(t, got.CreatedAt.Equal(p.CreatedAt))
		assert.True(t, got.UpdatedAt.After(p.UpdatedAt))

		content := "final"
		got, err = repo.Update(ctx, p.ID, 1, PostUpdate{Content: &content})
		require.NoError(t, err)
		assert.Equal(t, "final", got.Content)
		assert.False(t, got.CommentsEnabled)
	})

	t.Run("non-author and missing collapse to one outcome", func(t *testing.T) {
		content := "hijack"
		_, errOther := repo.Update(ctx, p.ID, 2, PostUpdate{Content: &content})
		_, errMissing := repo.Update(ctx, 12345, 1, PostUpdate{Content: &content})
		assert.ErrorIs(t, errOther, ErrNotFoundOrUnauthorized)
		assert.ErrorIs(t, errMissing, ErrNotFoundOrUnauthorized)

		got, err := repo.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "final", got.Content)
	})

	t.Run("deleted post cannot be updated", func(t *testing.T) {
		require.NoError(t, repo.SoftDelete(ctx, p.ID, 1))
		content := "again"
		_, err := repo.Update(ctx, p.ID, 1, PostUpdate{Content: &content})
		assert.ErrorIs(t, err, ErrNotFoundOrUnauthorized)
	})
}

func TestPostRepository_SoftDeleteHidesFromReads(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUsers(t, db, 2)
	repo := NewPostRepository(db, WithClock(testutil.NewClock().Now))
	ctx := context.Background()

	keep := mustPost(t, repo, 1, "keep me")
	gone := mustPost(t, repo, 1, "remove me")

	assert.ErrorIs(t, repo.SoftDelete(ctx, gone.ID, 2), ErrNotFoundOrUnauthorized)
	require.NoError(t, repo.SoftDelete(ctx, gone.ID, 1))
	assert.ErrorIs(t, repo.SoftDelete(ctx, gone.ID, 1), ErrNotFoundOrUnauthorized)

	_, err := repo.Get(ctx, gone.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	rows, err := repo.ListByAuthor(ctx, 1, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{keep.ID}, viewIDs(rows))

	rows, err = repo.Search(ctx, "me", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{keep.ID}, viewIDs(rows))

	// 行仍在，只是被标记
	var cnt int64
	require.NoError(t, db.Model(&model.Post{}).Where("id = ?", gone.ID).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestPostRepository_ListByAuthorOrdering(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUsers(t, db, 2)
	clock := testutil.NewClock()
	repo := NewPostRepository(db, WithClock(clock.Now))
	ctx := context.Background()

	p1 := mustPost(t, repo, 1, "one")
	p2 := mustPost(t, repo, 1, "two")
	mustPost(t, repo, 2, "other author")
	clock.Freeze()
	p3 := mustPost(t, repo, 1, "three")
	p4 := mustPost(t, repo, 1, "four")

	rows, err := repo.ListByAuthor(ctx, 1, 0, 10)
	require.NoError(t, err)
	// 同一时间戳按 id 升序
	assert.Equal(t, []int64{p3.ID, p4.ID, p2.ID, p1.ID}, viewIDs(rows))

	rows, err = repo.ListByAuthor(ctx, 1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{p2.ID, p1.ID}, viewIDs(rows))
}

func TestPostRepository_Search(t *testing.T) {
	db := testutil.NewDB(t)
	users := testutil.SeedUsers(t, db, 2)
	require.NoError(t, db.Model(&users[1]).Update("full_name", "Grace Hopper").Error)
	repo := NewPostRepository(db, WithClock(testutil.NewClock().Now))
	ctx := context.Background()

	byContent := mustPost(t, repo, 1, "Learning GOLANG today")
	byAuthor := mustPost(t, repo, 2, "nothing special")
	percent := mustPost(t, repo, 1, "100% done")

	cases := []struct {
		name string
		term string
		want []int64
	}{
		{"content case-insensitive", "golang", []int64{byContent.ID}},
		{"author full name", "hopper", []int64{byAuthor.ID}},
		{"author username", "USER2", []int64{byAuthor.ID}},
		{"wildcard is literal", "%", []int64{percent.ID}},
		{"no match", "rust", []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := repo.Search(ctx, tc.term, 0, 10)
			require.NoError(t, err)
			assert.Equal(t, tc.want, viewIDs(rows))
		})
	}
}
