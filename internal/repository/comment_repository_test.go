package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/testutil"
)

func TestCommentRepository_Lifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUsers(t, db, 2)
	clock := testutil.NewClock()
	posts := NewPostRepository(db, WithClock(clock.Now))
	repo := NewCommentRepository(db, WithClock(clock.Now))
	ctx := context.Background()
	p := mustPost(t, posts, 1, "discuss")

	first := &model.Comment{PostID: p.ID, AuthorID: 2, Content: "first"}
	require.NoError(t, repo.Create(ctx, first))
	second := &model.Comment{PostID: p.ID, AuthorID: 1, Content: "second"}
	require.NoError(t, repo.Create(ctx, second))

	rows, err := repo.ListForPost(ctx, p.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, "user1", rows[0].Username)
	assert.Equal(t, first.ID, rows[1].ID)

	t.Run("update by author", func(t *testing.T) {
		got, err := repo.Update(ctx, first.ID, 2, "first, edited")
		require.NoError(t, err)
		assert.Equal(t, "first, edited", got.Content)
		assert.Equal(t, "user2", got.Username)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("ownership gate", func(t *testing.T) {
		_, err := repo.Update(ctx, first.ID, 1, "nope")
		assert.ErrorIs(t, err, ErrNotFoundOrUnauthorized)
		_, err = repo.Update(ctx, 4242, 2, "nope")
		assert.ErrorIs(t, err, ErrNotFoundOrUnauthorized)
		assert.ErrorIs(t, repo.SoftDelete(ctx, first.ID, 1), ErrNotFoundOrUnauthorized)
	})

	t.Run("soft delete", func(t *testing.T) {
		require.NoError(t, repo.SoftDelete(ctx, first.ID, 2))
		assert.ErrorIs(t, repo.SoftDelete(ctx, first.ID, 2), ErrNotFoundOrUnauthorized)
		_, err := repo.Update(ctx, first.ID, 2, "zombie")
		assert.ErrorIs(t, err, ErrNotFoundOrUnauthorized)

		rows, err := repo.ListForPost(ctx, p.ID, 0, 10)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, second.ID, rows[0].ID)
	})
}
