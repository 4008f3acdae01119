package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/internal/testutil"
)

func TestPostService_CreatePost(t *testing.T) {
	f := newFixture(t, nil)
	testutil.SeedUsers(t, f.db, 1)
	ctx := context.Background()

	t.Run("comments enabled by default", func(t *testing.T) {
		p, err := f.posts.CreatePost(ctx, CreatePostInput{AuthorID: 1, Content: "  hello  "})
		require.NoError(t, err)
		assert.Equal(t, "hello", p.Content)
		assert.True(t, p.CommentsEnabled)
		assert.False(t, p.IsDeleted)

		got, err := f.posts.GetPost(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, got.CommentsEnabled)
		assert.Nil(t, got.MediaURL)
	})

	t.Run("explicit flags", func(t *testing.T) {
		p, err := f.posts.CreatePost(ctx, CreatePostInput{
			AuthorID:        1,
			Content:         "quiet",
			MediaURL:        strPtr("https://cdn.example.com/x.jpg"),
			CommentsEnabled: boolPtr(false),
		})
		require.NoError(t, err)
		got, err := f.posts.GetPost(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, got.CommentsEnabled)
		assert.Equal(t, "https://cdn.example.com/x.jpg", *got.MediaURL)
	})

	t.Run("blank content", func(t *testing.T) {
		_, err := f.posts.CreatePost(ctx, CreatePostInput{AuthorID: 1, Content: " \n\t"})
		assert.ErrorIs(t, err, ErrEmptyContent)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("bad ids", func(t *testing.T) {
		_, err := f.posts.CreatePost(ctx, CreatePostInput{Content: "x"})
		assert.ErrorIs(t, err, ErrInvalidID)
		_, err = f.posts.GetPost(ctx, 0)
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestPostService_OwnershipGate(t *testing.T) {
	f := newFixture(t, nil)
	testutil.SeedUsers(t, f.db, 2)
	ctx := context.Background()

	p, err := f.posts.CreatePost(ctx, CreatePostInput{AuthorID: 1, Content: "mine"})
	require.NoError(t, err)

	_, errOther := f.posts.UpdatePost(ctx, p.ID, 2, UpdatePostInput{Content: strPtr("theirs")})
	_, errMissing := f.posts.UpdatePost(ctx, p.ID+100, 2, UpdatePostInput{Content: strPtr("theirs")})
	assert.ErrorIs(t, errOther, ErrNotFoundOrUnauthorized)
	assert.Equal(t, errMissing, errOther, "non-owner and missing id are indistinguishable")
	assert.Equal(t, KindNotFound, KindOf(errOther))

	assert.ErrorIs(t, f.posts.DeletePost(ctx, p.ID, 2), ErrNotFoundOrUnauthorized)

	_, err = f.posts.UpdatePost(ctx, p.ID, 1, UpdatePostInput{Content: strPtr("   ")})
	assert.ErrorIs(t, err, ErrEmptyContent)

	updated, err := f.posts.UpdatePost(ctx, p.ID, 1, UpdatePostInput{Content: strPtr("edited"), CommentsEnabled: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.False(t, updated.CommentsEnabled)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	assert.True(t, updated.CreatedAt.Equal(p.CreatedAt))

	require.NoError(t, f.posts.DeletePost(ctx, p.ID, 1))
	assert.ErrorIs(t, f.posts.DeletePost(ctx, p.ID, 1), ErrNotFoundOrUnauthorized)
	_, err = f.posts.UpdatePost(ctx, p.ID, 1, UpdatePostInput{Content: strPtr("back")})
	assert.ErrorIs(t, err, ErrNotFoundOrUnauthorized)
}

func TestPostService_DeletedInvisible(t *testing.T) {
	f := newFixture(t, nil)
	testutil.SeedUsers(t, f.db, 1)
	ctx := context.Background()

	keep, err := f.posts.CreatePost(ctx, CreatePostInput{AuthorID: 1, Content: "visible needle"})
	require.NoError(t, err)
	gone, err := f.posts.CreatePost(ctx, CreatePostInput{AuthorID: 1, Content: "hidden needle"})
	require.NoError(t, err)
	require.NoError(t, f.posts.DeletePost(ctx, gone.ID, 1))

	_, err = f.posts.GetPost(ctx, gone.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	byAuthor, err := f.posts.ListByAuthor(ctx, 1, firstPage())
	require.NoError(t, err)
	require.Len(t, byAuthor.Items, 1)
	assert.Equal(t, keep.ID, byAuthor.Items[0].ID)

	found, err := f.posts.SearchPosts(ctx, "NEEDLE", firstPage())
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, keep.ID, found.Items[0].ID)

	feed, err := f.feed.GetFeed(ctx, 1, firstPage())
	require.NoError(t, err)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, keep.ID, feed.Items[0].ID)
}

func TestPostService_Search(t *testing.T) {
	f := newFixture(t, nil)
	testutil.SeedUsers(t, f.db, 1)
	ctx := context.Background()

	_, err := f.posts.SearchPosts(ctx, "   ", firstPage())
	assert.ErrorIs(t, err, ErrEmptySearchTerm)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = f.posts.SearchPosts(ctx, "x", pagination.Params{Page: 0, Limit: 10})
	assert.Equal(t, KindValidation, KindOf(err))

	for i := 0; i < 3; i++ {
		_, err := f.posts.CreatePost(ctx, CreatePostInput{AuthorID: 1, Content: "golang"})
		require.NoError(t, err)
	}
	page, err := f.posts.SearchPosts(ctx, "GoLang", pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)

	page, err = f.posts.SearchPosts(ctx, "golang", pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.False(t, page.HasMore)
}
