package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/internal/repository"
)

// CreatePostInput CommentsEnabled 为 nil 时默认开启评论
type CreatePostInput struct {
	AuthorID        int64
	Content         string
	MediaURL        *string
	CommentsEnabled *bool
}

// UpdatePostInput nil 字段保持不变
type UpdatePostInput struct {
	Content         *string
	MediaURL        *string
	CommentsEnabled *bool
}

// PostService 帖子服务
type PostService interface {
	CreatePost(ctx context.Context, in CreatePostInput) (*model.Post, error)
	GetPost(ctx context.Context, postID int64) (*model.PostView, error)
	ListByAuthor(ctx context.Context, authorID int64, page pagination.Params) (pagination.Page[model.PostView], error)
	UpdatePost(ctx context.Context, postID, actorID int64, in UpdatePostInput) (*model.PostView, error)
	DeletePost(ctx context.Context, postID, actorID int64) error
	SearchPosts(ctx context.Context, term string, page pagination.Params) (pagination.Page[model.PostView], error)
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (s *postService) CreatePost(ctx context.Context, in CreatePostInput) (*model.Post, error) {
	if err := checkIDs(in.AuthorID); err != nil {
		return nil, err
	}
	content, err := normalizeContent(in.Content)
	if err != nil {
		return nil, err
	}
	enabled := true
	if in.CommentsEnabled != nil {
		enabled = *in.CommentsEnabled
	}

	p := &model.Post{
		AuthorID:        in.AuthorID,
		Content:         content,
		MediaURL:        in.MediaURL,
		CommentsEnabled: enabled,
	}
	if err := s.postRepo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, internalErr("create post", err, zap.Int64("author_id", in.AuthorID))
	}
	return p, nil
}

func (s *postService) GetPost(ctx context.Context, postID int64) (*model.PostView, error) {
	if err := checkIDs(postID); err != nil {
		return nil, err
	}
	p, err := s.postRepo.Get(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, internalErr("get post", err, zap.Int64("post_id", postID))
	}
	return p, nil
}

func (s *postService) ListByAuthor(ctx context.Context, authorID int64, page pagination.Params) (pagination.Page[model.PostView], error) {
	if err := checkIDs(authorID); err != nil {
		return pagination.Page[model.PostView]{}, err
	}
	if err := checkPage(page); err != nil {
		return pagination.Page[model.PostView]{}, err
	}
	items, err := s.postRepo.ListByAuthor(ctx, authorID, page.Offset(), page.Limit)
	if err != nil {
		return pagination.Page[model.PostView]{}, internalErr("list posts by author", err, zap.Int64("author_id", authorID))
	}
	return pagination.NewPage(items, page), nil
}

func (s *postService) UpdatePost(ctx context.Context, postID, actorID int64, in UpdatePostInput) (*model.PostView, error) {
	if err := checkIDs(postID, actorID); err != nil {
		return nil, err
	}
	upd := repository.PostUpdate{MediaURL: in.MediaURL, CommentsEnabled: in.CommentsEnabled}
	if in.Content != nil {
		content, err := normalizeContent(*in.Content)
		if err != nil {
			return nil, err
		}
		upd.Content = &content
	}

	p, err := s.postRepo.Update(ctx, postID, actorID, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFoundOrUnauthorized) {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, internalErr("update post", err, zap.Int64("post_id", postID), zap.Int64("actor_id", actorID))
	}
	return p, nil
}

func (s *postService) DeletePost(ctx context.Context, postID, actorID int64) error {
	if err := checkIDs(postID, actorID); err != nil {
		return err
	}
	if err := s.postRepo.SoftDelete(ctx, postID, actorID); err != nil {
		if errors.Is(err, repository.ErrNotFoundOrUnauthorized) {
			return ErrNotFoundOrUnauthorized
		}
		return internalErr("delete post", err, zap.Int64("post_id", postID), zap.Int64("actor_id", actorID))
	}
	return nil
}

func (s *postService) SearchPosts(ctx context.Context, term string, page pagination.Params) (pagination.Page[model.PostView], error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return pagination.Page[model.PostView]{}, ErrEmptySearchTerm
	}
	if err := checkPage(page); err != nil {
		return pagination.Page[model.PostView]{}, err
	}
	items, err := s.postRepo.Search(ctx, term, page.Offset(), page.Limit)
	if err != nil {
		return pagination.Page[model.PostView]{}, internalErr("search posts", err, zap.String("term", term))
	}
	return pagination.NewPage(items, page), nil
}
