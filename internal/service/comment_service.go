package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/internal/repository"
)

type CreateCommentInput struct {
	PostID   int64
	AuthorID int64
	Content  string
}

// CommentService 评论服务。创建与列表都要求帖子可见且开启评论，作者本人也不例外
type CommentService interface {
	CreateComment(ctx context.Context, in CreateCommentInput) (*model.Comment, error)
	UpdateComment(ctx context.Context, commentID, actorID int64, content string) (*model.CommentView, error)
	DeleteComment(ctx context.Context, commentID, actorID int64) error
	ListComments(ctx context.Context, postID int64, page pagination.Params) (pagination.Page[model.CommentView], error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo}
}

// checkCommentable 关闭评论不删除已有评论，只挡住读写入口
func (s *commentService) checkCommentable(ctx context.Context, postID int64) error {
	p, err := s.postRepo.Get(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return internalErr("get post", err, zap.Int64("post_id", postID))
	}
	if !p.CommentsEnabled {
		return ErrCommentsDisabled
	}
	return nil
}

func (s *commentService) CreateComment(ctx context.Context, in CreateCommentInput) (*model.Comment, error) {
	if err := checkIDs(in.PostID, in.AuthorID); err != nil {
		return nil, err
	}
	content, err := normalizeContent(in.Content)
	if err != nil {
		return nil, err
	}
	if err := s.checkCommentable(ctx, in.PostID); err != nil {
		return nil, err
	}

	c := &model.Comment{PostID: in.PostID, AuthorID: in.AuthorID, Content: content}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, internalErr("create comment", err, zap.Int64("post_id", in.PostID), zap.Int64("author_id", in.AuthorID))
	}
	return c, nil
}

func (s *commentService) UpdateComment(ctx context.Context, commentID, actorID int64, content string) (*model.CommentView, error) {
	if err := checkIDs(commentID, actorID); err != nil {
		return nil, err
	}
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	c, err := s.commentRepo.Update(ctx, commentID, actorID, content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFoundOrUnauthorized) || errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, internalErr("update comment", err, zap.Int64("comment_id", commentID), zap.Int64("actor_id", actorID))
	}
	return c, nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID, actorID int64) error {
	if err := checkIDs(commentID, actorID); err != nil {
		return err
	}
	if err := s.commentRepo.SoftDelete(ctx, commentID, actorID); err != nil {
		if errors.Is(err, repository.ErrNotFoundOrUnauthorized) {
			return ErrNotFoundOrUnauthorized
		}
		return internalErr("delete comment", err, zap.Int64("comment_id", commentID), zap.Int64("actor_id", actorID))
	}
	return nil
}

func (s *commentService) ListComments(ctx context.Context, postID int64, page pagination.Params) (pagination.Page[model.CommentView], error) {
	if err := checkIDs(postID); err != nil {
		return pagination.Page[model.CommentView]{}, err
	}
	if err := checkPage(page); err != nil {
		return pagination.Page[model.CommentView]{}, err
	}
	if err := s.checkCommentable(ctx, postID); err != nil {
		return pagination.Page[model.CommentView]{}, err
	}
	items, err := s.commentRepo.ListForPost(ctx, postID, page.Offset(), page.Limit)
	if err != nil {
		return pagination.Page[model.CommentView]{}, internalErr("list comments", err, zap.Int64("post_id", postID))
	}
	return pagination.NewPage(items, page), nil
}
