package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/internal/repository"
)

// LikeResult Created 为 false 表示已点过赞，此时 Like 为 nil
type LikeResult struct {
	Created bool        `json:"created"`
	Like    *model.Like `json:"like,omitempty"`
}

// PostLikes 点赞者分页 + 当前 viewer 是否点过赞
type PostLikes struct {
	pagination.Page[model.UserEdge]
	LikedByViewer bool `json:"liked_by_viewer"`
}

// LikeService 点赞服务
type LikeService interface {
	Like(ctx context.Context, userID, postID int64) (LikeResult, error)
	Unlike(ctx context.Context, userID, postID int64) (bool, error)
	// ListLikesForPost viewerID 为 0 表示匿名
	ListLikesForPost(ctx context.Context, postID, viewerID int64, page pagination.Params) (PostLikes, error)
	ListLikedPosts(ctx context.Context, userID int64, page pagination.Params) (pagination.Page[model.LikedPost], error)
	HasLiked(ctx context.Context, userID, postID int64) (bool, error)
}

type likeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository) LikeService {
	return &likeService{likeRepo: likeRepo, postRepo: postRepo}
}

// checkTarget 帖子存在且未删除；作者本人不能对自己的帖子点赞/取消
func (s *likeService) checkTarget(ctx context.Context, userID, postID int64) error {
	p, err := s.postRepo.Get(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return internalErr("get post", err, zap.Int64("post_id", postID))
	}
	if p.AuthorID == userID {
		return ErrLikeOwnPost
	}
	// 校验与写入之间帖子被软删除时，点赞仍会落库；按最后写入为准处理
	return nil
}

func (s *likeService) Like(ctx context.Context, userID, postID int64) (LikeResult, error) {
	if err := checkIDs(userID, postID); err != nil {
		return LikeResult{}, err
	}
	if err := s.checkTarget(ctx, userID, postID); err != nil {
		return LikeResult{}, err
	}
	l, created, err := s.likeRepo.Create(ctx, userID, postID)
	if err != nil {
		// 帖子刚校验过，外键失败只能是用户不存在
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return LikeResult{}, ErrUserNotFound
		}
		return LikeResult{}, internalErr("like", err, zap.Int64("user_id", userID), zap.Int64("post_id", postID))
	}
	return LikeResult{Created: created, Like: l}, nil
}

func (s *likeService) Unlike(ctx context.Context, userID, postID int64) (bool, error) {
	if err := checkIDs(userID, postID); err != nil {
		return false, err
	}
	if err := s.checkTarget(ctx, userID, postID); err != nil {
		return false, err
	}
	removed, err := s.likeRepo.Delete(ctx, userID, postID)
	if err != nil {
		return false, internalErr("unlike", err, zap.Int64("user_id", userID), zap.Int64("post_id", postID))
	}
	return removed, nil
}

func (s *likeService) ListLikesForPost(ctx context.Context, postID, viewerID int64, page pagination.Params) (PostLikes, error) {
	if err := checkIDs(postID); err != nil {
		return PostLikes{}, err
	}
	if viewerID < 0 {
		return PostLikes{}, ErrInvalidID
	}
	if err := checkPage(page); err != nil {
		return PostLikes{}, err
	}
	if _, err := s.postRepo.Get(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return PostLikes{}, ErrPostNotFound
		}
		return PostLikes{}, internalErr("get post", err, zap.Int64("post_id", postID))
	}

	items, err := s.likeRepo.ListForPost(ctx, postID, page.Offset(), page.Limit)
	if err != nil {
		return PostLikes{}, internalErr("list likes", err, zap.Int64("post_id", postID))
	}
	out := PostLikes{Page: pagination.NewPage(items, page)}
	if viewerID > 0 {
		liked, err := s.likeRepo.Exists(ctx, viewerID, postID)
		if err != nil {
			return PostLikes{}, internalErr("has liked", err, zap.Int64("user_id", viewerID), zap.Int64("post_id", postID))
		}
		out.LikedByViewer = liked
	}
	return out, nil
}

func (s *likeService) ListLikedPosts(ctx context.Context, userID int64, page pagination.Params) (pagination.Page[model.LikedPost], error) {
	if err := checkIDs(userID); err != nil {
		return pagination.Page[model.LikedPost]{}, err
	}
	if err := checkPage(page); err != nil {
		return pagination.Page[model.LikedPost]{}, err
	}
	items, err := s.likeRepo.ListLikedByUser(ctx, userID, page.Offset(), page.Limit)
	if err != nil {
		return pagination.Page[model.LikedPost]{}, internalErr("list liked posts", err, zap.Int64("user_id", userID))
	}
	return pagination.NewPage(items, page), nil
}

func (s *likeService) HasLiked(ctx context.Context, userID, postID int64) (bool, error) {
	if err := checkIDs(userID, postID); err != nil {
		return false, err
	}
	ok, err := s.likeRepo.Exists(ctx, userID, postID)
	if err != nil {
		return false, internalErr("has liked", err, zap.Int64("user_id", userID), zap.Int64("post_id", postID))
	}
	return ok, nil
}
