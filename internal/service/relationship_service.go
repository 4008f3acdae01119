package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/internal/cache"
	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/pkg/logger"
)

// FollowResult Created 为 false 表示已关注过，此时 Follow 为 nil
type FollowResult struct {
	Created bool          `json:"created"`
	Follow  *model.Follow `json:"follow,omitempty"`
}

// RelationshipService 关系链服务
type RelationshipService interface {
	Follow(ctx context.Context, followerID, followingID int64) (FollowResult, error)
	Unfollow(ctx context.Context, followerID, followingID int64) (bool, error)
	ListFollowing(ctx context.Context, userID int64, page pagination.Params) (pagination.Page[model.UserEdge], error)
	ListFollowers(ctx context.Context, userID int64, page pagination.Params) (pagination.Page[model.UserEdge], error)
	FollowCounts(ctx context.Context, userID int64) (model.FollowCounts, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
	counts     cache.FollowCounts
}

// NewRelationshipService counts 可为 nil，此时计数直接查库
func NewRelationshipService(followRepo repository.FollowRepository, counts cache.FollowCounts) RelationshipService {
	return &relationshipService{followRepo: followRepo, counts: counts}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, followingID int64) (FollowResult, error) {
	if err := checkIDs(followerID, followingID); err != nil {
		return FollowResult{}, err
	}
	if followerID == followingID {
		return FollowResult{}, ErrSelfFollow
	}
	f, created, err := s.followRepo.Create(ctx, followerID, followingID)
	if err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return FollowResult{}, ErrUserNotFound
		}
		return FollowResult{}, internalErr("follow", err,
			zap.Int64("follower_id", followerID), zap.Int64("following_id", followingID))
	}
	if created {
		s.invalidate(ctx, followerID, followingID)
	}
	return FollowResult{Created: created, Follow: f}, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	if err := checkIDs(followerID, followingID); err != nil {
		return false, err
	}
	removed, err := s.followRepo.Delete(ctx, followerID, followingID)
	if err != nil {
		return false, internalErr("unfollow", err,
			zap.Int64("follower_id", followerID), zap.Int64("following_id", followingID))
	}
	if removed {
		s.invalidate(ctx, followerID, followingID)
	}
	return removed, nil
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID int64, page pagination.Params) (pagination.Page[model.UserEdge], error) {
	if err := checkIDs(userID); err != nil {
		return pagination.Page[model.UserEdge]{}, err
	}
	if err := checkPage(page); err != nil {
		return pagination.Page[model.UserEdge]{}, err
	}
	items, err := s.followRepo.ListFollowing(ctx, userID, page.Offset(), page.Limit)
	if err != nil {
		return pagination.Page[model.UserEdge]{}, internalErr("list following", err, zap.Int64("user_id", userID))
	}
	return pagination.NewPage(items, page), nil
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID int64, page pagination.Params) (pagination.Page[model.UserEdge], error) {
	if err := checkIDs(userID); err != nil {
		return pagination.Page[model.UserEdge]{}, err
	}
	if err := checkPage(page); err != nil {
		return pagination.Page[model.UserEdge]{}, err
	}
	items, err := s.followRepo.ListFollowers(ctx, userID, page.Offset(), page.Limit)
	if err != nil {
		return pagination.Page[model.UserEdge]{}, internalErr("list followers", err, zap.Int64("user_id", userID))
	}
	return pagination.NewPage(items, page), nil
}

// FollowCounts 先读缓存；缓存故障只记日志，回落到库
func (s *relationshipService) FollowCounts(ctx context.Context, userID int64) (model.FollowCounts, error) {
	if err := checkIDs(userID); err != nil {
		return model.FollowCounts{}, err
	}
	if s.counts != nil {
		c, hit, err := s.counts.Get(ctx, userID)
		if err != nil {
			logger.Warn("follow counts cache get failed", zap.Int64("user_id", userID), zap.Error(err))
		} else if hit {
			return c, nil
		}
	}

	// 版本号须在读库之前取得
	version, cacheable := int64(0), s.counts != nil
	if cacheable {
		v, err := s.counts.Version(ctx, userID)
		if err != nil {
			logger.Warn("follow counts cache version failed", zap.Int64("user_id", userID), zap.Error(err))
			cacheable = false
		}
		version = v
	}

	c, err := s.followRepo.Counts(ctx, userID)
	if err != nil {
		return model.FollowCounts{}, internalErr("follow counts", err, zap.Int64("user_id", userID))
	}
	if cacheable {
		stored, err := s.counts.Set(ctx, userID, version, c)
		if err != nil {
			logger.Warn("follow counts cache set failed", zap.Int64("user_id", userID), zap.Error(err))
		} else if !stored {
			logger.Debug("follow counts changed during read, cache fill skipped", zap.Int64("user_id", userID))
		}
	}
	return c, nil
}

func (s *relationshipService) invalidate(ctx context.Context, userIDs ...int64) {
	if s.counts == nil {
		return
	}
	if err := s.counts.Invalidate(ctx, userIDs...); err != nil {
		logger.Warn("follow counts cache invalidate failed", zap.Int64s("user_ids", userIDs), zap.Error(err))
	}
}
