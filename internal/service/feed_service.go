package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/internal/repository"
)

// FeedService 个人 feed：自己的帖子 + 关注者的帖子
type FeedService interface {
	GetFeed(ctx context.Context, viewerID int64, page pagination.Params) (pagination.Page[model.FeedItem], error)
}

type feedService struct {
	feedRepo repository.FeedRepository
}

func NewFeedService(feedRepo repository.FeedRepository) FeedService {
	return &feedService{feedRepo: feedRepo}
}

func (s *feedService) GetFeed(ctx context.Context, viewerID int64, page pagination.Params) (pagination.Page[model.FeedItem], error) {
	if err := checkIDs(viewerID); err != nil {
		return pagination.Page[model.FeedItem]{}, err
	}
	if err := checkPage(page); err != nil {
		return pagination.Page[model.FeedItem]{}, err
	}
	items, err := s.feedRepo.Feed(ctx, viewerID, page.Offset(), page.Limit)
	if err != nil {
		return pagination.Page[model.FeedItem]{}, internalErr("get feed", err,
			zap.Int64("viewer_id", viewerID), zap.Int("page", page.Page), zap.Int("limit", page.Limit))
	}
	return pagination.NewPage(items, page), nil
}
