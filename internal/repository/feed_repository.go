package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
)

// feedSQL 自己的帖子 ∪ 关注者的帖子，一条语句带出点赞数、未删除评论数与 viewer 是否点赞。
// 同一时间戳按 id 升序，保证翻页稳定
const feedSQL = `
SELECT
	p.id, p.user_id, p.content, p.media_url, p.comments_enabled, p.is_deleted, p.created_at, p.updated_at,
	u.username, u.full_name,
	COALESCE(lc.like_count, 0) AS like_count,
	COALESCE(cc.comment_count, 0) AS comment_count,
	EXISTS (SELECT 1 FROM likes lv WHERE lv.post_id = p.id AND lv.user_id = ?) AS liked_by_viewer
FROM posts p
JOIN users u ON u.id = p.user_id
LEFT JOIN (
	SELECT post_id, COUNT(*) AS like_count
	FROM likes
	GROUP BY post_id
) lc ON lc.post_id = p.id
LEFT JOIN (
	SELECT post_id, COUNT(*) AS comment_count
	FROM comments
	WHERE is_deleted = ?
	GROUP BY post_id
) cc ON cc.post_id = p.id
WHERE p.is_deleted = ?
	AND (
		p.user_id = ?
		OR p.user_id IN (SELECT following_id FROM follows WHERE follower_id = ?)
	)
ORDER BY p.created_at DESC, p.id ASC
LIMIT ? OFFSET ?`

// FeedRepository feed 读取
type FeedRepository interface {
	Feed(ctx context.Context, viewerID int64, offset, limit int) ([]model.FeedItem, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) Feed(ctx context.Context, viewerID int64, offset, limit int) ([]model.FeedItem, error) {
	rows := make([]model.FeedItem, 0, limit)
	err := r.db.WithContext(ctx).
		Raw(feedSQL, viewerID, false, false, viewerID, viewerID, limit, offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
