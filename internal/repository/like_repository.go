package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/social-feed/internal/model"
)

// LikeRepository 点赞边存储，(user_id, post_id) 唯一，取消点赞物理删除
type LikeRepository interface {
	// Create 幂等写入；created 为 false 表示已点过赞
	Create(ctx context.Context, userID, postID int64) (l *model.Like, created bool, err error)
	Delete(ctx context.Context, userID, postID int64) (bool, error)
	Exists(ctx context.Context, userID, postID int64) (bool, error)
	// ListForPost 点赞者，最新点赞在前
	ListForPost(ctx context.Context, postID int64, offset, limit int) ([]model.UserEdge, error)
	// ListLikedByUser 用户点赞过且未删除的帖子，最新点赞在前
	ListLikedByUser(ctx context.Context, userID int64, offset, limit int) ([]model.LikedPost, error)
}

type likeRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLikeRepository(db *gorm.DB, opts ...Option) LikeRepository {
	return &likeRepository{db: db, now: newOptions(opts).now}
}

func (r *likeRepository) Create(ctx context.Context, userID, postID int64) (*model.Like, bool, error) {
	l := &model.Like{UserID: userID, PostID: postID, CreatedAt: r.now()}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l)
	if res.Error != nil {
		return nil, false, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, false, nil
	}
	return l, true, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *likeRepository) ListForPost(ctx context.Context, postID int64, offset, limit int) ([]model.UserEdge, error) {
	rows := make([]model.UserEdge, 0, limit)
	err := r.db.WithContext(ctx).
		Table("likes AS l").
		Select("u.id, u.username, u.full_name, l.created_at").
		Joins("JOIN users u ON u.id = l.user_id").
		Where("l.post_id = ?", postID).
		Order("l.created_at DESC").
		Order("u.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *likeRepository) ListLikedByUser(ctx context.Context, userID int64, offset, limit int) ([]model.LikedPost, error) {
	rows := make([]model.LikedPost, 0, limit)
	err := r.db.WithContext(ctx).
		Table("likes AS l").
		Select(postViewColumns+", l.created_at AS liked_at").
		Joins("JOIN posts p ON p.id = l.post_id").
		Joins("JOIN users u ON u.id = p.user_id").
		Where("l.user_id = ? AND p.is_deleted = ?", userID, false).
		Order("l.created_at DESC").
		Order("p.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
