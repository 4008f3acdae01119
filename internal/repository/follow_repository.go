package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/social-feed/internal/model"
)

// FollowRepository 关注边存储。边 (follower_id, following_id) 唯一，取消关注物理删除
type FollowRepository interface {
	// Create 幂等写入；created 为 false 表示边已存在，此时返回 nil 边
	Create(ctx context.Context, followerID, followingID int64) (f *model.Follow, created bool, err error)
	Delete(ctx context.Context, followerID, followingID int64) (bool, error)
	Exists(ctx context.Context, followerID, followingID int64) (bool, error)
	ListFollowing(ctx context.Context, userID int64, offset, limit int) ([]model.UserEdge, error)
	ListFollowers(ctx context.Context, userID int64, offset, limit int) ([]model.UserEdge, error)
	Counts(ctx context.Context, userID int64) (model.FollowCounts, error)
}

type followRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewFollowRepository(db *gorm.DB, opts ...Option) FollowRepository {
	return &followRepository{db: db, now: newOptions(opts).now}
}

func (r *followRepository) Create(ctx context.Context, followerID, followingID int64) (*model.Follow, bool, error) {
	f := &model.Follow{FollowerID: followerID, FollowingID: followingID, CreatedAt: r.now()}
	// 幂等：重复关注不报错，靠 RowsAffected 判断是否新建
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(f)
	if res.Error != nil {
		return nil, false, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, false, nil
	}
	return f, true, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ListFollowing userID 关注的人，最新关注在前
func (r *followRepository) ListFollowing(ctx context.Context, userID int64, offset, limit int) ([]model.UserEdge, error) {
	return r.listEdges(ctx, "f.following_id", "f.follower_id", userID, offset, limit)
}

// ListFollowers 关注 userID 的人，最新关注在前
func (r *followRepository) ListFollowers(ctx context.Context, userID int64, offset, limit int) ([]model.UserEdge, error) {
	return r.listEdges(ctx, "f.follower_id", "f.following_id", userID, offset, limit)
}

func (r *followRepository) listEdges(ctx context.Context, joinCol, filterCol string, userID int64, offset, limit int) ([]model.UserEdge, error) {
	rows := make([]model.UserEdge, 0, limit)
	err := r.db.WithContext(ctx).
		Table("follows AS f").
		Select("u.id, u.username, u.full_name, f.created_at").
		Joins("JOIN users u ON u.id = "+joinCol).
		Where(filterCol+" = ?", userID).
		Order("f.created_at DESC").
		Order("u.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *followRepository) Counts(ctx context.Context, userID int64) (model.FollowCounts, error) {
	var out model.FollowCounts
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM follows WHERE follower_id = ?) AS following_count,
			(SELECT COUNT(*) FROM follows WHERE following_id = ?) AS follower_count`,
		userID, userID).Scan(&out).Error
	if err != nil {
		return model.FollowCounts{}, err
	}
	return out, nil
}
