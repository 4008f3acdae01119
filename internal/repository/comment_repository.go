package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
)

// CommentRepository 评论存储，只软删除。帖子可见性与评论开关由 service 层检查
type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	Update(ctx context.Context, commentID, actorID int64, content string) (*model.CommentView, error)
	SoftDelete(ctx context.Context, commentID, actorID int64) error
	ListForPost(ctx context.Context, postID int64, offset, limit int) ([]model.CommentView, error)
}

type commentRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCommentRepository(db *gorm.DB, opts ...Option) CommentRepository {
	return &commentRepository{db: db, now: newOptions(opts).now}
}

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	now := r.now()
	c.IsDeleted = false
	c.CreatedAt = now
	c.UpdatedAt = now
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *commentRepository) views(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("comments AS c").
		Select("c.id, c.post_id, c.user_id, c.content, c.is_deleted, c.created_at, c.updated_at, u.username, u.full_name").
		Joins("JOIN users u ON u.id = c.user_id").
		Where("c.is_deleted = ?", false)
}

func (r *commentRepository) Update(ctx context.Context, commentID, actorID int64, content string) (*model.CommentView, error) {
	var out *model.CommentView
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Comment{}).
			Where("id = ? AND user_id = ? AND is_deleted = ?", commentID, actorID, false).
			Updates(map[string]interface{}{"content": content, "updated_at": r.now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFoundOrUnauthorized
		}
		var rows []model.CommentView
		if err := r.views(ctx, tx).Where("c.id = ?", commentID).Limit(1).Scan(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrNotFound
		}
		out = &rows[0]
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFoundOrUnauthorized) || errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, translate(err)
	}
	return out, nil
}

func (r *commentRepository) SoftDelete(ctx context.Context, commentID, actorID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", commentID, actorID, false).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": r.now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFoundOrUnauthorized
	}
	return nil
}

// ListForPost 未删除评论，最新在前
func (r *commentRepository) ListForPost(ctx context.Context, postID int64, offset, limit int) ([]model.CommentView, error) {
	rows := make([]model.CommentView, 0, limit)
	err := r.views(ctx, r.db).
		Where("c.post_id = ?", postID).
		Order("c.created_at DESC").
		Order("c.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
