package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
)

// PostUpdate 部分更新；nil 字段保持不变
type PostUpdate struct {
	Content         *string
	MediaURL        *string
	CommentsEnabled *bool
}

// PostRepository 帖子存储，只软删除
type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	Get(ctx context.Context, postID int64) (*model.PostView, error)
	ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]model.PostView, error)
	// Update 条件更新 (id, 作者, 未删除)；未命中返回 ErrNotFoundOrUnauthorized
	Update(ctx context.Context, postID, actorID int64, u PostUpdate) (*model.PostView, error)
	SoftDelete(ctx context.Context, postID, actorID int64) error
	Search(ctx context.Context, term string, offset, limit int) ([]model.PostView, error)
}

type postRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostRepository(db *gorm.DB, opts ...Option) PostRepository {
	return &postRepository{db: db, now: newOptions(opts).now}
}

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	now := r.now()
	p.IsDeleted = false
	p.CreatedAt = now
	p.UpdatedAt = now
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *postRepository) views(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("posts AS p").
		Select(postViewColumns).
		Joins("JOIN users u ON u.id = p.user_id").
		Where("p.is_deleted = ?", false)
}

func (r *postRepository) Get(ctx context.Context, postID int64) (*model.PostView, error) {
	return r.get(ctx, r.db, postID)
}

func (r *postRepository) get(ctx context.Context, db *gorm.DB, postID int64) (*model.PostView, error) {
	var rows []model.PostView
	if err := r.views(ctx, db).Where("p.id = ?", postID).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]model.PostView, error) {
	rows := make([]model.PostView, 0, limit)
	err := r.views(ctx, r.db).
		Where("p.user_id = ?", authorID).
		Order("p.created_at DESC").
		Order("p.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *postRepository) Update(ctx context.Context, postID, actorID int64, u PostUpdate) (*model.PostView, error) {
	sets := map[string]interface{}{"updated_at": r.now()}
	if u.Content != nil {
		sets["content"] = *u.Content
	}
	if u.MediaURL != nil {
		sets["media_url"] = *u.MediaURL
	}
	if u.CommentsEnabled != nil {
		sets["comments_enabled"] = *u.CommentsEnabled
	}

	var out *model.PostView
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Post{}).
			Where("id = ? AND user_id = ? AND is_deleted = ?", postID, actorID, false).
			Updates(sets)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFoundOrUnauthorized
		}
		v, err := r.get(ctx, tx, postID)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFoundOrUnauthorized) {
			return nil, err
		}
		return nil, translate(err)
	}
	return out, nil
}

func (r *postRepository) SoftDelete(ctx context.Context, postID, actorID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", postID, actorID, false).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": r.now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFoundOrUnauthorized
	}
	return nil
}

// Search 内容、作者用户名或全名的大小写不敏感子串匹配
func (r *postRepository) Search(ctx context.Context, term string, offset, limit int) ([]model.PostView, error) {
	pattern := "%" + escapeLike(term) + "%"
	rows := make([]model.PostView, 0, limit)
	err := r.views(ctx, r.db).
		Where(`(LOWER(p.content) LIKE LOWER(?) ESCAPE '\'
			OR LOWER(u.username) LIKE LOWER(?) ESCAPE '\'
			OR LOWER(u.full_name) LIKE LOWER(?) ESCAPE '\')`, pattern, pattern, pattern).
		Order("p.created_at DESC").
		Order("p.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
