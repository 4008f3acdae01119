package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
)

// UserUpdate 资料部分更新；nil 字段保持不变
type UserUpdate struct {
	Email          *string
	FullName       *string
	PasswordDigest *string
}

// UserRepository 用户存储
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	Get(ctx context.Context, userID int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// Profile 用户资料 + 粉丝/关注数
	Profile(ctx context.Context, userID int64) (*model.UserProfile, error)
	Search(ctx context.Context, name string, offset, limit int) ([]model.UserSummary, error)
	Update(ctx context.Context, userID int64, u UserUpdate) error
}

type userRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUserRepository(db *gorm.DB, opts ...Option) UserRepository {
	return &userRepository{db: db, now: newOptions(opts).now}
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	now := r.now()
	u.CreatedAt = now
	u.UpdatedAt = now
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *userRepository) Get(ctx context.Context, userID int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, userID).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepository) Profile(ctx context.Context, userID int64) (*model.UserProfile, error) {
	var rows []model.UserProfile
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id, u.username, u.email, u.full_name, u.created_at,
			(SELECT COUNT(*) FROM follows WHERE following_id = u.id) AS follower_count,
			(SELECT COUNT(*) FROM follows WHERE follower_id = u.id) AS following_count
		FROM users u
		WHERE u.id = ?`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// Search 用户名或全名的大小写不敏感子串匹配，新注册在前
func (r *userRepository) Search(ctx context.Context, name string, offset, limit int) ([]model.UserSummary, error) {
	pattern := "%" + escapeLike(name) + "%"
	rows := make([]model.UserSummary, 0, limit)
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("id, username, full_name, created_at").
		Where(`LOWER(username) LIKE LOWER(?) ESCAPE '\' OR LOWER(full_name) LIKE LOWER(?) ESCAPE '\'`, pattern, pattern).
		Order("created_at DESC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userRepository) Update(ctx context.Context, userID int64, u UserUpdate) error {
	sets := map[string]interface{}{"updated_at": r.now()}
	if u.Email != nil {
		sets["email"] = *u.Email
	}
	if u.FullName != nil {
		sets["full_name"] = *u.FullName
	}
	if u.PasswordDigest != nil {
		sets["password_digest"] = *u.PasswordDigest
	}
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(sets)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
