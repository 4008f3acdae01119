package model

import "time"

// Like 点赞边，身份即 (user_id, post_id)
type Like struct {
	UserID    int64     `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	PostID    int64     `json:"post_id" gorm:"primaryKey;autoIncrement:false;index:idx_likes_post"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Post Post `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (Like) TableName() string { return "likes" }
