package model

import "time"

// Comment 评论，只做软删除
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	PostID    int64     `json:"post_id" gorm:"not null;index:idx_comments_post_created,priority:1"`
	AuthorID  int64     `json:"author_id" gorm:"column:user_id;not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	IsDeleted bool      `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_comments_post_created,priority:2"`
	UpdatedAt time.Time `json:"updated_at"`

	Post   Post `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (Comment) TableName() string { return "comments" }

// CommentView 评论 + 作者身份
type CommentView struct {
	Comment
	Username string `json:"username"`
	FullName string `json:"full_name"`
}
