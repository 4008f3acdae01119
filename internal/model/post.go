package model

import "time"

// Post 内容主体，只做软删除
type Post struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	AuthorID        int64     `json:"author_id" gorm:"column:user_id;not null;index:idx_posts_author_created,priority:1"`
	Content         string    `json:"content" gorm:"type:text;not null"`
	MediaURL        *string   `json:"media_url" gorm:"type:text"`
	CommentsEnabled bool      `json:"comments_enabled" gorm:"not null"`
	IsDeleted       bool      `json:"-" gorm:"not null;index"`
	CreatedAt       time.Time `json:"created_at" gorm:"index:idx_posts_author_created,priority:2"`
	UpdatedAt       time.Time `json:"updated_at"`

	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string { return "posts" }

// PostView 帖子 + 作者身份
type PostView struct {
	Post
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// LikedPost 用户点赞过的帖子，附带点赞时间
type LikedPost struct {
	PostView
	LikedAt time.Time `json:"liked_at"`
}

// FeedItem feed 中的一行，计数与 liked 标记在同一条查询中算出
type FeedItem struct {
	PostView
	LikeCount     int64 `json:"like_count"`
	CommentCount  int64 `json:"comment_count"`
	LikedByViewer bool  `json:"liked_by_viewer"`
}
