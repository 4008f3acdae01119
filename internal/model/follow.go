package model

import "time"

// Follow 关注关系（A 关注 B），身份即 (follower_id, following_id)
type Follow struct {
	FollowerID  int64     `json:"follower_id" gorm:"primaryKey;autoIncrement:false;check:chk_follows_no_self,follower_id <> following_id"`
	FollowingID int64     `json:"following_id" gorm:"primaryKey;autoIncrement:false;index:idx_follows_following"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  User `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Following User `json:"-" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}

func (Follow) TableName() string { return "follows" }

// FollowCounts 关注/粉丝计数，无关系时为 0
type FollowCounts struct {
	FollowingCount int64 `json:"following_count"`
	FollowerCount  int64 `json:"follower_count"`
}

// UserEdge 关系列表中的一行：对端用户 + 关系建立时间
type UserEdge struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}
