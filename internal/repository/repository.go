// Package repository 是各实体的关系型存储。每个 store 只持有注入的 *gorm.DB，
// 不做校验与日志，SQL 限定在 postgres 与 sqlite 的公共子集内。
package repository

import (
	"strings"
	"time"
)

// Option 构造 store 时的可选项
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock 替换写入 created_at/updated_at 用的时钟
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func newOptions(opts []Option) options {
	o := options{now: utcNow}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// 时间一律由 Go 侧以 UTC 绑定，不依赖数据库的 NOW()
func utcNow() time.Time { return time.Now().UTC() }

const postViewColumns = "p.id, p.user_id, p.content, p.media_url, p.comments_enabled, p.is_deleted, p.created_at, p.updated_at, u.username, u.full_name"

// escapeLike 转义 LIKE 通配符，用户输入按字面匹配
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
