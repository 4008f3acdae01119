// Package testutil 为各包测试提供内存 sqlite 库与可控时钟
package testutil

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/config"
	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/pkg/database"
)

// NewDB 打开已迁移的内存 sqlite。单连接，否则每个连接各是一个独立的库
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.Config{Database: config.DatabaseConfig{
		Driver:       "sqlite",
		FilePath:     ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// NewFileDB 打开已迁移的文件 sqlite，允许 conns 个连接并发写。
// 写事务以 IMMEDIATE 开始并带忙等待，并发写入串行化而不是报 SQLITE_BUSY
func NewFileDB(t testing.TB, conns int) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "social.db") + "?_busy_timeout=10000&_txlock=immediate"
	db, err := database.InitDB(&config.Config{Database: config.DatabaseConfig{
		Driver:       "sqlite",
		FilePath:     path,
		MaxOpenConns: conns,
		MaxIdleConns: conns,
		LogLevel:     "silent",
	}})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Clock 每次调用前进一步的确定性时钟
type Clock struct {
	mu   sync.Mutex
	cur  time.Time
	step time.Duration
}

func NewClock() *Clock {
	return &Clock{cur: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: time.Second}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(c.step)
	return c.cur
}

// Freeze 之后所有调用返回同一时刻，用于构造时间戳相同的记录
func (c *Clock) Freeze() {
	c.mu.Lock()
	c.step = 0
	c.mu.Unlock()
}

// SeedUsers 直接写入 n 个用户，id 从 1 开始，用户名 user1..userN
func SeedUsers(t testing.TB, db *gorm.DB, n int) []model.User {
	t.Helper()
	users := make([]model.User, n)
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range users {
		users[i] = model.User{
			ID:             int64(i + 1),
			Username:       fmt.Sprintf("user%d", i+1),
			Email:          fmt.Sprintf("user%d@example.com", i+1),
			FullName:       fmt.Sprintf("User %d", i+1),
			PasswordDigest: "x",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
	}
	if err := db.CreateInBatches(&users, 500).Error; err != nil {
		t.Fatalf("seed users: %v", err)
	}
	return users
}
