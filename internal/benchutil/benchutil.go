// Package benchutil 压测命令共用的参数读取、造数与延迟统计
package benchutil

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
)

// EnvInt 读取正整数环境变量，缺失或非法时返回 def
func EnvInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

// SeedUsers 批量写入 n 个随机用户名的用户，返回带自增 id 的切片
func SeedUsers(ctx context.Context, db *gorm.DB, prefix string, n int) ([]model.User, error) {
	now := time.Now().UTC()
	users := make([]model.User, n)
	for i := range users {
		tag := uuid.NewString()[:12]
		users[i] = model.User{
			Username:       fmt.Sprintf("%s_%s", prefix, tag),
			Email:          fmt.Sprintf("%s_%s@bench.local", prefix, tag),
			FullName:       fmt.Sprintf("%s %d", prefix, i),
			PasswordDigest: "x",
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}
	if err := db.WithContext(ctx).CreateInBatches(&users, 500).Error; err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	return users, nil
}

// Percentile 最近秩法取分位数，p 取值 (0,1]
func Percentile(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

// Summary 汇总一组延迟
type Summary struct {
	Samples int
	Avg     time.Duration
	P50     time.Duration
	P95     time.Duration
	P99     time.Duration
}

func Summarize(vs []time.Duration) Summary {
	s := Summary{Samples: len(vs)}
	if len(vs) == 0 {
		return s
	}
	var sum time.Duration
	for _, d := range vs {
		sum += d
	}
	s.Avg = sum / time.Duration(len(vs))
	s.P50 = Percentile(vs, 0.50)
	s.P95 = Percentile(vs, 0.95)
	s.P99 = Percentile(vs, 0.99)
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("samples=%d avg=%v p50=%v p95=%v p99=%v", s.Samples, s.Avg, s.P50, s.P95, s.P99)
}
