package repository

import (
	"context"
	"math/rand"
	"testing"

	"github.com/d60-Lab/social-feed/internal/testutil"
)

func BenchmarkFollowWrite_Idempotent(b *testing.B) {
	db := testutil.NewDB(b)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	// 预创建部分用户
	users := testutil.SeedUsers(b, db, 1000)

	rng := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := users[rng.Intn(len(users))].ID
		to := users[rng.Intn(len(users))].ID
		if from == to {
			continue
		}
		// 重复边走 ON CONFLICT DO NOTHING
		_, _, _ = repo.Create(ctx, from, to)
	}
}

func BenchmarkQueryFollowersAndFollowing(b *testing.B) {
	db := testutil.NewDB(b)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	// 构造：用户 1 有 N 个粉丝，同时 1 也关注这 N 个用户
	const N = 5000
	users := testutil.SeedUsers(b, db, N+1)
	u0 := users[0].ID
	for _, u := range users[1:] {
		_, _, _ = repo.Create(ctx, u.ID, u0)
		_, _, _ = repo.Create(ctx, u0, u.ID)
	}

	b.ResetTimer()
	b.Run("ListFollowers", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.ListFollowers(ctx, u0, 0, 50)
		}
	})

	b.Run("ListFollowing", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.ListFollowing(ctx, u0, 0, 50)
		}
	})

	b.Run("Counts", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = repo.Counts(ctx, u0)
		}
	})
}
