// cachebench 对比关注计数的两种读法：直接查库与 redis 计数缓存。
// 未配置 redis 地址时使用进程内 miniredis
package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/d60-Lab/social-feed/config"
	"github.com/d60-Lab/social-feed/internal/benchutil"
	"github.com/d60-Lab/social-feed/internal/cache"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	ctx := context.Background()
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()
	if err := database.Migrate(db); err != nil {
		panic(err)
	}

	USERS := benchutil.EnvInt("USERS", 2000)
	HOT := benchutil.EnvInt("HOT", 20)
	EDGES := benchutil.EnvInt("EDGES", 20000)
	READS := benchutil.EnvInt("READS", 20000)
	EVERY := benchutil.EnvInt("WRITE_EVERY", 100)
	if HOT > USERS {
		HOT = USERS
	}

	addr := cfg.Redis.Address
	if addr == "" {
		mr := must(miniredis.Run())
		defer mr.Close()
		addr = mr.Addr()
		fmt.Println("redis not configured, using embedded miniredis at", addr)
	}
	client := must(cache.NewClient(ctx, addr, cfg.Redis.Password, cfg.Redis.DB))
	defer func() { _ = client.Close() }()

	followRepo := repository.NewFollowRepository(db)
	noCache := service.NewRelationshipService(followRepo, nil)
	cached := service.NewRelationshipService(followRepo, cache.NewRedisFollowCounts(client, 10*time.Minute))

	users := must(benchutil.SeedUsers(ctx, db, "cnt", USERS))
	rng := rand.New(rand.NewSource(1))
	// 边集中指向前 HOT 个热点用户
	for i := 0; i < EDGES; i++ {
		from := users[rng.Intn(len(users))].ID
		to := users[rng.Intn(HOT)].ID
		if from == to {
			continue
		}
		_, _ = noCache.Follow(ctx, from, to)
	}

	run := func(name string, svc service.RelationshipService) {
		r := rand.New(rand.NewSource(2))
		lat := make([]time.Duration, 0, READS)
		t0 := time.Now()
		for i := 0; i < READS; i++ {
			// 周期性写入，触发缓存失效
			if i%EVERY == 0 {
				from := users[r.Intn(len(users))].ID
				to := users[r.Intn(HOT)].ID
				if from != to {
					_, _ = svc.Unfollow(ctx, from, to)
					_, _ = svc.Follow(ctx, from, to)
				}
			}
			st := time.Now()
			_, _ = svc.FollowCounts(ctx, users[r.Intn(HOT)].ID)
			lat = append(lat, time.Since(st))
		}
		fmt.Printf("%-8s total=%v %s\n", name, time.Since(t0), benchutil.Summarize(lat))
	}

	fmt.Printf("USERS=%d HOT=%d EDGES=%d READS=%d WRITE_EVERY=%d\n", USERS, HOT, EDGES, READS, EVERY)
	run("db", noCache)
	run("redis", cached)
}
