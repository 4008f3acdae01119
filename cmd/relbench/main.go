// relbench 压测关注写入：CONC 个 worker 并发让 N 个用户关注同一个大 V，
// 每条边重复写 REPEAT 次，校验幂等后计数仍等于 N
package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/d60-Lab/social-feed/config"
	"github.com/d60-Lab/social-feed/internal/benchutil"
	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/pagination"
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
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()
	if err := database.Migrate(db); err != nil {
		panic(err)
	}

	N := benchutil.EnvInt("N", 10000)
	CONC := benchutil.EnvInt("CONC", 8)
	REPEAT := benchutil.EnvInt("REPEAT", 2)
	PAGE := benchutil.EnvInt("PAGE", 50)
	if PAGE > pagination.MaxLimit {
		PAGE = pagination.MaxLimit
	}

	ctx := context.Background()
	followRepo := repository.NewFollowRepository(db)
	relSvc := service.NewRelationshipService(followRepo, nil)

	celeb := must(benchutil.SeedUsers(ctx, db, "celeb", 1))[0]
	fans := must(benchutil.SeedUsers(ctx, db, "fan", N))

	jobs := make(chan model.User, N)
	for _, u := range fans {
		jobs <- u
	}
	close(jobs)

	var (
		created, already, failed atomic.Int64
		mu                       sync.Mutex
		firstWrite, repeatWrite  = make([]time.Duration, 0, N), make([]time.Duration, 0, N*(REPEAT-1))
		wg                       sync.WaitGroup
	)

	t0 := time.Now()
	for w := 0; w < CONC; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				for r := 0; r < REPEAT; r++ {
					st := time.Now()
					res, err := relSvc.Follow(ctx, u.ID, celeb.ID)
					d := time.Since(st)
					switch {
					case err != nil:
						failed.Add(1)
						continue
					case res.Created:
						created.Add(1)
					default:
						already.Add(1)
					}
					mu.Lock()
					if r == 0 {
						firstWrite = append(firstWrite, d)
					} else {
						repeatWrite = append(repeatWrite, d)
					}
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	total := time.Since(t0)

	counts := must(relSvc.FollowCounts(ctx, celeb.ID))

	q0 := time.Now()
	followers := must(relSvc.ListFollowers(ctx, celeb.ID, must(pagination.New(1, PAGE))))
	followersDur := time.Since(q0)

	q1 := time.Now()
	_ = must(relSvc.ListFollowing(ctx, fans[0].ID, must(pagination.New(1, PAGE))))
	followingDur := time.Since(q1)

	fmt.Printf("N=%d CONC=%d REPEAT=%d PAGE=%d\n", N, CONC, REPEAT, PAGE)
	fmt.Printf("Follow writes total=%v created=%d already=%d failed=%d\n", total, created.Load(), already.Load(), failed.Load())
	fmt.Printf("First write latency: %s\n", benchutil.Summarize(firstWrite))
	fmt.Printf("Repeat write latency: %s\n", benchutil.Summarize(repeatWrite))
	fmt.Printf("Follower count=%d (want %d, ok=%v)\n", counts.FollowerCount, N, counts.FollowerCount == int64(N))
	fmt.Printf("Query followers(%d) latency: %v rows=%d has_more=%v\n", PAGE, followersDur, len(followers.Items), followers.HasMore)
	fmt.Printf("Query following(%d) latency: %v\n", PAGE, followingDur)
}
