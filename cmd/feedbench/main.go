// feedbench 压测 feed 读取：viewer 关注 AUTHORS 个作者，每人发 POSTS 条帖子，
// 随机点赞与评论后连续翻页读取 feed
package main

import (
	"context"
	"fmt"
	"math/rand"
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

	AUTHORS := benchutil.EnvInt("AUTHORS", 200)
	POSTS := benchutil.EnvInt("POSTS", 20)
	LIKES := benchutil.EnvInt("LIKES", 5000)
	PAGES := benchutil.EnvInt("PAGES", 10)
	LIMIT := benchutil.EnvInt("LIMIT", pagination.DefaultLimit)
	if LIMIT > pagination.MaxLimit {
		LIMIT = pagination.MaxLimit
	}

	ctx := context.Background()
	relSvc := service.NewRelationshipService(repository.NewFollowRepository(db), nil)
	postSvc := service.NewPostService(repository.NewPostRepository(db))
	likeSvc := service.NewLikeService(repository.NewLikeRepository(db), repository.NewPostRepository(db))
	commentSvc := service.NewCommentService(repository.NewCommentRepository(db), repository.NewPostRepository(db))
	feedSvc := service.NewFeedService(repository.NewFeedRepository(db))

	viewer := must(benchutil.SeedUsers(ctx, db, "viewer", 1))[0]
	authors := must(benchutil.SeedUsers(ctx, db, "author", AUTHORS))

	seedStart := time.Now()
	posts := make([]*model.Post, 0, AUTHORS*POSTS)
	for _, a := range authors {
		_ = must(relSvc.Follow(ctx, viewer.ID, a.ID))
		for i := 0; i < POSTS; i++ {
			p := must(postSvc.CreatePost(ctx, service.CreatePostInput{
				AuthorID: a.ID,
				Content:  fmt.Sprintf("post %d from %s", i, a.Username),
			}))
			posts = append(posts, p)
		}
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < LIKES; i++ {
		p := posts[rng.Intn(len(posts))]
		liker := authors[rng.Intn(len(authors))]
		if liker.ID == p.AuthorID {
			liker = viewer
		}
		_, _ = likeSvc.Like(ctx, liker.ID, p.ID)
		if i%10 == 0 {
			_, _ = commentSvc.CreateComment(ctx, service.CreateCommentInput{
				PostID:   p.ID,
				AuthorID: liker.ID,
				Content:  "nice",
			})
		}
	}
	seedDur := time.Since(seedStart)

	reads := make([]time.Duration, 0, PAGES)
	rows := 0
	for pg := 1; pg <= PAGES; pg++ {
		st := time.Now()
		res := must(feedSvc.GetFeed(ctx, viewer.ID, must(pagination.New(pg, LIMIT))))
		reads = append(reads, time.Since(st))
		rows += len(res.Items)
		if !res.HasMore {
			break
		}
	}

	fmt.Printf("AUTHORS=%d POSTS=%d LIKES=%d PAGES=%d LIMIT=%d\n", AUTHORS, POSTS, LIKES, PAGES, LIMIT)
	fmt.Printf("Seed duration: %v (posts=%d)\n", seedDur, len(posts))
	fmt.Printf("Feed page read: %s rows=%d\n", benchutil.Summarize(reads), rows)
}
