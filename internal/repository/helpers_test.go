package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-feed/internal/model"
)

func edgeIDs(rows []model.UserEdge) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func viewIDs(rows []model.PostView) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func feedIDs(rows []model.FeedItem) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func mustPost(t *testing.T, repo PostRepository, authorID int64, content string) *model.Post {
	t.Helper()
	p := &model.Post{AuthorID: authorID, Content: content, CommentsEnabled: true}
	require.NoError(t, repo.Create(context.Background(), p))
	require.NotZero(t, p.ID)
	return p
}

// raceCreate 让 n 个 goroutine 同时执行 create，返回新建次数与出错次数
func raceCreate(n int, create func() (bool, error)) (created, failed int) {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		start = make(chan struct{})
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ok, err := create()
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				failed++
			case ok:
				created++
			}
		}()
	}
	close(start)
	wg.Wait()
	return created, failed
}
