package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/social-feed/internal/api/middleware"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/internal/testutil"
	"github.com/d60-Lab/social-feed/pkg/password"
)

const secret = "handler-test-secret"

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	testutil.SeedUsers(t, db, 3)
	opt := repository.WithClock(testutil.NewClock().Now)
	postRepo := repository.NewPostRepository(db, opt)

	h := NewHandler(Services{
		Users:         service.NewUserService(repository.NewUserRepository(db, opt), password.NewBcrypt(bcrypt.MinCost)),
		Posts:         service.NewPostService(postRepo),
		Likes:         service.NewLikeService(repository.NewLikeRepository(db, opt), postRepo),
		Comments:      service.NewCommentService(repository.NewCommentRepository(db, opt), postRepo),
		Relationships: service.NewRelationshipService(repository.NewFollowRepository(db, opt), nil),
		Feed:          service.NewFeedService(repository.NewFeedRepository(db)),
	}, middleware.NewAuth(secret, ""))

	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func token(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{UserID: userID}).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func call(t *testing.T, r *gin.Engine, method, path string, userID int64, body interface{}) (int, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token(t, userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestHandler_PostLikeFeedFlow(t *testing.T) {
	r := setupRouter(t)

	code, resp := call(t, r, http.MethodPost, "/api/posts", 1, gin.H{"content": "P"})
	require.Equal(t, http.StatusCreated, code)
	var post struct {
		ID              int64 `json:"id"`
		CommentsEnabled bool  `json:"comments_enabled"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &post))
	assert.True(t, post.CommentsEnabled)
	postPath := "/api/posts/" + strconv.FormatInt(post.ID, 10)

	t.Run("auth required", func(t *testing.T) {
		code, resp := call(t, r, http.MethodPost, "/api/posts", 0, gin.H{"content": "x"})
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.False(t, resp.Success)
	})

	t.Run("like own post forbidden", func(t *testing.T) {
		code, _ := call(t, r, http.MethodPost, "/api/likes", 1, gin.H{"post_id": post.ID})
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("like twice", func(t *testing.T) {
		code, resp := call(t, r, http.MethodPost, "/api/likes", 2, gin.H{"post_id": post.ID})
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, string(resp.Data), `"created":true`)

		code, resp = call(t, r, http.MethodPost, "/api/likes", 2, gin.H{"post_id": post.ID})
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, string(resp.Data), `"already liked"`)

		code, resp = call(t, r, http.MethodGet, "/api/likes/status/"+strconv.FormatInt(post.ID, 10), 2, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, string(resp.Data), `"liked":true`)

		code, resp = call(t, r, http.MethodGet, "/api/likes/status/"+strconv.FormatInt(post.ID, 10), 3, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, string(resp.Data), `"liked":false`)
	})

	t.Run("post detail annotated for viewer", func(t *testing.T) {
		var detail struct {
			ID            int64 `json:"id"`
			LikedByViewer bool  `json:"liked_by_viewer"`
		}
		for _, tc := range []struct {
			viewer int64
			liked  bool
		}{{2, true}, {3, false}, {0, false}} {
			code, resp := call(t, r, http.MethodGet, postPath, tc.viewer, nil)
			require.Equal(t, http.StatusOK, code)
			require.NoError(t, json.Unmarshal(resp.Data, &detail))
			assert.Equal(t, post.ID, detail.ID)
			assert.Equal(t, tc.liked, detail.LikedByViewer, "viewer %d", tc.viewer)
		}
	})

	t.Run("feed membership follows the graph", func(t *testing.T) {
		code, resp := call(t, r, http.MethodGet, "/api/posts/feed", 3, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, string(resp.Data), `"items":[]`)

		code, _ = call(t, r, http.MethodPost, "/api/users/1/follow", 3, nil)
		require.Equal(t, http.StatusOK, code)

		code, resp = call(t, r, http.MethodGet, "/api/posts/feed", 3, nil)
		require.Equal(t, http.StatusOK, code)
		var page struct {
			Items []struct {
				ID        int64 `json:"id"`
				LikeCount int64 `json:"like_count"`
			} `json:"items"`
			HasMore bool `json:"has_more"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		require.Len(t, page.Items, 1)
		assert.Equal(t, post.ID, page.Items[0].ID)
		assert.Equal(t, int64(1), page.Items[0].LikeCount)
		assert.False(t, page.HasMore)
	})

	t.Run("ownership gate", func(t *testing.T) {
		code, resp := call(t, r, http.MethodPut, postPath, 2, gin.H{"content": "mine now"})
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)

		code, _ = call(t, r, http.MethodDelete, postPath, 1, nil)
		assert.Equal(t, http.StatusOK, code)
		code, _ = call(t, r, http.MethodGet, postPath, 0, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestHandler_Validation(t *testing.T) {
	r := setupRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		user   int64
		body   interface{}
	}{
		{"bad post id", http.MethodGet, "/api/posts/abc", 0, nil},
		{"bad page", http.MethodGet, "/api/posts/user/1?page=x", 0, nil},
		{"limit too large", http.MethodGet, "/api/posts/user/1?limit=101", 0, nil},
		{"self follow", http.MethodPost, "/api/users/2/follow", 2, nil},
		{"blank search", http.MethodGet, "/api/posts/search?q=%20", 0, nil},
		{"missing content", http.MethodPost, "/api/posts", 1, gin.H{}},
		{"blank content", http.MethodPost, "/api/posts", 1, gin.H{"content": "   "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := call(t, r, tc.method, tc.path, tc.user, tc.body)
			assert.Equal(t, http.StatusBadRequest, code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
		})
	}
}

func TestHandler_CommentsAndUsers(t *testing.T) {
	r := setupRouter(t)

	code, resp := call(t, r, http.MethodPost, "/api/posts", 1, gin.H{"content": "quiet", "comments_enabled": false})
	require.Equal(t, http.StatusCreated, code)
	var post struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &post))

	code, _ = call(t, r, http.MethodPost, "/api/comments", 2, gin.H{"post_id": post.ID, "content": "hi"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = call(t, r, http.MethodGet, "/api/comments/post/"+strconv.FormatInt(post.ID, 10), 0, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, r, http.MethodDelete, "/api/users/2/unfollow", 1, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = call(t, r, http.MethodGet, "/api/users/1/stats", 0, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"following_count":0,"follower_count":0}`, string(resp.Data))

	code, resp = call(t, r, http.MethodPost, "/api/users/register", 0, gin.H{
		"username": "dora", "email": "dora@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.NotContains(t, string(resp.Data), "password")

	code, resp = call(t, r, http.MethodGet, "/api/users/search?name=DOR", 0, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(resp.Data), `"username":"dora"`)

	code, _ = call(t, r, http.MethodGet, "/api/users/999/profile", 0, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, r, http.MethodGet, "/health", 0, nil)
	assert.Equal(t, http.StatusOK, code)
}
