package handler

import (
	"strconv"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/internal/api/middleware"
	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/response"
)

// Handler HTTP 入口，只做参数解析与状态码映射
type Handler struct {
	userService    service.UserService
	postService    service.PostService
	likeService    service.LikeService
	commentService service.CommentService
	relService     service.RelationshipService
	feedService    service.FeedService
	auth           *middleware.Auth
}

type Services struct {
	Users         service.UserService
	Posts         service.PostService
	Likes         service.LikeService
	Comments      service.CommentService
	Relationships service.RelationshipService
	Feed          service.FeedService
}

func NewHandler(s Services, auth *middleware.Auth) *Handler {
	return &Handler{
		userService:    s.Users,
		postService:    s.Posts,
		likeService:    s.Likes,
		commentService: s.Comments,
		relService:     s.Relationships,
		feedService:    s.Feed,
		auth:           auth,
	}
}

// RegisterRoutes 注册 /api 下全部路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	requireAuth := h.auth.RequireAuth()
	optionalAuth := h.auth.OptionalAuth()

	r.GET("/health", h.Health)

	api := r.Group("/api")

	posts := api.Group("/posts")
	{
		posts.POST("", requireAuth, h.CreatePost)
		posts.GET("/my", requireAuth, h.GetMyPosts)
		posts.GET("/search", optionalAuth, h.SearchPosts)
		posts.GET("/feed", requireAuth, h.GetFeed)
		posts.GET("/user/:user_id", optionalAuth, h.GetUserPosts)
		posts.GET("/:post_id", optionalAuth, h.GetPost)
		posts.PUT("/:post_id", requireAuth, h.UpdatePost)
		posts.DELETE("/:post_id", requireAuth, h.DeletePost)
	}

	likes := api.Group("/likes")
	{
		likes.POST("", requireAuth, h.Like)
		likes.DELETE("/:post_id", requireAuth, h.Unlike)
		likes.GET("/post/:post_id", optionalAuth, h.ListPostLikes)
		likes.GET("/user/:user_id", optionalAuth, h.ListUserLikes)
		likes.GET("/status/:post_id", requireAuth, h.LikeStatus)
	}

	comments := api.Group("/comments")
	{
		comments.POST("", requireAuth, h.CreateComment)
		comments.PUT("/:comment_id", requireAuth, h.UpdateComment)
		comments.DELETE("/:comment_id", requireAuth, h.DeleteComment)
		comments.GET("/post/:post_id", optionalAuth, h.ListComments)
	}

	users := api.Group("/users")
	{
		users.POST("/register", h.Register)
		users.GET("/search", optionalAuth, h.SearchUsers)
		users.GET("/following", requireAuth, h.ListFollowing)
		users.GET("/followers", requireAuth, h.ListFollowers)
		users.PUT("/profile", requireAuth, h.UpdateProfile)
		users.GET("/:user_id/profile", optionalAuth, h.GetProfile)
		users.POST("/:user_id/follow", requireAuth, h.Follow)
		users.DELETE("/:user_id/unfollow", requireAuth, h.Unfollow)
		users.GET("/:user_id/stats", optionalAuth, h.FollowCounts)
	}
}

// Health 存活检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// writeError 按错误分类映射状态码；internal 错误上报 sentry，不向调用方暴露细节
func writeError(c *gin.Context, err error) {
	msg := service.MessageOf(err)
	switch service.KindOf(err) {
	case service.KindValidation:
		response.BadRequest(c, msg)
	case service.KindNotFound:
		response.NotFound(c, msg)
	case service.KindForbidden:
		response.Forbidden(c, msg)
	default:
		_ = c.Error(err)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		response.InternalError(c)
	}
}

// currentUser 必须已经过 RequireAuth
func currentUser(c *gin.Context) (int64, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
	}
	return id, ok
}

// viewer 匿名返回 0
func viewer(c *gin.Context) int64 {
	id, _ := middleware.GetUserID(c)
	return id
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (pagination.Params, bool) {
	p, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return pagination.Params{}, false
	}
	return p, true
}

// message 给幂等操作一个可读的结果描述
func message(created bool, yes, no string) string {
	if created {
		return yes
	}
	return no
}
