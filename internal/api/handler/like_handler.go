package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/pkg/response"
)

type likeRequest struct {
	PostID int64 `json:"post_id" binding:"required,gt=0"`
}

// Like 点赞（幂等）
// @Summary 点赞
// @Tags 点赞
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body likeRequest true "帖子"
// @Success 200 {object} response.Response{data=service.LikeResult}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/likes [post]
func (h *Handler) Like(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	res, err := h.likeService.Like(c.Request.Context(), me, req.PostID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"message": message(res.Created, "post liked", "already liked"),
		"created": res.Created,
		"like":    res.Like,
	})
}

// Unlike 取消点赞
// @Summary 取消点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/likes/{post_id} [delete]
func (h *Handler) Unlike(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	removed, err := h.likeService.Unlike(c.Request.Context(), me, postID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !removed {
		response.NotFound(c, "like not found")
		return
	}
	response.Success(c, gin.H{"message": "unliked"})
}

// ListPostLikes 帖子的点赞者
// @Summary 帖子点赞列表
// @Tags 点赞
// @Produce json
// @Param post_id path int true "帖子ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=service.PostLikes}
// @Router /api/likes/post/{post_id} [get]
func (h *Handler) ListPostLikes(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	page, ok := pageParams(c)
	if !ok {
		return
	}
	likes, err := h.likeService.ListLikesForPost(c.Request.Context(), postID, viewer(c), page)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, likes)
}

// ListUserLikes 用户点赞过的帖子
// @Summary 用户点赞过的帖子
// @Tags 点赞
// @Produce json
// @Param user_id path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/likes/user/{user_id} [get]
func (h *Handler) ListUserLikes(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	page, ok := pageParams(c)
	if !ok {
		return
	}
	list, err := h.likeService.ListLikedPosts(c.Request.Context(), userID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

// LikeStatus 当前用户是否已点赞
// @Summary 点赞状态
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/likes/status/{post_id} [get]
func (h *Handler) LikeStatus(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	liked, err := h.likeService.HasLiked(c.Request.Context(), me, postID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"post_id": postID, "liked": liked})
}
