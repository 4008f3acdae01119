package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/pkg/response"
)

// Follow 关注用户（幂等）
// @Summary 关注用户
// @Tags 关系链
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "被关注用户ID"
// @Success 200 {object} response.Response{data=service.FollowResult}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/users/{user_id}/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	target, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	res, err := h.relService.Follow(c.Request.Context(), me, target)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"message": message(res.Created, "followed", "already following"),
		"created": res.Created,
		"follow":  res.Follow,
	})
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "被关注用户ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/users/{user_id}/unfollow [delete]
func (h *Handler) Unfollow(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	target, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	removed, err := h.relService.Unfollow(c.Request.Context(), me, target)
	if err != nil {
		writeError(c, err)
		return
	}
	if !removed {
		response.NotFound(c, "not following")
		return
	}
	response.Success(c, gin.H{"message": "unfollowed"})
}

// ListFollowing 当前用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/users/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	page, ok := pageParams(c)
	if !ok {
		return
	}
	list, err := h.relService.ListFollowing(c.Request.Context(), me, page)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

// ListFollowers 当前用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/users/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	page, ok := pageParams(c)
	if !ok {
		return
	}
	list, err := h.relService.ListFollowers(c.Request.Context(), me, page)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

// FollowCounts 关注/粉丝数
// @Summary 关注统计
// @Tags 关系链
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {object} response.Response{data=model.FollowCounts}
// @Router /api/users/{user_id}/stats [get]
func (h *Handler) FollowCounts(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	counts, err := h.relService.FollowCounts(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, counts)
}
