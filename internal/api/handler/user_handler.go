package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/response"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

type updateProfileRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
}

// Register 注册用户（token 签发由认证服务负责）
// @Summary 注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} response.Response{data=model.User}
// @Failure 400 {object} response.Response
// @Router /api/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, u)
}

// GetProfile 用户资料
// @Summary 用户资料
// @Tags 用户
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {object} response.Response{data=model.UserProfile}
// @Failure 404 {object} response.Response
// @Router /api/users/{user_id}/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	p, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, p)
}

// UpdateProfile 修改当前用户资料
// @Summary 修改资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updateProfileRequest true "待修改字段"
// @Success 200 {object} response.Response{data=model.UserProfile}
// @Failure 400 {object} response.Response
// @Router /api/users/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.userService.UpdateProfile(c.Request.Context(), me, service.UpdateProfileInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, p)
}

// SearchUsers 按用户名或全名搜索
// @Summary 搜索用户
// @Tags 用户
// @Produce json
// @Param name query string true "关键字"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/users/search [get]
func (h *Handler) SearchUsers(c *gin.Context) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	list, err := h.userService.SearchUsers(c.Request.Context(), c.Query("name"), page)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}
