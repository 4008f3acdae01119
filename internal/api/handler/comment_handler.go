package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/response"
)

type createCommentRequest struct {
	PostID  int64  `json:"post_id" binding:"required,gt=0"`
	Content string `json:"content" binding:"required,max=2000"`
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// CreateComment 发表评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createCommentRequest true "评论"
// @Success 201 {object} response.Response{data=model.Comment}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.commentService.CreateComment(c.Request.Context(), service.CreateCommentInput{
		PostID:   req.PostID,
		AuthorID: me,
		Content:  req.Content,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, cm)
}

// UpdateComment 修改评论（仅作者）
// @Summary 修改评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param comment_id path int true "评论ID"
// @Param request body updateCommentRequest true "评论内容"
// @Success 200 {object} response.Response{data=model.CommentView}
// @Failure 404 {object} response.Response
// @Router /api/comments/{comment_id} [put]
func (h *Handler) UpdateComment(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.commentService.UpdateComment(c.Request.Context(), commentID, me, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, cm)
}

// DeleteComment 删除评论（软删除，仅作者）
// @Summary 删除评论
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param comment_id path int true "评论ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/comments/{comment_id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	if err := h.commentService.DeleteComment(c.Request.Context(), commentID, me); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "comment deleted"})
}

// ListComments 帖子评论
// @Summary 评论列表
// @Tags 评论
// @Produce json
// @Param post_id path int true "帖子ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/comments/post/{post_id} [get]
func (h *Handler) ListComments(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	page, ok := pageParams(c)
	if !ok {
		return
	}
	list, err := h.commentService.ListComments(c.Request.Context(), postID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}
