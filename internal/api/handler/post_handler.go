package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/response"
)

// postDetail 单帖视图，附带当前 viewer 是否点赞；匿名时为 false
type postDetail struct {
	*model.PostView
	LikedByViewer bool `json:"liked_by_viewer"`
}

type createPostRequest struct {
	Content         string  `json:"content" binding:"required,max=5000"`
	MediaURL        *string `json:"media_url" binding:"omitempty,url,max=2048"`
	CommentsEnabled *bool   `json:"comments_enabled"`
}

type updatePostRequest struct {
	Content         *string `json:"content" binding:"omitempty,max=5000"`
	MediaURL        *string `json:"media_url" binding:"omitempty,url,max=2048"`
	CommentsEnabled *bool   `json:"comments_enabled"`
}

// CreatePost 发帖
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createPostRequest true "帖子内容"
// @Success 201 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Router /api/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.postService.CreatePost(c.Request.Context(), service.CreatePostInput{
		AuthorID:        me,
		Content:         req.Content,
		MediaURL:        req.MediaURL,
		CommentsEnabled: req.CommentsEnabled,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, p)
}

// GetPost 帖子详情
// @Summary 帖子详情
// @Tags 帖子
// @Produce json
// @Param post_id path int true "帖子ID"
// @Success 200 {object} response.Response{data=postDetail}
// @Failure 404 {object} response.Response
// @Router /api/posts/{post_id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	p, err := h.postService.GetPost(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := postDetail{PostView: p}
	if me := viewer(c); me > 0 {
		liked, err := h.likeService.HasLiked(c.Request.Context(), me, postID)
		if err != nil {
			writeError(c, err)
			return
		}
		out.LikedByViewer = liked
	}
	response.Success(c, out)
}

// GetUserPosts 某用户的帖子
// @Summary 用户帖子列表
// @Tags 帖子
// @Produce json
// @Param user_id path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/posts/user/{user_id} [get]
func (h *Handler) GetUserPosts(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	h.listByAuthor(c, userID)
}

// GetMyPosts 当前用户的帖子
// @Summary 我的帖子
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/posts/my [get]
func (h *Handler) GetMyPosts(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	h.listByAuthor(c, me)
}

func (h *Handler) listByAuthor(c *gin.Context, authorID int64) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	list, err := h.postService.ListByAuthor(c.Request.Context(), authorID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

// UpdatePost 修改帖子（仅作者）
// @Summary 修改帖子
// @Tags 帖子
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "帖子ID"
// @Param request body updatePostRequest true "待修改字段"
// @Success 200 {object} response.Response{data=model.PostView}
// @Failure 404 {object} response.Response
// @Router /api/posts/{post_id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.postService.UpdatePost(c.Request.Context(), postID, me, service.UpdatePostInput{
		Content:         req.Content,
		MediaURL:        req.MediaURL,
		CommentsEnabled: req.CommentsEnabled,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, p)
}

// DeletePost 删除帖子（软删除，仅作者）
// @Summary 删除帖子
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/posts/{post_id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	if err := h.postService.DeletePost(c.Request.Context(), postID, me); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "post deleted"})
}

// SearchPosts 按内容或作者搜索
// @Summary 搜索帖子
// @Tags 帖子
// @Produce json
// @Param q query string true "关键字"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/posts/search [get]
func (h *Handler) SearchPosts(c *gin.Context) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	list, err := h.postService.SearchPosts(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

// GetFeed 个人 feed
// @Summary 个人 feed
// @Description 自己与关注者的帖子，附点赞数、评论数与是否已点赞
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/posts/feed [get]
func (h *Handler) GetFeed(c *gin.Context) {
	me, ok := currentUser(c)
	if !ok {
		return
	}
	page, ok := pageParams(c)
	if !ok {
		return
	}
	feed, err := h.feedService.GetFeed(c.Request.Context(), me, page)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, feed)
}
