package http

import (
	"net/http"

	"syncup/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type CreateCommentRequest struct {
	Content string `json:"content" example:"See you there!"`
}

// ToggleLike godoc
// @Summary      Like or unlike a post
// @Description  Likes the post when the caller has not liked it yet, otherwise removes the like.
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id}/like [post]
func (h *PostHandler) ToggleLike(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	state, err := h.likeUseCase.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		h.respondError(c, err, "toggle like")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post_id":     state.PostID,
		"liked":       state.Liked,
		"likes_count": state.LikesCount,
	})
}

// GetLikes godoc
// @Summary      Count likes on a post
// @Tags         likes
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/likes [get]
func (h *PostHandler) GetLikes(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	count, err := h.likeUseCase.GetLikeCount(c.Request.Context(), postID)
	if err != nil {
		h.respondError(c, err, "count likes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_id": postID, "likes_count": count})
}

// ListComments godoc
// @Summary      List comments on a public post
// @Tags         comments
// @Produce      json
// @Param        id     path   int  true   "Post ID"
// @Param        page   query  int  false  "Page number (default 1)"
// @Param        limit  query  int  false  "Page size (default 10, max 50)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/comments [get]
func (h *PostHandler) ListComments(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	params := pagination.Parse(c.Query("page"), c.Query("limit"))

	page, err := h.commentUseCase.ListComments(c.Request.Context(), postID, params)
	if err != nil {
		h.respondError(c, err, "fetch comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": page.Comments, "pagination": page.Pagination})
}

// CreateComment godoc
// @Summary      Comment on a public post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                   true  "Post ID"
// @Param        request  body  CreateCommentRequest  true  "Comment"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) CreateComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	comment, err := h.commentUseCase.CreateComment(c.Request.Context(), userID, postID, req.Content)
	if err != nil {
		h.respondError(c, err, "create comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}
