package http

import (
	"net/http"

	"syncup/pkg/logger"
	"syncup/pkg/middleware"
	"syncup/pkg/pagination"
	"syncup/services/post/internal/entity"
	"syncup/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase    usecase.PostUseCase
	likeUseCase    usecase.LikeUseCase
	commentUseCase usecase.CommentUseCase
	mediaUseCase   usecase.MediaUseCase
	logger         *logger.Logger
}

func NewPostHandler(
	postUseCase usecase.PostUseCase,
	likeUseCase usecase.LikeUseCase,
	commentUseCase usecase.CommentUseCase,
	mediaUseCase usecase.MediaUseCase,
	logger *logger.Logger,
) *PostHandler {
	return &PostHandler{
		postUseCase:    postUseCase,
		likeUseCase:    likeUseCase,
		commentUseCase: commentUseCase,
		mediaUseCase:   mediaUseCase,
		logger:         logger,
	}
}

func formatAuthor(author entity.Author) gin.H {
	return gin.H{
		"name":            author.Name,
		"profile_pic_url": author.ProfilePicURL,
	}
}

func formatPostResponse(post *entity.Post) gin.H {
	return gin.H{
		"post_id":    post.ID,
		"user_id":    post.UserID,
		"content":    post.Content,
		"club_id":    post.ClubID,
		"visibility": post.Visibility,
		"image_url":  post.ImageURL,
		"created_at": post.CreatedAt,
		"updated_at": post.UpdatedAt,
		"user":       formatAuthor(post.User),
	}
}

func formatFeedPostResponse(post *entity.FeedPost) gin.H {
	response := formatPostResponse(&post.Post)
	response["likes_count"] = post.LikesCount
	response["comments_count"] = post.CommentsCount
	response["liked_by_user"] = post.LikedByUser
	return response
}

type CreatePostRequest struct {
	Content    string  `json:"content" example:"Study group at the library tonight"`
	ClubID     *int64  `json:"club_id" example:"3"`
	Visibility string  `json:"visibility" example:"public" enums:"public,club_only"`
	ImageURL   *string `json:"image_url"`
}

// ListPosts godoc
// @Summary      List public posts
// @Description  Newest public posts first, with live like/comment counts. A valid bearer token adds liked_by_user; an invalid one is ignored.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number (default 1)"
// @Param        limit  query  int  false  "Page size (default 10, max 50)"
// @Success      200  {object}  map[string]interface{}
// @Failure      429  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)
	params := pagination.Parse(c.Query("page"), c.Query("limit"))

	page, err := h.postUseCase.ListFeed(c.Request.Context(), viewerID, params)
	if err != nil {
		h.respondError(c, err, "fetch posts")
		return
	}

	data := make([]gin.H, len(page.Posts))
	for i := range page.Posts {
		data[i] = formatFeedPostResponse(&page.Posts[i])
	}

	c.JSON(http.StatusOK, gin.H{"data": data, "pagination": page.Pagination})
}

// CreatePost godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CreatePostRequest  true  "Post"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), userID, usecase.CreatePostInput{
		Content:    req.Content,
		ClubID:     req.ClubID,
		Visibility: req.Visibility,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		h.respondError(c, err, "create post")
		return
	}

	c.JSON(http.StatusCreated, formatPostResponse(post))
}

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	viewerID, _ := middleware.CurrentUserID(c)

	post, err := h.postUseCase.GetPost(c.Request.Context(), postID, viewerID)
	if err != nil {
		h.respondError(c, err, "fetch post")
		return
	}

	c.JSON(http.StatusOK, formatFeedPostResponse(post))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Only the owner may delete a post. Its likes and comments are removed with it.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	if err := h.postUseCase.DeletePost(c.Request.Context(), postID, userID); err != nil {
		h.respondError(c, err, "delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully."})
}
