package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the post endpoints. Reads are public and expect an
// optional-auth middleware upstream; writes are wrapped in requireAuth.
func (h *PostHandler) RegisterRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	api.GET("/posts", h.ListPosts)
	api.GET("/posts/:id", h.GetPost)
	api.GET("/posts/:id/likes", h.GetLikes)
	api.GET("/posts/:id/comments", h.ListComments)

	api.POST("/posts", requireAuth, h.CreatePost)
	api.DELETE("/posts/:id", requireAuth, h.DeletePost)
	api.POST("/posts/:id/like", requireAuth, h.ToggleLike)
	api.POST("/posts/:id/comments", requireAuth, h.CreateComment)
	api.POST("/uploads", requireAuth, h.UploadImage)
}
