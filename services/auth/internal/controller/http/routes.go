package http

import "github.com/gin-gonic/gin"

func (h *AuthHandler) RegisterRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	auth := api.Group("/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.GET("/me", requireAuth, h.Me)
	auth.POST("/avatar", requireAuth, h.UploadAvatar)
}
