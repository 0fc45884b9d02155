package http

import (
	"net/http"

	"syncup/pkg/jwt"
	"syncup/pkg/logger"
	"syncup/pkg/middleware"
	"syncup/pkg/pagination"
	"syncup/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	jwtService          *jwt.Service
	upgrader            websocket.Upgrader
	logger              *logger.Logger
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, jwtService *jwt.Service, allowedOrigins []string, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		jwtService:          jwtService,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed["*"] || allowed[origin]
	}
}

func (h *NotificationHandler) RegisterRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	api.GET("/notifications", requireAuth, h.GetNotifications)
	api.GET("/notifications/ws", h.HandleWebSocket)
}

// GetNotifications godoc
// @Summary      List notifications for the current user
// @Description  Like and comment notifications, newest first.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number (default 1)"
// @Param        limit  query  int  false  "Page size (default 10, max 50)"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	params := pagination.Parse(c.Query("page"), c.Query("limit"))
	page, err := h.notificationUseCase.GetNotifications(c.Request.Context(), userID, params)
	if err != nil {
		h.logger.Error("Failed to fetch notifications for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": page.Notifications, "pagination": page.Pagination})
}

// HandleWebSocket streams new notifications to the caller as they are
// stored. Browsers cannot set headers on the upgrade request, so the token
// may also be passed as ?token=.
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}
		claims, err := h.jwtService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		userID = claims.UserID
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	pubsub := h.notificationUseCase.Subscribe(ctx, userID)
	defer pubsub.Close()

	h.logger.Info("WebSocket connected for user %d", userID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	messages := pubsub.Channel()
	for {
		select {
		case <-done:
			h.logger.Info("WebSocket disconnected for user %d", userID)
			return
		case msg, open := <-messages:
			if !open {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				h.logger.Warn("Failed to write WebSocket message for user %d: %v", userID, err)
				return
			}
		}
	}
}
