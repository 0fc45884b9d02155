package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"syncup/pkg/logger"
	"syncup/pkg/pagination"
	"syncup/services/notification/internal/entity"
	"syncup/services/notification/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const unknownActor = "Someone"

type NotificationUseCase interface {
	// HandleTask turns a queued engagement task into a stored notification.
	// Malformed tasks are logged and dropped; only storage failures are
	// returned so the queue can retry them.
	HandleTask(ctx context.Context, task map[string]interface{}) error
	GetNotifications(ctx context.Context, userID int64, params pagination.Params) (*entity.NotificationPage, error)
	Subscribe(ctx context.Context, userID int64) *redis.PubSub
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	userRepo         persistent.UserRepository
	logger           *logger.Logger
	now              func() time.Time
}

func NewNotificationUseCase(notificationRepo persistent.NotificationRepository, userRepo persistent.UserRepository, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
		now:              time.Now,
	}
}

func (uc *notificationUseCase) HandleTask(ctx context.Context, task map[string]interface{}) error {
	notification, err := uc.buildNotification(ctx, task)
	if err != nil {
		uc.logger.Warn("[NOTIFICATION HANDLER] Dropping task: %v, task=%+v", err, task)
		return nil
	}

	if err := uc.notificationRepo.Push(ctx, notification); err != nil {
		return err
	}

	// Already stored; a retry here would duplicate it in the inbox.
	if err := uc.notificationRepo.Announce(ctx, notification); err != nil {
		uc.logger.Warn("[NOTIFICATION HANDLER] Stored notification %s but live announce failed: %v", notification.ID, err)
	}

	uc.logger.Info("[NOTIFICATION HANDLER] Stored %s notification for user %d about post %d", notification.Type, notification.UserID, notification.PostID)
	return nil
}

func (uc *notificationUseCase) buildNotification(ctx context.Context, task map[string]interface{}) (*entity.Notification, error) {
	kind, _ := task["type"].(string)
	notificationType := entity.NotificationType(kind)
	if notificationType != entity.NotificationLike && notificationType != entity.NotificationComment {
		return nil, fmt.Errorf("unknown notification type %q", kind)
	}

	userID, ok := int64Field(task, "user_id")
	if !ok || userID <= 0 {
		return nil, errors.New("missing recipient")
	}
	actorID, ok := int64Field(task, "actor_id")
	if !ok || actorID <= 0 {
		return nil, errors.New("missing actor")
	}
	postID, ok := int64Field(task, "post_id")
	if !ok || postID <= 0 {
		return nil, errors.New("missing post")
	}

	notification := &entity.Notification{
		ID:        uuid.New().String(),
		Type:      notificationType,
		UserID:    userID,
		ActorID:   actorID,
		PostID:    postID,
		CreatedAt: uc.now().UTC(),
	}
	notification.ActorName = uc.actorName(ctx, task, actorID)

	switch notificationType {
	case entity.NotificationLike:
		notification.Message = notification.ActorName + " liked your post"
	case entity.NotificationComment:
		if commentID, ok := int64Field(task, "comment_id"); ok {
			notification.CommentID = &commentID
		}
		notification.Message = notification.ActorName + " commented on your post"
		if preview, _ := task["preview"].(string); strings.TrimSpace(preview) != "" {
			notification.Message += ": " + preview
		}
	}

	return notification, nil
}

func (uc *notificationUseCase) actorName(ctx context.Context, task map[string]interface{}, actorID int64) string {
	if name, _ := task["actor_name"].(string); strings.TrimSpace(name) != "" {
		return name
	}

	name, err := uc.userRepo.GetName(ctx, actorID)
	if err != nil {
		if !errors.Is(err, persistent.ErrRecordNotFound) {
			uc.logger.Warn("Failed to resolve actor %d: %v", actorID, err)
		}
		return unknownActor
	}
	return name
}

func (uc *notificationUseCase) GetNotifications(ctx context.Context, userID int64, params pagination.Params) (*entity.NotificationPage, error) {
	params = pagination.Normalize(params.Page, params.Limit)

	notifications, err := uc.notificationRepo.List(ctx, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	total, err := uc.notificationRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entity.NotificationPage{
		Notifications: notifications,
		Pagination:    pagination.NewEnvelope(params, total),
	}, nil
}

func (uc *notificationUseCase) Subscribe(ctx context.Context, userID int64) *redis.PubSub {
	return uc.notificationRepo.Subscribe(ctx, userID)
}

// int64Field reads an integer id from a decoded JSON task, where numbers
// arrive as float64.
func int64Field(task map[string]interface{}, key string) (int64, bool) {
	switch v := task[key].(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
