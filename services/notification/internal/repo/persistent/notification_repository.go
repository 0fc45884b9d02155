package persistent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"syncup/services/notification/internal/entity"
	"syncup/services/notification/internal/model"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	MaxStoredNotifications = 200
	NotificationTTL        = 30 * 24 * time.Hour
)

var ErrRecordNotFound = errors.New("record not found")

func NotificationsKey(userID int64) string {
	return fmt.Sprintf("notifications:%d", userID)
}

// LiveChannel is the pub/sub channel new notifications for userID are
// announced on.
func LiveChannel(userID int64) string {
	return fmt.Sprintf("notifications:%d:live", userID)
}

type NotificationRepository interface {
	// Push stores n at the head of the recipient's list.
	Push(ctx context.Context, n *entity.Notification) error
	// Announce publishes an already stored n on the recipient's live channel.
	Announce(ctx context.Context, n *entity.Notification) error
	List(ctx context.Context, userID int64, limit, offset int) ([]entity.Notification, error)
	Count(ctx context.Context, userID int64) (int64, error)
	Subscribe(ctx context.Context, userID int64) *redis.PubSub
}

type notificationRepository struct {
	redisClient *redis.Client
}

func NewNotificationRepository(redisClient *redis.Client) NotificationRepository {
	return &notificationRepository{redisClient: redisClient}
}

func (r *notificationRepository) Push(ctx context.Context, n *entity.Notification) error {
	payload, err := encodeNotification(n)
	if err != nil {
		return err
	}

	key := NotificationsKey(n.UserID)
	pipe := r.redisClient.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, MaxStoredNotifications-1)
	pipe.Expire(ctx, key, NotificationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) Announce(ctx context.Context, n *entity.Notification) error {
	payload, err := encodeNotification(n)
	if err != nil {
		return err
	}
	if err := r.redisClient.Publish(ctx, LiveChannel(n.UserID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) List(ctx context.Context, userID int64, limit, offset int) ([]entity.Notification, error) {
	raw, err := r.redisClient.LRange(ctx, NotificationsKey(userID), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	return decodeNotifications(raw), nil
}

func (r *notificationRepository) Count(ctx context.Context, userID int64) (int64, error) {
	count, err := r.redisClient.LLen(ctx, NotificationsKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

func (r *notificationRepository) Subscribe(ctx context.Context, userID int64) *redis.PubSub {
	return r.redisClient.Subscribe(ctx, LiveChannel(userID))
}

type UserRepository interface {
	GetName(ctx context.Context, userID int64) (string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetName(ctx context.Context, userID int64) (string, error) {
	var userModel model.UserModel
	err := r.db.WithContext(ctx).Select("user_id", "name").Where("user_id = ?", userID).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrRecordNotFound
		}
		return "", err
	}
	return userModel.Name, nil
}
