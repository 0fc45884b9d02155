package persistent

import (
	"context"
	"errors"
	"testing"
	"time"

	"syncup/services/notification/internal/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) (NotificationRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewNotificationRepository(client), mr
}

func notification(userID, postID int64) *entity.Notification {
	return &entity.Notification{
		ID:        "n",
		Type:      entity.NotificationLike,
		UserID:    userID,
		ActorID:   2,
		ActorName: "Grace",
		PostID:    postID,
		Message:   "Grace liked your post",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPush_NewestFirst(t *testing.T) {
	repo, mr := setupRepository(t)
	ctx := context.Background()

	for postID := int64(1); postID <= 3; postID++ {
		require.NoError(t, repo.Push(ctx, notification(7, postID)))
	}

	list, err := repo.List(ctx, 7, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(3), list[0].PostID)
	assert.Equal(t, int64(2), list[1].PostID)

	list, err = repo.List(ctx, 7, 2, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].PostID)

	count, err := repo.Count(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	assert.Equal(t, NotificationTTL, mr.TTL(NotificationsKey(7)))
}

func TestPush_TrimsToCap(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	for postID := int64(1); postID <= MaxStoredNotifications+5; postID++ {
		require.NoError(t, repo.Push(ctx, notification(7, postID)))
	}

	count, err := repo.Count(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(MaxStoredNotifications), count)

	list, err := repo.List(ctx, 7, 1, MaxStoredNotifications-1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(6), list[0].PostID)
}

func TestList_SkipsCorruptEntries(t *testing.T) {
	repo, mr := setupRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Push(ctx, notification(7, 1)))
	_, err := mr.Lpush(NotificationsKey(7), "{not json")
	require.NoError(t, err)

	list, err := repo.List(ctx, 7, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].PostID)
}

func TestList_Empty(t *testing.T) {
	repo, _ := setupRepository(t)

	list, err := repo.List(context.Background(), 99, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	count, err := repo.Count(context.Background(), 99)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAnnounce_PublishesOnLiveChannel(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	pubsub := repo.Subscribe(ctx, 7)
	defer pubsub.Close()
	_, err := pubsub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Announce(ctx, notification(7, 4)))

	select {
	case msg := <-pubsub.Channel():
		assert.Contains(t, msg.Payload, `"post_id":4`)
	case <-time.After(2 * time.Second):
		t.Fatal("no live notification received")
	}
}

type failingPublish struct{}

func (failingPublish) DialHook(next redis.DialHook) redis.DialHook { return next }

func (failingPublish) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == "publish" {
			return errors.New("publish unavailable")
		}
		return next(ctx, cmd)
	}
}

func (failingPublish) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestPush_StoresEvenWhenPublishIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	client.AddHook(failingPublish{})
	t.Cleanup(func() { client.Close() })
	repo := NewNotificationRepository(client)
	ctx := context.Background()

	n := notification(7, 1)
	require.NoError(t, repo.Push(ctx, n))
	assert.Error(t, repo.Announce(ctx, n))

	count, err := repo.Count(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "notifications:12", NotificationsKey(12))
	assert.Equal(t, "notifications:12:live", LiveChannel(12))
}
