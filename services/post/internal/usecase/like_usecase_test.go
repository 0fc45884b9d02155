package usecase

import (
	"context"
	"errors"
	"testing"

	"syncup/pkg/logger"
	"syncup/services/post/internal/entity"
	"syncup/services/post/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLikeUseCase() (LikeUseCase, *MockPostRepository, *MockLikeRepository, *MockPublisher) {
	posts := new(MockPostRepository)
	likes := new(MockLikeRepository)
	publisher := new(MockPublisher)
	return NewLikeUseCase(posts, likes, publisher, logger.New()), posts, likes, publisher
}

func TestToggleLike_Like(t *testing.T) {
	uc, posts, likes, publisher := newLikeUseCase()
	ctx := context.Background()

	posts.On("GetByID", ctx, int64(1)).Return(samplePost(1, 2, entity.VisibilityPublic), nil)
	likes.On("IsLiked", ctx, int64(5), int64(1)).Return(false, nil)
	likes.On("CreateLike", ctx, int64(5), int64(1)).Return(nil)
	likes.On("GetLikeCount", ctx, int64(1)).Return(int64(1), nil)
	publisher.On("PublishNotificationTask", mock.MatchedBy(func(task map[string]interface{}) bool {
		return task["type"] == "like" && task["user_id"] == int64(2) && task["actor_id"] == int64(5)
	})).Return(nil)

	state, err := uc.ToggleLike(ctx, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, &entity.LikeState{PostID: 1, Liked: true, LikesCount: 1}, state)

	likes.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestToggleLike_ClubOnlyPostIsLikeable(t *testing.T) {
	uc, posts, likes, publisher := newLikeUseCase()
	ctx := context.Background()

	posts.On("GetByID", ctx, int64(2)).Return(samplePost(2, 9, entity.VisibilityClubOnly), nil)
	likes.On("IsLiked", ctx, int64(5), int64(2)).Return(false, nil)
	likes.On("CreateLike", ctx, int64(5), int64(2)).Return(nil)
	likes.On("GetLikeCount", ctx, int64(2)).Return(int64(1), nil)
	publisher.On("PublishNotificationTask", mock.Anything).Return(nil)

	state, err := uc.ToggleLike(ctx, 5, 2)
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.Equal(t, int64(1), state.LikesCount)

	likes.AssertExpectations(t)
}

func TestToggleLike_Unlike(t *testing.T) {
	uc, posts, likes, publisher := newLikeUseCase()
	ctx := context.Background()

	posts.On("GetByID", ctx, int64(1)).Return(samplePost(1, 2, entity.VisibilityPublic), nil)
	likes.On("IsLiked", ctx, int64(5), int64(1)).Return(true, nil)
	likes.On("DeleteLike", ctx, int64(5), int64(1)).Return(nil)
	likes.On("GetLikeCount", ctx, int64(1)).Return(int64(0), nil)

	state, err := uc.ToggleLike(ctx, 5, 1)
	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.Equal(t, int64(0), state.LikesCount)

	publisher.AssertNotCalled(t, "PublishNotificationTask", mock.Anything)
}

func TestToggleLike_TwiceRestoresState(t *testing.T) {
	uc, posts, likes, publisher := newLikeUseCase()
	ctx := context.Background()

	posts.On("GetByID", ctx, int64(1)).Return(samplePost(1, 2, entity.VisibilityPublic), nil)
	likes.On("IsLiked", ctx, int64(5), int64(1)).Return(false, nil).Once()
	likes.On("CreateLike", ctx, int64(5), int64(1)).Return(nil).Once()
	likes.On("GetLikeCount", ctx, int64(1)).Return(int64(4), nil).Once()
	likes.On("IsLiked", ctx, int64(5), int64(1)).Return(true, nil).Once()
	likes.On("DeleteLike", ctx, int64(5), int64(1)).Return(nil).Once()
	likes.On("GetLikeCount", ctx, int64(1)).Return(int64(3), nil).Once()
	publisher.On("PublishNotificationTask", mock.Anything).Return(nil).Once()

	first, err := uc.ToggleLike(ctx, 5, 1)
	require.NoError(t, err)
	second, err := uc.ToggleLike(ctx, 5, 1)
	require.NoError(t, err)

	assert.True(t, first.Liked)
	assert.False(t, second.Liked)
	assert.Equal(t, first.LikesCount-1, second.LikesCount)
	likes.AssertExpectations(t)
}

func TestToggleLike_ConcurrentInsertTreatedAsLiked(t *testing.T) {
	uc, posts, likes, publisher := newLikeUseCase()
	ctx := context.Background()

	posts.On("GetByID", ctx, int64(1)).Return(samplePost(1, 2, entity.VisibilityPublic), nil)
	likes.On("IsLiked", ctx, int64(5), int64(1)).Return(false, nil)
	likes.On("CreateLike", ctx, int64(5), int64(1)).Return(persistent.ErrAlreadyLiked)
	likes.On("GetLikeCount", ctx, int64(1)).Return(int64(1), nil)

	state, err := uc.ToggleLike(ctx, 5, 1)
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.Equal(t, int64(1), state.LikesCount)

	publisher.AssertNotCalled(t, "PublishNotificationTask", mock.Anything)
}

func TestToggleLike_OwnLikeDoesNotNotify(t *testing.T) {
	uc, posts, likes, publisher := newLikeUseCase()
	ctx := context.Background()

	posts.On("GetByID", ctx, int64(1)).Return(samplePost(1, 5, entity.VisibilityPublic), nil)
	likes.On("IsLiked", ctx, int64(5), int64(1)).Return(false, nil)
	likes.On("CreateLike", ctx, int64(5), int64(1)).Return(nil)
	likes.On("GetLikeCount", ctx, int64(1)).Return(int64(1), nil)

	_, err := uc.ToggleLike(ctx, 5, 1)
	require.NoError(t, err)
	publisher.AssertNotCalled(t, "PublishNotificationTask", mock.Anything)
}

func TestToggleLike_PublishFailureIsNotFatal(t *testing.T) {
	uc, posts, likes, publisher := newLikeUseCase()
	ctx := context.Background()

	posts.On("GetByID", ctx, int64(1)).Return(samplePost(1, 2, entity.VisibilityPublic), nil)
	likes.On("IsLiked", ctx, int64(5), int64(1)).Return(false, nil)
	likes.On("CreateLike", ctx, int64(5), int64(1)).Return(nil)
	likes.On("GetLikeCount", ctx, int64(1)).Return(int64(1), nil)
	publisher.On("PublishNotificationTask", mock.Anything).Return(errors.New("channel closed"))

	state, err := uc.ToggleLike(ctx, 5, 1)
	require.NoError(t, err)
	assert.True(t, state.Liked)
}

func TestToggleLike_Errors(t *testing.T) {
	uc, posts, likes, _ := newLikeUseCase()
	ctx := context.Background()

	posts.On("GetByID", ctx, int64(404)).Return(nil, persistent.ErrRecordNotFound)
	_, err := uc.ToggleLike(ctx, 5, 404)
	assert.ErrorIs(t, err, ErrPostNotFound)

	posts.On("GetByID", ctx, int64(1)).Return(samplePost(1, 2, entity.VisibilityPublic), nil)
	likes.On("IsLiked", ctx, int64(5), int64(1)).Return(false, nil)
	likes.On("CreateLike", ctx, int64(5), int64(1)).Return(errors.New("db down"))

	_, err = uc.ToggleLike(ctx, 5, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPostNotFound)
}

func TestGetLikeCount(t *testing.T) {
	uc, posts, likes, _ := newLikeUseCase()
	ctx := context.Background()

	posts.On("GetByID", ctx, int64(1)).Return(samplePost(1, 2, entity.VisibilityPublic), nil)
	posts.On("GetByID", ctx, int64(2)).Return(nil, persistent.ErrRecordNotFound)
	likes.On("GetLikeCount", ctx, int64(1)).Return(int64(12), nil)

	count, err := uc.GetLikeCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)

	_, err = uc.GetLikeCount(ctx, 2)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
