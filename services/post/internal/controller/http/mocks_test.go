package http

import (
	"context"
	"io"

	"syncup/pkg/pagination"
	"syncup/services/post/internal/entity"
	"syncup/services/post/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(ctx context.Context, userID int64, input usecase.CreatePostInput) (*entity.Post, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListFeed(ctx context.Context, viewerID int64, params pagination.Params) (*entity.FeedPage, error) {
	args := m.Called(ctx, viewerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FeedPage), args.Error(1)
}

func (m *MockPostUseCase) GetPost(ctx context.Context, postID, viewerID int64) (*entity.FeedPost, error) {
	args := m.Called(ctx, postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FeedPost), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(ctx context.Context, postID, userID int64) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

type MockLikeUseCase struct {
	mock.Mock
}

func (m *MockLikeUseCase) ToggleLike(ctx context.Context, userID, postID int64) (*entity.LikeState, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LikeState), args.Error(1)
}

func (m *MockLikeUseCase) GetLikeCount(ctx context.Context, postID int64) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCommentUseCase struct {
	mock.Mock
}

func (m *MockCommentUseCase) ListComments(ctx context.Context, postID int64, params pagination.Params) (*entity.CommentPage, error) {
	args := m.Called(ctx, postID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CommentPage), args.Error(1)
}

func (m *MockCommentUseCase) CreateComment(ctx context.Context, userID, postID int64, content string) (*entity.Comment, error) {
	args := m.Called(ctx, userID, postID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

type MockMediaUseCase struct {
	mock.Mock
}

func (m *MockMediaUseCase) UploadImage(ctx context.Context, userID int64, filename, contentType string, size int64, body io.ReadSeeker) (string, error) {
	args := m.Called(ctx, userID, filename, contentType, size, body)
	return args.String(0), args.Error(1)
}

var (
	_ usecase.PostUseCase    = (*MockPostUseCase)(nil)
	_ usecase.LikeUseCase    = (*MockLikeUseCase)(nil)
	_ usecase.CommentUseCase = (*MockCommentUseCase)(nil)
	_ usecase.MediaUseCase   = (*MockMediaUseCase)(nil)
)
