package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"syncup/pkg/logger"
	"syncup/pkg/pagination"
	"syncup/services/post/internal/entity"
	"syncup/services/post/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type postFixture struct {
	posts    *MockPostRepository
	likes    *MockLikeRepository
	comments *MockCommentRepository
	storage  *MockStorage
	uc       PostUseCase
}

func newPostFixture() *postFixture {
	f := &postFixture{
		posts:    new(MockPostRepository),
		likes:    new(MockLikeRepository),
		comments: new(MockCommentRepository),
		storage:  new(MockStorage),
	}
	f.uc = NewPostUseCase(f.posts, f.likes, f.comments, f.storage, logger.New())
	return f
}

func (f *postFixture) assertExpectations(t *testing.T) {
	f.posts.AssertExpectations(t)
	f.likes.AssertExpectations(t)
	f.comments.AssertExpectations(t)
	f.storage.AssertExpectations(t)
}

func samplePost(id, owner int64, visibility entity.Visibility) *entity.Post {
	return &entity.Post{
		ID:         id,
		UserID:     owner,
		Content:    "hello",
		Visibility: visibility,
		CreatedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		User:       entity.Author{Name: "Ada"},
	}
}

func TestCreatePost_TrimsAndDefaults(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	blank := "   "
	zero := int64(0)

	created := samplePost(1, 7, entity.VisibilityPublic)
	f.posts.On("Create", ctx, &entity.NewPost{
		UserID:     7,
		Content:    "hello",
		Visibility: entity.VisibilityPublic,
	}).Return(created, nil)

	post, err := f.uc.CreatePost(ctx, 7, CreatePostInput{Content: "  hello  ", ClubID: &zero, ImageURL: &blank})
	require.NoError(t, err)
	assert.Equal(t, created, post)
	f.assertExpectations(t)
}

func TestCreatePost_KeepsOptionalFields(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	club := int64(4)
	image := "https://cdn.example.com/a.png"

	f.posts.On("Create", ctx, mock.MatchedBy(func(p *entity.NewPost) bool {
		return p.Visibility == entity.VisibilityClubOnly &&
			p.ClubID != nil && *p.ClubID == 4 &&
			p.ImageURL != nil && *p.ImageURL == image
	})).Return(samplePost(2, 7, entity.VisibilityClubOnly), nil)

	_, err := f.uc.CreatePost(ctx, 7, CreatePostInput{
		Content:    "club news",
		ClubID:     &club,
		Visibility: "club_only",
		ImageURL:   &image,
	})
	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestCreatePost_Validation(t *testing.T) {
	f := newPostFixture()

	_, err := f.uc.CreatePost(context.Background(), 7, CreatePostInput{Content: " \n\t "})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Post content is required.", vErr.Message)

	_, err = f.uc.CreatePost(context.Background(), 7, CreatePostInput{Content: "hi", Visibility: "friends"})
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "Visibility")

	f.posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListFeed_Anonymous(t *testing.T) {
	f := newPostFixture()
	params := pagination.Params{Page: 1, Limit: 10}
	posts := []entity.Post{*samplePost(2, 1, entity.VisibilityPublic), *samplePost(1, 1, entity.VisibilityPublic)}

	f.posts.On("ListPublic", mock.Anything, 10, 0).Return(posts, nil)
	f.posts.On("CountPublic", mock.Anything).Return(int64(2), nil)
	f.likes.On("CountByPosts", mock.Anything, []int64{2, 1}).Return(map[int64]int64{2: 3}, nil)
	f.comments.On("CountByPosts", mock.Anything, []int64{2, 1}).Return(map[int64]int64{1: 1}, nil)

	page, err := f.uc.ListFeed(context.Background(), 0, params)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)

	assert.Equal(t, int64(3), page.Posts[0].LikesCount)
	assert.Equal(t, int64(0), page.Posts[0].CommentsCount)
	assert.False(t, page.Posts[0].LikedByUser)
	assert.Equal(t, int64(0), page.Posts[1].LikesCount)
	assert.Equal(t, int64(1), page.Posts[1].CommentsCount)
	assert.Equal(t, pagination.Envelope{Page: 1, Limit: 10, Total: 2, TotalPages: 1}, page.Pagination)

	f.likes.AssertNotCalled(t, "LikedPostIDs", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestListFeed_AuthenticatedMarksLikedPosts(t *testing.T) {
	f := newPostFixture()
	params := pagination.Params{Page: 2, Limit: 2}
	posts := []entity.Post{*samplePost(5, 1, entity.VisibilityPublic), *samplePost(4, 1, entity.VisibilityPublic)}

	f.posts.On("ListPublic", mock.Anything, 2, 2).Return(posts, nil)
	f.posts.On("CountPublic", mock.Anything).Return(int64(5), nil)
	f.likes.On("CountByPosts", mock.Anything, []int64{5, 4}).Return(map[int64]int64{4: 1}, nil)
	f.comments.On("CountByPosts", mock.Anything, []int64{5, 4}).Return(map[int64]int64{}, nil)
	f.likes.On("LikedPostIDs", mock.Anything, int64(9), []int64{5, 4}).Return(map[int64]bool{4: true}, nil)

	page, err := f.uc.ListFeed(context.Background(), 9, params)
	require.NoError(t, err)

	assert.False(t, page.Posts[0].LikedByUser)
	assert.True(t, page.Posts[1].LikedByUser)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNextPage)
	assert.True(t, page.Pagination.HasPrevPage)
	f.assertExpectations(t)
}

func TestListFeed_EmptyPageSkipsAggregation(t *testing.T) {
	f := newPostFixture()

	f.posts.On("ListPublic", mock.Anything, 10, 90).Return([]entity.Post{}, nil)
	f.posts.On("CountPublic", mock.Anything).Return(int64(3), nil)

	page, err := f.uc.ListFeed(context.Background(), 9, pagination.Params{Page: 10, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.NotNil(t, page.Posts)
	assert.Equal(t, 1, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNextPage)

	f.likes.AssertNotCalled(t, "CountByPosts", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestListFeed_StoreFailure(t *testing.T) {
	f := newPostFixture()

	f.posts.On("ListPublic", mock.Anything, 10, 0).Return(nil, errors.New("connection refused"))
	f.posts.On("CountPublic", mock.Anything).Return(int64(0), nil).Maybe()

	_, err := f.uc.ListFeed(context.Background(), 0, pagination.Params{Page: 1, Limit: 10})
	assert.Error(t, err)
}

func TestGetPost(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.posts.On("GetByID", ctx, int64(1)).Return(samplePost(1, 3, entity.VisibilityPublic), nil)
	f.likes.On("CountByPosts", mock.Anything, []int64{1}).Return(map[int64]int64{1: 2}, nil)
	f.comments.On("CountByPosts", mock.Anything, []int64{1}).Return(map[int64]int64{1: 4}, nil)
	f.likes.On("LikedPostIDs", mock.Anything, int64(8), []int64{1}).Return(map[int64]bool{1: true}, nil)

	post, err := f.uc.GetPost(ctx, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(2), post.LikesCount)
	assert.Equal(t, int64(4), post.CommentsCount)
	assert.True(t, post.LikedByUser)
	f.assertExpectations(t)
}

func TestGetPost_NotFoundAndNotPublic(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.posts.On("GetByID", ctx, int64(1)).Return(nil, persistent.ErrRecordNotFound)
	f.posts.On("GetByID", ctx, int64(2)).Return(samplePost(2, 3, entity.VisibilityClubOnly), nil)

	_, err := f.uc.GetPost(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = f.uc.GetPost(ctx, 2, 8)
	assert.ErrorIs(t, err, ErrPostNotPublic)
}

func TestGetPost_OwnerSeesClubOnlyPost(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.posts.On("GetByID", ctx, int64(2)).Return(samplePost(2, 3, entity.VisibilityClubOnly), nil)
	f.likes.On("CountByPosts", mock.Anything, []int64{2}).Return(map[int64]int64{}, nil)
	f.comments.On("CountByPosts", mock.Anything, []int64{2}).Return(map[int64]int64{}, nil)
	f.likes.On("LikedPostIDs", mock.Anything, int64(3), []int64{2}).Return(map[int64]bool{}, nil)

	post, err := f.uc.GetPost(ctx, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, entity.VisibilityClubOnly, post.Visibility)
}

func TestDeletePost_Owner(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	post := samplePost(1, 7, entity.VisibilityPublic)
	image := "http://localhost:9000/syncup-uploads/uploads/posts/7/a.png"
	post.ImageURL = &image

	f.posts.On("GetByID", ctx, int64(1)).Return(post, nil)
	f.posts.On("DeleteWithEngagement", ctx, int64(1)).Return(nil)
	f.storage.On("DeleteByURL", image).Return(errors.New("s3 down"))

	require.NoError(t, f.uc.DeletePost(ctx, 1, 7))
	f.assertExpectations(t)
}

func TestDeletePost_Errors(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.posts.On("GetByID", ctx, int64(1)).Return(nil, persistent.ErrRecordNotFound)
	f.posts.On("GetByID", ctx, int64(2)).Return(samplePost(2, 7, entity.VisibilityPublic), nil)
	f.posts.On("GetByID", ctx, int64(3)).Return(samplePost(3, 7, entity.VisibilityPublic), nil)
	f.posts.On("DeleteWithEngagement", ctx, int64(3)).Return(errors.New("delete comments: timeout"))

	assert.ErrorIs(t, f.uc.DeletePost(ctx, 1, 7), ErrPostNotFound)
	assert.ErrorIs(t, f.uc.DeletePost(ctx, 2, 8), ErrForbidden)

	err := f.uc.DeletePost(ctx, 3, 7)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPostNotFound)

	f.posts.AssertNotCalled(t, "DeleteWithEngagement", ctx, int64(2))
}
