package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"syncup/pkg/logger"
	"syncup/pkg/pagination"
	"syncup/services/post/internal/entity"
	"syncup/services/post/internal/repo/persistent"

	"golang.org/x/sync/errgroup"
)

type CreatePostInput struct {
	Content    string
	ClubID     *int64
	Visibility string
	ImageURL   *string
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID int64, input CreatePostInput) (*entity.Post, error)
	// ListFeed returns public posts newest first. viewerID 0 means anonymous.
	ListFeed(ctx context.Context, viewerID int64, params pagination.Params) (*entity.FeedPage, error)
	GetPost(ctx context.Context, postID, viewerID int64) (*entity.FeedPost, error)
	DeletePost(ctx context.Context, postID, userID int64) error
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	likeRepo    persistent.LikeRepository
	commentRepo persistent.CommentRepository
	storage     ObjectStorage
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	likeRepo persistent.LikeRepository,
	commentRepo persistent.CommentRepository,
	storage ObjectStorage,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		storage:     storage,
		logger:      logger,
	}
}

func (uc *postUseCase) CreatePost(ctx context.Context, userID int64, input CreatePostInput) (*entity.Post, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, invalid("Post content is required.")
	}

	visibility := entity.VisibilityPublic
	if input.Visibility != "" {
		visibility = entity.Visibility(input.Visibility)
	}
	if !visibility.Valid() {
		return nil, invalid("Visibility must be 'public' or 'club_only'.")
	}

	newPost := &entity.NewPost{
		UserID:     userID,
		Content:    content,
		Visibility: visibility,
	}
	if input.ClubID != nil && *input.ClubID != 0 {
		newPost.ClubID = input.ClubID
	}
	if input.ImageURL != nil {
		if url := strings.TrimSpace(*input.ImageURL); url != "" {
			newPost.ImageURL = &url
		}
	}

	post, err := uc.postRepo.Create(ctx, newPost)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (uc *postUseCase) ListFeed(ctx context.Context, viewerID int64, params pagination.Params) (*entity.FeedPage, error) {
	var (
		posts []entity.Post
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = uc.postRepo.ListPublic(gctx, params.Limit, params.Offset())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = uc.postRepo.CountPublic(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	feed, err := uc.annotate(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}

	return &entity.FeedPage{
		Posts:      feed,
		Pagination: pagination.NewEnvelope(params, total),
	}, nil
}

func (uc *postUseCase) GetPost(ctx context.Context, postID, viewerID int64) (*entity.FeedPost, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, persistent.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}

	if !post.IsPublic() && post.UserID != viewerID {
		return nil, ErrPostNotPublic
	}

	feed, err := uc.annotate(ctx, viewerID, []entity.Post{*post})
	if err != nil {
		return nil, err
	}
	return &feed[0], nil
}

func (uc *postUseCase) DeletePost(ctx context.Context, postID, userID int64) error {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, persistent.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to fetch post: %w", err)
	}

	if post.UserID != userID {
		return ErrForbidden
	}

	if err := uc.postRepo.DeleteWithEngagement(ctx, postID); err != nil {
		if errors.Is(err, persistent.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if post.ImageURL != nil && uc.storage != nil {
		if err := uc.storage.DeleteByURL(*post.ImageURL); err != nil {
			uc.logger.Warn("Failed to remove image for deleted post %d: %v", postID, err)
		}
	}

	return nil
}

// annotate attaches live like and comment counts to posts, plus whether
// viewerID liked each one. All lookups are batched over the page.
func (uc *postUseCase) annotate(ctx context.Context, viewerID int64, posts []entity.Post) ([]entity.FeedPost, error) {
	feed := make([]entity.FeedPost, len(posts))
	if len(posts) == 0 {
		return feed, nil
	}

	ids := make([]int64, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}

	var (
		likeCounts    map[int64]int64
		commentCounts map[int64]int64
		liked         map[int64]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		likeCounts, err = uc.likeRepo.CountByPosts(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		commentCounts, err = uc.commentRepo.CountByPosts(gctx, ids)
		return err
	})
	if viewerID > 0 {
		g.Go(func() error {
			var err error
			liked, err = uc.likeRepo.LikedPostIDs(gctx, viewerID, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate engagement: %w", err)
	}

	for i, post := range posts {
		feed[i] = entity.FeedPost{
			Post:          post,
			LikesCount:    likeCounts[post.ID],
			CommentsCount: commentCounts[post.ID],
			LikedByUser:   liked[post.ID],
		}
	}
	return feed, nil
}
