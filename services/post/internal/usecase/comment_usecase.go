package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"syncup/pkg/logger"
	"syncup/pkg/pagination"
	"syncup/services/post/internal/entity"
	"syncup/services/post/internal/repo/persistent"

	"golang.org/x/sync/errgroup"
)

const commentPreviewLength = 80

type CommentUseCase interface {
	ListComments(ctx context.Context, postID int64, params pagination.Params) (*entity.CommentPage, error)
	CreateComment(ctx context.Context, userID, postID int64, content string) (*entity.Comment, error)
}

type commentUseCase struct {
	postRepo    persistent.PostRepository
	commentRepo persistent.CommentRepository
	publisher   NotificationPublisher
	logger      *logger.Logger
}

func NewCommentUseCase(
	postRepo persistent.PostRepository,
	commentRepo persistent.CommentRepository,
	publisher NotificationPublisher,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *commentUseCase) ListComments(ctx context.Context, postID int64, params pagination.Params) (*entity.CommentPage, error) {
	if _, err := uc.publicPost(ctx, postID); err != nil {
		return nil, err
	}

	var (
		comments []entity.Comment
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		comments, err = uc.commentRepo.ListByPost(gctx, postID, params.Limit, params.Offset())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = uc.commentRepo.CountByPost(gctx, postID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	return &entity.CommentPage{
		Comments:   comments,
		Pagination: pagination.NewEnvelope(params, total),
	}, nil
}

func (uc *commentUseCase) CreateComment(ctx context.Context, userID, postID int64, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("Comment content is required.")
	}

	post, err := uc.publicPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment, err := uc.commentRepo.Create(ctx, postID, userID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	uc.notifyOwner(post, comment)
	return comment, nil
}

func (uc *commentUseCase) publicPost(ctx context.Context, postID int64) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, persistent.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	if !post.IsPublic() {
		return nil, ErrPostNotPublic
	}
	return post, nil
}

func (uc *commentUseCase) notifyOwner(post *entity.Post, comment *entity.Comment) {
	if uc.publisher == nil || post.UserID == comment.UserID {
		return
	}

	task := map[string]interface{}{
		"type":       "comment",
		"user_id":    post.UserID,
		"actor_id":   comment.UserID,
		"actor_name": comment.User.Name,
		"post_id":    post.ID,
		"comment_id": comment.ID,
		"preview":    preview(comment.Content),
		"priority":   5,
	}
	if err := uc.publisher.PublishNotificationTask(task); err != nil {
		uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish comment notification for post %d: %v", post.ID, err)
	}
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= commentPreviewLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:commentPreviewLength]) + "..."
}
