package usecase

import (
	"context"
	"errors"
	"fmt"

	"syncup/pkg/logger"
	"syncup/services/post/internal/entity"
	"syncup/services/post/internal/repo/persistent"
)

type LikeUseCase interface {
	// ToggleLike likes the post if userID has not liked it yet and unlikes
	// it otherwise. The returned count is read after the change.
	ToggleLike(ctx context.Context, userID, postID int64) (*entity.LikeState, error)
	GetLikeCount(ctx context.Context, postID int64) (int64, error)
}

type likeUseCase struct {
	postRepo  persistent.PostRepository
	likeRepo  persistent.LikeRepository
	publisher NotificationPublisher
	logger    *logger.Logger
}

func NewLikeUseCase(
	postRepo persistent.PostRepository,
	likeRepo persistent.LikeRepository,
	publisher NotificationPublisher,
	logger *logger.Logger,
) LikeUseCase {
	return &likeUseCase{
		postRepo:  postRepo,
		likeRepo:  likeRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *likeUseCase) ToggleLike(ctx context.Context, userID, postID int64) (*entity.LikeState, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, persistent.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}

	isLiked, err := uc.likeRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check like status: %w", err)
	}

	liked := !isLiked
	if isLiked {
		if err := uc.likeRepo.DeleteLike(ctx, userID, postID); err != nil {
			return nil, fmt.Errorf("failed to unlike post: %w", err)
		}
	} else {
		err := uc.likeRepo.CreateLike(ctx, userID, postID)
		switch {
		case errors.Is(err, persistent.ErrAlreadyLiked):
			// A concurrent toggle won the insert; the pair is liked either way.
			uc.logger.Info("Like by user %d on post %d already recorded", userID, postID)
		case err != nil:
			return nil, fmt.Errorf("failed to like post: %w", err)
		default:
			uc.notifyOwner(post, userID)
		}
	}

	count, err := uc.likeRepo.GetLikeCount(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	return &entity.LikeState{
		PostID:     postID,
		Liked:      liked,
		LikesCount: count,
	}, nil
}

func (uc *likeUseCase) GetLikeCount(ctx context.Context, postID int64) (int64, error) {
	if _, err := uc.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, persistent.ErrRecordNotFound) {
			return 0, ErrPostNotFound
		}
		return 0, fmt.Errorf("failed to fetch post: %w", err)
	}

	count, err := uc.likeRepo.GetLikeCount(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (uc *likeUseCase) notifyOwner(post *entity.Post, likerID int64) {
	if uc.publisher == nil || post.UserID == likerID {
		return
	}

	task := map[string]interface{}{
		"type":     "like",
		"user_id":  post.UserID,
		"actor_id": likerID,
		"post_id":  post.ID,
		"priority": 3,
	}
	if err := uc.publisher.PublishNotificationTask(task); err != nil {
		uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish like notification for post %d: %v", post.ID, err)
	}
}
