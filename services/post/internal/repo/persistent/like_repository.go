package persistent

import (
	"context"

	"syncup/services/post/internal/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	IsLiked(ctx context.Context, userID, postID int64) (bool, error)
	// CreateLike returns ErrAlreadyLiked when the pair already exists.
	CreateLike(ctx context.Context, userID, postID int64) error
	DeleteLike(ctx context.Context, userID, postID int64) error
	GetLikeCount(ctx context.Context, postID int64) (int64, error)
	CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int64, error)
	// LikedPostIDs returns the subset of postIDs liked by userID.
	LikedPostIDs(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, postID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LikeModel{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) CreateLike(ctx context.Context, userID, postID int64) error {
	like := &model.LikeModel{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

func (r *likeRepository) DeleteLike(ctx context.Context, userID, postID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.LikeModel{}).Error
}

func (r *likeRepository) GetLikeCount(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LikeModel{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int64, error) {
	return countGroupedByPost(ctx, r.db, &model.LikeModel{}, postIDs)
}

func (r *likeRepository) LikedPostIDs(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool)
	if len(postIDs) == 0 {
		return liked, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.LikeModel{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

type postCount struct {
	PostID int64
	Count  int64
}

func countGroupedByPost(ctx context.Context, db *gorm.DB, table interface{}, postIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []postCount
	err := db.WithContext(ctx).
		Model(table).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}
