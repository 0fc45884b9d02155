package persistent

import (
	"context"

	"syncup/services/post/internal/entity"
	"syncup/services/post/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(ctx context.Context, postID, userID int64, content string) (*entity.Comment, error)
	ListByPost(ctx context.Context, postID int64, limit, offset int) ([]entity.Comment, error)
	CountByPost(ctx context.Context, postID int64) (int64, error)
	CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, postID, userID int64, content string) (*entity.Comment, error) {
	commentModel := &model.CommentModel{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}

	// Insert and author read commit together.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(commentModel).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).First(&commentModel.User).Error
	})
	if err != nil {
		return nil, translateNotFound(err)
	}

	return ToCommentEntity(commentModel), nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]entity.Comment, error) {
	var commentModels []model.CommentModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Order("comment_id DESC").
		Limit(limit).
		Offset(offset).
		Find(&commentModels).Error
	if err != nil {
		return nil, err
	}

	comments := make([]entity.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = *ToCommentEntity(&commentModels[i])
	}
	return comments, nil
}

func (r *commentRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CommentModel{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int64, error) {
	return countGroupedByPost(ctx, r.db, &model.CommentModel{}, postIDs)
}
