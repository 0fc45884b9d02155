package persistent

import (
	"context"
	"fmt"

	"syncup/services/post/internal/entity"
	"syncup/services/post/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.NewPost) (*entity.Post, error)
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	ListPublic(ctx context.Context, limit, offset int) ([]entity.Post, error)
	CountPublic(ctx context.Context) (int64, error)
	// DeleteWithEngagement removes the post's likes, then its comments,
	// then the post, in one transaction.
	DeleteWithEngagement(ctx context.Context, id int64) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.NewPost) (*entity.Post, error) {
	postModel := ToPostModel(post)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(postModel).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, postModel.ID)
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", id).
		First(&postModel).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) ListPublic(ctx context.Context, limit, offset int) ([]entity.Post, error) {
	var postModels []model.PostModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("visibility = ?", string(entity.VisibilityPublic)).
		Order("created_at DESC").
		Order("post_id DESC").
		Limit(limit).
		Offset(offset).
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}

	posts := make([]entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = *ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *postRepository) CountPublic(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("visibility = ?", string(entity.VisibilityPublic)).
		Count(&count).Error
	return count, err
}

func (r *postRepository) DeleteWithEngagement(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.LikeModel{}).Error; err != nil {
			return fmt.Errorf("delete likes: %w", err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.CommentModel{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		result := tx.Where("post_id = ?", id).Delete(&model.PostModel{})
		if result.Error != nil {
			return fmt.Errorf("delete post: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
}
