package persistent

import (
	"syncup/services/post/internal/entity"
	"syncup/services/post/internal/model"
)

func ToAuthor(m *model.UserModel) entity.Author {
	if m == nil {
		return entity.Author{}
	}
	return entity.Author{
		Name:          m.Name,
		ProfilePicURL: m.ProfilePicURL,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:         m.ID,
		UserID:     m.UserID,
		Content:    m.Content,
		ClubID:     m.ClubID,
		Visibility: entity.Visibility(m.Visibility),
		ImageURL:   m.ImageURL,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		User:       ToAuthor(&m.User),
	}
}

func ToPostModel(e *entity.NewPost) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		UserID:     e.UserID,
		Content:    e.Content,
		ClubID:     e.ClubID,
		Visibility: string(e.Visibility),
		ImageURL:   e.ImageURL,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		User:      ToAuthor(&m.User),
	}
}
