package db

import (
	"context"

	"gorm.io/gorm"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/database"
)

type CommentStore struct {
	db *gorm.DB
}

func NewCommentStore(db *gorm.DB) *CommentStore {
	return &CommentStore{db: db}
}

func (s *CommentStore) Exists(ctx context.Context, commentID int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", commentID).Count(&count).Error; err != nil {
		return false, database.Translate(err, "count comment %d", commentID)
	}
	return count > 0, nil
}
