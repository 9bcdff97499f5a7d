package db

import (
	"context"

	"gorm.io/gorm"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/database"
)

type TweetStore struct {
	db *gorm.DB
}

func NewTweetStore(db *gorm.DB) *TweetStore {
	return &TweetStore{db: db}
}

func (s *TweetStore) Create(ctx context.Context, t *model.Tweet) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return database.Translate(err, "create tweet of %d", t.OwnerID)
	}
	return nil
}

func (s *TweetStore) Get(ctx context.Context, tweetID int64) (*model.Tweet, error) {
	var t model.Tweet
	if err := s.db.WithContext(ctx).Where("id = ?", tweetID).Take(&t).Error; err != nil {
		return nil, database.Translate(err, "get tweet %d", tweetID)
	}
	return &t, nil
}

// ListByOwner returns the owner's tweets newest first.
func (s *TweetStore) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Tweet, error) {
	tweets := make([]*model.Tweet, 0)
	if err := s.db.WithContext(ctx).
		Preload("Owner", func(tx *gorm.DB) *gorm.DB { return tx.Select(model.OwnerSummaryColumns) }).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&tweets).Error; err != nil {
		return nil, database.Translate(err, "list tweets of %d", ownerID)
	}
	return tweets, nil
}

func (s *TweetStore) UpdateContent(ctx context.Context, tweetID int64, content string) error {
	if err := s.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", tweetID).
		Update("content", content).Error; err != nil {
		return database.Translate(err, "update tweet %d", tweetID)
	}
	return nil
}

func (s *TweetStore) Delete(ctx context.Context, tweetID int64) error {
	if err := s.db.WithContext(ctx).Where("id = ?", tweetID).Delete(&model.Tweet{}).Error; err != nil {
		return database.Translate(err, "delete tweet %d", tweetID)
	}
	return nil
}

func (s *TweetStore) Exists(ctx context.Context, tweetID int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", tweetID).Count(&count).Error; err != nil {
		return false, database.Translate(err, "count tweet %d", tweetID)
	}
	return count > 0, nil
}
