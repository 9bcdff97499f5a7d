package db

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/database"
	"VidTube.com/pkg/toggle"
)

type LikeStore struct {
	db *gorm.DB
}

var _ toggle.Store[model.LikeKey] = (*LikeStore)(nil)

func NewLikeStore(db *gorm.DB) *LikeStore {
	return &LikeStore{db: db}
}

func (s *LikeStore) Find(ctx context.Context, key model.LikeKey) (int64, bool, error) {
	var like model.Like
	err := s.db.WithContext(ctx).Select("id").
		Where(fmt.Sprintf("%s = ? AND liked_by = ?", key.Target.Column()), key.TargetID, key.UserID).
		Take(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, database.Translate(err, "find %s like %d of %d", key.Target, key.TargetID, key.UserID)
	}
	return like.ID, true, nil
}

func (s *LikeStore) Create(ctx context.Context, key model.LikeKey) error {
	err := database.Translate(s.db.WithContext(ctx).Create(model.NewLike(key)).Error,
		"create %s like %d of %d", key.Target, key.TargetID, key.UserID)
	if errors.Is(err, model.ErrDuplicate) {
		return toggle.ErrExists
	}
	return err
}

func (s *LikeStore) Delete(ctx context.Context, likeID int64) error {
	if err := s.db.WithContext(ctx).Where("id = ?", likeID).Delete(&model.Like{}).Error; err != nil {
		return database.Translate(err, "delete like %d", likeID)
	}
	return nil
}

// LikedVideos returns the user's video likes newest first, with the video and its owner joined.
func (s *LikeStore) LikedVideos(ctx context.Context, userID int64) ([]*model.Like, error) {
	likes := make([]*model.Like, 0)
	if err := s.db.WithContext(ctx).
		Preload("Video").
		Preload("Video.Owner", func(tx *gorm.DB) *gorm.DB { return tx.Select(model.OwnerSummaryColumns) }).
		Where("liked_by = ? AND video_id IS NOT NULL", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&likes).Error; err != nil {
		return nil, database.Translate(err, "list liked videos of %d", userID)
	}
	return likes, nil
}

// DeleteByVideo drops every like referencing videoID.
func (s *LikeStore) DeleteByVideo(ctx context.Context, videoID int64) (int64, error) {
	res := s.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.Like{})
	if res.Error != nil {
		return 0, database.Translate(res.Error, "delete likes of video %d", videoID)
	}
	return res.RowsAffected, nil
}
