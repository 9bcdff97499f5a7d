package db

import (
	"context"

	"gorm.io/gorm"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/database"
)

// VideoUpdate carries the columns to change. Nil fields are left alone.
type VideoUpdate struct {
	Title       *string
	Description *string
	Thumbnail   *string
	IsPublished *bool
}

func (u VideoUpdate) columns() map[string]interface{} {
	cols := make(map[string]interface{}, 4)
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.Thumbnail != nil {
		cols["thumbnail"] = *u.Thumbnail
	}
	if u.IsPublished != nil {
		cols["is_published"] = *u.IsPublished
	}
	return cols
}

type VideoStore struct {
	db *gorm.DB
}

func NewVideoStore(db *gorm.DB) *VideoStore {
	return &VideoStore{db: db}
}

// List returns one page of videos matching q together with the total match count.
func (s *VideoStore) List(ctx context.Context, q VideoQuery) ([]*model.Video, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Video{}).Scopes(filters(q)...).Count(&total).Error; err != nil {
		return nil, 0, database.Translate(err, "count videos")
	}
	videos := make([]*model.Video, 0, q.Limit)
	if total == 0 || q.Offset() >= int(total) {
		return videos, total, nil
	}
	if err := s.db.WithContext(ctx).Model(&model.Video{}).
		Scopes(filters(q)...).
		Scopes(ordered(q.Sort, q.Desc), paginate(q), withOwner).
		Find(&videos).Error; err != nil {
		return nil, 0, database.Translate(err, "list videos")
	}
	return videos, total, nil
}

func (s *VideoStore) Create(ctx context.Context, v *model.Video) error {
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		return database.Translate(err, "create video %q", v.Title)
	}
	return nil
}

func (s *VideoStore) Get(ctx context.Context, videoID int64) (*model.Video, error) {
	var v model.Video
	if err := s.db.WithContext(ctx).Scopes(withOwner).Where("id = ?", videoID).Take(&v).Error; err != nil {
		return nil, database.Translate(err, "get video %d", videoID)
	}
	return &v, nil
}

func (s *VideoStore) Exists(ctx context.Context, videoID int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoID).Count(&count).Error; err != nil {
		return false, database.Translate(err, "count video %d", videoID)
	}
	return count > 0, nil
}

func (s *VideoStore) IncrementViews(ctx context.Context, videoID int64) error {
	res := s.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return database.Translate(res.Error, "increment views of %d", videoID)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *VideoStore) Update(ctx context.Context, videoID int64, u VideoUpdate) error {
	cols := u.columns()
	if len(cols) == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoID).Updates(cols)
	if res.Error != nil {
		return database.Translate(res.Error, "update video %d", videoID)
	}
	return nil
}

func (s *VideoStore) Delete(ctx context.Context, videoID int64) error {
	res := s.db.WithContext(ctx).Where("id = ?", videoID).Delete(&model.Video{})
	if res.Error != nil {
		return database.Translate(res.Error, "delete video %d", videoID)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
