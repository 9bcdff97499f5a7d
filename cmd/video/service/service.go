package service

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/cmd/video/dal/db"
	"VidTube.com/pkg/oss"
)

type VideoStore interface {
	List(ctx context.Context, q db.VideoQuery) ([]*model.Video, int64, error)
	Create(ctx context.Context, v *model.Video) error
	Get(ctx context.Context, videoID int64) (*model.Video, error)
	IncrementViews(ctx context.Context, videoID int64) error
	Update(ctx context.Context, videoID int64, u db.VideoUpdate) error
	Delete(ctx context.Context, videoID int64) error
}

type UserDirectory interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// ReferenceCleaner drops rows pointing at a deleted video, e.g. likes or playlist entries.
type ReferenceCleaner interface {
	Name() string
	RemoveVideo(ctx context.Context, videoID int64) (int64, error)
}

type VideoService struct {
	videos   VideoStore
	users    UserDirectory
	media    oss.MediaStore
	cleaners []ReferenceCleaner
}

func NewVideoService(videos VideoStore, users UserDirectory, media oss.MediaStore, cleaners ...ReferenceCleaner) *VideoService {
	return &VideoService{videos: videos, users: users, media: media, cleaners: cleaners}
}
