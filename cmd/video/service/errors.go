package service

import (
	"context"

	"github.com/pkg/errors"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
)

var (
	errVideoNotFound = errno.NotFoundErr.WithMessage("Video not found")
	errInvalidVideo  = errno.InvalidArgumentErr.WithMessage("Invalid video ID")
)

func parseVideoID(raw string) (int64, error) {
	id, ok := utils.ParseID(raw)
	if !ok {
		return 0, errInvalidVideo
	}
	return id, nil
}

func (s *VideoService) load(ctx context.Context, videoID int64) (*model.Video, error) {
	v, err := s.videos.Get(ctx, videoID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errVideoNotFound
		}
		return nil, errno.Internal(ctx, err, "get video")
	}
	return v, nil
}
