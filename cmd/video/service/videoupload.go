package service

import (
	"context"
	"math"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/guard"
	"VidTube.com/pkg/oss"
)

type PublishVideoRequest struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// roundDuration converts a probed duration into whole seconds; unusable values become 0.
func roundDuration(d *float64) int64 {
	if d == nil || math.IsNaN(*d) || math.IsInf(*d, 0) || *d < 0 {
		return 0
	}
	return int64(math.Round(*d))
}

// discard removes an uploaded asset that no record will reference.
func (s *VideoService) discard(ctx context.Context, asset *oss.Asset) {
	if _, err := s.media.Delete(context.WithoutCancel(ctx), asset.ContentID, asset.Kind); err != nil {
		hlog.CtxWarnf(ctx, "discard %s %s: %v", asset.Kind, asset.ContentID, err)
	}
}

// PublishVideo uploads the video then the thumbnail and records the video as published.
// When a later step fails the assets already uploaded are removed again.
func (s *VideoService) PublishVideo(ctx context.Context, actorID int64, req PublishVideoRequest) (*model.Video, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("Title and description are required")
	}
	if req.VideoPath == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("Video file is required")
	}
	if req.ThumbnailPath == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("Thumbnail is required")
	}
	if err := guard.Authenticated(actorID); err != nil {
		return nil, err
	}
	exists, err := s.users.Exists(ctx, actorID)
	if err != nil {
		return nil, errno.Internal(ctx, err, "look up uploader")
	}
	if !exists {
		return nil, errno.NotFoundErr.WithMessage("User not found")
	}

	videoAsset, err := s.media.Upload(ctx, req.VideoPath)
	if err != nil {
		hlog.CtxErrorf(ctx, "upload video of user %d: %v", actorID, err)
		return nil, errno.InternalErr.WithMessage("Failed to upload video")
	}
	thumbAsset, err := s.media.Upload(ctx, req.ThumbnailPath)
	if err != nil {
		hlog.CtxErrorf(ctx, "upload thumbnail of user %d: %v", actorID, err)
		s.discard(ctx, videoAsset)
		return nil, errno.InternalErr.WithMessage("Failed to upload thumbnail")
	}

	video := &model.Video{
		Title:       title,
		Description: description,
		VideoFile:   videoAsset.URL,
		Thumbnail:   thumbAsset.URL,
		Duration:    roundDuration(videoAsset.Duration),
		IsPublished: true,
		OwnerID:     actorID,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		s.discard(ctx, videoAsset)
		s.discard(ctx, thumbAsset)
		return nil, errno.Internal(ctx, errors.WithMessage(err, "insert video"), "publish video")
	}
	hlog.CtxInfof(ctx, "user %d published video %d", actorID, video.ID)
	return video, nil
}
