package service

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"VidTube.com/cmd/model"
	"VidTube.com/cmd/video/dal/db"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/guard"
	"VidTube.com/pkg/oss"
)

// GetVideoByID counts a view and returns the video. Unpublished videos are only visible to their owner.
func (s *VideoService) GetVideoByID(ctx context.Context, actorID int64, rawID string) (*model.Video, error) {
	videoID, err := parseVideoID(rawID)
	if err != nil {
		return nil, err
	}
	v, err := s.load(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !v.IsPublished && (actorID == guard.Anonymous || v.OwnerID != actorID) {
		return nil, errno.UnauthorizedErr.WithMessage("This video is not published")
	}
	if err := s.videos.IncrementViews(ctx, videoID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errVideoNotFound
		}
		return nil, errno.Internal(ctx, err, "count view")
	}
	return s.load(ctx, videoID)
}

type UpdateVideoRequest struct {
	Title         string
	Description   string
	ThumbnailPath string
}

// UpdateVideo applies the non-blank fields. A new thumbnail is uploaded before the
// old one is removed, so a failed upload leaves the video as it was.
func (s *VideoService) UpdateVideo(ctx context.Context, actorID int64, rawID string, req UpdateVideoRequest) (*model.Video, error) {
	videoID, err := parseVideoID(rawID)
	if err != nil {
		return nil, err
	}
	v, err := s.load(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := guard.Owner(v.OwnerID, actorID, "update this video"); err != nil {
		return nil, err
	}

	var u db.VideoUpdate
	if title := strings.TrimSpace(req.Title); title != "" {
		u.Title = &title
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		u.Description = &description
	}
	oldThumbnail := v.Thumbnail
	var thumbAsset *oss.Asset
	if req.ThumbnailPath != "" {
		thumbAsset, err = s.media.Upload(ctx, req.ThumbnailPath)
		if err != nil {
			hlog.CtxErrorf(ctx, "upload new thumbnail of video %d: %v", videoID, err)
			return nil, errno.InternalErr.WithMessage("Failed to upload new thumbnail")
		}
		u.Thumbnail = &thumbAsset.URL
	}

	if err := s.videos.Update(ctx, videoID, u); err != nil {
		if thumbAsset != nil {
			s.discard(ctx, thumbAsset)
		}
		return nil, errno.Internal(ctx, err, "update video")
	}
	if thumbAsset != nil {
		s.removeRemote(ctx, oldThumbnail, oss.KindImage)
	}
	return s.load(ctx, videoID)
}

// removeRemote deletes the object behind a stored url, logging failures.
func (s *VideoService) removeRemote(ctx context.Context, rawURL string, kind oss.Kind) {
	contentID, ok := oss.ExtractContentID(rawURL)
	if !ok {
		hlog.CtxWarnf(ctx, "no content id in %s url %q, remote object kept", kind, rawURL)
		return
	}
	n, err := s.media.Delete(context.WithoutCancel(ctx), contentID, kind)
	if err != nil {
		hlog.CtxWarnf(ctx, "delete %s %s: %v", kind, contentID, err)
		return
	}
	hlog.CtxInfof(ctx, "deleted %d %s object(s) for %s", n, kind, contentID)
}

// DeleteVideo removes the remote media, the rows referencing the video and the video itself.
// Only the record delete can fail the operation.
func (s *VideoService) DeleteVideo(ctx context.Context, actorID int64, rawID string) error {
	videoID, err := parseVideoID(rawID)
	if err != nil {
		return err
	}
	v, err := s.load(ctx, videoID)
	if err != nil {
		return err
	}
	if err := guard.Owner(v.OwnerID, actorID, "delete this video"); err != nil {
		return err
	}

	s.removeRemote(ctx, v.VideoFile, oss.KindVideo)
	s.removeRemote(ctx, v.Thumbnail, oss.KindImage)
	for _, c := range s.cleaners {
		if n, err := c.RemoveVideo(ctx, videoID); err != nil {
			hlog.CtxWarnf(ctx, "remove %s of video %d: %v", c.Name(), videoID, err)
		} else if n > 0 {
			hlog.CtxInfof(ctx, "removed %d %s of video %d", n, c.Name(), videoID)
		}
	}

	if err := s.videos.Delete(ctx, videoID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return errVideoNotFound
		}
		return errno.Internal(ctx, err, "delete video")
	}
	return nil
}

// TogglePublishStatus flips visibility and reports the new state.
func (s *VideoService) TogglePublishStatus(ctx context.Context, actorID int64, rawID string) (bool, error) {
	videoID, err := parseVideoID(rawID)
	if err != nil {
		return false, err
	}
	v, err := s.load(ctx, videoID)
	if err != nil {
		return false, err
	}
	if err := guard.Owner(v.OwnerID, actorID, "toggle publish status of this video"); err != nil {
		return false, err
	}
	published := !v.IsPublished
	if err := s.videos.Update(ctx, videoID, db.VideoUpdate{IsPublished: &published}); err != nil {
		return false, errno.Internal(ctx, err, "toggle publish status")
	}
	return published, nil
}
