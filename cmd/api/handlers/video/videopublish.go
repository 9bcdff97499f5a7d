package handlers

import (
	"context"

	"VidTube.com/cmd/api/handlers/common"
	"VidTube.com/cmd/video/service"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// PublishVideo takes a multipart form with title, description, videoFile and thumbnail.
func (h *Handler) PublishVideo(ctx context.Context, c *app.RequestContext) {
	var param VideoFormParam
	if err := c.BindAndValidate(&param); err != nil {
		hlog.CtxInfof(ctx, "bind publish video: %v", err)
		common.SendResponse(c, errno.InvalidArgumentErr.WithMessage("Invalid form"), nil)
		return
	}
	uploads := common.NewUploads(h.tempDir)
	defer uploads.Cleanup()

	videoPath, err := uploads.Save(c, "videoFile")
	if err != nil {
		hlog.CtxErrorf(ctx, "stage video file: %+v", err)
		common.SendResponse(c, errno.InternalErr.WithMessage("Failed to upload video"), nil)
		return
	}
	thumbnailPath, err := uploads.Save(c, "thumbnail")
	if err != nil {
		hlog.CtxErrorf(ctx, "stage thumbnail: %+v", err)
		common.SendResponse(c, errno.InternalErr.WithMessage("Failed to upload thumbnail"), nil)
		return
	}

	video, err := h.svc.PublishVideo(ctx, common.ActorFrom(c), service.PublishVideoRequest{
		Title:         param.Title,
		Description:   param.Description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Created(c, "Video published successfully", video)
}
