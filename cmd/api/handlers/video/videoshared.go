package handlers

import (
	"context"

	"VidTube.com/cmd/api/handlers/common"
	"VidTube.com/cmd/video/service"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func (h *Handler) GetVideoByID(ctx context.Context, c *app.RequestContext) {
	video, err := h.svc.GetVideoByID(ctx, common.ActorFrom(c), c.Param("videoId"))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Video fetched successfully", video)
}

// UpdateVideo takes title, description and an optional thumbnail file.
func (h *Handler) UpdateVideo(ctx context.Context, c *app.RequestContext) {
	var param VideoFormParam
	if err := c.BindAndValidate(&param); err != nil {
		hlog.CtxInfof(ctx, "bind update video: %v", err)
		common.SendResponse(c, errno.InvalidArgumentErr.WithMessage("Invalid form"), nil)
		return
	}
	uploads := common.NewUploads(h.tempDir)
	defer uploads.Cleanup()

	thumbnailPath, err := uploads.Save(c, "thumbnail")
	if err != nil {
		hlog.CtxErrorf(ctx, "stage thumbnail: %+v", err)
		common.SendResponse(c, errno.InternalErr.WithMessage("Failed to upload thumbnail"), nil)
		return
	}
	video, err := h.svc.UpdateVideo(ctx, common.ActorFrom(c), c.Param("videoId"), service.UpdateVideoRequest{
		Title:         param.Title,
		Description:   param.Description,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Video updated successfully", video)
}

func (h *Handler) DeleteVideo(ctx context.Context, c *app.RequestContext) {
	if err := h.svc.DeleteVideo(ctx, common.ActorFrom(c), c.Param("videoId")); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Video deleted successfully", common.Empty)
}

func (h *Handler) TogglePublishStatus(ctx context.Context, c *app.RequestContext) {
	published, err := h.svc.TogglePublishStatus(ctx, common.ActorFrom(c), c.Param("videoId"))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	msg := "Video unpublished successfully"
	if published {
		msg = "Video published successfully"
	}
	common.Ok(c, msg, PublishStatus{IsPublished: published})
}
