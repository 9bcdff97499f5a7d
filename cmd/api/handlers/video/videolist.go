package handlers

import (
	"context"

	"VidTube.com/cmd/api/handlers/common"
	"VidTube.com/cmd/video/service"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func (h *Handler) ListVideos(ctx context.Context, c *app.RequestContext) {
	var param ListVideosParam
	if err := c.BindAndValidate(&param); err != nil {
		hlog.CtxInfof(ctx, "bind list videos: %v", err)
		common.SendResponse(c, errno.InvalidArgumentErr.WithMessage("Invalid query parameters"), nil)
		return
	}
	page, err := h.svc.ListVideos(ctx, common.ActorFrom(c), service.ListVideosRequest{
		Page:     param.Page,
		Limit:    param.Limit,
		Query:    param.Query,
		SortBy:   param.SortBy,
		SortType: param.SortType,
		UserID:   param.UserID,
	})
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Videos fetched successfully", page)
}
