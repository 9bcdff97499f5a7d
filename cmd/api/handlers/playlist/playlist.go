package handlers

import (
	"context"

	"VidTube.com/cmd/api/handlers/common"
	"VidTube.com/cmd/playlist/service"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type Handler struct {
	svc *service.PlaylistService
}

func New(svc *service.PlaylistService) *Handler {
	return &Handler{svc: svc}
}

type PlaylistParam struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

func (h *Handler) bind(ctx context.Context, c *app.RequestContext) (PlaylistParam, bool) {
	var param PlaylistParam
	if err := c.BindAndValidate(&param); err != nil {
		hlog.CtxInfof(ctx, "bind playlist: %v", err)
		common.SendResponse(c, errno.InvalidArgumentErr.WithMessage("Invalid request body"), nil)
		return param, false
	}
	return param, true
}

func (h *Handler) CreatePlaylist(ctx context.Context, c *app.RequestContext) {
	param, ok := h.bind(ctx, c)
	if !ok {
		return
	}
	playlist, err := h.svc.CreatePlaylist(ctx, common.ActorFrom(c), param.Name, param.Description)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Created(c, "Playlist created successfully", playlist)
}

func (h *Handler) GetUserPlaylists(ctx context.Context, c *app.RequestContext) {
	playlists, err := h.svc.GetUserPlaylists(ctx, c.Param("userId"))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "User playlists fetched successfully", playlists)
}

func (h *Handler) GetPlaylistByID(ctx context.Context, c *app.RequestContext) {
	playlist, err := h.svc.GetPlaylistByID(ctx, c.Param("playlistId"))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Playlist fetched successfully", playlist)
}

func (h *Handler) AddVideoToPlaylist(ctx context.Context, c *app.RequestContext) {
	playlist, err := h.svc.AddVideoToPlaylist(ctx, common.ActorFrom(c), c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Video added to playlist successfully", playlist)
}

func (h *Handler) RemoveVideoFromPlaylist(ctx context.Context, c *app.RequestContext) {
	playlist, err := h.svc.RemoveVideoFromPlaylist(ctx, common.ActorFrom(c), c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Video removed from playlist successfully", playlist)
}

func (h *Handler) UpdatePlaylist(ctx context.Context, c *app.RequestContext) {
	param, ok := h.bind(ctx, c)
	if !ok {
		return
	}
	playlist, err := h.svc.UpdatePlaylist(ctx, common.ActorFrom(c), c.Param("playlistId"), param.Name, param.Description)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Playlist updated successfully", playlist)
}

func (h *Handler) DeletePlaylist(ctx context.Context, c *app.RequestContext) {
	if err := h.svc.DeletePlaylist(ctx, common.ActorFrom(c), c.Param("playlistId")); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Playlist deleted successfully", common.Empty)
}
