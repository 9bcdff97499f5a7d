package handlers

import (
	"context"

	"VidTube.com/cmd/api/handlers/common"
	"VidTube.com/cmd/interaction/service"
	"github.com/cloudwego/hertz/pkg/app"
)

type Handler struct {
	svc *service.LikeService
}

func New(svc *service.LikeService) *Handler {
	return &Handler{svc: svc}
}

type LikeStatus struct {
	Liked bool `json:"liked"`
}

type toggleFunc func(ctx context.Context, actorID int64, rawID string) (bool, error)

// toggle answers "<Subject> liked successfully" or "<Subject> unliked successfully".
func (h *Handler) toggle(fn toggleFunc, param, subject string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		liked, err := fn(ctx, common.ActorFrom(c), c.Param(param))
		if err != nil {
			common.SendResponse(c, err, nil)
			return
		}
		msg := subject + " unliked successfully"
		if liked {
			msg = subject + " liked successfully"
		}
		common.Ok(c, msg, LikeStatus{Liked: liked})
	}
}

func (h *Handler) ToggleVideoLike() app.HandlerFunc {
	return h.toggle(h.svc.ToggleVideoLike, "videoId", "Video")
}

func (h *Handler) ToggleCommentLike() app.HandlerFunc {
	return h.toggle(h.svc.ToggleCommentLike, "commentId", "Comment")
}

func (h *Handler) ToggleTweetLike() app.HandlerFunc {
	return h.toggle(h.svc.ToggleTweetLike, "tweetId", "Tweet")
}

func (h *Handler) GetLikedVideos(ctx context.Context, c *app.RequestContext) {
	likes, err := h.svc.GetLikedVideos(ctx, common.ActorFrom(c))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Liked videos fetched successfully", likes)
}
