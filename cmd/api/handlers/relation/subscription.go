package handlers

import (
	"context"

	"VidTube.com/cmd/api/handlers/common"
	"VidTube.com/cmd/relation/service"
	"github.com/cloudwego/hertz/pkg/app"
)

type Handler struct {
	svc *service.RelationService
}

func New(svc *service.RelationService) *Handler {
	return &Handler{svc: svc}
}

type SubscriptionStatus struct {
	Subscribed bool `json:"subscribed"`
}

func (h *Handler) ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	subscribed, err := h.svc.ToggleSubscription(ctx, common.ActorFrom(c), c.Param("channelId"))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	msg := "Unsubscribed successfully"
	if subscribed {
		msg = "Subscribed successfully"
	}
	common.Ok(c, msg, SubscriptionStatus{Subscribed: subscribed})
}

func (h *Handler) GetChannelSubscribers(ctx context.Context, c *app.RequestContext) {
	subs, err := h.svc.GetChannelSubscribers(ctx, c.Param("channelId"))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Subscribers fetched successfully", subs)
}

func (h *Handler) GetSubscribedChannels(ctx context.Context, c *app.RequestContext) {
	subs, err := h.svc.GetSubscribedChannels(ctx, c.Param("subscriberId"))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Subscribed channels fetched successfully", subs)
}
