package handlers

import (
	"context"

	"VidTube.com/cmd/api/handlers/common"
	"VidTube.com/cmd/tweet/service"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type Handler struct {
	svc *service.TweetService
}

func New(svc *service.TweetService) *Handler {
	return &Handler{svc: svc}
}

type TweetParam struct {
	Content string `json:"content" form:"content"`
}

func (h *Handler) bind(ctx context.Context, c *app.RequestContext) (TweetParam, bool) {
	var param TweetParam
	if err := c.BindAndValidate(&param); err != nil {
		hlog.CtxInfof(ctx, "bind tweet: %v", err)
		common.SendResponse(c, errno.InvalidArgumentErr.WithMessage("Invalid request body"), nil)
		return param, false
	}
	return param, true
}

func (h *Handler) CreateTweet(ctx context.Context, c *app.RequestContext) {
	param, ok := h.bind(ctx, c)
	if !ok {
		return
	}
	tweet, err := h.svc.CreateTweet(ctx, common.ActorFrom(c), param.Content)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Created(c, "Tweet created successfully", tweet)
}

func (h *Handler) GetUserTweets(ctx context.Context, c *app.RequestContext) {
	tweets, err := h.svc.GetUserTweets(ctx, c.Param("userId"))
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "User tweets fetched successfully", tweets)
}

func (h *Handler) UpdateTweet(ctx context.Context, c *app.RequestContext) {
	param, ok := h.bind(ctx, c)
	if !ok {
		return
	}
	tweet, err := h.svc.UpdateTweet(ctx, common.ActorFrom(c), c.Param("tweetId"), param.Content)
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Tweet updated successfully", tweet)
}

func (h *Handler) DeleteTweet(ctx context.Context, c *app.RequestContext) {
	if err := h.svc.DeleteTweet(ctx, common.ActorFrom(c), c.Param("tweetId")); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Ok(c, "Tweet deleted successfully", common.Empty)
}
