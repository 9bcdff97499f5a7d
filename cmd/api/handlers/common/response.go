package common

import (
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/guard"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

// IdentityKey is where the auth middleware leaves the actor id.
const IdentityKey = "user_id"

type Response struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SendResponse pack response
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	c.JSON(Err.Status, Response{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
		Data:    data,
	})
}

// Ok answers 200 with msg.
func Ok(c *app.RequestContext, msg string, data interface{}) {
	SendResponse(c, errno.Success.WithMessage(msg), data)
}

// Created answers 201 with msg.
func Created(c *app.RequestContext, msg string, data interface{}) {
	SendResponse(c, errno.Created.WithMessage(msg), data)
}

// Empty is the data of responses that carry nothing.
var Empty = struct{}{}

// ActorFrom returns the authenticated user id, guard.Anonymous when there is none.
func ActorFrom(c *app.RequestContext) int64 {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return guard.Anonymous
	}
	id, ok := utils.Transfer(v)
	if !ok {
		return guard.Anonymous
	}
	return id
}
