package middleware

import (
	"context"

	"VidTube.com/cmd/api/handlers/common"
	"VidTube.com/pkg/errno"
	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// InitFlowControl starts sentinel and installs a reject rule of qps per resource.
func InitFlowControl(qps float64, resources ...string) error {
	if err := sentinel.InitDefault(); err != nil {
		return errors.Wrap(err, "init sentinel")
	}
	rules := make([]*flow.Rule, 0, len(resources))
	for _, r := range resources {
		rules = append(rules, &flow.Rule{
			Resource:               r,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		})
	}
	if _, err := flow.LoadRules(rules); err != nil {
		return errors.Wrap(err, "load flow rules")
	}
	return nil
}

// Limit guards the route with the sentinel resource; blocked requests get 429.
func Limit(resource string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		e, b := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if b != nil {
			hlog.CtxWarnf(ctx, "flow control blocked %s: %s", resource, b.BlockMsg())
			common.SendResponse(c, errno.TooManyRequestsErr, nil)
			c.Abort()
			return
		}
		defer e.Exit()
		c.Next(ctx)
	}
}
