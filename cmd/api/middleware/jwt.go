package middleware

import (
	"context"
	"time"

	"VidTube.com/cmd/api/handlers/common"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/jwt"
	"github.com/pkg/errors"
)

// Auth supplies the actor id to the handlers. Sessions are issued elsewhere;
// this side only verifies bearer tokens signed with the shared secret.
type Auth struct {
	mw *jwt.HertzJWTMiddleware
}

func NewAuth(secret string, timeout time.Duration) (*Auth, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	mw, err := jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         "vidtube",
		Key:           []byte(secret),
		Timeout:       timeout,
		IdentityKey:   common.IdentityKey,
		TokenLookup:   "header: Authorization, cookie: accessToken",
		TokenHeadName: "Bearer",
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if id, ok := utils.Transfer(data); ok {
				return jwt.MapClaims{common.IdentityKey: utils.FormatID(id)}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: identity,
		Authorizator: func(data interface{}, ctx context.Context, c *app.RequestContext) bool {
			_, ok := data.(int64)
			return ok
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			hlog.CtxDebugf(ctx, "reject %s: %s", c.Request.URI().Path(), message)
			common.SendResponse(c, errno.AuthenticationErr, nil)
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "init jwt middleware")
	}
	return &Auth{mw: mw}, nil
}

func identity(ctx context.Context, c *app.RequestContext) interface{} {
	claims := jwt.ExtractClaims(ctx, c)
	if id, ok := utils.Transfer(claims[common.IdentityKey]); ok {
		return id
	}
	return nil
}

// Required rejects requests without a valid token with 401.
func (a *Auth) Required() app.HandlerFunc {
	return a.mw.MiddlewareFunc()
}

// Optional lets anonymous requests through and identifies the rest.
// A bad token is treated as no token.
func (a *Auth) Optional() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		claims, err := a.mw.GetClaimsFromJWT(ctx, c)
		if err == nil {
			if id, ok := utils.Transfer(claims[common.IdentityKey]); ok {
				c.Set(common.IdentityKey, id)
			}
		}
		c.Next(ctx)
	}
}

// Token signs a token for userID.
func (a *Auth) Token(userID int64) (string, error) {
	token, _, err := a.mw.TokenGenerator(userID)
	return token, err
}
