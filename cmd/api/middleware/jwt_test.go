package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"VidTube.com/cmd/api/handlers/common"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
)

func newEngine(t *testing.T) (*route.Engine, *Auth) {
	t.Helper()
	auth, err := NewAuth("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	r := route.NewEngine(config.NewOptions(nil))
	echo := func(ctx context.Context, c *app.RequestContext) {
		common.Ok(c, "ok", map[string]int64{"actor": common.ActorFrom(c)})
	}
	r.GET("/required", auth.Required(), echo)
	r.GET("/optional", auth.Optional(), echo)
	return r, auth
}

type echoResponse struct {
	Code int64 `json:"code"`
	Data struct {
		Actor int64 `json:"actor"`
	} `json:"data"`
}

func call(t *testing.T, r *route.Engine, path, token string) (int, echoResponse) {
	t.Helper()
	var headers []ut.Header
	if token != "" {
		headers = append(headers, ut.Header{Key: "Authorization", Value: "Bearer " + token})
	}
	w := ut.PerformRequest(r, http.MethodGet, path, nil, headers...)
	resp := w.Result()
	var out echoResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		t.Fatalf("decode %s: %v", resp.Body(), err)
	}
	return resp.StatusCode(), out
}

func TestRequired(t *testing.T) {
	r, auth := newEngine(t)
	token, err := auth.Token(42)
	if err != nil {
		t.Fatal(err)
	}

	status, out := call(t, r, "/required", token)
	if status != http.StatusOK || out.Data.Actor != 42 {
		t.Fatalf("valid token: status %d, %+v", status, out)
	}

	for name, tok := range map[string]string{"missing": "", "garbage": "not-a-token"} {
		status, out = call(t, r, "/required", tok)
		if status != http.StatusUnauthorized || out.Code != errno.AuthenticationCode {
			t.Errorf("%s token: status %d, code %d", name, status, out.Code)
		}
	}
}

func TestRequiredRejectsForeignSecret(t *testing.T) {
	r, _ := newEngine(t)
	other, err := NewAuth("another-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	token, _ := other.Token(42)
	if status, _ := call(t, r, "/required", token); status != http.StatusUnauthorized {
		t.Fatalf("status = %d", status)
	}
}

func TestOptional(t *testing.T) {
	r, auth := newEngine(t)
	token, _ := auth.Token(7)

	tests := []struct {
		name  string
		token string
		actor int64
	}{
		{"identified", token, 7},
		{"anonymous", "", 0},
		{"bad token is anonymous", "nope", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := call(t, r, "/optional", tt.token)
			if status != http.StatusOK || out.Data.Actor != tt.actor {
				t.Fatalf("status %d, actor %d, want %d", status, out.Data.Actor, tt.actor)
			}
		})
	}
}

func TestNewAuthNeedsSecret(t *testing.T) {
	if _, err := NewAuth("", time.Hour); err == nil {
		t.Fatal("empty secret accepted")
	}
}
