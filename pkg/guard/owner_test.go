package guard

import (
	"net/http"
	"testing"

	"VidTube.com/pkg/errno"
)

func TestOwner(t *testing.T) {
	tests := []struct {
		name    string
		owner   int64
		actor   int64
		wantErr bool
	}{
		{"owner", 10, 10, false},
		{"other user", 10, 11, true},
		{"anonymous", 10, Anonymous, true},
		{"anonymous against ownerless", Anonymous, Anonymous, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Owner(tt.owner, tt.actor, "update this video")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Owner() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			e := errno.ConvertErr(err)
			if e.Status != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", e.Status)
			}
			if e.ErrMsg != "You are not authorized to update this video" {
				t.Fatalf("message = %q", e.ErrMsg)
			}
		})
	}
}

func TestAuthenticated(t *testing.T) {
	if err := Authenticated(Anonymous); err == nil {
		t.Fatal("anonymous actor accepted")
	}
	if err := Authenticated(3); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}
