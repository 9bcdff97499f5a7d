package service

import (
	"context"
	"testing"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/testsupport"
	"VidTube.com/pkg/utils"
)

func code(err error) int64 { return errno.ConvertErr(err).ErrCode }

type fixture struct {
	mem        *testsupport.Memory
	svc        *PlaylistService
	alice, bob *model.User
	v1, v2     *model.Video
}

func newFixture() *fixture {
	mem := testsupport.NewMemory()
	f := &fixture{mem: mem, svc: NewPlaylistService(mem.Playlists(), mem.Users(), mem.Videos())}
	f.alice, f.bob = mem.AddUser("alice"), mem.AddUser("bob")
	f.v1 = mem.AddVideo(model.Video{Title: "one", IsPublished: true, OwnerID: f.bob.ID})
	f.v2 = mem.AddVideo(model.Video{Title: "two", IsPublished: true, OwnerID: f.bob.ID})
	return f
}

func id(n int64) string { return utils.FormatID(n) }

func TestPlaylistMembership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.svc.CreatePlaylist(ctx, f.alice.ID, "mix", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Videos) != 0 {
		t.Fatalf("new playlist videos = %v", p.Videos)
	}

	if _, err := f.svc.AddVideoToPlaylist(ctx, f.alice.ID, id(p.ID), id(f.v2.ID)); err != nil {
		t.Fatal(err)
	}
	got, err := f.svc.AddVideoToPlaylist(ctx, f.alice.ID, id(p.ID), id(f.v1.ID))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Videos) != 2 || got.Videos[0] != f.v2.ID || got.Videos[1] != f.v1.ID {
		t.Fatalf("order = %v", got.Videos)
	}
	_, err = f.svc.AddVideoToPlaylist(ctx, f.alice.ID, id(p.ID), id(f.v1.ID))
	if e := errno.ConvertErr(err); e.ErrCode != errno.InvalidArgumentCode || e.ErrMsg != "Video already in playlist" {
		t.Fatalf("duplicate add = %v", err)
	}
	if _, err := f.svc.AddVideoToPlaylist(ctx, f.alice.ID, id(p.ID), "123456789"); code(err) != errno.NotFoundCode {
		t.Fatalf("missing video = %v", err)
	}

	got, err = f.svc.RemoveVideoFromPlaylist(ctx, f.alice.ID, id(p.ID), id(f.v2.ID))
	if err != nil || len(got.Videos) != 1 || got.Videos[0] != f.v1.ID {
		t.Fatalf("remove = %v, %v", got, err)
	}
	got, err = f.svc.RemoveVideoFromPlaylist(ctx, f.alice.ID, id(p.ID), id(f.v2.ID))
	if err != nil || len(got.Videos) != 1 {
		t.Fatalf("removing an absent video = %v, %v", got, err)
	}
}

func TestPlaylistOwnership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.svc.CreatePlaylist(ctx, f.alice.ID, "mine", "keep out")
	if err != nil {
		t.Fatal(err)
	}
	raw := id(p.ID)
	if _, err := f.svc.AddVideoToPlaylist(ctx, f.bob.ID, raw, id(f.v1.ID)); code(err) != errno.UnauthorizedCode {
		t.Errorf("add = %v", err)
	}
	if _, err := f.svc.RemoveVideoFromPlaylist(ctx, f.bob.ID, raw, id(f.v1.ID)); code(err) != errno.UnauthorizedCode {
		t.Errorf("remove = %v", err)
	}
	if _, err := f.svc.UpdatePlaylist(ctx, f.bob.ID, raw, "ours", ""); code(err) != errno.UnauthorizedCode {
		t.Errorf("update = %v", err)
	}
	if err := f.svc.DeletePlaylist(ctx, f.bob.ID, raw); code(err) != errno.UnauthorizedCode {
		t.Errorf("delete = %v", err)
	}
	got, err := f.svc.GetPlaylistByID(ctx, raw)
	if err != nil || got.Name != "mine" || got.Description != "keep out" || len(got.Videos) != 0 {
		t.Fatalf("playlist changed: %+v, %v", got, err)
	}
}

func TestUpdateAndDeletePlaylist(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.svc.CreatePlaylist(ctx, f.alice.ID, "mix", "old")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.UpdatePlaylist(ctx, f.alice.ID, id(p.ID), " ", ""); code(err) != errno.InvalidArgumentCode {
		t.Fatalf("empty update = %v", err)
	}
	got, err := f.svc.UpdatePlaylist(ctx, f.alice.ID, id(p.ID), "", "new")
	if err != nil || got.Name != "mix" || got.Description != "new" {
		t.Fatalf("update = %+v, %v", got, err)
	}
	lists, err := f.svc.GetUserPlaylists(ctx, id(f.alice.ID))
	if err != nil || len(lists) != 1 {
		t.Fatalf("lists = %v, %v", lists, err)
	}
	if err := f.svc.DeletePlaylist(ctx, f.alice.ID, id(p.ID)); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.GetPlaylistByID(ctx, id(p.ID)); code(err) != errno.NotFoundCode {
		t.Fatalf("deleted playlist = %v", err)
	}
}

func TestPlaylistValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.svc.CreatePlaylist(ctx, f.alice.ID, "  ", "d"); code(err) != errno.InvalidArgumentCode {
		t.Fatalf("blank name = %v", err)
	}
	before := f.mem.Calls()
	checks := []error{
		func() error { _, err := f.svc.GetPlaylistByID(ctx, "nope"); return err }(),
		func() error { _, err := f.svc.GetUserPlaylists(ctx, "-5"); return err }(),
		func() error { _, err := f.svc.AddVideoToPlaylist(ctx, f.alice.ID, "1", "x"); return err }(),
		func() error { _, err := f.svc.RemoveVideoFromPlaylist(ctx, f.alice.ID, "x", "1"); return err }(),
		func() error { _, err := f.svc.UpdatePlaylist(ctx, f.alice.ID, "", "n", ""); return err }(),
		f.svc.DeletePlaylist(ctx, f.alice.ID, "1.5"),
	}
	for i, err := range checks {
		if code(err) != errno.InvalidArgumentCode {
			t.Errorf("check %d = %v", i, err)
		}
	}
	if f.mem.Calls() != before {
		t.Fatal("store touched for malformed ids")
	}
}
