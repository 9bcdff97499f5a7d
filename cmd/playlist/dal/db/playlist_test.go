package db

import (
	"context"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/database/dbtest"
)

func newPlaylist(t *testing.T, s *PlaylistStore, name string) *model.Playlist {
	t.Helper()
	p := &model.Playlist{Name: name, OwnerID: 1}
	if err := s.Create(context.Background(), p); err != nil {
		t.Fatalf("create playlist: %v", err)
	}
	return p
}

func positions(t *testing.T, s *PlaylistStore, playlistID int64) []int64 {
	t.Helper()
	var pos []int64
	if err := s.db.Model(&model.PlaylistVideo{}).Where("playlist_id = ?", playlistID).
		Order("position ASC").Pluck("position", &pos).Error; err != nil {
		t.Fatal(err)
	}
	return pos
}

func TestAddVideoAppends(t *testing.T) {
	store := NewPlaylistStore(dbtest.Open(t))
	ctx := context.Background()
	p := newPlaylist(t, store, "mix")
	if p.Videos == nil {
		t.Fatal("created playlist videos should be empty, not nil")
	}

	for _, id := range []int64{13, 11, 12} {
		if err := store.AddVideo(ctx, p.ID, id); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}
	if got := positions(t, store, p.ID); !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Fatalf("positions = %v", got)
	}
	got, err := store.Get(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Videos, model.IDs{13, 11, 12}) {
		t.Fatalf("videos = %v, want insertion order", got.Videos)
	}

	if err = store.AddVideo(ctx, p.ID, 11); !errors.Is(err, model.ErrDuplicate) {
		t.Fatalf("duplicate add = %v, want ErrDuplicate", err)
	}

	if err = store.RemoveVideo(ctx, p.ID, 11); err != nil {
		t.Fatal(err)
	}
	if err = store.RemoveVideo(ctx, p.ID, 99); err != nil {
		t.Fatalf("removing a non-member: %v", err)
	}
	if err = store.AddVideo(ctx, p.ID, 14); err != nil {
		t.Fatal(err)
	}
	got, _ = store.Get(ctx, p.ID)
	if !reflect.DeepEqual(got.Videos, model.IDs{13, 12, 14}) {
		t.Fatalf("videos after remove and add = %v", got.Videos)
	}
	if pos := positions(t, store, p.ID); pos[len(pos)-1] != 4 {
		t.Fatalf("appended position = %v, want 4", pos)
	}
}

func TestPlaylistUpdateAndList(t *testing.T) {
	store := NewPlaylistStore(dbtest.Open(t))
	ctx := context.Background()
	first := newPlaylist(t, store, "first")
	newPlaylist(t, store, "second")

	name := "renamed"
	if err := store.Update(ctx, first.ID, &name, nil); err != nil {
		t.Fatal(err)
	}
	if err := store.Update(ctx, first.ID, nil, nil); err != nil {
		t.Fatalf("empty update: %v", err)
	}
	got, err := store.Get(ctx, first.ID)
	if err != nil || got.Name != "renamed" {
		t.Fatalf("get = %+v, %v", got, err)
	}

	lists, err := store.ListByOwner(ctx, 1)
	if err != nil || len(lists) != 2 {
		t.Fatalf("list = %d, %v", len(lists), err)
	}
	if lists[0].Name != "second" {
		t.Errorf("newest first: got %q", lists[0].Name)
	}
	if lists, _ = store.ListByOwner(ctx, 2); len(lists) != 0 {
		t.Errorf("other owner sees %d playlists", len(lists))
	}
}

func TestRemoveVideoEverywhereAndDelete(t *testing.T) {
	store := NewPlaylistStore(dbtest.Open(t))
	ctx := context.Background()
	a := newPlaylist(t, store, "a")
	b := newPlaylist(t, store, "b")
	for _, p := range []*model.Playlist{a, b} {
		for _, id := range []int64{7, 8} {
			if err := store.AddVideo(ctx, p.ID, id); err != nil {
				t.Fatal(err)
			}
		}
	}

	n, err := store.RemoveVideoEverywhere(ctx, 7)
	if err != nil || n != 2 {
		t.Fatalf("remove everywhere = %d, %v; want 2", n, err)
	}
	got, _ := store.Get(ctx, b.ID)
	if !reflect.DeepEqual(got.Videos, model.IDs{8}) {
		t.Fatalf("b videos = %v", got.Videos)
	}

	if err = store.Delete(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err = store.Get(ctx, a.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("get deleted = %v, want ErrNotFound", err)
	}
	if pos := positions(t, store, a.ID); len(pos) != 0 {
		t.Fatalf("membership rows left: %v", pos)
	}
}
