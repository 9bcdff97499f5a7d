package db

import (
	"context"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/database/dbtest"
)

func seedVideos(t *testing.T, store *VideoStore) (*model.User, []*model.Video) {
	t.Helper()
	owner := &model.User{Username: "alice", Email: "alice@vidtube.test", FullName: "Alice"}
	dbtest.Seed(t, store.db, owner)
	videos := []*model.Video{
		{Title: "Cat one", Duration: 10, IsPublished: true},
		{Title: "CATS", Duration: 20, IsPublished: true},
		{Title: "dog", Description: "no felines", Duration: 30, IsPublished: true},
		{Title: "cat draft", Duration: 40, IsPublished: false},
	}
	for _, v := range videos {
		v.VideoFile, v.Thumbnail, v.OwnerID = "v", "t", owner.ID
		if err := store.Create(context.Background(), v); err != nil {
			t.Fatal(err)
		}
	}
	return owner, videos
}

func titles(videos []*model.Video) []string {
	out := make([]string, len(videos))
	for i, v := range videos {
		out[i] = v.Title
	}
	return out
}

func TestListSearchSortsAndJoinsOwner(t *testing.T) {
	store := NewVideoStore(dbtest.Open(t))
	ctx := context.Background()
	owner, _ := seedVideos(t, store)

	tests := []struct {
		name  string
		q     VideoQuery
		total int64
		want  []string
	}{
		{
			name:  "search published by duration desc",
			q:     VideoQuery{PublishedOnly: true, Search: "cat", Sort: SortDuration, Desc: true, Page: 1, Limit: 10},
			total: 2,
			want:  []string{"CATS", "Cat one"},
		},
		{
			name:  "drafts included for owner",
			q:     VideoQuery{OwnerID: owner.ID, Search: " CAT ", Sort: SortDuration, Page: 1, Limit: 10},
			total: 3,
			want:  []string{"Cat one", "CATS", "cat draft"},
		},
		{
			name:  "description matches",
			q:     VideoQuery{PublishedOnly: true, Search: "feline", Page: 1, Limit: 10},
			total: 1,
			want:  []string{"dog"},
		},
		{
			name:  "second page",
			q:     VideoQuery{PublishedOnly: true, Sort: SortDuration, Page: 2, Limit: 2},
			total: 3,
			want:  []string{"dog"},
		},
		{
			name:  "past the end",
			q:     VideoQuery{PublishedOnly: true, Page: 5, Limit: 2},
			total: 3,
			want:  []string{},
		},
		{
			name:  "other owner",
			q:     VideoQuery{OwnerID: owner.ID + 1, Page: 1, Limit: 10},
			total: 0,
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := store.List(ctx, tt.q)
			if err != nil {
				t.Fatal(err)
			}
			if total != tt.total {
				t.Errorf("total = %d, want %d", total, tt.total)
			}
			if g := titles(got); !reflect.DeepEqual(g, tt.want) {
				t.Fatalf("titles = %v, want %v", g, tt.want)
			}
			for _, v := range got {
				if v.Owner == nil || v.Owner.Username != "alice" {
					t.Fatalf("%q owner not joined: %+v", v.Title, v.Owner)
				}
			}
		})
	}
}

func TestVideoWritesOnMissingRows(t *testing.T) {
	store := NewVideoStore(dbtest.Open(t))
	ctx := context.Background()
	_, videos := seedVideos(t, store)
	v := videos[0]

	if err := store.IncrementViews(ctx, v.ID); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, v.ID)
	if err != nil || got.Views != 1 || got.Owner == nil {
		t.Fatalf("get = %+v, %v", got, err)
	}

	title, published := "renamed", false
	if err = store.Update(ctx, v.ID, VideoUpdate{Title: &title, IsPublished: &published}); err != nil {
		t.Fatal(err)
	}
	if got, _ = store.Get(ctx, v.ID); got.Title != "renamed" || got.IsPublished {
		t.Fatalf("after update = %+v", got)
	}

	if err = store.Delete(ctx, v.ID); err != nil {
		t.Fatal(err)
	}
	if ok, _ := store.Exists(ctx, v.ID); ok {
		t.Fatal("deleted video still exists")
	}
	for name, err := range map[string]error{
		"get":       func() error { _, err := store.Get(ctx, v.ID); return err }(),
		"increment": store.IncrementViews(ctx, v.ID),
		"delete":    store.Delete(ctx, v.ID),
	} {
		if !errors.Is(err, model.ErrNotFound) {
			t.Errorf("%s on missing video = %v, want ErrNotFound", name, err)
		}
	}
}
