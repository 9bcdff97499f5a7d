package service

import (
	"context"
	"testing"

	"VidTube.com/cmd/model"
	"VidTube.com/cmd/video/dal/db"
	"VidTube.com/pkg/guard"
	"VidTube.com/pkg/utils"
)

func TestResolveQuery(t *testing.T) {
	tests := []struct {
		name  string
		actor int64
		req   ListVideosRequest
		want  db.VideoQuery
	}{
		{
			name: "defaults",
			req:  ListVideosRequest{},
			want: db.VideoQuery{Page: 1, Limit: 10, Sort: db.SortCreatedAt, Desc: true, PublishedOnly: true},
		},
		{
			name: "clamped and ascending",
			req:  ListVideosRequest{Page: -3, Limit: 1000, SortBy: "views", SortType: "asc", Query: "  cats "},
			want: db.VideoQuery{Page: 1, Limit: 100, Sort: db.SortViews, PublishedOnly: true, Search: "cats"},
		},
		{
			name: "unknown sort falls back",
			req:  ListVideosRequest{SortBy: "password", SortType: "sideways"},
			want: db.VideoQuery{Page: 1, Limit: 10, Sort: db.SortCreatedAt, Desc: true, PublishedOnly: true},
		},
		{
			name:  "own channel includes unpublished",
			actor: 7,
			req:   ListVideosRequest{UserID: "7"},
			want:  db.VideoQuery{Page: 1, Limit: 10, Sort: db.SortCreatedAt, Desc: true, OwnerID: 7},
		},
		{
			name:  "someone else's channel",
			actor: 8,
			req:   ListVideosRequest{UserID: "7"},
			want:  db.VideoQuery{Page: 1, Limit: 10, Sort: db.SortCreatedAt, Desc: true, OwnerID: 7, PublishedOnly: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveQuery(tt.actor, tt.req)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("resolveQuery = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func titles(videos []*model.Video) []string {
	out := make([]string, len(videos))
	for i, v := range videos {
		out[i] = v.Title
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListVideosSortsByDuration(t *testing.T) {
	f := newFixture()
	for _, d := range []int64{20, 10, 30} {
		f.mem.AddVideo(model.Video{Title: utils.FormatID(d), Duration: d, IsPublished: true, OwnerID: f.alice.ID})
	}
	page, err := f.svc.ListVideos(context.Background(), guard.Anonymous, ListVideosRequest{SortBy: "duration", SortType: "desc"})
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(page.Videos); !equal(got, []string{"30", "20", "10"}) {
		t.Fatalf("order = %v", got)
	}

	page, err = f.svc.ListVideos(context.Background(), guard.Anonymous, ListVideosRequest{SortBy: "bogus"})
	if err != nil {
		t.Fatal(err)
	}
	// created_at desc: last seeded first
	if got := titles(page.Videos); !equal(got, []string{"30", "10", "20"}) {
		t.Fatalf("fallback order = %v", got)
	}
}

func TestListVideosVisibility(t *testing.T) {
	f := newFixture()
	f.seed(f.alice.ID, "public", true)
	f.seed(f.alice.ID, "draft", false)
	f.seed(f.bob.ID, "bob draft", false)
	ctx := context.Background()

	page, err := f.svc.ListVideos(ctx, f.bob.ID, ListVideosRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(page.Videos); !equal(got, []string{"public"}) {
		t.Fatalf("global listing = %v", got)
	}

	page, err = f.svc.ListVideos(ctx, f.alice.ID, ListVideosRequest{UserID: utils.FormatID(f.alice.ID), SortBy: "title", SortType: "asc"})
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(page.Videos); !equal(got, []string{"draft", "public"}) {
		t.Fatalf("own channel = %v", got)
	}

	page, err = f.svc.ListVideos(ctx, f.bob.ID, ListVideosRequest{UserID: utils.FormatID(f.alice.ID)})
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(page.Videos); !equal(got, []string{"public"}) {
		t.Fatalf("other channel = %v", got)
	}
	if page.Videos[0].Owner == nil || page.Videos[0].Owner.Username != "alice" {
		t.Fatalf("owner not joined: %+v", page.Videos[0].Owner)
	}
}

func TestListVideosSearch(t *testing.T) {
	f := newFixture()
	f.mem.AddVideo(model.Video{Title: "Funny CATS", Description: "x", IsPublished: true, OwnerID: f.alice.ID})
	f.mem.AddVideo(model.Video{Title: "dogs", Description: "a cat appears", IsPublished: true, OwnerID: f.alice.ID})
	f.mem.AddVideo(model.Video{Title: "birds", Description: "100% birds", IsPublished: true, OwnerID: f.alice.ID})
	ctx := context.Background()

	page, err := f.svc.ListVideos(ctx, guard.Anonymous, ListVideosRequest{Query: "cat", SortBy: "title", SortType: "asc"})
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(page.Videos); !equal(got, []string{"Funny CATS", "dogs"}) {
		t.Fatalf("search = %v", got)
	}
	page, err = f.svc.ListVideos(ctx, guard.Anonymous, ListVideosRequest{Query: "%"})
	if err != nil {
		t.Fatal(err)
	}
	if got := titles(page.Videos); !equal(got, []string{"birds"}) {
		t.Fatalf("wildcard search = %v", got)
	}
}

func TestVideoPagination(t *testing.T) {
	f := newFixture()
	for i := 0; i < 25; i++ {
		f.mem.AddVideo(model.Video{Title: "v", IsPublished: true, OwnerID: f.alice.ID})
	}
	page, err := f.svc.ListVideos(context.Background(), guard.Anonymous, ListVideosRequest{Page: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Videos) != 10 || page.TotalVideos != 25 || page.TotalPages != 3 {
		t.Fatalf("page = %d videos, total %d, pages %d", len(page.Videos), page.TotalVideos, page.TotalPages)
	}
	if page.PagingCounter != 11 || !page.HasPrevPage || !page.HasNextPage || *page.PrevPage != 1 || *page.NextPage != 3 {
		t.Fatalf("navigation = %+v", page)
	}

	page, err = f.svc.ListVideos(context.Background(), guard.Anonymous, ListVideosRequest{Page: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Videos) != 5 || page.HasNextPage || page.NextPage != nil {
		t.Fatalf("last page = %+v", page)
	}
}

func TestNewVideoPageEmpty(t *testing.T) {
	p := newVideoPage([]*model.Video{}, 0, 1, 10)
	if p.TotalPages != 1 || p.HasNextPage || p.HasPrevPage || p.PrevPage != nil || p.NextPage != nil {
		t.Fatalf("empty page = %+v", p)
	}
}
