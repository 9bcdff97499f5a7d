// Package testsupport holds in-memory stand-ins for the gorm stores and the media store.
package testsupport

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"VidTube.com/cmd/model"
	videodb "VidTube.com/cmd/video/dal/db"
	"VidTube.com/pkg/toggle"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Memory is a shared dataset; the typed views below expose it per store.
type Memory struct {
	mu        sync.Mutex
	seq       int64
	calls     int
	fail      map[string]error
	users     map[int64]*model.User
	videos    map[int64]*model.Video
	tweets    map[int64]*model.Tweet
	playlists map[int64]*model.Playlist
	comments  map[int64]*model.Comment
	likes     map[int64]*model.Like
	subs      map[int64]*model.Subscription
}

func NewMemory() *Memory {
	return &Memory{
		seq:       1000,
		fail:      map[string]error{},
		users:     map[int64]*model.User{},
		videos:    map[int64]*model.Video{},
		tweets:    map[int64]*model.Tweet{},
		playlists: map[int64]*model.Playlist{},
		comments:  map[int64]*model.Comment{},
		likes:     map[int64]*model.Like{},
		subs:      map[int64]*model.Subscription{},
	}
}

// Fail makes the named operation, e.g. "videos.Create", return err until cleared with nil.
func (m *Memory) Fail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.fail, op)
		return
	}
	m.fail[op] = err
}

// Calls counts store operations since creation.
func (m *Memory) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// enter must be called with mu held.
func (m *Memory) enter(op string) error {
	m.calls++
	return m.fail[op]
}

func (m *Memory) nextID() (int64, time.Time) {
	m.seq++
	return m.seq, epoch.Add(time.Duration(m.seq) * time.Second)
}

func (m *Memory) summary(userID int64) *model.OwnerSummary {
	if u, ok := m.users[userID]; ok {
		return u.Summary()
	}
	return nil
}

func (m *Memory) AddUser(username string) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, at := m.nextID()
	u := &model.User{ID: id, Username: username, Email: username + "@vidtube.test",
		FullName: strings.ToUpper(username[:1]) + username[1:], CreatedAt: at, UpdatedAt: at}
	m.users[id] = u
	return u
}

// AddVideo seeds a video; zero ids and times are filled in.
func (m *Memory) AddVideo(v model.Video) *model.Video {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, at := m.nextID()
	if v.ID == 0 {
		v.ID = id
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = at
	}
	v.UpdatedAt = v.CreatedAt
	v.Owner = nil
	m.videos[v.ID] = &v
	out := v
	return &out
}

func (m *Memory) AddComment(videoID, ownerID int64, content string) *model.Comment {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, at := m.nextID()
	c := &model.Comment{ID: id, Content: content, VideoID: videoID, OwnerID: ownerID, CreatedAt: at, UpdatedAt: at}
	m.comments[id] = c
	return c
}

// Video returns a copy of the stored video, or nil.
func (m *Memory) Video(id int64) *model.Video {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.videos[id]
	if !ok {
		return nil
	}
	out := *v
	return &out
}

func (m *Memory) VideoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.videos)
}

func (m *Memory) LikeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.likes)
}

func (m *Memory) SubscriptionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

func (m *Memory) Users() *Users                 { return &Users{m} }
func (m *Memory) Videos() *Videos               { return &Videos{m} }
func (m *Memory) Tweets() *Tweets               { return &Tweets{m} }
func (m *Memory) Playlists() *Playlists         { return &Playlists{m} }
func (m *Memory) Comments() *Comments           { return &Comments{m} }
func (m *Memory) Likes() *Likes                 { return &Likes{m} }
func (m *Memory) Subscriptions() *Subscriptions { return &Subscriptions{m} }

type Users struct{ m *Memory }

func (r *Users) Exists(_ context.Context, id int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("users.Exists"); err != nil {
		return false, err
	}
	_, ok := r.m.users[id]
	return ok, nil
}

type Videos struct{ m *Memory }

func (r *Videos) withOwner(v *model.Video) *model.Video {
	out := *v
	out.Owner = r.m.summary(v.OwnerID)
	return &out
}

func matches(v *model.Video, q videodb.VideoQuery) bool {
	if q.OwnerID != 0 && v.OwnerID != q.OwnerID {
		return false
	}
	if q.PublishedOnly && !v.IsPublished {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		return strings.Contains(strings.ToLower(v.Title), s) || strings.Contains(strings.ToLower(v.Description), s)
	}
	return true
}

func less(a, b *model.Video, key videodb.SortKey) int {
	switch key {
	case videodb.SortViews:
		return compare(a.Views, b.Views)
	case videodb.SortDuration:
		return compare(a.Duration, b.Duration)
	case videodb.SortTitle:
		return strings.Compare(a.Title, b.Title)
	default:
		return compare(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	}
}

func compare(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (r *Videos) List(_ context.Context, q videodb.VideoQuery) ([]*model.Video, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("videos.List"); err != nil {
		return nil, 0, err
	}
	hits := make([]*model.Video, 0)
	for _, v := range r.m.videos {
		if matches(v, q) {
			hits = append(hits, v)
		}
	}
	key := q.Sort
	if !key.Valid() {
		key = videodb.SortCreatedAt
	}
	sort.Slice(hits, func(i, j int) bool {
		c := less(hits[i], hits[j], key)
		if c == 0 {
			c = compare(hits[i].ID, hits[j].ID)
		}
		if q.Desc {
			return c > 0
		}
		return c < 0
	})
	total := int64(len(hits))
	start := q.Offset()
	if start > len(hits) {
		start = len(hits)
	}
	end := start + q.Limit
	if end > len(hits) {
		end = len(hits)
	}
	page := make([]*model.Video, 0, end-start)
	for _, v := range hits[start:end] {
		page = append(page, r.withOwner(v))
	}
	return page, total, nil
}

func (r *Videos) Create(_ context.Context, v *model.Video) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("videos.Create"); err != nil {
		return err
	}
	id, at := r.m.nextID()
	v.ID, v.CreatedAt, v.UpdatedAt = id, at, at
	stored := *v
	stored.Owner = nil
	r.m.videos[id] = &stored
	return nil
}

func (r *Videos) Get(_ context.Context, id int64) (*model.Video, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("videos.Get"); err != nil {
		return nil, err
	}
	v, ok := r.m.videos[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return r.withOwner(v), nil
}

func (r *Videos) Exists(_ context.Context, id int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("videos.Exists"); err != nil {
		return false, err
	}
	_, ok := r.m.videos[id]
	return ok, nil
}

func (r *Videos) IncrementViews(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("videos.IncrementViews"); err != nil {
		return err
	}
	v, ok := r.m.videos[id]
	if !ok {
		return model.ErrNotFound
	}
	v.Views++
	return nil
}

func (r *Videos) Update(_ context.Context, id int64, u videodb.VideoUpdate) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("videos.Update"); err != nil {
		return err
	}
	v, ok := r.m.videos[id]
	if !ok {
		return nil
	}
	if u.Title != nil {
		v.Title = *u.Title
	}
	if u.Description != nil {
		v.Description = *u.Description
	}
	if u.Thumbnail != nil {
		v.Thumbnail = *u.Thumbnail
	}
	if u.IsPublished != nil {
		v.IsPublished = *u.IsPublished
	}
	return nil
}

func (r *Videos) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("videos.Delete"); err != nil {
		return err
	}
	if _, ok := r.m.videos[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.m.videos, id)
	return nil
}

type Tweets struct{ m *Memory }

func (r *Tweets) Create(_ context.Context, t *model.Tweet) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("tweets.Create"); err != nil {
		return err
	}
	id, at := r.m.nextID()
	t.ID, t.CreatedAt, t.UpdatedAt = id, at, at
	stored := *t
	r.m.tweets[id] = &stored
	return nil
}

func (r *Tweets) Get(_ context.Context, id int64) (*model.Tweet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("tweets.Get"); err != nil {
		return nil, err
	}
	t, ok := r.m.tweets[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (r *Tweets) Exists(_ context.Context, id int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("tweets.Exists"); err != nil {
		return false, err
	}
	_, ok := r.m.tweets[id]
	return ok, nil
}

func (r *Tweets) ListByOwner(_ context.Context, ownerID int64) ([]*model.Tweet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("tweets.ListByOwner"); err != nil {
		return nil, err
	}
	out := make([]*model.Tweet, 0)
	for _, t := range r.m.tweets {
		if t.OwnerID == ownerID {
			c := *t
			c.Owner = r.m.summary(ownerID)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Tweets) UpdateContent(_ context.Context, id int64, content string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("tweets.UpdateContent"); err != nil {
		return err
	}
	if t, ok := r.m.tweets[id]; ok {
		t.Content = content
	}
	return nil
}

func (r *Tweets) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("tweets.Delete"); err != nil {
		return err
	}
	delete(r.m.tweets, id)
	return nil
}

type Playlists struct{ m *Memory }

func clonePlaylist(p *model.Playlist) *model.Playlist {
	out := *p
	out.Videos = append(model.IDs{}, p.Videos...)
	return &out
}

func (r *Playlists) Create(_ context.Context, p *model.Playlist) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("playlists.Create"); err != nil {
		return err
	}
	id, at := r.m.nextID()
	p.ID, p.CreatedAt, p.UpdatedAt = id, at, at
	if p.Videos == nil {
		p.Videos = model.IDs{}
	}
	r.m.playlists[id] = clonePlaylist(p)
	return nil
}

func (r *Playlists) Get(_ context.Context, id int64) (*model.Playlist, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("playlists.Get"); err != nil {
		return nil, err
	}
	p, ok := r.m.playlists[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return clonePlaylist(p), nil
}

func (r *Playlists) ListByOwner(_ context.Context, ownerID int64) ([]*model.Playlist, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("playlists.ListByOwner"); err != nil {
		return nil, err
	}
	out := make([]*model.Playlist, 0)
	for _, p := range r.m.playlists {
		if p.OwnerID == ownerID {
			out = append(out, clonePlaylist(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Playlists) Update(_ context.Context, id int64, name, description *string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("playlists.Update"); err != nil {
		return err
	}
	p, ok := r.m.playlists[id]
	if !ok {
		return nil
	}
	if name != nil {
		p.Name = *name
	}
	if description != nil {
		p.Description = *description
	}
	return nil
}

func (r *Playlists) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("playlists.Delete"); err != nil {
		return err
	}
	delete(r.m.playlists, id)
	return nil
}

func (r *Playlists) AddVideo(_ context.Context, playlistID, videoID int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("playlists.AddVideo"); err != nil {
		return err
	}
	p, ok := r.m.playlists[playlistID]
	if !ok {
		return model.ErrNotFound
	}
	if p.Videos.Contains(videoID) {
		return model.ErrDuplicate
	}
	p.Videos = append(p.Videos, videoID)
	return nil
}

func (r *Playlists) RemoveVideo(_ context.Context, playlistID, videoID int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("playlists.RemoveVideo"); err != nil {
		return err
	}
	if p, ok := r.m.playlists[playlistID]; ok {
		p.Videos = without(p.Videos, videoID)
	}
	return nil
}

func (r *Playlists) RemoveVideoEverywhere(_ context.Context, videoID int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("playlists.RemoveVideoEverywhere"); err != nil {
		return 0, err
	}
	var n int64
	for _, p := range r.m.playlists {
		if p.Videos.Contains(videoID) {
			p.Videos = without(p.Videos, videoID)
			n++
		}
	}
	return n, nil
}

func without(ids model.IDs, id int64) model.IDs {
	out := make(model.IDs, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

type Comments struct{ m *Memory }

func (r *Comments) Exists(_ context.Context, id int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("comments.Exists"); err != nil {
		return false, err
	}
	_, ok := r.m.comments[id]
	return ok, nil
}

type Likes struct{ m *Memory }

var _ toggle.Store[model.LikeKey] = (*Likes)(nil)

func likeTarget(l *model.Like) (model.LikeTarget, int64) {
	switch {
	case l.VideoID != nil:
		return model.LikeVideo, *l.VideoID
	case l.CommentID != nil:
		return model.LikeComment, *l.CommentID
	case l.TweetID != nil:
		return model.LikeTweet, *l.TweetID
	}
	return "", 0
}

func (r *Likes) find(key model.LikeKey) (int64, bool) {
	for id, l := range r.m.likes {
		kind, targetID := likeTarget(l)
		if l.LikedBy == key.UserID && kind == key.Target && targetID == key.TargetID {
			return id, true
		}
	}
	return 0, false
}

func (r *Likes) Find(_ context.Context, key model.LikeKey) (int64, bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("likes.Find"); err != nil {
		return 0, false, err
	}
	id, ok := r.find(key)
	return id, ok, nil
}

func (r *Likes) Create(_ context.Context, key model.LikeKey) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("likes.Create"); err != nil {
		return err
	}
	if _, ok := r.find(key); ok {
		return toggle.ErrExists
	}
	l := model.NewLike(key)
	l.ID, l.CreatedAt = r.m.nextID()
	r.m.likes[l.ID] = l
	return nil
}

func (r *Likes) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("likes.Delete"); err != nil {
		return err
	}
	delete(r.m.likes, id)
	return nil
}

func (r *Likes) LikedVideos(_ context.Context, userID int64) ([]*model.Like, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("likes.LikedVideos"); err != nil {
		return nil, err
	}
	out := make([]*model.Like, 0)
	for _, l := range r.m.likes {
		if l.LikedBy != userID || l.VideoID == nil {
			continue
		}
		c := *l
		if v, ok := r.m.videos[*l.VideoID]; ok {
			vc := *v
			vc.Owner = r.m.summary(v.OwnerID)
			c.Video = &vc
		}
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Likes) DeleteByVideo(_ context.Context, videoID int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("likes.DeleteByVideo"); err != nil {
		return 0, err
	}
	var n int64
	for id, l := range r.m.likes {
		if l.VideoID != nil && *l.VideoID == videoID {
			delete(r.m.likes, id)
			n++
		}
	}
	return n, nil
}

type Subscriptions struct{ m *Memory }

var _ toggle.Store[model.SubscriptionKey] = (*Subscriptions)(nil)

func (r *Subscriptions) find(key model.SubscriptionKey) (int64, bool) {
	for id, s := range r.m.subs {
		if s.SubscriberID == key.SubscriberID && s.ChannelID == key.ChannelID {
			return id, true
		}
	}
	return 0, false
}

func (r *Subscriptions) Find(_ context.Context, key model.SubscriptionKey) (int64, bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("subscriptions.Find"); err != nil {
		return 0, false, err
	}
	id, ok := r.find(key)
	return id, ok, nil
}

func (r *Subscriptions) Create(_ context.Context, key model.SubscriptionKey) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("subscriptions.Create"); err != nil {
		return err
	}
	if _, ok := r.find(key); ok {
		return toggle.ErrExists
	}
	id, at := r.m.nextID()
	r.m.subs[id] = &model.Subscription{ID: id, SubscriberID: key.SubscriberID, ChannelID: key.ChannelID, CreatedAt: at}
	return nil
}

func (r *Subscriptions) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("subscriptions.Delete"); err != nil {
		return err
	}
	delete(r.m.subs, id)
	return nil
}

func (r *Subscriptions) list(match func(*model.Subscription) bool, join func(*model.Subscription)) []*model.Subscription {
	out := make([]*model.Subscription, 0)
	for _, s := range r.m.subs {
		if match(s) {
			c := *s
			join(&c)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *Subscriptions) Subscribers(_ context.Context, channelID int64) ([]*model.Subscription, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("subscriptions.Subscribers"); err != nil {
		return nil, err
	}
	return r.list(
		func(s *model.Subscription) bool { return s.ChannelID == channelID },
		func(s *model.Subscription) { s.Subscriber = r.m.summary(s.SubscriberID) },
	), nil
}

func (r *Subscriptions) Channels(_ context.Context, subscriberID int64) ([]*model.Subscription, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter("subscriptions.Channels"); err != nil {
		return nil, err
	}
	return r.list(
		func(s *model.Subscription) bool { return s.SubscriberID == subscriberID },
		func(s *model.Subscription) { s.Channel = r.m.summary(s.ChannelID) },
	), nil
}
