package service

import "context"

type likeDeleter interface {
	DeleteByVideo(ctx context.Context, videoID int64) (int64, error)
}

type playlistRemover interface {
	RemoveVideoEverywhere(ctx context.Context, videoID int64) (int64, error)
}

type likeCleaner struct{ likes likeDeleter }

func (likeCleaner) Name() string { return "likes" }

func (c likeCleaner) RemoveVideo(ctx context.Context, videoID int64) (int64, error) {
	return c.likes.DeleteByVideo(ctx, videoID)
}

type playlistCleaner struct{ playlists playlistRemover }

func (playlistCleaner) Name() string { return "playlist entries" }

func (c playlistCleaner) RemoveVideo(ctx context.Context, videoID int64) (int64, error) {
	return c.playlists.RemoveVideoEverywhere(ctx, videoID)
}

// LikeCleaner adapts the like store to a delete cascade.
func LikeCleaner(likes likeDeleter) ReferenceCleaner { return likeCleaner{likes: likes} }

// PlaylistCleaner adapts the playlist store to a delete cascade.
func PlaylistCleaner(playlists playlistRemover) ReferenceCleaner {
	return playlistCleaner{playlists: playlists}
}
