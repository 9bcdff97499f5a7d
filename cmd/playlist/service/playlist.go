package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/guard"
	"VidTube.com/pkg/utils"
)

type PlaylistStore interface {
	Create(ctx context.Context, p *model.Playlist) error
	Get(ctx context.Context, playlistID int64) (*model.Playlist, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Playlist, error)
	Update(ctx context.Context, playlistID int64, name, description *string) error
	Delete(ctx context.Context, playlistID int64) error
	AddVideo(ctx context.Context, playlistID, videoID int64) error
	RemoveVideo(ctx context.Context, playlistID, videoID int64) error
}

// Directory answers whether an entity exists.
type Directory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

var (
	errInvalidPlaylist     = errno.InvalidArgumentErr.WithMessage("Invalid playlist ID")
	errInvalidMembership   = errno.InvalidArgumentErr.WithMessage("Invalid playlist or video ID")
	errPlaylistNotFound    = errno.NotFoundErr.WithMessage("Playlist not found")
	errAlreadyInPlaylist   = errno.InvalidArgumentErr.WithMessage("Video already in playlist")
	errNothingToUpdate     = errno.InvalidArgumentErr.WithMessage("Name or description is required")
	errPlaylistNameMissing = errno.InvalidArgumentErr.WithMessage("Playlist name is required")
)

type PlaylistService struct {
	playlists PlaylistStore
	users     Directory
	videos    Directory
}

func NewPlaylistService(playlists PlaylistStore, users, videos Directory) *PlaylistService {
	return &PlaylistService{playlists: playlists, users: users, videos: videos}
}

func (s *PlaylistService) CreatePlaylist(ctx context.Context, actorID int64, name, description string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errPlaylistNameMissing
	}
	if err := guard.Authenticated(actorID); err != nil {
		return nil, err
	}
	p := &model.Playlist{Name: name, Description: strings.TrimSpace(description), OwnerID: actorID}
	if err := s.playlists.Create(ctx, p); err != nil {
		return nil, errno.Internal(ctx, err, "create playlist")
	}
	return p, nil
}

func (s *PlaylistService) GetUserPlaylists(ctx context.Context, rawUserID string) ([]*model.Playlist, error) {
	userID, ok := utils.ParseID(rawUserID)
	if !ok {
		return nil, errno.InvalidArgumentErr.WithMessage("Invalid user ID")
	}
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, errno.Internal(ctx, err, "look up user")
	}
	if !exists {
		return nil, errno.NotFoundErr.WithMessage("User not found")
	}
	playlists, err := s.playlists.ListByOwner(ctx, userID)
	if err != nil {
		return nil, errno.Internal(ctx, err, "list playlists")
	}
	return playlists, nil
}

func (s *PlaylistService) load(ctx context.Context, playlistID int64) (*model.Playlist, error) {
	p, err := s.playlists.Get(ctx, playlistID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errPlaylistNotFound
		}
		return nil, errno.Internal(ctx, err, "get playlist")
	}
	return p, nil
}

func (s *PlaylistService) GetPlaylistByID(ctx context.Context, rawID string) (*model.Playlist, error) {
	playlistID, ok := utils.ParseID(rawID)
	if !ok {
		return nil, errInvalidPlaylist
	}
	return s.load(ctx, playlistID)
}

// member resolves both ids of a membership change and checks ownership of the playlist.
func (s *PlaylistService) member(ctx context.Context, actorID int64, rawPlaylistID, rawVideoID, action string) (*model.Playlist, int64, error) {
	playlistID, ok := utils.ParseID(rawPlaylistID)
	if !ok {
		return nil, 0, errInvalidMembership
	}
	videoID, ok := utils.ParseID(rawVideoID)
	if !ok {
		return nil, 0, errInvalidMembership
	}
	p, err := s.load(ctx, playlistID)
	if err != nil {
		return nil, 0, err
	}
	if err := guard.Owner(p.OwnerID, actorID, action); err != nil {
		return nil, 0, err
	}
	return p, videoID, nil
}

func (s *PlaylistService) AddVideoToPlaylist(ctx context.Context, actorID int64, rawPlaylistID, rawVideoID string) (*model.Playlist, error) {
	p, videoID, err := s.member(ctx, actorID, rawPlaylistID, rawVideoID, "add video to this playlist")
	if err != nil {
		return nil, err
	}
	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, errno.Internal(ctx, err, "look up video")
	}
	if !exists {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	if p.Videos.Contains(videoID) {
		return nil, errAlreadyInPlaylist
	}
	if err := s.playlists.AddVideo(ctx, p.ID, videoID); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, errAlreadyInPlaylist
		}
		return nil, errno.Internal(ctx, err, "add video to playlist")
	}
	return s.load(ctx, p.ID)
}

func (s *PlaylistService) RemoveVideoFromPlaylist(ctx context.Context, actorID int64, rawPlaylistID, rawVideoID string) (*model.Playlist, error) {
	p, videoID, err := s.member(ctx, actorID, rawPlaylistID, rawVideoID, "remove video from this playlist")
	if err != nil {
		return nil, err
	}
	if err := s.playlists.RemoveVideo(ctx, p.ID, videoID); err != nil {
		return nil, errno.Internal(ctx, err, "remove video from playlist")
	}
	return s.load(ctx, p.ID)
}

func (s *PlaylistService) owned(ctx context.Context, actorID int64, rawID, action string) (*model.Playlist, error) {
	playlistID, ok := utils.ParseID(rawID)
	if !ok {
		return nil, errInvalidPlaylist
	}
	p, err := s.load(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := guard.Owner(p.OwnerID, actorID, action); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePlaylist replaces the non-blank fields; at least one must be given.
func (s *PlaylistService) UpdatePlaylist(ctx context.Context, actorID int64, rawID, name, description string) (*model.Playlist, error) {
	p, err := s.owned(ctx, actorID, rawID, "update this playlist")
	if err != nil {
		return nil, err
	}
	var namePtr, descPtr *string
	if name = strings.TrimSpace(name); name != "" {
		namePtr = &name
	}
	if description = strings.TrimSpace(description); description != "" {
		descPtr = &description
	}
	if namePtr == nil && descPtr == nil {
		return nil, errNothingToUpdate
	}
	if err := s.playlists.Update(ctx, p.ID, namePtr, descPtr); err != nil {
		return nil, errno.Internal(ctx, err, "update playlist")
	}
	return s.load(ctx, p.ID)
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, actorID int64, rawID string) error {
	p, err := s.owned(ctx, actorID, rawID, "delete this playlist")
	if err != nil {
		return err
	}
	if err := s.playlists.Delete(ctx, p.ID); err != nil {
		return errno.Internal(ctx, err, "delete playlist")
	}
	return nil
}
