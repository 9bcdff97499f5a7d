package db

import (
	"context"

	"gorm.io/gorm"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/database"
)

type PlaylistStore struct {
	db *gorm.DB
}

func NewPlaylistStore(db *gorm.DB) *PlaylistStore {
	return &PlaylistStore{db: db}
}

func (s *PlaylistStore) Create(ctx context.Context, p *model.Playlist) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return database.Translate(err, "create playlist %q", p.Name)
	}
	if p.Videos == nil {
		p.Videos = model.IDs{}
	}
	return nil
}

func (s *PlaylistStore) Get(ctx context.Context, playlistID int64) (*model.Playlist, error) {
	var p model.Playlist
	if err := s.db.WithContext(ctx).Where("id = ?", playlistID).Take(&p).Error; err != nil {
		return nil, database.Translate(err, "get playlist %d", playlistID)
	}
	if err := s.fillVideos(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PlaylistStore) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Playlist, error) {
	playlists := make([]*model.Playlist, 0)
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&playlists).Error; err != nil {
		return nil, database.Translate(err, "list playlists of %d", ownerID)
	}
	for _, p := range playlists {
		if err := s.fillVideos(ctx, p); err != nil {
			return nil, err
		}
	}
	return playlists, nil
}

// fillVideos loads the member ids in insertion order.
func (s *PlaylistStore) fillVideos(ctx context.Context, p *model.Playlist) error {
	ids := make([]int64, 0)
	if err := s.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", p.ID).
		Order("position ASC").
		Pluck("video_id", &ids).Error; err != nil {
		return database.Translate(err, "list videos of playlist %d", p.ID)
	}
	p.Videos = model.IDs(ids)
	return nil
}

func (s *PlaylistStore) Update(ctx context.Context, playlistID int64, name, description *string) error {
	cols := make(map[string]interface{}, 2)
	if name != nil {
		cols["name"] = *name
	}
	if description != nil {
		cols["description"] = *description
	}
	if len(cols) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", playlistID).
		Updates(cols).Error; err != nil {
		return database.Translate(err, "update playlist %d", playlistID)
	}
	return nil
}

// Delete removes the playlist and its membership rows.
func (s *PlaylistStore) Delete(ctx context.Context, playlistID int64) error {
	if err := s.db.WithContext(ctx).Where("playlist_id = ?", playlistID).
		Delete(&model.PlaylistVideo{}).Error; err != nil {
		return database.Translate(err, "delete videos of playlist %d", playlistID)
	}
	if err := s.db.WithContext(ctx).Where("id = ?", playlistID).Delete(&model.Playlist{}).Error; err != nil {
		return database.Translate(err, "delete playlist %d", playlistID)
	}
	return nil
}

// AddVideo appends videoID. A video already in the playlist yields model.ErrDuplicate.
func (s *PlaylistStore) AddVideo(ctx context.Context, playlistID, videoID int64) error {
	var last *int64
	if err := s.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).
		Select("MAX(position)").Scan(&last).Error; err != nil {
		return database.Translate(err, "last position of playlist %d", playlistID)
	}
	pos := int64(1)
	if last != nil {
		pos = *last + 1
	}
	if err := s.db.WithContext(ctx).Create(&model.PlaylistVideo{
		PlaylistID: playlistID,
		VideoID:    videoID,
		Position:   pos,
	}).Error; err != nil {
		return database.Translate(err, "add video %d to playlist %d", videoID, playlistID)
	}
	return nil
}

// RemoveVideo is a no-op when the video is not a member.
func (s *PlaylistStore) RemoveVideo(ctx context.Context, playlistID, videoID int64) error {
	if err := s.db.WithContext(ctx).Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{}).Error; err != nil {
		return database.Translate(err, "remove video %d from playlist %d", videoID, playlistID)
	}
	return nil
}

// RemoveVideoEverywhere drops videoID from every playlist and reports how many rows went.
func (s *PlaylistStore) RemoveVideoEverywhere(ctx context.Context, videoID int64) (int64, error) {
	res := s.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&model.PlaylistVideo{})
	if res.Error != nil {
		return 0, database.Translate(res.Error, "remove video %d from playlists", videoID)
	}
	return res.RowsAffected, nil
}
