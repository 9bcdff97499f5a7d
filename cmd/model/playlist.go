package model

import (
	"time"

	"gorm.io/gorm"

	"VidTube.com/pkg/utils"
)

type Playlist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     int64     `gorm:"not null;index" json:"owner_id,string"`
	Videos      IDs       `gorm:"-" json:"videos"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Playlist) BeforeCreate(*gorm.DB) error {
	if p.ID == 0 {
		p.ID = utils.NextID()
	}
	return nil
}

// PlaylistVideo is one ordered membership row of a playlist.
type PlaylistVideo struct {
	PlaylistID int64 `gorm:"primaryKey;autoIncrement:false"`
	VideoID    int64 `gorm:"primaryKey;autoIncrement:false;index"`
	Position   int64 `gorm:"not null"`
	CreatedAt  time.Time
}
