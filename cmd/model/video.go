package model

import (
	"time"

	"gorm.io/gorm"

	"VidTube.com/pkg/utils"
)

type Video struct {
	ID          int64         `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	Title       string        `gorm:"size:255;not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	VideoFile   string        `gorm:"size:1024;not null" json:"video_file"`
	Thumbnail   string        `gorm:"size:1024;not null" json:"thumbnail"`
	Duration    int64         `gorm:"not null;default:0" json:"duration"`
	Views       int64         `gorm:"not null;default:0;index" json:"views"`
	IsPublished bool          `gorm:"not null;index" json:"is_published"`
	OwnerID     int64         `gorm:"not null;index" json:"owner_id,string"`
	Owner       *OwnerSummary `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt   time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (v *Video) BeforeCreate(*gorm.DB) error {
	if v.ID == 0 {
		v.ID = utils.NextID()
	}
	return nil
}
