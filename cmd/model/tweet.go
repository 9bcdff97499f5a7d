package model

import (
	"time"

	"gorm.io/gorm"

	"VidTube.com/pkg/utils"
)

type Tweet struct {
	ID        int64         `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	Content   string        `gorm:"type:text;not null" json:"content"`
	OwnerID   int64         `gorm:"not null;index" json:"owner_id,string"`
	Owner     *OwnerSummary `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (t *Tweet) BeforeCreate(*gorm.DB) error {
	if t.ID == 0 {
		t.ID = utils.NextID()
	}
	return nil
}
