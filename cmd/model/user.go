package model

import (
	"time"

	"gorm.io/gorm"

	"VidTube.com/pkg/utils"
)

type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	Username   string    `gorm:"size:64;uniqueIndex" json:"username"`
	Email      string    `gorm:"size:128;uniqueIndex" json:"email"`
	FullName   string    `gorm:"size:128" json:"full_name"`
	Avatar     string    `gorm:"size:512" json:"avatar"`
	CoverImage string    `gorm:"size:512" json:"cover_image"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == 0 {
		u.ID = utils.NextID()
	}
	return nil
}

// OwnerSummary is the projection of a user joined onto listed entities.
type OwnerSummary struct {
	ID       int64  `gorm:"primaryKey" json:"id,string"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

func (OwnerSummary) TableName() string { return "users" }

// OwnerSummaryColumns are selected when preloading an OwnerSummary.
var OwnerSummaryColumns = []string{"id", "username", "full_name", "avatar"}

func (u *User) Summary() *OwnerSummary {
	return &OwnerSummary{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
}
