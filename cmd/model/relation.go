package model

import (
	"time"

	"gorm.io/gorm"

	"VidTube.com/pkg/utils"
)

// Subscription: subscriber follows channel. Both are users.
type Subscription struct {
	ID           int64         `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	SubscriberID int64         `gorm:"not null;uniqueIndex:idx_subscription,priority:1" json:"subscriber_id,string"`
	ChannelID    int64         `gorm:"not null;uniqueIndex:idx_subscription,priority:2;index" json:"channel_id,string"`
	Subscriber   *OwnerSummary `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	Channel      *OwnerSummary `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (s *Subscription) BeforeCreate(*gorm.DB) error {
	if s.ID == 0 {
		s.ID = utils.NextID()
	}
	return nil
}

type SubscriptionKey struct {
	SubscriberID int64
	ChannelID    int64
}
