package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/database"
	"VidTube.com/pkg/toggle"
)

type SubscriptionStore struct {
	db *gorm.DB
}

var _ toggle.Store[model.SubscriptionKey] = (*SubscriptionStore)(nil)

func NewSubscriptionStore(db *gorm.DB) *SubscriptionStore {
	return &SubscriptionStore{db: db}
}

func (s *SubscriptionStore) Find(ctx context.Context, key model.SubscriptionKey) (int64, bool, error) {
	var sub model.Subscription
	err := s.db.WithContext(ctx).Select("id").
		Where("subscriber_id = ? AND channel_id = ?", key.SubscriberID, key.ChannelID).
		Take(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, database.Translate(err, "find subscription %d->%d", key.SubscriberID, key.ChannelID)
	}
	return sub.ID, true, nil
}

func (s *SubscriptionStore) Create(ctx context.Context, key model.SubscriptionKey) error {
	err := database.Translate(s.db.WithContext(ctx).Create(&model.Subscription{
		SubscriberID: key.SubscriberID,
		ChannelID:    key.ChannelID,
	}).Error, "create subscription %d->%d", key.SubscriberID, key.ChannelID)
	if errors.Is(err, model.ErrDuplicate) {
		return toggle.ErrExists
	}
	return err
}

func (s *SubscriptionStore) Delete(ctx context.Context, subscriptionID int64) error {
	if err := s.db.WithContext(ctx).Where("id = ?", subscriptionID).Delete(&model.Subscription{}).Error; err != nil {
		return database.Translate(err, "delete subscription %d", subscriptionID)
	}
	return nil
}

func summary(tx *gorm.DB) *gorm.DB { return tx.Select(model.OwnerSummaryColumns) }

// Subscribers lists who follows channelID, newest first.
func (s *SubscriptionStore) Subscribers(ctx context.Context, channelID int64) ([]*model.Subscription, error) {
	subs := make([]*model.Subscription, 0)
	if err := s.db.WithContext(ctx).Preload("Subscriber", summary).
		Where("channel_id = ?", channelID).
		Order("created_at DESC").Order("id DESC").
		Find(&subs).Error; err != nil {
		return nil, database.Translate(err, "list subscribers of %d", channelID)
	}
	return subs, nil
}

// Channels lists what subscriberID follows, newest first.
func (s *SubscriptionStore) Channels(ctx context.Context, subscriberID int64) ([]*model.Subscription, error) {
	subs := make([]*model.Subscription, 0)
	if err := s.db.WithContext(ctx).Preload("Channel", summary).
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").Order("id DESC").
		Find(&subs).Error; err != nil {
		return nil, database.Translate(err, "list channels of %d", subscriberID)
	}
	return subs, nil
}
