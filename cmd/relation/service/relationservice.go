package service

import (
	"context"
	"fmt"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/guard"
	"VidTube.com/pkg/toggle"
	"VidTube.com/pkg/utils"
)

type SubscriptionStore interface {
	toggle.Store[model.SubscriptionKey]
	Subscribers(ctx context.Context, channelID int64) ([]*model.Subscription, error)
	Channels(ctx context.Context, subscriberID int64) ([]*model.Subscription, error)
}

type UserDirectory interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

var (
	errInvalidChannel    = errno.InvalidArgumentErr.WithMessage("Invalid channel ID")
	errChannelNotFound   = errno.NotFoundErr.WithMessage("Channel not found")
	errInvalidSubscriber = errno.InvalidArgumentErr.WithMessage("Invalid subscriber ID")
	errSelfSubscription  = errno.InvalidArgumentErr.WithMessage("You cannot subscribe to your own channel")
)

type RelationService struct {
	engine *toggle.Engine
	subs   SubscriptionStore
	users  UserDirectory
}

func NewRelationService(engine *toggle.Engine, subs SubscriptionStore, users UserDirectory) *RelationService {
	return &RelationService{engine: engine, subs: subs, users: users}
}

func (s *RelationService) exists(ctx context.Context, userID int64, notFound error) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return errno.Internal(ctx, err, "look up user")
	}
	if !ok {
		return notFound
	}
	return nil
}

// ToggleSubscription reports whether the actor is subscribed to the channel afterwards.
func (s *RelationService) ToggleSubscription(ctx context.Context, actorID int64, rawChannelID string) (bool, error) {
	channelID, ok := utils.ParseID(rawChannelID)
	if !ok {
		return false, errInvalidChannel
	}
	if err := guard.Authenticated(actorID); err != nil {
		return false, err
	}
	// 不能关注自己
	if channelID == actorID {
		return false, errSelfSubscription
	}
	if err := s.exists(ctx, channelID, errChannelNotFound); err != nil {
		return false, err
	}
	key := model.SubscriptionKey{SubscriberID: actorID, ChannelID: channelID}
	lockKey := fmt.Sprintf("subscription:%d:%d", actorID, channelID)
	outcome, err := toggle.Run[model.SubscriptionKey](ctx, s.engine, lockKey, s.subs, key)
	if err != nil {
		return false, errno.Internal(ctx, err, "toggle subscription")
	}
	return outcome == toggle.Added, nil
}

func (s *RelationService) GetChannelSubscribers(ctx context.Context, rawChannelID string) ([]*model.Subscription, error) {
	channelID, ok := utils.ParseID(rawChannelID)
	if !ok {
		return nil, errInvalidChannel
	}
	if err := s.exists(ctx, channelID, errChannelNotFound); err != nil {
		return nil, err
	}
	subs, err := s.subs.Subscribers(ctx, channelID)
	if err != nil {
		return nil, errno.Internal(ctx, err, "list subscribers")
	}
	return subs, nil
}

func (s *RelationService) GetSubscribedChannels(ctx context.Context, rawSubscriberID string) ([]*model.Subscription, error) {
	subscriberID, ok := utils.ParseID(rawSubscriberID)
	if !ok {
		return nil, errInvalidSubscriber
	}
	if err := s.exists(ctx, subscriberID, errno.NotFoundErr.WithMessage("Subscriber not found")); err != nil {
		return nil, err
	}
	subs, err := s.subs.Channels(ctx, subscriberID)
	if err != nil {
		return nil, errno.Internal(ctx, err, "list subscribed channels")
	}
	return subs, nil
}
