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

type TweetStore interface {
	Create(ctx context.Context, t *model.Tweet) error
	Get(ctx context.Context, tweetID int64) (*model.Tweet, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Tweet, error)
	UpdateContent(ctx context.Context, tweetID int64, content string) error
	Delete(ctx context.Context, tweetID int64) error
}

type UserDirectory interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

var (
	errContentRequired = errno.InvalidArgumentErr.WithMessage("Content is required")
	errInvalidTweet    = errno.InvalidArgumentErr.WithMessage("Invalid tweet ID")
	errTweetNotFound   = errno.NotFoundErr.WithMessage("Tweet not found")
)

type TweetService struct {
	tweets TweetStore
	users  UserDirectory
}

func NewTweetService(tweets TweetStore, users UserDirectory) *TweetService {
	return &TweetService{tweets: tweets, users: users}
}

func (s *TweetService) CreateTweet(ctx context.Context, actorID int64, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errContentRequired
	}
	if err := guard.Authenticated(actorID); err != nil {
		return nil, err
	}
	t := &model.Tweet{Content: content, OwnerID: actorID}
	if err := s.tweets.Create(ctx, t); err != nil {
		return nil, errno.Internal(ctx, err, "create tweet")
	}
	return t, nil
}

func (s *TweetService) GetUserTweets(ctx context.Context, rawUserID string) ([]*model.Tweet, error) {
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
	tweets, err := s.tweets.ListByOwner(ctx, userID)
	if err != nil {
		return nil, errno.Internal(ctx, err, "list tweets")
	}
	return tweets, nil
}

// owned loads a tweet the actor may change.
func (s *TweetService) owned(ctx context.Context, actorID int64, rawID, action string) (*model.Tweet, error) {
	tweetID, ok := utils.ParseID(rawID)
	if !ok {
		return nil, errInvalidTweet
	}
	t, err := s.tweets.Get(ctx, tweetID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errTweetNotFound
		}
		return nil, errno.Internal(ctx, err, "get tweet")
	}
	if err := guard.Owner(t.OwnerID, actorID, action); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TweetService) UpdateTweet(ctx context.Context, actorID int64, rawID, content string) (*model.Tweet, error) {
	t, err := s.owned(ctx, actorID, rawID, "update this tweet")
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errContentRequired
	}
	if err := s.tweets.UpdateContent(ctx, t.ID, content); err != nil {
		return nil, errno.Internal(ctx, err, "update tweet")
	}
	t.Content = content
	return t, nil
}

func (s *TweetService) DeleteTweet(ctx context.Context, actorID int64, rawID string) error {
	t, err := s.owned(ctx, actorID, rawID, "delete this tweet")
	if err != nil {
		return err
	}
	if err := s.tweets.Delete(ctx, t.ID); err != nil {
		return errno.Internal(ctx, err, "delete tweet")
	}
	return nil
}
