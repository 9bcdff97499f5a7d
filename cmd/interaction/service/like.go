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

type LikeStore interface {
	toggle.Store[model.LikeKey]
	LikedVideos(ctx context.Context, userID int64) ([]*model.Like, error)
}

// Directory answers whether a like target exists.
type Directory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type target struct {
	kind     model.LikeTarget
	dir      Directory
	invalid  errno.ErrNo
	notFound errno.ErrNo
}

type LikeService struct {
	engine   *toggle.Engine
	likes    LikeStore
	videos   target
	comments target
	tweets   target
}

func NewLikeService(engine *toggle.Engine, likes LikeStore, videos, comments, tweets Directory) *LikeService {
	return &LikeService{
		engine: engine,
		likes:  likes,
		videos: target{model.LikeVideo, videos,
			errno.InvalidArgumentErr.WithMessage("Invalid video ID"), errno.NotFoundErr.WithMessage("Video not found")},
		comments: target{model.LikeComment, comments,
			errno.InvalidArgumentErr.WithMessage("Invalid comment ID"), errno.NotFoundErr.WithMessage("Comment not found")},
		tweets: target{model.LikeTweet, tweets,
			errno.InvalidArgumentErr.WithMessage("Invalid tweet ID"), errno.NotFoundErr.WithMessage("Tweet not found")},
	}
}

// LockKey names the mutex serialising toggles of one like.
func LockKey(key model.LikeKey) string {
	return fmt.Sprintf("like:%s:%d:%d", key.Target, key.TargetID, key.UserID)
}

// toggle reports whether the actor likes the target afterwards.
func (s *LikeService) toggle(ctx context.Context, actorID int64, t target, rawID string) (bool, error) {
	targetID, ok := utils.ParseID(rawID)
	if !ok {
		return false, t.invalid
	}
	if err := guard.Authenticated(actorID); err != nil {
		return false, err
	}
	exists, err := t.dir.Exists(ctx, targetID)
	if err != nil {
		return false, errno.Internal(ctx, err, "look up "+string(t.kind))
	}
	if !exists {
		return false, t.notFound
	}
	key := model.LikeKey{Target: t.kind, TargetID: targetID, UserID: actorID}
	outcome, err := toggle.Run[model.LikeKey](ctx, s.engine, LockKey(key), s.likes, key)
	if err != nil {
		return false, errno.Internal(ctx, err, "toggle "+string(t.kind)+" like")
	}
	return outcome == toggle.Added, nil
}

func (s *LikeService) ToggleVideoLike(ctx context.Context, actorID int64, rawVideoID string) (bool, error) {
	return s.toggle(ctx, actorID, s.videos, rawVideoID)
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, actorID int64, rawCommentID string) (bool, error) {
	return s.toggle(ctx, actorID, s.comments, rawCommentID)
}

func (s *LikeService) ToggleTweetLike(ctx context.Context, actorID int64, rawTweetID string) (bool, error) {
	return s.toggle(ctx, actorID, s.tweets, rawTweetID)
}

// GetLikedVideos lists the actor's video likes with the liked video joined.
func (s *LikeService) GetLikedVideos(ctx context.Context, actorID int64) ([]*model.Like, error) {
	if err := guard.Authenticated(actorID); err != nil {
		return nil, err
	}
	likes, err := s.likes.LikedVideos(ctx, actorID)
	if err != nil {
		return nil, errno.Internal(ctx, err, "list liked videos")
	}
	return likes, nil
}
