package model

import (
	"time"

	"gorm.io/gorm"

	"VidTube.com/pkg/utils"
)

// Comment is only read here, as a like target.
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	VideoID   int64     `gorm:"not null;index" json:"video_id,string"`
	OwnerID   int64     `gorm:"not null;index" json:"owner_id,string"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == 0 {
		c.ID = utils.NextID()
	}
	return nil
}

type LikeTarget string

const (
	LikeVideo   LikeTarget = "video"
	LikeComment LikeTarget = "comment"
	LikeTweet   LikeTarget = "tweet"
)

// Like references exactly one of video, comment or tweet.
// The unique indexes keep at most one like per (user, target).
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	VideoID   *int64    `gorm:"uniqueIndex:idx_like_video,priority:2" json:"video_id,omitempty,string"`
	CommentID *int64    `gorm:"uniqueIndex:idx_like_comment,priority:2" json:"comment_id,omitempty,string"`
	TweetID   *int64    `gorm:"uniqueIndex:idx_like_tweet,priority:2" json:"tweet_id,omitempty,string"`
	LikedBy   int64     `gorm:"not null;uniqueIndex:idx_like_video,priority:1;uniqueIndex:idx_like_comment,priority:1;uniqueIndex:idx_like_tweet,priority:1" json:"liked_by,string"`
	Video     *Video    `gorm:"foreignKey:VideoID" json:"video,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *Like) BeforeCreate(*gorm.DB) error {
	if l.ID == 0 {
		l.ID = utils.NextID()
	}
	return nil
}

// LikeKey scopes a like to (user, target).
type LikeKey struct {
	Target   LikeTarget
	TargetID int64
	UserID   int64
}

// NewLike builds the record for key with only the matching target column set.
func NewLike(key LikeKey) *Like {
	l := &Like{LikedBy: key.UserID}
	id := key.TargetID
	switch key.Target {
	case LikeVideo:
		l.VideoID = &id
	case LikeComment:
		l.CommentID = &id
	case LikeTweet:
		l.TweetID = &id
	}
	return l
}

// Column is the like column holding the target id.
func (t LikeTarget) Column() string {
	switch t {
	case LikeComment:
		return "comment_id"
	case LikeTweet:
		return "tweet_id"
	default:
		return "video_id"
	}
}
