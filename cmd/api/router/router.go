package router

import (
	"context"

	"VidTube.com/cmd/api/handlers/common"
	interactionhandlers "VidTube.com/cmd/api/handlers/interaction"
	mediahandlers "VidTube.com/cmd/api/handlers/media"
	playlisthandlers "VidTube.com/cmd/api/handlers/playlist"
	relationhandlers "VidTube.com/cmd/api/handlers/relation"
	tweethandlers "VidTube.com/cmd/api/handlers/tweet"
	videohandlers "VidTube.com/cmd/api/handlers/video"
	"VidTube.com/cmd/api/middleware"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/route"
)

// Flow control resources of the upload routes.
const (
	ResourcePublishVideo = "video:publish"
	ResourceUpdateVideo  = "video:update"
)

type Handlers struct {
	Video    *videohandlers.Handler
	Tweet    *tweethandlers.Handler
	Playlist *playlisthandlers.Handler
	Like     *interactionhandlers.Handler
	Relation *relationhandlers.Handler
	Media    *mediahandlers.Handler
}

type Options struct {
	Auth *middleware.Auth
	// Limit wraps a route in flow control; nil disables it.
	Limit func(resource string) app.HandlerFunc
}

func (o Options) limited(resource string, h app.HandlerFunc) []app.HandlerFunc {
	chain := []app.HandlerFunc{o.Auth.Required()}
	if o.Limit != nil {
		chain = append(chain, o.Limit(resource))
	}
	return append(chain, h)
}

// Register mounts every route under /api/v1.
func Register(r *route.Engine, hs Handlers, opts Options) {
	v1 := r.Group("/api/v1")
	v1.GET("/healthz", func(ctx context.Context, c *app.RequestContext) {
		common.Ok(c, "OK", common.Empty)
	})
	v1.GET("/media/:kind/upload/*path", hs.Media.Serve)

	required := opts.Auth.Required()
	optional := opts.Auth.Optional()

	videos := v1.Group("/videos")
	videos.GET("", optional, hs.Video.ListVideos)
	videos.POST("", opts.limited(ResourcePublishVideo, hs.Video.PublishVideo)...)
	videos.GET("/:videoId", optional, hs.Video.GetVideoByID)
	videos.PATCH("/:videoId", opts.limited(ResourceUpdateVideo, hs.Video.UpdateVideo)...)
	videos.DELETE("/:videoId", required, hs.Video.DeleteVideo)
	videos.PATCH("/toggle/publish/:videoId", required, hs.Video.TogglePublishStatus)

	tweets := v1.Group("/tweets", required)
	tweets.POST("", hs.Tweet.CreateTweet)
	tweets.GET("/user/:userId", hs.Tweet.GetUserTweets)
	tweets.PATCH("/:tweetId", hs.Tweet.UpdateTweet)
	tweets.DELETE("/:tweetId", hs.Tweet.DeleteTweet)

	playlists := v1.Group("/playlist", required)
	playlists.POST("", hs.Playlist.CreatePlaylist)
	playlists.GET("/user/:userId", hs.Playlist.GetUserPlaylists)
	playlists.GET("/:playlistId", hs.Playlist.GetPlaylistByID)
	playlists.PATCH("/:playlistId", hs.Playlist.UpdatePlaylist)
	playlists.DELETE("/:playlistId", hs.Playlist.DeletePlaylist)
	playlists.PATCH("/:playlistId/videos/:videoId", hs.Playlist.AddVideoToPlaylist)
	playlists.DELETE("/:playlistId/videos/:videoId", hs.Playlist.RemoveVideoFromPlaylist)

	likes := v1.Group("/likes", required)
	likes.POST("/toggle/v/:videoId", hs.Like.ToggleVideoLike())
	likes.POST("/toggle/c/:commentId", hs.Like.ToggleCommentLike())
	likes.POST("/toggle/t/:tweetId", hs.Like.ToggleTweetLike())
	likes.GET("/videos", hs.Like.GetLikedVideos)

	subs := v1.Group("/subscriptions", required)
	subs.POST("/c/:channelId", hs.Relation.ToggleSubscription)
	subs.GET("/c/:channelId", hs.Relation.GetChannelSubscribers)
	subs.GET("/u/:subscriberId", hs.Relation.GetSubscribedChannels)
}
