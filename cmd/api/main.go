package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	interactionhandlers "VidTube.com/cmd/api/handlers/interaction"
	mediahandlers "VidTube.com/cmd/api/handlers/media"
	playlisthandlers "VidTube.com/cmd/api/handlers/playlist"
	relationhandlers "VidTube.com/cmd/api/handlers/relation"
	tweethandlers "VidTube.com/cmd/api/handlers/tweet"
	videohandlers "VidTube.com/cmd/api/handlers/video"
	"VidTube.com/cmd/api/middleware"
	"VidTube.com/cmd/api/router"
	interactiondb "VidTube.com/cmd/interaction/dal/db"
	interactionservice "VidTube.com/cmd/interaction/service"
	playlistdb "VidTube.com/cmd/playlist/dal/db"
	playlistservice "VidTube.com/cmd/playlist/service"
	relationdb "VidTube.com/cmd/relation/dal/db"
	relationservice "VidTube.com/cmd/relation/service"
	tweetdb "VidTube.com/cmd/tweet/dal/db"
	tweetservice "VidTube.com/cmd/tweet/service"
	userdb "VidTube.com/cmd/user/dal/db"
	videodb "VidTube.com/cmd/video/dal/db"
	videoservice "VidTube.com/cmd/video/service"
	"VidTube.com/config"
	"VidTube.com/config/jaeger"
	"VidTube.com/pkg/database"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/lock"
	"VidTube.com/pkg/oss"
	"VidTube.com/pkg/toggle"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
	"gorm.io/gorm"
)

func logLevel(s string) hlog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return hlog.LevelTrace
	case "debug":
		return hlog.LevelDebug
	case "warn":
		return hlog.LevelWarn
	case "error":
		return hlog.LevelError
	default:
		return hlog.LevelInfo
	}
}

// newLocker serialises toggles through redis when it is enabled.
func newLocker(ctx context.Context, c config.Redis) toggle.Locker {
	if !c.Enabled {
		return toggle.NopLocker()
	}
	client, err := lock.NewRedisClient(ctx, c.Addr, c.Password, c.DB)
	if err != nil {
		hlog.Warnf("redis unavailable, toggles rely on unique indexes: %v", err)
		return toggle.NopLocker()
	}
	return lock.NewRedisLocker(client, 0)
}

func newMediaStore(c config.Minio) (*oss.MinioStore, error) {
	client, err := oss.NewMinioClient(oss.ClientOptions{
		Endpoint:  c.Endpoint,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		UseSSL:    c.UseSSL,
		Region:    c.Region,
	})
	if err != nil {
		return nil, err
	}
	return oss.NewMinioStore(client, oss.StoreOptions{
		VideoBucket:   c.VideoBucket,
		ImageBucket:   c.ImageBucket,
		Folder:        c.Folder,
		Region:        c.Region,
		PublicBaseURL: c.PublicBaseURL,
	}), nil
}

func newHandlers(db *gorm.DB, media *oss.MinioStore, locker toggle.Locker, tempDir string) router.Handlers {
	users := userdb.NewUserStore(db)
	videos := videodb.NewVideoStore(db)
	tweets := tweetdb.NewTweetStore(db)
	playlists := playlistdb.NewPlaylistStore(db)
	likes := interactiondb.NewLikeStore(db)
	comments := interactiondb.NewCommentStore(db)
	subs := relationdb.NewSubscriptionStore(db)
	engine := toggle.NewEngine(locker)

	videoSvc := videoservice.NewVideoService(videos, users, media,
		videoservice.LikeCleaner(likes),
		videoservice.PlaylistCleaner(playlists),
	)
	return router.Handlers{
		Video:    videohandlers.New(videoSvc, tempDir),
		Tweet:    tweethandlers.New(tweetservice.NewTweetService(tweets, users)),
		Playlist: playlisthandlers.New(playlistservice.NewPlaylistService(playlists, users, videos)),
		Like:     interactionhandlers.New(interactionservice.NewLikeService(engine, likes, videos, comments, tweets)),
		Relation: relationhandlers.New(relationservice.NewRelationService(engine, subs, users)),
		Media:    mediahandlers.New(media),
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		hlog.Fatalf("load config: %v", err)
	}
	hlog.SetLevel(logLevel(cfg.Log.Level))

	if err = utils.InitSnowflake(1, 1); err != nil {
		hlog.Fatalf("init snowflake: %v", err)
	}
	closer, err := jaeger.Init(cfg.Jaeger.Enabled, cfg.Jaeger.ServiceName, cfg.Jaeger.AgentAddr)
	if err != nil {
		hlog.Fatalf("init tracer: %v", err)
	}
	defer closer.Close()

	db, err := database.Open(database.Options{
		DSN:          utils.MysqlDSN(cfg.Mysql.Username, cfg.Mysql.Password, cfg.Mysql.Addr, cfg.Mysql.Database, cfg.Mysql.Charset),
		MaxOpenConns: cfg.Mysql.MaxOpenConns,
		MaxIdleConns: cfg.Mysql.MaxIdleConns,
		AutoMigrate:  cfg.Mysql.AutoMigrate,
	})
	if err != nil {
		hlog.Fatalf("init mysql: %+v", err)
	}
	media, err := newMediaStore(cfg.Minio)
	if err != nil {
		hlog.Fatalf("init minio: %+v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	locker := newLocker(ctx, cfg.Redis)
	cancel()

	auth, err := middleware.NewAuth(cfg.JWT.Secret, cfg.JWT.Timeout)
	if err != nil {
		hlog.Fatalf("init jwt: %+v", err)
	}
	opts := router.Options{Auth: auth}
	if cfg.RateLimit.PublishQPS > 0 {
		if err = middleware.InitFlowControl(cfg.RateLimit.PublishQPS, router.ResourcePublishVideo, router.ResourceUpdateVideo); err != nil {
			hlog.Fatalf("init flow control: %+v", err)
		}
		opts.Limit = middleware.Limit
	}

	r := server.New(
		server.WithHostPorts(cfg.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodySize),
	)

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Cors.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 错误处理
	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, map[string]interface{}{
				"code":    errno.InternalErrCode,
				"message": fmt.Sprintf("[Recovery] err=%v", err),
				"data":    nil,
			})
		})))

	router.Register(r.Engine, newHandlers(db, media, locker, cfg.Upload.TempDir), opts)
	r.Spin()
}
