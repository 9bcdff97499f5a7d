package database

import (
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormopentracing "gorm.io/plugin/opentracing"

	"VidTube.com/cmd/model"
)

type Options struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

// GormConfig is shared by the live connection and the dry-run dialector used in tests.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

// Open connects to mysql, installs the opentracing plugin and migrates the schema.
func Open(opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(opts.DSN), GormConfig())
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	if err = db.Use(gormopentracing.New()); err != nil {
		return nil, errors.Wrap(err, "use opentracing plugin")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql db")
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if opts.AutoMigrate {
		if err = Migrate(db); err != nil {
			return nil, err
		}
	}
	hlog.Info("Connect MySQL Success")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Tweet{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
	); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}

// Translate maps gorm's sentinel errors onto the model ones, wrapping anything else.
func Translate(err error, format string, args ...interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return model.ErrDuplicate
	default:
		return errors.Wrapf(err, format, args...)
	}
}

// DryRun returns a gorm handle that renders sql without a server, for query shape tests.
func DryRun() (*gorm.DB, error) {
	cfg := GormConfig()
	cfg.DryRun = true
	cfg.DisableAutomaticPing = true
	cfg.PrepareStmt = false
	return gorm.Open(mysql.New(mysql.Config{
		DSN:                       "vidtube:vidtube@tcp(127.0.0.1:3306)/vidtube?charset=utf8mb4&parseTime=True&loc=Local",
		SkipInitializeWithVersion: true,
	}), cfg)
}
