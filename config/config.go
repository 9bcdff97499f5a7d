package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var defaultPaths = []string{
	"./config",
	"../config",
	"../../config",
	".",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:8888")
	v.SetDefault("server.max_request_body_size", 1024*1024*1024)
	v.SetDefault("log.level", "info")
	v.SetDefault("mysql.addr", "127.0.0.1:3306")
	v.SetDefault("mysql.database", "vidtube")
	v.SetDefault("mysql.username", "root")
	v.SetDefault("mysql.charset", "utf8mb4")
	v.SetDefault("mysql.max_open_conns", 50)
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("mysql.auto_migrate", true)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("minio.endpoint", "127.0.0.1:9000")
	v.SetDefault("minio.region", "us-east-1")
	v.SetDefault("minio.video_bucket", "video")
	v.SetDefault("minio.image_bucket", "picture")
	v.SetDefault("minio.folder", "vidtube")
	v.SetDefault("minio.public_base_url", "http://localhost:8888/api/v1/media")
	v.SetDefault("upload.temp_dir", filepath.Join(os.TempDir(), "vidtube"))
	v.SetDefault("jwt.timeout", "24h")
	v.SetDefault("ratelimit.publish_qps", 5)
	v.SetDefault("jaeger.service_name", "vidtube")
	v.SetDefault("jaeger.agent_addr", "127.0.0.1:6831")
	v.SetDefault("cors.allow_origins", []string{"http://localhost:8870", "http://localhost:8888"})
}

// Load reads an optional .env, then config.yml from paths (or the default search paths),
// with environment variables such as MINIO_ENDPOINT overriding file values.
// A missing config file is not an error, defaults and env apply.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("load .env: %v", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("config.yml")
	if len(paths) == 0 {
		paths = defaultPaths
	}
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
		wd, _ := os.Getwd()
		logrus.Warnf("config file not found from %s, using defaults and env", wd)
	} else {
		logrus.Infof("Successfully read config file: %s", v.ConfigFileUsed())
	}

	// 手动从viper获取配置值，避免Unmarshal问题
	var c Config
	c.Server.Addr = v.GetString("server.addr")
	c.Server.MaxRequestBodySize = v.GetInt("server.max_request_body_size")
	c.Log.Level = v.GetString("log.level")

	c.Mysql.Addr = v.GetString("mysql.addr")
	c.Mysql.Database = v.GetString("mysql.database")
	c.Mysql.Username = v.GetString("mysql.username")
	c.Mysql.Password = v.GetString("mysql.password")
	c.Mysql.Charset = v.GetString("mysql.charset")
	c.Mysql.MaxOpenConns = v.GetInt("mysql.max_open_conns")
	c.Mysql.MaxIdleConns = v.GetInt("mysql.max_idle_conns")
	c.Mysql.AutoMigrate = v.GetBool("mysql.auto_migrate")

	c.Redis.Enabled = v.GetBool("redis.enabled")
	c.Redis.Addr = v.GetString("redis.addr")
	c.Redis.Password = v.GetString("redis.password")
	c.Redis.DB = v.GetInt("redis.db")

	c.Minio.Endpoint = v.GetString("minio.endpoint")
	c.Minio.AccessKey = v.GetString("minio.access_key")
	c.Minio.SecretKey = v.GetString("minio.secret_key")
	c.Minio.UseSSL = v.GetBool("minio.use_ssl")
	c.Minio.Region = v.GetString("minio.region")
	c.Minio.VideoBucket = v.GetString("minio.video_bucket")
	c.Minio.ImageBucket = v.GetString("minio.image_bucket")
	c.Minio.Folder = v.GetString("minio.folder")
	c.Minio.PublicBaseURL = v.GetString("minio.public_base_url")

	c.Upload.TempDir = v.GetString("upload.temp_dir")

	c.JWT.Secret = v.GetString("jwt.secret")
	c.JWT.Timeout = v.GetDuration("jwt.timeout")

	c.RateLimit.PublishQPS = v.GetFloat64("ratelimit.publish_qps")

	c.Jaeger.Enabled = v.GetBool("jaeger.enabled")
	c.Jaeger.ServiceName = v.GetString("jaeger.service_name")
	c.Jaeger.AgentAddr = v.GetString("jaeger.agent_addr")

	c.Cors.AllowOrigins = v.GetStringSlice("cors.allow_origins")

	if err := c.validate(); err != nil {
		return nil, err
	}

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		c.Mysql.Username, "***", c.Mysql.Addr, c.Mysql.Database)
	logrus.Infof("Config loaded - MinIO: %s, buckets video=%s image=%s",
		c.Minio.Endpoint, c.Minio.VideoBucket, c.Minio.ImageBucket)
	if !c.Redis.Enabled {
		logrus.Warn("Redis disabled, toggles rely on unique indexes only")
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	if c.JWT.Timeout <= 0 {
		return errors.Errorf("jwt.timeout must be positive, got %s", c.JWT.Timeout)
	}
	if c.Minio.VideoBucket == c.Minio.ImageBucket {
		return errors.Errorf("minio video and image bucket must differ, both %q", c.Minio.VideoBucket)
	}
	return nil
}
