package config

import "time"

type Config struct {
	Server    Server    `yaml:"server" mapstructure:"server"`
	Log       Log       `yaml:"log" mapstructure:"log"`
	Mysql     Mysql     `yaml:"mysql" mapstructure:"mysql"`
	Redis     Redis     `yaml:"redis" mapstructure:"redis"`
	Minio     Minio     `yaml:"minio" mapstructure:"minio"`
	Upload    Upload    `yaml:"upload" mapstructure:"upload"`
	JWT       JWT       `yaml:"jwt" mapstructure:"jwt"`
	RateLimit RateLimit `yaml:"ratelimit" mapstructure:"ratelimit"`
	Jaeger    Jaeger    `yaml:"jaeger" mapstructure:"jaeger"`
	Cors      Cors      `yaml:"cors" mapstructure:"cors"`
}

type Server struct {
	Addr               string `yaml:"addr"`
	MaxRequestBodySize int    `yaml:"max_request_body_size" mapstructure:"max_request_body_size"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Mysql struct {
	Addr         string `yaml:"addr"`
	Database     string `yaml:"database"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Charset      string `yaml:"charset"`
	MaxOpenConns int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	AutoMigrate  bool   `yaml:"auto_migrate" mapstructure:"auto_migrate"`
}

type Redis struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Minio struct {
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey     string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL        bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Region        string `yaml:"region"`
	VideoBucket   string `yaml:"video_bucket" mapstructure:"video_bucket"`
	ImageBucket   string `yaml:"image_bucket" mapstructure:"image_bucket"`
	Folder        string `yaml:"folder"`
	PublicBaseURL string `yaml:"public_base_url" mapstructure:"public_base_url"`
}

type Upload struct {
	TempDir string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

type JWT struct {
	Secret  string        `yaml:"secret"`
	Timeout time.Duration `yaml:"timeout"`
}

type RateLimit struct {
	PublishQPS float64 `yaml:"publish_qps" mapstructure:"publish_qps"`
}

type Jaeger struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	AgentAddr   string `yaml:"agent_addr" mapstructure:"agent_addr"`
}

type Cors struct {
	AllowOrigins []string `yaml:"allow_origins" mapstructure:"allow_origins"`
}
