package config

import "time"

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config 配置主体
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"database"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Elastic ElasticConfig `mapstructure:"elastic"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	MinIO   MinIOConfig   `mapstructure:"minio"`
	Cron    CronConfig    `mapstructure:"cron"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"`
	TrustedProxies  []string `mapstructure:"trusted_proxies"`
	// AllowedOrigins 为空时放行任意来源
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string         `mapstructure:"level"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	// SlowThreshold Redis、MongoDB、ES 慢操作阈值（毫秒），SQL 使用 database.slow_threshold
	SlowThreshold int `mapstructure:"slow_threshold"`
}

// Slow 慢操作阈值
func (c LogConfig) Slow() time.Duration {
	return time.Duration(c.SlowThreshold) * time.Millisecond
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`

	MaxIdle       int  `mapstructure:"max_idle"`
	MaxOpen       int  `mapstructure:"max_open"`
	MaxLifetime   int  `mapstructure:"max_lifetime"`
	AutoMigrate   bool `mapstructure:"auto_migrate"`
	SlowThreshold int  `mapstructure:"slow_threshold"`
}

// AuthConfig 管理员登录（桩实现）
type AuthConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	AdminUsername     string `mapstructure:"admin_username"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
	JWTSecret         string `mapstructure:"jwt_secret"`
	TokenTTL          int    `mapstructure:"token_ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL                string `mapstructure:"url"`
	Database           string `mapstructure:"database"`
	ActivityCollection string `mapstructure:"activity_collection"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	PostIndex string `mapstructure:"post_index"`
}

type KafkaConfig struct {
	Brokers   []string       `mapstructure:"brokers"`
	Sasl      SaslConfig     `mapstructure:"sasl"`
	Consumer  ConsumerConfig `mapstructure:"consumer"`
	PostTopic string         `mapstructure:"post_topic"`
	GroupID   string         `mapstructure:"group_id"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	PublicEndpoint string `mapstructure:"public_endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Bucket         string `mapstructure:"bucket"`
	UseSSL         bool   `mapstructure:"use_ssl"`
	MaxCoverWidth  int    `mapstructure:"max_cover_width"`
	MaxUploadMB    int64  `mapstructure:"max_upload_mb"`
	// MaxPixels 宽×高上限，超出按文件过大拒绝
	MaxPixels int64 `mapstructure:"max_pixels"`
}

// CronConfig 定时任务表达式（带秒）
type CronConfig struct {
	OrphanClean   string `mapstructure:"orphan_clean"`
	SearchReindex string `mapstructure:"search_reindex"`
}
