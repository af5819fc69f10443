package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret          string
	CookieName         string
	IdentityServiceURL string
	IdentityAPIKey     string
}

type StorageConfig struct {
	Driver          string
	LocalDir        string
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	AccessKeyID     string
	SecretAccessKey string
}

type UploadConfig struct {
	MaxFiles    int
	MaxFileSize int64
}

type CacheConfig struct {
	RedisURL string
	StatsTTL time.Duration
}

type LogConfig struct {
	Level string
	File  string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Storage     StorageConfig
	Upload      UploadConfig
	Cache       CacheConfig
	Log         LogConfig
}

func Load() (*Config, error) {
	// .env is optional; real deployments pass plain environment variables.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)
	v.SetDefault("AUTH_COOKIE_NAME", "sb-access-token")
	v.SetDefault("STORAGE_DRIVER", StorageDriverLocal)
	v.SetDefault("STORAGE_LOCAL_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_FILES", 5)
	v.SetDefault("UPLOAD_MAX_FILE_SIZE", 10*1024*1024)
	v.SetDefault("STATS_CACHE_TTL", 30*time.Second)
	v.SetDefault("LOG_LEVEL", "info")

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			JWTSecret:          v.GetString("AUTH_JWT_SECRET"),
			CookieName:         v.GetString("AUTH_COOKIE_NAME"),
			IdentityServiceURL: strings.TrimRight(v.GetString("IDENTITY_SERVICE_URL"), "/"),
			IdentityAPIKey:     v.GetString("IDENTITY_SERVICE_API_KEY"),
		},
		Storage: StorageConfig{
			Driver:          strings.ToLower(v.GetString("STORAGE_DRIVER")),
			LocalDir:        v.GetString("STORAGE_LOCAL_DIR"),
			S3Bucket:        v.GetString("S3_BUCKET"),
			S3Region:        v.GetString("S3_REGION"),
			S3Endpoint:      v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		},
		Upload: UploadConfig{
			MaxFiles:    v.GetInt("UPLOAD_MAX_FILES"),
			MaxFileSize: v.GetInt64("UPLOAD_MAX_FILE_SIZE"),
		},
		Cache: CacheConfig{
			RedisURL: v.GetString("REDIS_URL"),
			StatsTTL: v.GetDuration("STATS_CACHE_TTL"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
			File:  v.GetString("LOG_FILE"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.JWTSecret == "" && cfg.Auth.IdentityServiceURL == "" {
		return fmt.Errorf("either AUTH_JWT_SECRET or IDENTITY_SERVICE_URL is required")
	}
	switch cfg.Storage.Driver {
	case StorageDriverLocal:
		if cfg.Storage.LocalDir == "" {
			return fmt.Errorf("STORAGE_LOCAL_DIR is required for local storage")
		}
	case StorageDriverS3:
		if cfg.Storage.S3Bucket == "" || cfg.Storage.S3Region == "" {
			return fmt.Errorf("S3_BUCKET and S3_REGION are required for s3 storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	if cfg.Upload.MaxFiles <= 0 || cfg.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("upload limits must be positive")
	}
	return nil
}
