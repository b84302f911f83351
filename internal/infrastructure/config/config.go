package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string        `env:"PORT,         default=8080"`
	Env         string        `env:"ENV,          default=development"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	JWTSecret   string        `env:"JWT_SECRET,   required"`
	FrontendURL string        `env:"FRONTEND_URL, default=http://localhost:3000"`
	SessionTTL  time.Duration `env:"SESSION_TTL,  default=24h"`
	ResetTTL    time.Duration `env:"RESET_TTL,    default=15m"`

	Mongo MongoConfig
	Redis RedisConfig
	S3    S3Config
	Mail  MailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type S3Config struct {
	Endpoint  string `env:"S3_ENDPOINT"`
	Region    string `env:"S3_REGION,   default=us-east-1"`
	Bucket    string `env:"S3_BUCKET,   required"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	// PublicBaseURL is the CDN or bucket host objects are served from.
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL, required"`
}

type MailConfig struct {
	APIURL    string `env:"MAIL_API_URL"`
	APIKey    string `env:"MAIL_API_KEY"`
	FromEmail string `env:"MAIL_FROM_EMAIL, default=no-reply@coursehub.dev"`
	FromName  string `env:"MAIL_FROM_NAME,  default=CourseHub"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
