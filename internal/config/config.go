package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	Version     string `envconfig:"VERSION" default:"dev"`
	BcryptCost  int    `envconfig:"BCRYPT_COST" default:"12"`

	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"168h"`
	SessionIssuer string        `envconfig:"SESSION_ISSUER" default:"vitrine"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`

	S3Endpoint     string        `envconfig:"S3_ENDPOINT" required:"true"`
	S3AccessKey    string        `envconfig:"S3_ACCESS_KEY" default:""`
	S3SecretKey    string        `envconfig:"S3_SECRET_KEY" default:""`
	S3Bucket       string        `envconfig:"S3_BUCKET" default:"vitrine"`
	S3UseSSL       bool          `envconfig:"S3_USE_SSL" default:"false"`
	UploadURLTTL   time.Duration `envconfig:"UPLOAD_URL_TTL" default:"15m"`
	DownloadURLTTL time.Duration `envconfig:"DOWNLOAD_URL_TTL" default:"24h"`
	URLCacheSize   int           `envconfig:"URL_CACHE_SIZE" default:"4096"`

	SweepInterval  time.Duration `envconfig:"SWEEP_INTERVAL" default:"10m"`
	MetricsEnabled bool          `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
