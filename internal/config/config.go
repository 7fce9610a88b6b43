package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string `env:"ENV" env-default:"local"`
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`
	HTTP        HTTPConfig
	TokenTTL    time.Duration `env:"TOKEN_TTL" env-default:"24h"`
	Secret      string        `env:"SECRET" env-required:"true"`
	DisableAuth bool          `env:"DISABLE_AUTH" env-default:"false"`
	Minio       MinioConfig
	Digest      DigestConfig
}

type HTTPConfig struct {
	Port    int           `env:"HTTP_PORT" env-default:"8080"`
	Timeout time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`
	// IdleTimeout — таймаут keep-alive соединений
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	// CORSOrigins — список разрешённых origin через запятую
	CORSOrigins []string `env:"CORS_ORIGINS" env-default:"*"`
}

type MinioConfig struct {
	Enabled   bool   `env:"MINIO_ENABLE" env-default:"false"`
	Endpoint  string `env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	Bucket    string `env:"MINIO_BUCKET" env-default:"property-photos"`
	AccessKey string `env:"MINIO_USER"`
	SecretKey string `env:"MINIO_PASSWORD"`
	UseSSL    bool   `env:"MINIO_USE_SSL" env-default:"false"`
}

// DigestConfig — расписание ежедневного дайджеста уведомлений.
type DigestConfig struct {
	Enabled bool `env:"DIGEST_ENABLE" env-default:"true"`
	// Schedule — cron-выражение, по умолчанию 09:00 каждый день
	Schedule string `env:"DIGEST_SCHEDULE" env-default:"0 9 * * *"`
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from environment: " + err.Error())
	}
	return &cfg
}
