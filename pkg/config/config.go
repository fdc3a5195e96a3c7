package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		Token       string `env:"TELEGRAM_TOKEN"`
		DeveloperID int64  `env:"TELEGRAM_DEVELOPER_ID"`
		Private     bool   `env:"TELEGRAM_BOT_PRIVATE" env-default:"false"`
	}
	Twitter struct {
		BaseURL        string `env:"TWITTER_API_BASE_URL" env-default:"https://cdn.syndication.twimg.com"`
		TimeoutSeconds int    `env:"TWITTER_TIMEOUT_SECONDS" env-default:"30"`
	}
	Stats struct {
		Backend  string `env:"STATS_BACKEND" env-default:"file"`
		FilePath string `env:"STATS_FILE_PATH" env-default:"./stats.json"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN returns the postgres connection string used by the migrate tool
// and the pgx-backed counter store.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}
