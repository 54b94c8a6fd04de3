// Package config는 환경 변수(및 선택적인 .env 파일)에서 설정을 읽습니다.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendLocal = "local"
	BackendREST  = "rest"
)

// Config: RESERVAMESA_* 환경 변수
type Config struct {
	Backend         string        `env:"RESERVAMESA_BACKEND" envDefault:"local"`
	DBPath          string        `env:"RESERVAMESA_DB_PATH" envDefault:"reservamesa.db"`
	BackendURL      string        `env:"RESERVAMESA_BACKEND_URL"`
	APIKey          string        `env:"RESERVAMESA_API_KEY"`
	SessionFile     string        `env:"RESERVAMESA_SESSION_FILE" envDefault:".reservamesa-session.json"`
	HTTPTimeout     time.Duration `env:"RESERVAMESA_HTTP_TIMEOUT" envDefault:"15s"`
	RefreshInterval time.Duration `env:"RESERVAMESA_REFRESH_INTERVAL" envDefault:"30m"`
	LogLevel        string        `env:"RESERVAMESA_LOG_LEVEL" envDefault:"info"`
	LogFile         string        `env:"RESERVAMESA_LOG_FILE" envDefault:"reservamesa.log"`
}

// Load: envFile이 있으면 먼저 읽고(이미 설정된 변수는 덮어쓰지 않음) 환경 변수를 파싱합니다.
// 파일이 없으면 무시합니다.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendLocal:
		if c.DBPath == "" {
			return errors.New("RESERVAMESA_DB_PATH is required for the local backend")
		}
	case BackendREST:
		if c.BackendURL == "" {
			return errors.New("RESERVAMESA_BACKEND_URL is required for the rest backend")
		}
		if c.APIKey == "" {
			return errors.New("RESERVAMESA_API_KEY is required for the rest backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendLocal, BackendREST)
	}
	if c.RefreshInterval <= 0 {
		return errors.New("RESERVAMESA_REFRESH_INTERVAL must be positive")
	}
	return nil
}
