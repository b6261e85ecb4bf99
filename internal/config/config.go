package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "BANKIST"

type Config struct {
	ServerPort      string        `mapstructure:"SERVER_PORT" validate:"required,numeric"`
	SessionTimeout  time.Duration `mapstructure:"SESSION_TIMEOUT" validate:"required,gt=0"`
	LoanDelay       time.Duration `mapstructure:"LOAN_DELAY" validate:"gte=0"`
	LogLevel        string        `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"LOG_FORMAT" validate:"oneof=json text"`
	RateLimitRPS    float64       `mapstructure:"RATE_LIMIT_RPS" validate:"gt=0"`
	RateLimitBurst  int           `mapstructure:"RATE_LIMIT_BURST" validate:"min=1"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required,gt=0"`
}

var defaults = map[string]any{
	"SERVER_PORT":      "8080",
	"SESSION_TIMEOUT":  "300s",
	"LOAN_DELAY":       "2500ms",
	"LOG_LEVEL":        "info",
	"LOG_FORMAT":       "json",
	"RATE_LIMIT_RPS":   "20",
	"RATE_LIMIT_BURST": "40",
	"SHUTDOWN_TIMEOUT": "30s",
}

// Load reads configuration from BANKIST_* environment variables, an optional
// .env file in the working directory and built-in defaults, then validates it.
func Load() (*Config, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, formatErrors(err)
	}
	return &cfg, nil
}

func formatErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s_%s failed %q", envPrefix, toEnvKey(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// toEnvKey turns a field name such as SessionTimeout into SESSION_TIMEOUT.
func toEnvKey(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' && !(field[i-1] >= 'A' && field[i-1] <= 'Z') {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// SlogLevel maps LogLevel onto slog.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
