package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	app_errors "llamachat/internal/errors"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageSQLite = "sqlite"
	StorageBolt   = "bolt"
	StorageRedis  = "redis"
	StorageMemory = "memory"
	StorageNone   = "none"
)

type Config struct {
	AppPort           int           `mapstructure:"APP_PORT" validate:"min=1,max=65535"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	CompletionBaseURL string        `mapstructure:"COMPLETION_BASE_URL" validate:"required,url"`
	CompletionModelID string        `mapstructure:"COMPLETION_MODEL_ID" validate:"required"`
	CompletionTimeout time.Duration `mapstructure:"COMPLETION_TIMEOUT" validate:"min=0"`
	StorageDriver     string        `mapstructure:"STORAGE_DRIVER" validate:"oneof=sqlite bolt redis memory none"`
	DatabasePath      string        `mapstructure:"DATABASE_PATH" validate:"required_if=StorageDriver sqlite"`
	BoltPath          string        `mapstructure:"BOLT_PATH" validate:"required_if=StorageDriver bolt"`
	RedisAddr         string        `mapstructure:"REDIS_ADDR" validate:"required_if=StorageDriver redis"`
	ArchiveKey        string        `mapstructure:"ARCHIVE_KEY" validate:"required"`
	AutoArchive       bool          `mapstructure:"AUTO_ARCHIVE"`
	WaitForEndpoint   bool          `mapstructure:"WAIT_FOR_ENDPOINT"`
	StaticDir         string        `mapstructure:"STATIC_DIR"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("COMPLETION_BASE_URL", "http://127.0.0.1:1234")
	viper.SetDefault("COMPLETION_MODEL_ID", "llama-3.2-1b-instruct")
	viper.SetDefault("COMPLETION_TIMEOUT", "0s")
	viper.SetDefault("STORAGE_DRIVER", StorageSQLite)
	viper.SetDefault("DATABASE_PATH", "/data/chat.db")
	viper.SetDefault("BOLT_PATH", "/data/chat.bolt")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("ARCHIVE_KEY", "chatHistory")
	viper.SetDefault("AUTO_ARCHIVE", true)
	viper.SetDefault("WAIT_FOR_ENDPOINT", false)
	viper.SetDefault("STATIC_DIR", "")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags and wraps any failure in ErrValidation.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %s", app_errors.ErrValidation, err.Error())
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("config '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(msgs, "; "))
}
