package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "llamachat/internal/errors"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.AppPort)
	assert.Equal(t, "http://127.0.0.1:1234", cfg.CompletionBaseURL)
	assert.Equal(t, "llama-3.2-1b-instruct", cfg.CompletionModelID)
	assert.Equal(t, time.Duration(0), cfg.CompletionTimeout)
	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, "chatHistory", cfg.ArchiveKey)
	assert.True(t, cfg.AutoArchive)
	assert.False(t, cfg.WaitForEndpoint)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("COMPLETION_BASE_URL", "http://llm.internal:8080")
	t.Setenv("COMPLETION_MODEL_ID", "qwen2.5-7b")
	t.Setenv("COMPLETION_TIMEOUT", "45s")
	t.Setenv("STORAGE_DRIVER", "Bolt")
	t.Setenv("AUTO_ARCHIVE", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://llm.internal:8080", cfg.CompletionBaseURL)
	assert.Equal(t, "qwen2.5-7b", cfg.CompletionModelID)
	assert.Equal(t, 45*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, StorageBolt, cfg.StorageDriver)
	assert.False(t, cfg.AutoArchive)
}

func TestLoadConfig_InvalidStorageDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, app_errors.ErrValidation)
	assert.Contains(t, err.Error(), "config 'StorageDriver' failed on the 'oneof' tag")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			AppPort:           8000,
			CompletionBaseURL: "http://127.0.0.1:1234",
			CompletionModelID: "model",
			StorageDriver:     StorageMemory,
			ArchiveKey:        "chatHistory",
		}
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("Missing base URL", func(t *testing.T) {
		cfg := valid()
		cfg.CompletionBaseURL = ""
		err := cfg.Validate()
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.Contains(t, err.Error(), "CompletionBaseURL")
	})

	t.Run("Redis driver requires an address", func(t *testing.T) {
		cfg := valid()
		cfg.StorageDriver = StorageRedis
		err := cfg.Validate()
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.Contains(t, err.Error(), "RedisAddr")
	})
}
