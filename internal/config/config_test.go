package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET_KEY", "test-access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET_KEY", "test-refresh-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredSecrets(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3018, cfg.HTTPPort)
	assert.Equal(t, 12*time.Hour, cfg.AccessTokenExpiry)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenExpiry)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_MissingSecretsFails(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET_KEY", "")
	t.Setenv("REFRESH_TOKEN_SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "30m")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenExpiry)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("HTTP_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NonPositiveExpiry(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("ACCESS_TOKEN_EXPIRY", "-1h")

	_, err := Load()
	assert.Error(t, err)
}
