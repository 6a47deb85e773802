package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "cv.exports", cfg.Kafka.ExportTopic)
	assert.Equal(t, 24*time.Hour, cfg.Redis.ExportTTL)
	assert.Equal(t, 30*time.Second, cfg.Renderer.Timeout)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "app:\n  port: \"9000\"\nrenderer:\n  timeout: 5s\nkafka:\n  brokers: [\"a:9092\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("CHROME_PATH", "/usr/bin/chromium")
	t.Setenv("KAFKA_BROKERS", "b:9092,c:9092")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, 5*time.Second, cfg.Renderer.Timeout)
	assert.Equal(t, "/usr/bin/chromium", cfg.Renderer.ChromePath)
	assert.Equal(t, []string{"b:9092", "c:9092"}, cfg.Kafka.Brokers)
}
