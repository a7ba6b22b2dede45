package btmgmt

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btmgmt/btmgmt-go/pkg/connection"
)

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
command_timeout: 500ms
queue_size: 16
protocol_log: /tmp/capture.bmlog
auto_reconnect: false
reconnect:
  initial: 1s
  max: 10s
  multiplier: 3
  jitter: 0.1
`)
	config, err := ParseConfig(data)
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, config.CommandTimeout)
	assert.Equal(t, 16, config.QueueSize)
	assert.Equal(t, "/tmp/capture.bmlog", config.ProtocolLog)
	assert.False(t, config.AutoReconnect)
	assert.Equal(t, connection.BackoffConfig{Initial: time.Second, Max: 10 * time.Second, Multiplier: 3, Jitter: 0.1}, config.Reconnect)

	// Unset keys keep their defaults.
	assert.Equal(t, DefaultConfig().StaleTTL, config.StaleTTL)
	assert.Equal(t, "btmgmt", config.MetricsNamespace)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "command_timeout: [1"},
		{"bad duration", "command_timeout: soon"},
		{"zero timeout", "command_timeout: 0s"},
		{"empty queue", "queue_size: 0"},
		{"negative stale ttl", "stale_ttl: -1s"},
		{"bad backoff", "reconnect: {initial: 2s, max: 1s}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	c := DefaultConfig()
	c.QueueSize = 0
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)

	c = DefaultConfig()
	c.Reconnect.Jitter = 2
	err := c.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, connection.ErrInvalidBackoff)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "btmgmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queue_size: 8\n"), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, config.QueueSize)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
