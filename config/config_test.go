package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ValidateBasic())

	cfg.RootDir = "/root"
	assert.Equal(t, "/root/data", cfg.DBDir())

	cfg.DBPath = "/abs/data"
	assert.Equal(t, "/abs/data", cfg.DBDir())
}

func TestValidateBasic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFormat = "xml"
	assert.Error(t, cfg.ValidateBasic())

	cfg = DefaultConfig()
	cfg.DBBackend = "cassandra"
	assert.Error(t, cfg.ValidateBasic())

	cfg = DefaultConfig()
	cfg.SyncInterval = 0
	assert.Error(t, cfg.ValidateBasic())
}

func TestWriteAndLoadConfigFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, EnsureRoot(root))

	want := DefaultConfig()
	want.ChainRPC = "http://mocha:26657"
	want.GatewayAddress = "gateway-1"
	want.RequestFee = 42
	want.SyncInterval = 15 * time.Second
	require.NoError(t, WriteConfigFile(root, want))

	v := viper.New()
	v.SetConfigFile(filepath.Join(root, defaultConfigDir, defaultConfigFile))
	require.NoError(t, v.ReadInConfig())

	got := DefaultConfig()
	require.NoError(t, v.Unmarshal(got))

	assert.Equal(t, "http://mocha:26657", got.ChainRPC)
	assert.Equal(t, "gateway-1", got.GatewayAddress)
	assert.EqualValues(t, 42, got.RequestFee)
	assert.Equal(t, 15*time.Second, got.SyncInterval)
	require.NoError(t, got.ValidateBasic())
}
