package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/celestiaorg/zkblobstream/libs/log"
)

const (
	// DefaultDirName is the default home directory name, relative to $HOME.
	DefaultDirName = ".zkblobstream"

	defaultConfigDir  = "config"
	defaultDataDir    = "data"
	defaultConfigFile = "config.toml"
)

// Config holds the operator-facing configuration of the light client.
type Config struct {
	// RootDir is the home directory; config and data live beneath it.
	RootDir string `mapstructure:"home"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is either plain or json.
	LogFormat string `mapstructure:"log_format"`

	// DBBackend is the tm-db backend: goleveldb | memdb.
	DBBackend string `mapstructure:"db_backend"`

	// DBPath is the database directory, relative to RootDir.
	DBPath string `mapstructure:"db_dir"`

	// ChainRPC is the tracked chain's RPC base URL, polled for the head
	// height by the auto syncer.
	ChainRPC string `mapstructure:"chain_rpc"`

	// GatewayAddress is the authorized callback origin. Written to the store
	// at init time; the store copy is authoritative afterwards.
	GatewayAddress string `mapstructure:"gateway_address"`

	// RequestFee is attached to every proof request and forwarded to the
	// gateway.
	RequestFee uint64 `mapstructure:"request_fee"`

	// SyncInterval is how often the auto syncer checks the chain head.
	SyncInterval time.Duration `mapstructure:"sync_interval"`

	// PrometheusListenAddr, when non-empty, serves /metrics there.
	PrometheusListenAddr string `mapstructure:"prometheus_laddr"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     log.LogLevelInfo,
		LogFormat:    log.LogFormatPlain,
		DBBackend:    "goleveldb",
		DBPath:       defaultDataDir,
		ChainRPC:     "http://localhost:26657",
		SyncInterval: 30 * time.Second,
	}
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *Config) ValidateBasic() error {
	switch cfg.LogFormat {
	case log.LogFormatPlain, log.LogFormatJSON:
	default:
		return fmt.Errorf("unknown log_format (must be 'plain' or 'json')")
	}
	switch cfg.DBBackend {
	case "goleveldb", "memdb":
	default:
		return fmt.Errorf("unknown db_backend %q", cfg.DBBackend)
	}
	if cfg.SyncInterval <= 0 {
		return fmt.Errorf("sync_interval must be positive")
	}
	return nil
}

// DBDir returns the full path to the database directory.
func (cfg *Config) DBDir() string {
	return rootify(cfg.DBPath, cfg.RootDir)
}

// ConfigFile returns the full path to the config file.
func (cfg *Config) ConfigFile() string {
	return rootify(filepath.Join(defaultConfigDir, defaultConfigFile), cfg.RootDir)
}

// helper function to make config creation independent of root dir
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
