package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	dbm "github.com/tendermint/tm-db"

	"github.com/celestiaorg/zkblobstream/config"
	"github.com/celestiaorg/zkblobstream/libs/log"
	"github.com/celestiaorg/zkblobstream/light/store"
	dbs "github.com/celestiaorg/zkblobstream/light/store/db"
)

var (
	cfg    = config.DefaultConfig()
	logger = log.NewNopLogger()
)

// RootCmd is the root command. All subcommands are attached to it in init().
var RootCmd = &cobra.Command{
	Use:   "zkblobstream",
	Short: "ZK-proof-driven bridge light client",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = parseConfig(cmd)
		if err != nil {
			return err
		}

		logger, err = log.NewDefaultLogger(cfg.LogFormat, cfg.LogLevel)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	defaultHome := config.DefaultDirName
	if home, err := os.UserHomeDir(); err == nil {
		defaultHome = filepath.Join(home, config.DefaultDirName)
	}

	RootCmd.PersistentFlags().String("home", defaultHome, "directory for config and data")
	RootCmd.PersistentFlags().String("log_level", cfg.LogLevel, "log level (debug | info | warn | error)")
	RootCmd.PersistentFlags().String("log_format", cfg.LogFormat, "log format (plain | json)")

	RootCmd.AddCommand(
		InitCmd,
		GenesisCmd,
		StatusCmd,
		HeaderCmd,
		CircuitCmd,
		GatewayCmd,
		StartCmd,
	)
}

// parseConfig layers the config file (if present) and command-line flags over
// the defaults.
func parseConfig(cmd *cobra.Command) (*config.Config, error) {
	conf := config.DefaultConfig()

	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	home := v.GetString("home")
	conf.RootDir = home

	v.SetConfigFile(conf.ConfigFile())
	if err := v.ReadInConfig(); err != nil {
		// a missing config file is fine; init writes one
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(conf); err != nil {
		return nil, err
	}
	conf.RootDir = home

	return conf, conf.ValidateBasic()
}

// openStore opens the light client's database as configured.
func openStore() (store.Store, dbm.DB, error) {
	db, err := dbm.NewDB("light", dbm.BackendType(cfg.DBBackend), cfg.DBDir())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return dbs.New(db, "light"), db, nil
}
