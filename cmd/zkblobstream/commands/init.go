package commands

import (
	"github.com/spf13/cobra"

	"github.com/celestiaorg/zkblobstream/config"
	"github.com/celestiaorg/zkblobstream/gateway"
)

var (
	initChainRPC string
	initGateway  string
)

// InitCmd writes the home directory skeleton and a default config file.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the home directory and write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureRoot(cfg.RootDir); err != nil {
			return err
		}

		if initChainRPC != "" {
			cfg.ChainRPC = initChainRPC
		}
		if initGateway != "" {
			cfg.GatewayAddress = initGateway
		}

		if err := config.WriteConfigFile(cfg.RootDir, cfg); err != nil {
			return err
		}

		if cfg.GatewayAddress != "" {
			st, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()
			if err := st.SetGatewayAddress(gateway.Address(cfg.GatewayAddress)); err != nil {
				return err
			}
		}

		logger.Info("initialized home directory", "home", cfg.RootDir)
		return nil
	},
}

func init() {
	InitCmd.Flags().StringVar(&initChainRPC, "chain-rpc", "", "RPC base URL of the tracked chain")
	InitCmd.Flags().StringVar(&initGateway, "gateway", "", "authorized callback origin")
}
