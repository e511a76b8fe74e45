package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/zkblobstream/gateway"
)

// GatewayCmd manages the authorized callback origin.
//
// The mutation is deliberately unconditional; see the Store interface docs.
var GatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Manage the authorized gateway address",
}

var gatewaySetCmd = &cobra.Command{
	Use:   "set [address]",
	Short: "Set the authorized callback origin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := st.SetGatewayAddress(gateway.Address(args[0])); err != nil {
			return err
		}

		logger.Info("gateway address set", "address", args[0])
		return nil
	},
}

var gatewayShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the authorized callback origin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		addr, err := st.GatewayAddress()
		if err != nil {
			return err
		}
		if addr == "" {
			return fmt.Errorf("no gateway address configured")
		}

		fmt.Println(addr)
		return nil
	},
}

func init() {
	GatewayCmd.AddCommand(gatewaySetCmd, gatewayShowCmd)
}
