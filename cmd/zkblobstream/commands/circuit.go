package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	tmbytes "github.com/celestiaorg/zkblobstream/libs/bytes"
)

// CircuitCmd manages the circuit registry.
//
// Registration is deliberately unconditional; see the Store interface docs.
var CircuitCmd = &cobra.Command{
	Use:   "circuit",
	Short: "Manage registered proof circuits",
}

var circuitRegisterCmd = &cobra.Command{
	Use:     "register [name] [id]",
	Short:   "Register a circuit identifier under a name",
	Args:    cobra.ExactArgs(2),
	Example: `circuit register skip 0x51...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := tmbytes.FromHex(args[1])
		if err != nil {
			return fmt.Errorf("parsing circuit id: %w", err)
		}

		st, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := st.RegisterCircuit(args[0], id); err != nil {
			return err
		}

		logger.Info("circuit registered", "name", args[0], "id", id)
		return nil
	},
}

var circuitShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show the circuit identifier registered under a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := st.CircuitID(args[0])
		if err != nil {
			return err
		}
		if id == nil {
			return fmt.Errorf("no circuit registered under %q", args[0])
		}

		fmt.Printf("%X\n", id)
		return nil
	},
}

func init() {
	CircuitCmd.AddCommand(circuitRegisterCmd, circuitShowCmd)
}
