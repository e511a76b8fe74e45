package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	tmbytes "github.com/celestiaorg/zkblobstream/libs/bytes"
)

// GenesisCmd seeds the store with the initial trusted header.
//
// The operation is deliberately unconditional: a second call overwrites the
// stored state. See the Store interface docs.
var GenesisCmd = &cobra.Command{
	Use:   "genesis [height] [hash]",
	Short: "Seed the store with the initial trusted header",
	Args:  cobra.ExactArgs(2),
	Example: `genesis 3000 0xA8512F18C34B70E1533CFD5AA04F251FCB0D7BE56EC570051FBAD9BDB9435E6A`,
	RunE: func(cmd *cobra.Command, args []string) error {
		height, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("parsing height: %w", err)
		}

		hash, err := tmbytes.FromHex(args[1])
		if err != nil {
			return fmt.Errorf("parsing hash: %w", err)
		}

		st, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if latest, err := st.LatestHeight(); err != nil {
			return err
		} else if latest != 0 {
			logger.Error("overwriting existing state", "current_height", latest)
		}

		if err := st.SetGenesis(height, hash); err != nil {
			return err
		}

		logger.Info("genesis header set", "height", height, "hash", hash)
		return nil
	},
}
