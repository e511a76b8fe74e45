package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// StatusCmd prints the latest trusted height and its header hash.
var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest trusted height and header hash",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		latest, err := st.LatestHeight()
		if err != nil {
			return err
		}
		if latest == 0 {
			fmt.Println("no trusted state; run genesis first")
			return nil
		}

		hash, err := st.Header(latest)
		if err != nil {
			return err
		}

		fmt.Printf("height: %d\nhash:   %X\n", latest, hash)
		return nil
	},
}

// HeaderCmd prints the trusted header hash at a given height.
var HeaderCmd = &cobra.Command{
	Use:   "header [height]",
	Short: "Show the trusted header hash at a height",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		height, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("parsing height: %w", err)
		}

		st, db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		hash, err := st.Header(height)
		if err != nil {
			return err
		}
		if hash == nil {
			return fmt.Errorf("no trusted header at height %d", height)
		}

		fmt.Printf("%X\n", hash)
		return nil
	},
}
