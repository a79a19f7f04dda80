package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanFlags struct {
	force  bool
	silent bool
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Destroy the graph store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cleanFlags.force {
			return fmt.Errorf("this destroys the store at '%s', pass --force to confirm", storePath())
		}
		if err := openEngine().Destroy(); err != nil {
			return err
		}
		if !cleanFlags.silent {
			fmt.Printf("removed graph store at '%s'\n", storePath())
		}
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanFlags.force, "force", "f", false, "confirm the destruction")
	cleanCmd.Flags().BoolVarP(&cleanFlags.silent, "silent", "s", false, "print nothing on success")
	rootCmd.AddCommand(cleanCmd)
}
