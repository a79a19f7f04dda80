package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty graph store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := openEngine()
		if e.Exists() {
			fmt.Printf("store at '%s' already initialized\n", storePath())
			return nil
		}
		if err := e.Init(); err != nil {
			return err
		}
		fmt.Printf("initialized empty graph store at '%s'\n", storePath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
