package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildCompact bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Replay the log into a snapshot and print its size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := openEngine()
		if buildCompact {
			if err := e.Compact(); err != nil {
				return err
			}
		}
		g, err := e.Build()
		if err != nil {
			return err
		}
		fmt.Printf("vertices: %d\n", g.VertexCount())
		fmt.Printf("edges: %d\n", g.EdgeCount())
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildCompact, "compact", false, "rewrite the log as its net effect first")
	rootCmd.AddCommand(buildCmd)
}
