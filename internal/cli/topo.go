package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var topoCmd = &cobra.Command{
	Use:   "topo",
	Short: "Topological order of the graph",
	Long: `Print a total order over the vertices consistent with edge direction,
the lexicographically smallest one when several exist. Fails when the
graph contains a cycle.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := openEngine().TopoSort()
		if err != nil {
			return err
		}
		parts := make([]string, len(order))
		for i, id := range order {
			parts[i] = fmt.Sprintf("%d", id)
		}
		fmt.Println(strings.Join(parts, " "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topoCmd)
}
