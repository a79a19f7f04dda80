package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kovacq/gravl/pkg/graph"
)

var removeFlags struct {
	vertices []uint
	edges    []uint
	force    bool
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Append vertex and edge removals to the graph",
	Long: `Append RemoveVertex and RemoveEdge commands. Removing a vertex also
removes every edge touching it. Removal is destructive, so it must be
confirmed with --force.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(removeFlags.vertices) == 0 && len(removeFlags.edges) == 0 {
			return fmt.Errorf("nothing to remove, see 'gravl remove --help'")
		}
		if !removeFlags.force {
			return fmt.Errorf("removal is destructive, pass --force to confirm")
		}

		var cmds []graph.Command
		ids, err := toVertexIDs(removeFlags.vertices)
		if err != nil {
			return err
		}
		for _, id := range ids {
			cmds = append(cmds, graph.RemoveVertex(id))
		}
		edges, err := toEdges(removeFlags.edges)
		if err != nil {
			return err
		}
		for _, e := range edges {
			cmds = append(cmds, graph.RemoveEdge(e.From, e.To))
		}

		if err := openEngine().Append(cmds...); err != nil {
			return err
		}
		fmt.Printf("appended %d commands\n", len(cmds))
		return nil
	},
}

func init() {
	removeCmd.Flags().UintSliceVarP(&removeFlags.vertices, "vertex", "v", nil, "vertex ids to remove")
	removeCmd.Flags().UintSliceVarP(&removeFlags.edges, "edge", "e", nil, "edge endpoint pairs (from,to,...)")
	removeCmd.Flags().BoolVarP(&removeFlags.force, "force", "f", false, "confirm the removal")
	rootCmd.AddCommand(removeCmd)
}
