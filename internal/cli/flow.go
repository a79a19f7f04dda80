package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kovacq/gravl/pkg/graph"
)

var flowFlags struct {
	start uint
	end   uint
	edges bool
}

var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Maximum flow between two vertices",
	Long: `Compute the maximum flow from a source to a sink vertex, treating every
edge weight as a capacity. With --edges the per-edge flow assignment is
printed as flow/capacity.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := graph.VertexID(flowFlags.start)
		end := graph.VertexID(flowFlags.end)

		res, err := openEngine().MaxFlow(start, end)
		if err != nil {
			return err
		}
		if !res.Found {
			fmt.Printf("flow %d -> %d: undefined\n", start, end)
			return errNotFound
		}
		fmt.Printf("max flow: %d\n", res.Max)
		if flowFlags.edges {
			for _, ef := range res.Edges {
				fmt.Printf("%d -> %d: %d/%d\n", ef.Edge.From, ef.Edge.To, ef.Flow, ef.Capacity)
			}
		}
		return nil
	},
}

func init() {
	flowCmd.Flags().UintVarP(&flowFlags.start, "start", "s", 0, "source vertex")
	flowCmd.Flags().UintVarP(&flowFlags.end, "end", "e", 0, "sink vertex")
	flowCmd.Flags().BoolVar(&flowFlags.edges, "edges", false, "print the per-edge flow assignment")
	_ = flowCmd.MarkFlagRequired("start")
	_ = flowCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(flowCmd)
}
