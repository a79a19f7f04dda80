package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kovacq/gravl/pkg/graph"
)

var longestFlags struct {
	start uint
	end   uint
}

var longestCmd = &cobra.Command{
	Use:   "longest",
	Short: "Longest path between two vertices of an acyclic graph",
	Long: `Find the start-to-end path with the highest total edge weight. Only
defined when the graph is acyclic; with a cycle the score would be
unbounded and the command fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := graph.VertexID(longestFlags.start)
		end := graph.VertexID(longestFlags.end)

		res, err := openEngine().LongestPath(start, end)
		if err != nil {
			return err
		}
		if !res.Found {
			fmt.Printf("path %d -> %d: no solution\n", start, end)
			return errNotFound
		}
		fmt.Printf("path: %s (length %d, score %d)\n", formatPath(res.Path), res.Path.Len(), res.Score)
		return nil
	},
}

func init() {
	longestCmd.Flags().UintVarP(&longestFlags.start, "start", "s", 0, "starting vertex")
	longestCmd.Flags().UintVarP(&longestFlags.end, "end", "e", 0, "end vertex")
	_ = longestCmd.MarkFlagRequired("start")
	_ = longestCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(longestCmd)
}
