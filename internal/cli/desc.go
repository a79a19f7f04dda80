package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/kovacq/gravl/pkg/graph"
)

var descCmd = &cobra.Command{
	Use:   "desc",
	Short: "Print descriptive statistics for the graph",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := openEngine().Build()
		if err != nil {
			return err
		}

		fmt.Printf("path: %s\n", storePath())
		fmt.Printf("vertices: %d\n", g.VertexCount())
		fmt.Printf("edges: %d\n", g.EdgeCount())

		ids := g.Vertices()
		if len(ids) == 0 {
			return nil
		}
		fmt.Printf("min vertex id: %d\n", ids[0])
		fmt.Printf("max vertex id: %d\n", ids[len(ids)-1])

		printDegreeStats("out-degree", ids, g.OutDegree)
		printDegreeStats("in-degree", ids, g.InDegree)

		_, err = graph.TopoSort(g)
		switch {
		case err == nil:
			fmt.Println("acyclic: yes")
		case errors.Is(err, graph.ErrCyclic):
			fmt.Println("acyclic: no")
		default:
			return err
		}
		return nil
	},
}

func printDegreeStats(name string, ids []graph.VertexID, degree func(graph.VertexID) int) {
	degrees := make([]float64, len(ids))
	min, max := math.Inf(1), math.Inf(-1)
	for i, id := range ids {
		d := float64(degree(id))
		degrees[i] = d
		min = math.Min(min, d)
		max = math.Max(max, d)
	}
	mean, std := stat.MeanStdDev(degrees, nil)
	if math.IsNaN(std) {
		std = 0
	}
	fmt.Printf("%s: min %.0f, max %.0f, mean %.2f, stddev %.2f\n", name, min, max, mean, std)
}

func init() {
	rootCmd.AddCommand(descCmd)
}
