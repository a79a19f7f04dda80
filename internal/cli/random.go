package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kovacq/gravl/pkg/graph"
)

var randomFlags struct {
	vertexCount uint
	edgeCount   uint
	seed        uint64
	force       bool
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Replace the graph with a random one",
	Long: `Clear the store and seed it with a random directed graph. Every
ordered vertex pair gets an edge with the probability that makes the
expected edge count match --edge-count. The same --seed reproduces the
same graph.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := randomFlags.vertexCount
		if n < 2 {
			return fmt.Errorf("--vertex-count must be at least 2")
		}
		if !randomFlags.force {
			return fmt.Errorf("this replaces the graph at '%s', pass --force to confirm", storePath())
		}

		target := randomFlags.edgeCount
		if target == 0 {
			target = 3 * n
		}
		p := float64(target) / float64(n*(n-1))
		if p > 1 {
			p = 1
		}
		draw := distuv.Bernoulli{P: p, Src: rand.NewPCG(randomFlags.seed, 0)}

		cmds := make([]graph.Command, 0, n+target)
		for i := uint(1); i <= n; i++ {
			cmds = append(cmds, graph.AddVertex(graph.VertexID(i)))
		}
		for from := uint(1); from <= n; from++ {
			for to := uint(1); to <= n; to++ {
				if from != to && draw.Rand() == 1 {
					cmds = append(cmds, graph.AddEdge(graph.VertexID(from), graph.VertexID(to), graph.DefaultWeight))
				}
			}
		}

		e := openEngine()
		if err := e.Clear(); err != nil {
			return err
		}
		if err := e.Append(cmds...); err != nil {
			return err
		}
		fmt.Printf("seeded %d vertices, %d commands\n", n, len(cmds))
		return nil
	},
}

func init() {
	randomCmd.Flags().UintVarP(&randomFlags.vertexCount, "vertex-count", "v", 100, "number of vertices")
	randomCmd.Flags().UintVarP(&randomFlags.edgeCount, "edge-count", "e", 0, "target number of edges (default 3x vertices)")
	randomCmd.Flags().Uint64Var(&randomFlags.seed, "seed", 1, "random seed")
	randomCmd.Flags().BoolVarP(&randomFlags.force, "force", "f", false, "confirm replacing the existing graph")
	rootCmd.AddCommand(randomCmd)
}
