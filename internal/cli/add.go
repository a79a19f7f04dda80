package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kovacq/gravl/pkg/graph"
)

var addFlags struct {
	vertices []uint
	edges    []uint
	chain    []uint
	cycle    []uint
	star     []uint
	clique   []uint
	reverse  bool
	weight   int64
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append vertices and edges to the graph",
	Long: `Append mutation commands to the graph store. Besides single vertices
and edges, the generator flags create common shapes in one call: a chain
links the given vertices in sequence, a cycle additionally closes the
chain, a star connects the first vertex to all others, and a clique
connects every vertex to every other. --reverse flips every generated
edge.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds, err := buildAddCommands()
		if err != nil {
			return err
		}
		if len(cmds) == 0 {
			return fmt.Errorf("nothing to add, see 'gravl add --help'")
		}
		if err := openEngine().Append(cmds...); err != nil {
			return err
		}
		fmt.Printf("appended %d commands\n", len(cmds))
		return nil
	},
}

func buildAddCommands() ([]graph.Command, error) {
	var cmds []graph.Command

	ids, err := toVertexIDs(addFlags.vertices)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		cmds = append(cmds, graph.AddVertex(id))
	}

	var edges []graph.Edge
	pairs, err := toEdges(addFlags.edges)
	if err != nil {
		return nil, err
	}
	edges = append(edges, pairs...)

	for _, gen := range []struct {
		name  string
		ids   []uint
		shape func([]graph.VertexID) ([]graph.Edge, error)
	}{
		{"chain", addFlags.chain, chainEdges},
		{"cycle", addFlags.cycle, cycleEdges},
		{"star", addFlags.star, starEdges},
		{"clique", addFlags.clique, cliqueEdges},
	} {
		if len(gen.ids) == 0 {
			continue
		}
		vids, err := toVertexIDs(gen.ids)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", gen.name, err)
		}
		if len(vids) < 2 {
			return nil, fmt.Errorf("--%s needs at least two vertices", gen.name)
		}
		shaped, err := gen.shape(vids)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", gen.name, err)
		}
		edges = append(edges, shaped...)
	}

	for _, e := range edges {
		from, to := e.From, e.To
		if addFlags.reverse {
			from, to = to, from
		}
		cmds = append(cmds, graph.AddEdge(from, to, addFlags.weight))
	}
	return cmds, nil
}

func chainEdges(ids []graph.VertexID) ([]graph.Edge, error) {
	edges := make([]graph.Edge, 0, len(ids)-1)
	for i := 0; i+1 < len(ids); i++ {
		edges = append(edges, graph.Edge{From: ids[i], To: ids[i+1]})
	}
	return edges, nil
}

func cycleEdges(ids []graph.VertexID) ([]graph.Edge, error) {
	seen := make(map[graph.VertexID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("vertex %d repeats", id)
		}
		seen[id] = struct{}{}
	}
	edges, _ := chainEdges(ids)
	return append(edges, graph.Edge{From: ids[len(ids)-1], To: ids[0]}), nil
}

func starEdges(ids []graph.VertexID) ([]graph.Edge, error) {
	center := ids[0]
	edges := make([]graph.Edge, 0, len(ids)-1)
	for _, leaf := range ids[1:] {
		edges = append(edges, graph.Edge{From: center, To: leaf})
	}
	return edges, nil
}

func cliqueEdges(ids []graph.VertexID) ([]graph.Edge, error) {
	var edges []graph.Edge
	for _, from := range ids {
		for _, to := range ids {
			if from != to {
				edges = append(edges, graph.Edge{From: from, To: to})
			}
		}
	}
	return edges, nil
}

func init() {
	addCmd.Flags().UintSliceVarP(&addFlags.vertices, "vertex", "v", nil, "vertex ids to add")
	addCmd.Flags().UintSliceVarP(&addFlags.edges, "edge", "e", nil, "edge endpoint pairs (from,to,...)")
	addCmd.Flags().UintSliceVar(&addFlags.chain, "chain", nil, "link the given vertices into a chain")
	addCmd.Flags().UintSliceVar(&addFlags.cycle, "cycle", nil, "link the given vertices into a closed cycle")
	addCmd.Flags().UintSliceVar(&addFlags.star, "star", nil, "connect the first vertex to all others")
	addCmd.Flags().UintSliceVar(&addFlags.clique, "clique", nil, "connect every given vertex to every other")
	addCmd.Flags().BoolVarP(&addFlags.reverse, "reverse", "r", false, "reverse every created edge")
	addCmd.Flags().Int64VarP(&addFlags.weight, "weight", "w", graph.DefaultWeight, "weight for created edges")
	rootCmd.AddCommand(addCmd)
}
