package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kovacq/gravl/pkg/constraint"
	"github.com/kovacq/gravl/pkg/graph"
)

var cspFlags struct {
	start uint
	end   uint

	include      []uint
	exclude      []uint
	excludeEdges []uint
	ordered      []uint

	exactLength int
	minLength   int
	maxLength   int
	exactScore  int64
	minScore    int64
	maxScore    int64

	includeCycle bool
	noCycle      bool
}

var cspCmd = &cobra.Command{
	Use:   "csp",
	Short: "Constrained shortest path between two vertices",
	Long: `Find the start-to-end path with the lowest total edge weight that
satisfies every given constraint. Length bounds count vertices; score
bounds sum traversed edge weights. With no constraints this is a plain
shortest-path query.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := cspConstraints()
		if err != nil {
			return err
		}
		start := graph.VertexID(cspFlags.start)
		end := graph.VertexID(cspFlags.end)

		res, err := openEngine().ShortestPath(start, end, set)
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

func cspConstraints() (constraint.Set, error) {
	var set constraint.Set
	var err error

	if set.IncludeVertices, err = toVertexIDs(cspFlags.include); err != nil {
		return set, err
	}
	if set.ExcludeVertices, err = toVertexIDs(cspFlags.exclude); err != nil {
		return set, err
	}
	if set.ExcludeEdges, err = toEdges(cspFlags.excludeEdges); err != nil {
		return set, err
	}
	if set.OrderedVertices, err = toVertexIDs(cspFlags.ordered); err != nil {
		return set, err
	}
	set.ExactLength = cspFlags.exactLength
	set.MinLength = cspFlags.minLength
	set.MaxLength = cspFlags.maxLength
	set.ExactScore = cspFlags.exactScore
	set.MinScore = cspFlags.minScore
	set.MaxScore = cspFlags.maxScore
	set.RequireCycle = cspFlags.includeCycle
	set.ForbidCycle = cspFlags.noCycle
	return set, nil
}

func init() {
	cspCmd.Flags().UintVarP(&cspFlags.start, "start", "s", 0, "starting vertex")
	cspCmd.Flags().UintVarP(&cspFlags.end, "end", "e", 0, "end vertex")
	cspCmd.Flags().UintSliceVar(&cspFlags.include, "include", nil, "vertices the path must visit")
	cspCmd.Flags().UintSliceVar(&cspFlags.exclude, "exclude", nil, "vertices the path must avoid")
	cspCmd.Flags().UintSliceVar(&cspFlags.excludeEdges, "exclude-edge", nil, "edge pairs the path must avoid (from,to,...)")
	cspCmd.Flags().UintSliceVar(&cspFlags.ordered, "ordered", nil, "vertices that must appear in this relative order")
	cspCmd.Flags().IntVar(&cspFlags.exactLength, "exact-length", 0, "exact number of vertices")
	cspCmd.Flags().IntVar(&cspFlags.minLength, "min-length", 0, "minimum number of vertices")
	cspCmd.Flags().IntVar(&cspFlags.maxLength, "max-length", 0, "maximum number of vertices")
	cspCmd.Flags().Int64Var(&cspFlags.exactScore, "exact-score", 0, "exact total score")
	cspCmd.Flags().Int64Var(&cspFlags.minScore, "min-score", 0, "minimum total score")
	cspCmd.Flags().Int64Var(&cspFlags.maxScore, "max-score", 0, "maximum total score")
	cspCmd.Flags().BoolVar(&cspFlags.includeCycle, "include-cycle", false, "the path must revisit at least one vertex")
	cspCmd.Flags().BoolVar(&cspFlags.noCycle, "no-cycle", false, "the path must not revisit any vertex")
	_ = cspCmd.MarkFlagRequired("start")
	_ = cspCmd.MarkFlagRequired("end")
	cspCmd.MarkFlagsMutuallyExclusive("include-cycle", "no-cycle")
	rootCmd.AddCommand(cspCmd)
}
