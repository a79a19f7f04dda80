package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kovacq/gravl/pkg/constraint"
	"github.com/kovacq/gravl/pkg/search"
)

var cycleFlags struct {
	girth       bool
	count       bool
	head        bool
	all         bool
	shortest    bool
	longest     bool
	hamiltonian bool
	takeN       int

	include      []uint
	exclude      []uint
	includeEdges []uint
	excludeEdges []uint

	exactLength int
	minLength   int
	maxLength   int
	exactScore  int64
	minScore    int64
	maxScore    int64
}

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Find cycles in the graph",
	Long: `Run one cycle query, selected by exactly one mode flag. Enumeration
discovers each cycle once, rotated to start at its minimum vertex id,
starting vertices ascending. Girth accepts no constraint flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := cycleRequest()
		if err != nil {
			return err
		}
		set, err := cycleConstraints()
		if err != nil {
			return err
		}

		res, err := openEngine().Cycles(req, set)
		if err != nil {
			return err
		}
		return printCycleResult(req, res)
	},
}

// cycleRequest folds the mutually exclusive mode flags into the one tagged
// request value the engine takes.
func cycleRequest() (search.CycleRequest, error) {
	var req search.CycleRequest
	picked := 0
	for _, mode := range []struct {
		on bool
		m  search.Mode
	}{
		{cycleFlags.girth, search.ModeGirth},
		{cycleFlags.count, search.ModeCount},
		{cycleFlags.head, search.ModeHead},
		{cycleFlags.all, search.ModeAll},
		{cycleFlags.shortest, search.ModeShortest},
		{cycleFlags.longest, search.ModeLongest},
		{cycleFlags.hamiltonian, search.ModeHamiltonian},
	} {
		if mode.on {
			picked++
			req.Mode = mode.m
		}
	}
	if cycleFlags.takeN != 0 {
		picked++
		req.Mode = search.ModeTakeN
		req.N = cycleFlags.takeN
	}
	if picked != 1 {
		return req, fmt.Errorf("pick exactly one mode flag (--girth, --count, --head, --take-n, --all, --shortest, --longest, --hamiltonian)")
	}
	return req, nil
}

func cycleConstraints() (constraint.Set, error) {
	var set constraint.Set
	var err error

	if set.IncludeVertices, err = toVertexIDs(cycleFlags.include); err != nil {
		return set, err
	}
	if set.ExcludeVertices, err = toVertexIDs(cycleFlags.exclude); err != nil {
		return set, err
	}
	if set.IncludeEdges, err = toEdges(cycleFlags.includeEdges); err != nil {
		return set, err
	}
	if set.ExcludeEdges, err = toEdges(cycleFlags.excludeEdges); err != nil {
		return set, err
	}
	set.ExactLength = cycleFlags.exactLength
	set.MinLength = cycleFlags.minLength
	set.MaxLength = cycleFlags.maxLength
	set.ExactScore = cycleFlags.exactScore
	set.MinScore = cycleFlags.minScore
	set.MaxScore = cycleFlags.maxScore
	return set, nil
}

func printCycleResult(req search.CycleRequest, res search.CycleResult) error {
	switch req.Mode {
	case search.ModeCount:
		fmt.Printf("count: %d\n", res.Count)
		return nil
	case search.ModeGirth:
		if !res.Found {
			fmt.Println("girth: no cycle")
			return errNotFound
		}
		fmt.Printf("girth: %d\n", res.Girth)
		return nil
	}

	if !res.Found {
		fmt.Println("no matching cycle")
		return errNotFound
	}
	for i, c := range res.Cycles {
		fmt.Printf("%s (length %d, score %d)\n", formatCycle(c), c.Len(), res.Scores[i])
	}
	return nil
}

func init() {
	cycleCmd.Flags().BoolVarP(&cycleFlags.girth, "girth", "g", false, "length of the shortest cycle")
	cycleCmd.Flags().BoolVarP(&cycleFlags.count, "count", "c", false, "number of matching cycles")
	cycleCmd.Flags().BoolVar(&cycleFlags.head, "head", false, "first matching cycle in discovery order")
	cycleCmd.Flags().IntVarP(&cycleFlags.takeN, "take-n", "n", 0, "first n matching cycles in discovery order")
	cycleCmd.Flags().BoolVarP(&cycleFlags.all, "all", "a", false, "every matching cycle")
	cycleCmd.Flags().BoolVarP(&cycleFlags.shortest, "shortest", "s", false, "shortest matching cycle")
	cycleCmd.Flags().BoolVarP(&cycleFlags.longest, "longest", "L", false, "longest matching cycle")
	cycleCmd.Flags().BoolVar(&cycleFlags.hamiltonian, "hamiltonian", false, "cycle visiting every vertex exactly once")
	cycleCmd.Flags().UintSliceVar(&cycleFlags.include, "include", nil, "vertices the cycle must contain")
	cycleCmd.Flags().UintSliceVar(&cycleFlags.exclude, "exclude", nil, "vertices the cycle must avoid")
	cycleCmd.Flags().UintSliceVar(&cycleFlags.includeEdges, "include-edge", nil, "edge pairs the cycle must traverse (from,to,...)")
	cycleCmd.Flags().UintSliceVar(&cycleFlags.excludeEdges, "exclude-edge", nil, "edge pairs the cycle must avoid (from,to,...)")
	cycleCmd.Flags().IntVar(&cycleFlags.exactLength, "exact-length", 0, "exact number of vertices")
	cycleCmd.Flags().IntVar(&cycleFlags.minLength, "min-length", 0, "minimum number of vertices")
	cycleCmd.Flags().IntVar(&cycleFlags.maxLength, "max-length", 0, "maximum number of vertices")
	cycleCmd.Flags().Int64Var(&cycleFlags.exactScore, "exact-score", 0, "exact total score")
	cycleCmd.Flags().Int64Var(&cycleFlags.minScore, "min-score", 0, "minimum total score")
	cycleCmd.Flags().Int64Var(&cycleFlags.maxScore, "max-score", 0, "maximum total score")
	rootCmd.AddCommand(cycleCmd)
}
