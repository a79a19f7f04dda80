package search

import (
	"errors"

	"github.com/kovacq/gravl/pkg/constraint"
	"github.com/kovacq/gravl/pkg/graph"
	"github.com/kovacq/gravl/pkg/metrics"
)

// Mode selects what a cycle query returns. Exactly one mode is chosen per
// query; the CLI turns its mutually exclusive flags into one of these
// before calling the engine.
type Mode int

const (
	ModeShortest Mode = iota
	ModeLongest
	ModeAll
	ModeCount
	ModeHead
	ModeTakeN
	ModeGirth
	ModeHamiltonian
)

// String returns the mode's query name.
func (m Mode) String() string {
	switch m {
	case ModeShortest:
		return "shortest"
	case ModeLongest:
		return "longest"
	case ModeAll:
		return "all"
	case ModeCount:
		return "count"
	case ModeHead:
		return "head"
	case ModeTakeN:
		return "take"
	case ModeGirth:
		return "girth"
	case ModeHamiltonian:
		return "hamiltonian"
	}
	return "unknown"
}

// CycleRequest is the discriminated query value for cycle enumeration.
// N is meaningful for ModeTakeN only.
type CycleRequest struct {
	Mode Mode
	N    int
}

// ErrBadRequest is returned for a request whose mode and parameters do not
// fit together, e.g. take-n with a non-positive n.
var ErrBadRequest = errors.New("malformed cycle request")

// CycleResult is the outcome of a cycle query. Which fields are populated
// depends on the mode: Cycles/Scores for enumerating modes, Count for
// count, Girth for girth. Found false is the normal no-solution outcome.
type CycleResult struct {
	Found  bool
	Cycles []graph.Cycle
	Scores []int64
	Count  int
	Girth  int
}

// Cycles answers one cycle query against the snapshot. The constraint set
// must already have passed ValidateForCycle; girth additionally accepts no
// constraints at all, which the caller enforces.
func Cycles(g *graph.Graph, req CycleRequest, set constraint.Set) (CycleResult, error) {
	switch req.Mode {
	case ModeGirth:
		return girth(g), nil
	case ModeHamiltonian:
		return hamiltonian(g, set), nil
	case ModeTakeN:
		if req.N <= 0 {
			return CycleResult{}, ErrBadRequest
		}
	}

	var res CycleResult
	switch req.Mode {
	case ModeAll:
		enumerate(g, set, needSequences, func(c graph.Cycle, score int64) bool {
			res.Cycles = append(res.Cycles, c)
			res.Scores = append(res.Scores, score)
			return true
		})
		res.Count = len(res.Cycles)
		res.Found = res.Count > 0

	case ModeCount:
		// Counting never materializes vertex sequences; the visitor only
		// bumps a counter and the enumerator skips the per-cycle copy.
		enumerate(g, set, countOnly, func(graph.Cycle, int64) bool {
			res.Count++
			return true
		})
		res.Found = res.Count > 0

	case ModeHead:
		enumerate(g, set, needSequences, func(c graph.Cycle, score int64) bool {
			res.Cycles = []graph.Cycle{c}
			res.Scores = []int64{score}
			return false
		})
		res.Found = len(res.Cycles) > 0

	case ModeTakeN:
		enumerate(g, set, needSequences, func(c graph.Cycle, score int64) bool {
			res.Cycles = append(res.Cycles, c)
			res.Scores = append(res.Scores, score)
			return len(res.Cycles) < req.N
		})
		res.Count = len(res.Cycles)
		res.Found = res.Count > 0

	case ModeShortest, ModeLongest:
		best, bestScore, found := selectCycle(g, set, req.Mode)
		if found {
			res.Found = true
			res.Cycles = []graph.Cycle{best}
			res.Scores = []int64{bestScore}
		}

	default:
		return CycleResult{}, ErrBadRequest
	}
	return res, nil
}

// selectCycle runs a full enumeration keeping only the best cycle under the
// mode's ordering: length first, then score, then earliest discovery, which
// by construction means the lowest starting vertex id.
func selectCycle(g *graph.Graph, set constraint.Set, mode Mode) (graph.Cycle, int64, bool) {
	var (
		best      graph.Cycle
		bestScore int64
		found     bool
	)
	better := func(c graph.Cycle, score int64) bool {
		if !found {
			return true
		}
		if c.Len() != best.Len() {
			if mode == ModeShortest {
				return c.Len() < best.Len()
			}
			return c.Len() > best.Len()
		}
		return score < bestScore
	}
	enumerate(g, set, needSequences, func(c graph.Cycle, score int64) bool {
		if better(c, score) {
			best, bestScore, found = c, score, true
		}
		return true
	})
	return best, bestScore, found
}

// Sequence demand of an enumeration: counting gets by on the predicate
// alone and skips copying each matched walk.
const (
	countOnly     = false
	needSequences = true
)

// enumerate walks every simple cycle of g that satisfies set, in canonical
// discovery order, calling visit for each until it returns false. With
// countOnly the visitor receives a zero Cycle; nothing is copied per match.
//
// The DFS rooted at start only ever enters vertices with ids >= start, so a
// cycle is discovered exactly once, from its minimum vertex, already in
// canonical rotation. No cross-rotation deduplication set is needed.
func enumerate(g *graph.Graph, set constraint.Set, needSeq bool, visit func(graph.Cycle, int64) bool) {
	_, maxLen := set.LengthBounds()
	g.EachVertex(func(start graph.VertexID) bool {
		if set.ExcludesVertex(start) {
			return true
		}
		return enumerateFrom(g, set, start, maxLen, needSeq, visit)
	})
}

// cycleFrame is one level of the explicit DFS stack: the successors of the
// vertex at this depth and the next one to try.
type cycleFrame struct {
	succs []halfSucc
	next  int
}

type halfSucc struct {
	to graph.VertexID
	w  int64
}

// enumerateFrom explores all simple cycles whose minimum vertex is start.
// Returns false when the visitor asked to stop.
func enumerateFrom(g *graph.Graph, set constraint.Set, start graph.VertexID, maxLen int, needSeq bool, visit func(graph.Cycle, int64) bool) bool {
	path := []graph.VertexID{start}
	weights := []int64{}
	onPath := map[graph.VertexID]struct{}{start: {}}
	var score int64

	stack := []cycleFrame{{succs: successors(g, start)}}
	for len(stack) > 0 {
		frame := &stack[len(stack)-1]
		if frame.next >= len(frame.succs) {
			// Exhausted this level; pop.
			stack = stack[:len(stack)-1]
			last := path[len(path)-1]
			delete(onPath, last)
			path = path[:len(path)-1]
			if len(weights) > 0 {
				score -= weights[len(weights)-1]
				weights = weights[:len(weights)-1]
			}
			continue
		}
		succ := frame.succs[frame.next]
		frame.next++
		cur := path[len(path)-1]
		metrics.SearchExpansions.WithLabelValues("cycle").Inc()

		if succ.to == start {
			// Self-loops are not cycles; a closing walk needs two vertices.
			if len(path) < 2 || set.ExcludesEdge(cur, start) {
				continue
			}
			if total := score + succ.w; cycleMatches(set, path, total) {
				metrics.CyclesEmitted.Inc()
				var c graph.Cycle
				if needSeq {
					c = graph.Cycle{Vertices: append([]graph.VertexID(nil), path...)}
				}
				if !visit(c, total) {
					return false
				}
			}
			continue
		}

		// Only vertices above the root keep discovery canonical; revisits
		// would break simplicity.
		if succ.to < start {
			continue
		}
		if _, seen := onPath[succ.to]; seen {
			continue
		}
		if set.ExcludesVertex(succ.to) || set.ExcludesEdge(cur, succ.to) {
			continue
		}
		if maxLen != 0 && len(path)+1 > maxLen {
			continue
		}
		if !scoreCanStillFit(set, g, score+succ.w) {
			continue
		}

		path = append(path, succ.to)
		weights = append(weights, succ.w)
		onPath[succ.to] = struct{}{}
		score += succ.w
		stack = append(stack, cycleFrame{succs: successors(g, succ.to)})
	}
	return true
}

func successors(g *graph.Graph, id graph.VertexID) []halfSucc {
	out := make([]halfSucc, 0, g.OutDegree(id))
	g.EachOut(id, func(to graph.VertexID, w int64) bool {
		out = append(out, halfSucc{to: to, w: w})
		return true
	})
	return out
}

// scoreCanStillFit prunes a partial walk whose accumulated score already
// busts the upper bound, accounting for the cheapest possible closing edge.
func scoreCanStillFit(set constraint.Set, g *graph.Graph, partial int64) bool {
	_, maxScore := set.ScoreBounds()
	if maxScore == 0 {
		return true
	}
	minEdge, ok := g.MinEdgeWeight()
	if !ok {
		return true
	}
	return partial+minEdge <= maxScore
}

// cycleMatches applies the remaining predicates to a closed walk. It never
// copies the path; the caller decides whether the match gets materialized.
func cycleMatches(set constraint.Set, path []graph.VertexID, total int64) bool {
	minLen, maxLen := set.LengthBounds()
	if minLen != 0 && len(path) < minLen {
		return false
	}
	if maxLen != 0 && len(path) > maxLen {
		return false
	}
	minScore, maxScore := set.ScoreBounds()
	if minScore != 0 && total < minScore {
		return false
	}
	if maxScore != 0 && total > maxScore {
		return false
	}

	for _, v := range set.IncludeVertices {
		if !containsVertex(path, v) {
			return false
		}
	}
	for _, e := range set.IncludeEdges {
		if !traversesEdge(path, e) {
			return false
		}
	}
	return true
}

func containsVertex(path []graph.VertexID, v graph.VertexID) bool {
	for _, p := range path {
		if p == v {
			return true
		}
	}
	return false
}

// traversesEdge checks the closed walk path[0]..path[n-1]..path[0] for e.
func traversesEdge(path []graph.VertexID, e graph.Edge) bool {
	for i := range path {
		from := path[i]
		to := path[(i+1)%len(path)]
		if from == e.From && to == e.To {
			return true
		}
	}
	return false
}
