// Package search implements the constrained queries that run against a
// materialized graph snapshot: shortest path under a predicate conjunction,
// cycle enumeration with its selection modes, girth and Hamiltonian-cycle
// search.
//
// Every search is iterative over an explicit frontier or stack; none of
// them recurses, so graph size never threatens the call stack. The snapshot
// is read-only for the duration of a query.
package search

import (
	"container/heap"
	"errors"
	"math/bits"

	"github.com/kovacq/gravl/pkg/constraint"
	"github.com/kovacq/gravl/pkg/graph"
	"github.com/kovacq/gravl/pkg/metrics"
)

// MaxMandatoryVertices bounds how many distinct mandatory vertices one path
// query may carry; the satisfied set is tracked as a 64-bit mask.
const MaxMandatoryVertices = 64

// ErrTooManyMandatory is returned when a query names more mandatory
// vertices than the search state can track.
var ErrTooManyMandatory = errors.New("too many mandatory vertices in one query")

// PathResult is the outcome of a path query. Found false means the search
// exhausted its frontier without a satisfying path, which is a normal
// outcome, not an error.
type PathResult struct {
	Found bool
	Path  graph.Path
	Score int64
}

// pathState is one node of the best-first search space: where the walk is,
// which mandatory vertices it has satisfied, how far through the ordered
// sequence it is, and whether it has revisited a vertex yet.
type pathState struct {
	vertex    graph.VertexID
	mask      uint64
	orderIdx  int
	cycleUsed bool
	path      graph.Path
	score     int64
	seq       uint64
}

// stateKey identifies states that are interchangeable for dominance
// purposes: a cheaper walk reaching the same key makes every later one
// redundant.
type stateKey struct {
	vertex    graph.VertexID
	mask      uint64
	orderIdx  int
	cycleUsed bool
}

// walkKey extends stateKey with the walk's length and score. When revisits
// are unrestricted, two walks agreeing on a walkKey admit exactly the same
// completions, so only the first discovered needs expanding.
type walkKey struct {
	stateKey
	length int
	score  int64
}

// frontier orders states by score, then fewer vertices, then lowest current
// vertex id, then insertion order. The first satisfying state popped is the
// deterministic optimum.
type frontier []*pathState

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	a, b := f[i], f[j]
	if a.score != b.score {
		return a.score < b.score
	}
	if a.path.Len() != b.path.Len() {
		return a.path.Len() < b.path.Len()
	}
	if a.vertex != b.vertex {
		return a.vertex < b.vertex
	}
	return a.seq < b.seq
}
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(*pathState)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	s := old[n-1]
	*f = old[:n-1]
	return s
}

// csp carries the per-query setup shared by every expansion.
type csp struct {
	g          *graph.Graph
	set        constraint.Set
	start, end graph.VertexID

	mandBit  map[graph.VertexID]uint64
	fullMask uint64
	ordPos   map[graph.VertexID]int

	minLen, maxLen     int
	minScore, maxScore int64
	capLen             int
	capScore           int64
	minEdge            int64
	dominance          bool
	foldWalks          bool
}

// ShortestPath finds the minimum-score start->end path satisfying set. The
// set must already have passed ValidateForPath. The only error condition is
// a query the state encoding cannot represent; an unsatisfiable query is
// reported through Found.
func ShortestPath(g *graph.Graph, start, end graph.VertexID, set constraint.Set) (PathResult, error) {
	mandatory := set.Mandatory()
	if len(mandatory) > MaxMandatoryVertices {
		return PathResult{}, ErrTooManyMandatory
	}
	if !g.ContainsVertex(start) || !g.ContainsVertex(end) {
		return PathResult{}, nil
	}

	q := &csp{g: g, set: set, start: start, end: end}
	q.mandBit = make(map[graph.VertexID]uint64, len(mandatory))
	for i, v := range mandatory {
		q.mandBit[v] = 1 << uint(i)
		q.fullMask |= 1 << uint(i)
	}
	q.ordPos = make(map[graph.VertexID]int, len(set.OrderedVertices))
	for i, v := range set.OrderedVertices {
		q.ordPos[v] = i
	}

	q.minLen, q.maxLen = set.LengthBounds()
	q.minScore, q.maxScore = set.ScoreBounds()
	q.minEdge, _ = g.MinEdgeWeight()

	// Dominance pruning collapses walks that reach the same state key. It
	// is sound only when a cheaper walk is always at least as good, which
	// fails once a lower bound or a demanded revisit can make the longer
	// walk the right one, and is unnecessary under forbid-cycle where the
	// walk space is finite anyway.
	q.dominance = !set.ForbidCycle && !set.RequireCycle && !set.HasMinimum()

	// When only lower bounds disable dominance, walks agreeing on position,
	// progress, length and score are still interchangeable: the vertices
	// behind them never matter again once revisits are free. Folding those
	// keeps the search polynomial in the caps instead of exponential in the
	// walk length.
	q.foldWalks = !q.dominance && !set.ForbidCycle && !set.RequireCycle

	// Without dominance the search needs explicit caps to terminate when
	// the frontier can grow forever. Any minimal satisfying walk decomposes
	// into simple segments between mandatory visits plus at most one simple
	// cycle, so a generous multiple of the vertex count past the lower
	// bound cannot cut off all solutions. The caps are derived jointly: a
	// walk chasing a score floor may need ceil(minScore/minEdge) edges
	// before it can end, and one chasing a length floor may cost maxEdge
	// per owed hop, so each cap has to leave room for the other bound.
	if !q.dominance {
		slack := (len(mandatory) + 3) * g.VertexCount()
		maxEdge := q.maxEdgeWeight()
		if q.maxLen == 0 {
			floor := q.minLen
			if q.minEdge > 0 {
				if need := int((q.minScore+q.minEdge-1)/q.minEdge) + 1; need > floor {
					floor = need
				}
			}
			q.capLen = floor + slack
		}
		if q.maxScore == 0 {
			q.capScore = q.minScore + int64(q.minLen+slack)*maxEdge
		}
	}

	return q.run()
}

func (q *csp) maxEdgeWeight() int64 {
	var max int64 = 1
	q.g.EachVertex(func(id graph.VertexID) bool {
		q.g.EachOut(id, func(_ graph.VertexID, w int64) bool {
			if w > max {
				max = w
			}
			return true
		})
		return true
	})
	return max
}

func (q *csp) run() (PathResult, error) {
	startState, ok := q.startState()
	if !ok {
		return PathResult{}, nil
	}

	var seq uint64
	pq := &frontier{startState}
	heap.Init(pq)
	closed := make(map[stateKey]struct{})
	var walks map[walkKey]struct{}
	if q.foldWalks {
		walks = make(map[walkKey]struct{})
	}

	for pq.Len() > 0 {
		s := heap.Pop(pq).(*pathState)
		metrics.SearchExpansions.WithLabelValues("path").Inc()

		if q.dominance {
			key := stateKey{s.vertex, s.mask, s.orderIdx, s.cycleUsed}
			if _, seen := closed[key]; seen {
				continue
			}
			closed[key] = struct{}{}
		} else if q.foldWalks {
			key := walkKey{stateKey{s.vertex, s.mask, s.orderIdx, s.cycleUsed}, s.path.Len(), s.score}
			if _, seen := walks[key]; seen {
				continue
			}
			walks[key] = struct{}{}
		}

		if q.satisfied(s) {
			return PathResult{Found: true, Path: s.path, Score: s.score}, nil
		}

		q.g.EachOut(s.vertex, func(to graph.VertexID, w int64) bool {
			next, ok := q.extend(s, to, w)
			if ok {
				seq++
				next.seq = seq
				heap.Push(pq, next)
			}
			return true
		})
	}
	return PathResult{}, nil
}

// startState builds the one-vertex walk at start, or reports that the
// constraints already rule it out.
func (q *csp) startState() (*pathState, bool) {
	s := &pathState{vertex: q.start, path: graph.PathOf(q.start)}
	if pos, ok := q.ordPos[q.start]; ok {
		if pos != 0 {
			return nil, false
		}
		s.orderIdx = 1
	}
	if bit, ok := q.mandBit[q.start]; ok {
		s.mask |= bit
	}
	return s, true
}

// satisfied reports whether a popped state is a complete answer. Upper
// bounds are enforced during expansion; only the lower bounds and the
// completion predicates remain to check here.
func (q *csp) satisfied(s *pathState) bool {
	if s.vertex != q.end {
		return false
	}
	if s.mask != q.fullMask || s.orderIdx != len(q.set.OrderedVertices) {
		return false
	}
	if q.set.RequireCycle && !s.cycleUsed {
		return false
	}
	if q.minLen != 0 && s.path.Len() < q.minLen {
		return false
	}
	if q.minScore != 0 && s.score < q.minScore {
		return false
	}
	return true
}

// extend tries to grow the walk along one outgoing edge, applying every
// pruning rule. Returns false when the extension cannot be part of any
// satisfying path.
func (q *csp) extend(s *pathState, to graph.VertexID, w int64) (*pathState, bool) {
	if q.set.ExcludesVertex(to) || q.set.ExcludesEdge(s.vertex, to) {
		return nil, false
	}

	revisit := s.path.ContainsVertex(to)
	if q.set.ForbidCycle && revisit {
		return nil, false
	}

	newLen := s.path.Len() + 1
	newScore := s.score + w
	if q.maxLen != 0 && newLen > q.maxLen {
		return nil, false
	}
	if q.maxScore != 0 && newScore > q.maxScore {
		return nil, false
	}
	if q.capLen != 0 && newLen > q.capLen {
		return nil, false
	}
	if q.capScore != 0 && newScore > q.capScore {
		return nil, false
	}

	next := &pathState{
		vertex:    to,
		mask:      s.mask,
		orderIdx:  s.orderIdx,
		cycleUsed: s.cycleUsed || revisit,
		path:      s.path.Append(to),
		score:     newScore,
	}

	if pos, ok := q.ordPos[to]; ok {
		if pos != s.orderIdx {
			// Entering an ordered vertex early, or re-entering one the walk
			// already passed, can never be repaired later.
			return nil, false
		}
		next.orderIdx = s.orderIdx + 1
	}
	if bit, ok := q.mandBit[to]; ok {
		next.mask |= bit
	}

	// Admissible remaining-cost bound: every hop still owed costs at least
	// the cheapest edge in the graph.
	if q.maxScore != 0 && q.minEdge > 0 {
		hopsLeft := bits.OnesCount64(q.fullMask &^ next.mask)
		if to != q.end && hopsLeft == 0 {
			hopsLeft = 1
		}
		if newScore+int64(hopsLeft)*q.minEdge > q.maxScore {
			return nil, false
		}
	}
	return next, true
}
