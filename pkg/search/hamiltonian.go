package search

import (
	"github.com/kovacq/gravl/pkg/constraint"
	"github.com/kovacq/gravl/pkg/graph"
	"github.com/kovacq/gravl/pkg/metrics"
)

// hamiltonian searches for a cycle visiting every vertex exactly once,
// by exhaustive iterative backtracking from the minimum vertex id. The
// result, if any, is therefore already canonical. Worst case is
// exponential; the degree pre-check and the remaining-reachability prune
// cut off most hopeless branches early.
func hamiltonian(g *graph.Graph, set constraint.Set) CycleResult {
	n := g.VertexCount()
	if n < 2 {
		return CycleResult{}
	}
	// Excluding any existing vertex contradicts visiting all of them.
	for _, v := range set.ExcludeVertices {
		if g.ContainsVertex(v) {
			return CycleResult{}
		}
	}
	degreesOK := true
	g.EachVertex(func(id graph.VertexID) bool {
		if g.OutDegree(id) == 0 || g.InDegree(id) == 0 {
			degreesOK = false
			return false
		}
		return true
	})
	if !degreesOK {
		return CycleResult{}
	}

	start := g.Vertices()[0]
	path := []graph.VertexID{start}
	weights := []int64{}
	visited := map[graph.VertexID]struct{}{start: {}}
	var score int64

	stack := []cycleFrame{{succs: successors(g, start)}}
	for len(stack) > 0 {
		frame := &stack[len(stack)-1]
		if frame.next >= len(frame.succs) {
			stack = stack[:len(stack)-1]
			last := path[len(path)-1]
			delete(visited, last)
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
		metrics.SearchExpansions.WithLabelValues("hamiltonian").Inc()

		if succ.to == start {
			if len(path) != n || set.ExcludesEdge(cur, start) {
				continue
			}
			if total := score + succ.w; cycleMatches(set, path, total) {
				metrics.CyclesEmitted.Inc()
				c := graph.Cycle{Vertices: append([]graph.VertexID(nil), path...)}
				return CycleResult{
					Found:  true,
					Cycles: []graph.Cycle{c},
					Scores: []int64{total},
				}
			}
			continue
		}
		if _, seen := visited[succ.to]; seen {
			continue
		}
		if set.ExcludesEdge(cur, succ.to) {
			continue
		}
		if !remainingReachable(g, set, succ.to, visited, start) {
			continue
		}

		path = append(path, succ.to)
		weights = append(weights, succ.w)
		visited[succ.to] = struct{}{}
		score += succ.w
		stack = append(stack, cycleFrame{succs: successors(g, succ.to)})
	}
	return CycleResult{}
}

// remainingReachable reports whether, from next, every still-unvisited
// vertex and the start vertex can be reached through unvisited vertices.
// If not, no extension of this partial tour can close a Hamiltonian cycle.
func remainingReachable(g *graph.Graph, set constraint.Set, next graph.VertexID, visited map[graph.VertexID]struct{}, start graph.VertexID) bool {
	need := 1 // the start vertex must be reachable again
	g.EachVertex(func(id graph.VertexID) bool {
		if _, seen := visited[id]; !seen && id != next {
			need++
		}
		return true
	})

	reached := map[graph.VertexID]struct{}{}
	queue := []graph.VertexID{next}
	seen := map[graph.VertexID]struct{}{next: {}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		g.EachOut(cur, func(to graph.VertexID, _ int64) bool {
			if set.ExcludesEdge(cur, to) {
				return true
			}
			if _, done := seen[to]; done {
				return true
			}
			if to == start {
				// The tour ends at start; count it but do not traverse
				// through it.
				reached[to] = struct{}{}
				seen[to] = struct{}{}
				return true
			}
			if _, v := visited[to]; v {
				return true
			}
			seen[to] = struct{}{}
			reached[to] = struct{}{}
			queue = append(queue, to)
			return true
		})
	}
	return len(reached) >= need
}
