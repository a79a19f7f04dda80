package search

import (
	"github.com/kovacq/gravl/pkg/graph"
	"github.com/kovacq/gravl/pkg/metrics"
)

// girth finds the length of the shortest cycle by running one BFS per
// vertex: the shortest cycle through v has length dist(v, u)+1 over edges
// u->v. Polynomial, unlike the enumerating modes, which is why girth
// accepts no constraints. Self-loops do not count as cycles.
func girth(g *graph.Graph) CycleResult {
	best := 0
	g.EachVertex(func(start graph.VertexID) bool {
		if l, ok := shortestCycleThrough(g, start); ok && (best == 0 || l < best) {
			best = l
		}
		// A 2-cycle is the minimum possible; no later vertex can beat it.
		return best != 2
	})
	if best == 0 {
		return CycleResult{}
	}
	return CycleResult{Found: true, Girth: best}
}

// shortestCycleThrough returns the length of the shortest cycle that
// passes through start, measured in vertices.
func shortestCycleThrough(g *graph.Graph, start graph.VertexID) (int, bool) {
	dist := map[graph.VertexID]int{start: 0}
	queue := []graph.VertexID{start}
	bestClose := 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		metrics.SearchExpansions.WithLabelValues("girth").Inc()

		// Once the BFS layer reaches the best closing distance found so
		// far, nothing shorter can still appear.
		if bestClose != 0 && dist[cur]+1 >= bestClose {
			continue
		}
		g.EachOut(cur, func(to graph.VertexID, _ int64) bool {
			if to == start {
				if cur != start { // ignore self-loops
					l := dist[cur] + 1
					if bestClose == 0 || l < bestClose {
						bestClose = l
					}
				}
				return true
			}
			if _, seen := dist[to]; !seen {
				dist[to] = dist[cur] + 1
				queue = append(queue, to)
			}
			return true
		})
	}
	if bestClose == 0 {
		return 0, false
	}
	return bestClose, true
}
