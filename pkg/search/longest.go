package search

import (
	"github.com/kovacq/gravl/pkg/graph"
	"github.com/kovacq/gravl/pkg/metrics"
)

// LongestPath finds the maximum-score start->end path. It is defined on
// acyclic graphs only; with a reachable cycle the score would be unbounded,
// so graph.ErrCyclic is returned for any cyclic graph.
//
// The search is dynamic programming over the topological order: once every
// predecessor of a vertex has settled, so has the vertex. Score ties break
// toward the lowest predecessor id, keeping the result deterministic.
func LongestPath(g *graph.Graph, start, end graph.VertexID) (PathResult, error) {
	order, err := graph.TopoSort(g)
	if err != nil {
		return PathResult{}, err
	}
	if !g.ContainsVertex(start) || !g.ContainsVertex(end) {
		return PathResult{}, nil
	}

	type settled struct {
		score int64
		prev  graph.VertexID
	}
	best := map[graph.VertexID]settled{start: {}}

	for _, v := range order {
		b, reached := best[v]
		if !reached {
			continue
		}
		g.EachOut(v, func(to graph.VertexID, w int64) bool {
			metrics.SearchExpansions.WithLabelValues("longest").Inc()
			cand := b.score + w
			cur, seen := best[to]
			if !seen || cand > cur.score || (cand == cur.score && v < cur.prev) {
				best[to] = settled{score: cand, prev: v}
			}
			return true
		})
	}

	b, reached := best[end]
	if !reached {
		return PathResult{}, nil
	}

	vertices := []graph.VertexID{end}
	for v := end; v != start; {
		v = best[v].prev
		vertices = append(vertices, v)
	}
	for i, j := 0, len(vertices)-1; i < j; i, j = i+1, j-1 {
		vertices[i], vertices[j] = vertices[j], vertices[i]
	}
	return PathResult{Found: true, Path: graph.PathOf(vertices...), Score: b.score}, nil
}
