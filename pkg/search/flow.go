package search

import (
	"math"

	"github.com/kovacq/gravl/pkg/graph"
	"github.com/kovacq/gravl/pkg/metrics"
)

// EdgeFlow reports how much of one edge's capacity a maximum flow uses.
type EdgeFlow struct {
	Edge     graph.Edge
	Flow     int64
	Capacity int64
}

// FlowResult is the outcome of a maximum-flow query. Found is false when
// the endpoints do not admit a flow problem (absent, or source equals
// sink); a valid problem with no augmenting path reports Found with Max 0.
type FlowResult struct {
	Found bool
	Max   int64
	Edges []EdgeFlow
}

// MaxFlow computes the maximum start->end flow treating edge weights as
// capacities. Ford-Fulkerson with breadth-first augmenting paths: each
// round finds a shortest path with residual capacity, pushes its
// bottleneck, and stops when none remains. Per-edge flows come back in
// ascending (from, to) order.
func MaxFlow(g *graph.Graph, start, end graph.VertexID) FlowResult {
	if start == end || !g.ContainsVertex(start) || !g.ContainsVertex(end) {
		return FlowResult{}
	}

	flow := make(map[graph.Edge]int64)
	var max int64
	for {
		pushed := augment(g, flow, start, end)
		if pushed == 0 {
			break
		}
		max += pushed
	}

	edges := make([]EdgeFlow, 0, g.EdgeCount())
	g.EachVertex(func(from graph.VertexID) bool {
		g.EachOut(from, func(to graph.VertexID, w int64) bool {
			e := graph.Edge{From: from, To: to}
			edges = append(edges, EdgeFlow{Edge: e, Flow: flow[e], Capacity: w})
			return true
		})
		return true
	})
	return FlowResult{Found: true, Max: max, Edges: edges}
}

// residualHop records how the augmenting path reached a vertex: over an
// underfull forward edge or by draining flow back along a used one.
type residualHop struct {
	prev    graph.VertexID
	forward bool
}

// augment finds one shortest augmenting path in the residual graph and
// pushes its bottleneck capacity through, returning the amount pushed.
// Returns 0 when the sink is unreachable, which is the termination proof:
// no residual path means the flow is maximal.
func augment(g *graph.Graph, flow map[graph.Edge]int64, start, end graph.VertexID) int64 {
	parent := map[graph.VertexID]residualHop{start: {prev: start}}
	queue := []graph.VertexID{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		metrics.SearchExpansions.WithLabelValues("flow").Inc()
		g.EachOut(v, func(to graph.VertexID, w int64) bool {
			if _, seen := parent[to]; !seen && flow[graph.Edge{From: v, To: to}] < w {
				parent[to] = residualHop{prev: v, forward: true}
				queue = append(queue, to)
			}
			return true
		})
		g.EachIn(v, func(from graph.VertexID, _ int64) bool {
			if _, seen := parent[from]; !seen && flow[graph.Edge{From: from, To: v}] > 0 {
				parent[from] = residualHop{prev: v, forward: false}
				queue = append(queue, from)
			}
			return true
		})
	}
	if _, reached := parent[end]; !reached {
		return 0
	}

	bottleneck := int64(math.MaxInt64)
	for v := end; v != start; v = parent[v].prev {
		h := parent[v]
		var residual int64
		if h.forward {
			capacity, _ := g.Weight(h.prev, v)
			residual = capacity - flow[graph.Edge{From: h.prev, To: v}]
		} else {
			residual = flow[graph.Edge{From: v, To: h.prev}]
		}
		if residual < bottleneck {
			bottleneck = residual
		}
	}
	for v := end; v != start; v = parent[v].prev {
		h := parent[v]
		if h.forward {
			flow[graph.Edge{From: h.prev, To: v}] += bottleneck
		} else {
			flow[graph.Edge{From: v, To: h.prev}] -= bottleneck
		}
	}
	return bottleneck
}
