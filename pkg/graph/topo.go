package graph

import (
	"container/heap"
	"errors"
)

// ErrCyclic is returned by TopoSort when the graph contains a cycle and no
// topological order exists.
var ErrCyclic = errors.New("graph: not acyclic")

// vertexHeap is a min-heap of vertex ids, used to make the ready set of
// Kahn's algorithm pop in ascending-id order for deterministic output.
type vertexHeap []VertexID

func (h vertexHeap) Len() int            { return len(h) }
func (h vertexHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h vertexHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *vertexHeap) Push(x interface{}) { *h = append(*h, x.(VertexID)) }
func (h *vertexHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// TopoSort returns a total order over the vertices consistent with edge
// direction: every edge points from an earlier to a later position. Among
// the valid orders it returns the lexicographically smallest one. ErrCyclic
// is returned if the graph is not acyclic.
func TopoSort(g *Graph) ([]VertexID, error) {
	indegree := make(map[VertexID]int, g.VertexCount())
	g.EachVertex(func(id VertexID) bool {
		indegree[id] = g.InDegree(id)
		return true
	})

	ready := &vertexHeap{}
	g.EachVertex(func(id VertexID) bool {
		if indegree[id] == 0 {
			heap.Push(ready, id)
		}
		return true
	})

	order := make([]VertexID, 0, g.VertexCount())
	for ready.Len() > 0 {
		id := heap.Pop(ready).(VertexID)
		order = append(order, id)
		g.EachOut(id, func(to VertexID, _ int64) bool {
			indegree[to]--
			if indegree[to] == 0 {
				heap.Push(ready, to)
			}
			return true
		})
	}
	if len(order) != g.VertexCount() {
		return nil, ErrCyclic
	}
	return order, nil
}
