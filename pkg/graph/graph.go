package graph

import (
	"math"

	"github.com/tidwall/btree"
)

// halfEdge is one adjacency row entry: the far endpoint and the edge weight.
type halfEdge struct {
	to     VertexID
	weight int64
}

// vertexEntry carries both adjacency directions for one vertex. Keeping the
// reverse rows alongside the forward ones makes RemoveVertex a local
// operation and gives consumers predecessor iteration for free.
type vertexEntry struct {
	id  VertexID
	out *btree.BTreeG[halfEdge]
	in  *btree.BTreeG[halfEdge]
}

func halfEdgeLess(a, b halfEdge) bool   { return a.to < b.to }
func vertexLess(a, b *vertexEntry) bool { return a.id < b.id }

// Graph is the materialized adjacency snapshot. Vertices and adjacency rows
// are kept in B-trees keyed by vertex id, so every iteration the searches
// rely on is in ascending-id order without extra sorting.
//
// A Graph is not safe for concurrent mutation; once built it must be treated
// as read-only for the duration of a query.
type Graph struct {
	vertices  *btree.BTreeG[*vertexEntry]
	edgeCount int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{vertices: btree.NewBTreeG(vertexLess)}
}

// Materialize replays commands strictly in order into a fresh graph.
// Replaying the same sequence always yields the same graph.
func Materialize(commands []Command) *Graph {
	g := New()
	for _, cmd := range commands {
		g.Apply(cmd)
	}
	return g
}

// Apply executes a single command against the graph.
func (g *Graph) Apply(cmd Command) {
	switch cmd.Kind {
	case KindAddVertex:
		g.AddVertex(cmd.ID)
	case KindAddEdge:
		g.AddEdge(cmd.From, cmd.To, cmd.Weight)
	case KindRemoveVertex:
		g.RemoveVertex(cmd.ID)
	case KindRemoveEdge:
		g.RemoveEdge(cmd.From, cmd.To)
	}
}

func (g *Graph) entry(id VertexID) (*vertexEntry, bool) {
	return g.vertices.Get(&vertexEntry{id: id})
}

// AddVertex creates a vertex. Adding an existing id is a no-op.
// Reports whether the vertex was created.
func (g *Graph) AddVertex(id VertexID) bool {
	if _, ok := g.entry(id); ok {
		return false
	}
	g.vertices.Set(&vertexEntry{
		id:  id,
		out: btree.NewBTreeG(halfEdgeLess),
		in:  btree.NewBTreeG(halfEdgeLess),
	})
	return true
}

// AddEdge creates the directed edge from->to, creating missing endpoints
// implicitly. Re-adding an existing pair replaces the weight. A non-positive
// weight is normalized to DefaultWeight. Reports whether a new edge appeared.
func (g *Graph) AddEdge(from, to VertexID, weight int64) bool {
	if weight <= 0 {
		weight = DefaultWeight
	}
	g.AddVertex(from)
	g.AddVertex(to)
	src, _ := g.entry(from)
	dst, _ := g.entry(to)
	_, existed := src.out.Set(halfEdge{to: to, weight: weight})
	dst.in.Set(halfEdge{to: from, weight: weight})
	if !existed {
		g.edgeCount++
	}
	return !existed
}

// RemoveVertex deletes a vertex together with every incident edge, in and
// out. Removing an absent id is a no-op. Reports whether the vertex existed.
func (g *Graph) RemoveVertex(id VertexID) bool {
	ent, ok := g.entry(id)
	if !ok {
		return false
	}
	// Collect first: the adjacency rows shrink while edges are removed.
	var targets, sources []VertexID
	ent.out.Scan(func(e halfEdge) bool { targets = append(targets, e.to); return true })
	ent.in.Scan(func(e halfEdge) bool { sources = append(sources, e.to); return true })
	for _, to := range targets {
		g.RemoveEdge(id, to)
	}
	for _, from := range sources {
		g.RemoveEdge(from, id)
	}
	g.vertices.Delete(ent)
	return true
}

// RemoveEdge deletes the directed edge from->to if present.
// Reports whether the edge existed.
func (g *Graph) RemoveEdge(from, to VertexID) bool {
	src, ok := g.entry(from)
	if !ok {
		return false
	}
	if _, existed := src.out.Delete(halfEdge{to: to}); !existed {
		return false
	}
	if dst, ok := g.entry(to); ok {
		dst.in.Delete(halfEdge{to: from})
	}
	g.edgeCount--
	return true
}

// ContainsVertex reports whether the vertex exists.
func (g *Graph) ContainsVertex(id VertexID) bool {
	_, ok := g.entry(id)
	return ok
}

// ContainsEdge reports whether the directed edge from->to exists.
func (g *Graph) ContainsEdge(from, to VertexID) bool {
	_, ok := g.Weight(from, to)
	return ok
}

// Weight returns the weight of the edge from->to.
func (g *Graph) Weight(from, to VertexID) (int64, bool) {
	src, ok := g.entry(from)
	if !ok {
		return 0, false
	}
	e, ok := src.out.Get(halfEdge{to: to})
	if !ok {
		return 0, false
	}
	return e.weight, true
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return g.vertices.Len() }

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// EachVertex visits every vertex in ascending id order until fn returns
// false.
func (g *Graph) EachVertex(fn func(id VertexID) bool) {
	g.vertices.Scan(func(ent *vertexEntry) bool { return fn(ent.id) })
}

// Vertices returns all vertex ids in ascending order.
func (g *Graph) Vertices() []VertexID {
	ids := make([]VertexID, 0, g.vertices.Len())
	g.EachVertex(func(id VertexID) bool { ids = append(ids, id); return true })
	return ids
}

// EachOut visits the successors of id in ascending id order until fn returns
// false. Visiting an absent vertex is a no-op.
func (g *Graph) EachOut(id VertexID, fn func(to VertexID, weight int64) bool) {
	if ent, ok := g.entry(id); ok {
		ent.out.Scan(func(e halfEdge) bool { return fn(e.to, e.weight) })
	}
}

// EachIn visits the predecessors of id in ascending id order until fn
// returns false.
func (g *Graph) EachIn(id VertexID, fn func(from VertexID, weight int64) bool) {
	if ent, ok := g.entry(id); ok {
		ent.in.Scan(func(e halfEdge) bool { return fn(e.to, e.weight) })
	}
}

// OutDegree returns the number of outgoing edges of id.
func (g *Graph) OutDegree(id VertexID) int {
	if ent, ok := g.entry(id); ok {
		return ent.out.Len()
	}
	return 0
}

// InDegree returns the number of incoming edges of id.
func (g *Graph) InDegree(id VertexID) int {
	if ent, ok := g.entry(id); ok {
		return ent.in.Len()
	}
	return 0
}

// MinEdgeWeight returns the smallest edge weight in the graph, used as the
// admissible per-hop lower bound by score pruning. The second result is
// false when the graph has no edges.
func (g *Graph) MinEdgeWeight() (int64, bool) {
	if g.edgeCount == 0 {
		return 0, false
	}
	min := int64(math.MaxInt64)
	g.vertices.Scan(func(ent *vertexEntry) bool {
		ent.out.Scan(func(e halfEdge) bool {
			if e.weight < min {
				min = e.weight
			}
			return true
		})
		return true
	})
	return min, true
}

// Commands returns a compact command sequence that rebuilds this graph:
// every vertex first, then every edge, both in ascending order. Used to
// rewrite a long mutation history into its net effect.
func (g *Graph) Commands() []Command {
	cmds := make([]Command, 0, g.vertices.Len()+g.edgeCount)
	g.vertices.Scan(func(ent *vertexEntry) bool {
		cmds = append(cmds, AddVertex(ent.id))
		return true
	})
	g.vertices.Scan(func(ent *vertexEntry) bool {
		ent.out.Scan(func(e halfEdge) bool {
			cmds = append(cmds, AddEdge(ent.id, e.to, e.weight))
			return true
		})
		return true
	})
	return cmds
}
