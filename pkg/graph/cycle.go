package graph

// Cycle is a simple directed cycle: the listed vertices are distinct and the
// closing edge from the last vertex back to the first is implied. The
// minimum cycle has two vertices; self-loops are not represented as cycles.
type Cycle struct {
	Vertices []VertexID
}

// CycleOf builds a cycle from a vertex sequence. It returns false when the
// sequence is shorter than two vertices or repeats a vertex.
func CycleOf(vertices ...VertexID) (Cycle, bool) {
	if len(vertices) < 2 {
		return Cycle{}, false
	}
	seen := make(map[VertexID]struct{}, len(vertices))
	for _, v := range vertices {
		if _, dup := seen[v]; dup {
			return Cycle{}, false
		}
		seen[v] = struct{}{}
	}
	return Cycle{Vertices: vertices}, true
}

// Len returns the number of vertices (equally, edges) in the cycle.
func (c Cycle) Len() int { return len(c.Vertices) }

// Canonical returns the rotation of the cycle that starts at its minimum
// vertex id. Rotations of the same cycle share one canonical form, which is
// what deduplication compares.
func (c Cycle) Canonical() Cycle {
	if len(c.Vertices) == 0 {
		return c
	}
	minAt := 0
	for i, v := range c.Vertices {
		if v < c.Vertices[minAt] {
			minAt = i
		}
	}
	if minAt == 0 {
		return c
	}
	rotated := make([]VertexID, 0, len(c.Vertices))
	rotated = append(rotated, c.Vertices[minAt:]...)
	rotated = append(rotated, c.Vertices[:minAt]...)
	return Cycle{Vertices: rotated}
}

// AsPath returns the cycle as a closed walk: the first vertex is repeated at
// the end, so constraint checks written for paths apply unchanged.
func (c Cycle) AsPath() Path {
	if len(c.Vertices) == 0 {
		return Path{}
	}
	closed := make([]VertexID, len(c.Vertices)+1)
	copy(closed, c.Vertices)
	closed[len(c.Vertices)] = c.Vertices[0]
	return Path{Vertices: closed}
}

// Score sums the weights of the cycle's edges, closing edge included.
// The second result is false when some edge is missing from g, which can
// only happen if the cycle and graph are out of sync.
func (c Cycle) Score(g *Graph) (int64, bool) {
	var total int64
	for _, e := range c.AsPath().Edges() {
		w, ok := g.Weight(e.From, e.To)
		if !ok {
			return 0, false
		}
		total += w
	}
	return total, true
}
