package graph

// Path is an ordered walk over vertices. Consecutive entries are connected
// by directed edges of the graph the path was found in. A path may revisit
// vertices unless the query that produced it forbade cycles.
type Path struct {
	Vertices []VertexID
}

// PathOf builds a path from a vertex sequence.
func PathOf(vertices ...VertexID) Path {
	return Path{Vertices: vertices}
}

// Len returns the number of vertices in the path, revisits included.
func (p Path) Len() int { return len(p.Vertices) }

// IsEmpty reports whether the path has no vertices.
func (p Path) IsEmpty() bool { return len(p.Vertices) == 0 }

// First returns the first vertex, or zero on an empty path.
func (p Path) First() VertexID {
	if len(p.Vertices) == 0 {
		return 0
	}
	return p.Vertices[0]
}

// Last returns the last vertex, or zero on an empty path.
func (p Path) Last() VertexID {
	if len(p.Vertices) == 0 {
		return 0
	}
	return p.Vertices[len(p.Vertices)-1]
}

// ContainsVertex reports whether the path visits id.
func (p Path) ContainsVertex(id VertexID) bool {
	for _, v := range p.Vertices {
		if v == id {
			return true
		}
	}
	return false
}

// ContainsEdge reports whether the path traverses e.
func (p Path) ContainsEdge(e Edge) bool {
	for i := 0; i+1 < len(p.Vertices); i++ {
		if p.Vertices[i] == e.From && p.Vertices[i+1] == e.To {
			return true
		}
	}
	return false
}

// Edges returns the traversed edges in order.
func (p Path) Edges() []Edge {
	if len(p.Vertices) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(p.Vertices)-1)
	for i := 0; i+1 < len(p.Vertices); i++ {
		edges = append(edges, Edge{From: p.Vertices[i], To: p.Vertices[i+1]})
	}
	return edges
}

// HasRepeatedVertex reports whether any vertex occurs more than once,
// i.e. whether the walk closes at least one cycle.
func (p Path) HasRepeatedVertex() bool {
	seen := make(map[VertexID]struct{}, len(p.Vertices))
	for _, v := range p.Vertices {
		if _, dup := seen[v]; dup {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

// Append returns a new path extended by one vertex. The receiver is not
// modified; search frontiers rely on that.
func (p Path) Append(id VertexID) Path {
	next := make([]VertexID, len(p.Vertices)+1)
	copy(next, p.Vertices)
	next[len(p.Vertices)] = id
	return Path{Vertices: next}
}

// ScoredPath pairs a path with the sum of its traversed edge weights.
// An edge traversed twice contributes its weight twice.
type ScoredPath struct {
	Path  Path
	Score int64
}
