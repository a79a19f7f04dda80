// Package constraint defines the predicate conjunction a path or cycle
// query can carry, its pre-search validation, and an independent post-hoc
// checker used to verify that returned results actually satisfy what was
// asked.
package constraint

import (
	"errors"

	"github.com/kovacq/gravl/pkg/graph"
)

// ErrInvalid is the base error for a constraint set that is contradictory
// or malformed. It is always detected before any search starts.
var ErrInvalid = errors.New("invalid constraint")

// Set is the conjunction of all populated predicates. The zero value of a
// field means the predicate is absent; this is unambiguous because vertex
// ids, lengths and scores are all strictly positive when set.
type Set struct {
	// IncludeVertices must all appear on the result.
	IncludeVertices []graph.VertexID
	// ExcludeVertices must not appear on the result.
	ExcludeVertices []graph.VertexID
	// IncludeEdges must all be traversed. Cycle queries only.
	IncludeEdges []graph.Edge
	// ExcludeEdges must not be traversed.
	ExcludeEdges []graph.Edge
	// OrderedVertices must be visited in exactly this relative order, with
	// arbitrary other vertices interleaved. Path queries only. The named
	// vertices are mandatory.
	OrderedVertices []graph.VertexID

	// Length bounds count vertices, revisits included. Zero means unset.
	ExactLength int
	MinLength   int
	MaxLength   int

	// Score bounds apply to the sum of traversed edge weights, an edge
	// traversed twice counting twice. Zero means unset.
	ExactScore int64
	MinScore   int64
	MaxScore   int64

	// RequireCycle demands the path revisit at least one earlier vertex;
	// ForbidCycle demands it never does. Path queries only.
	RequireCycle bool
	ForbidCycle  bool
}

// IsZero reports whether no predicate is populated.
func (s Set) IsZero() bool {
	return len(s.IncludeVertices) == 0 && len(s.ExcludeVertices) == 0 &&
		len(s.IncludeEdges) == 0 && len(s.ExcludeEdges) == 0 &&
		len(s.OrderedVertices) == 0 &&
		s.ExactLength == 0 && s.MinLength == 0 && s.MaxLength == 0 &&
		s.ExactScore == 0 && s.MinScore == 0 && s.MaxScore == 0 &&
		!s.RequireCycle && !s.ForbidCycle
}

// ExcludesVertex reports whether id is excluded.
func (s Set) ExcludesVertex(id graph.VertexID) bool {
	for _, v := range s.ExcludeVertices {
		if v == id {
			return true
		}
	}
	return false
}

// ExcludesEdge reports whether the directed edge from->to is excluded.
func (s Set) ExcludesEdge(from, to graph.VertexID) bool {
	for _, e := range s.ExcludeEdges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

// Mandatory returns the deduplicated union of the include and ordered
// vertex sets: every vertex a satisfying result must visit.
func (s Set) Mandatory() []graph.VertexID {
	seen := make(map[graph.VertexID]struct{}, len(s.IncludeVertices)+len(s.OrderedVertices))
	var out []graph.VertexID
	for _, v := range s.IncludeVertices {
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	for _, v := range s.OrderedVertices {
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// LengthBounds folds the exact bound into (min, max). A zero bound means
// unbounded on that side.
func (s Set) LengthBounds() (min, max int) {
	min, max = s.MinLength, s.MaxLength
	if s.ExactLength != 0 {
		min, max = s.ExactLength, s.ExactLength
	}
	return min, max
}

// ScoreBounds folds the exact bound into (min, max). A zero bound means
// unbounded on that side.
func (s Set) ScoreBounds() (min, max int64) {
	min, max = s.MinScore, s.MaxScore
	if s.ExactScore != 0 {
		min, max = s.ExactScore, s.ExactScore
	}
	return min, max
}

// HasMinimum reports whether the set carries a lower bound on length or
// score. Searches that allow revisits can only terminate on an exhausted
// frontier when no lower bound keeps pushing them toward longer walks, so
// this decides whether dominance pruning is sound.
func (s Set) HasMinimum() bool {
	return s.MinLength != 0 || s.ExactLength != 0 ||
		s.MinScore != 0 || s.ExactScore != 0
}
