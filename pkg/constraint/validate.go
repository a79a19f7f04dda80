package constraint

import (
	"fmt"

	"github.com/kovacq/gravl/pkg/graph"
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// validateCommon holds the checks shared by path and cycle queries:
// internal contradictions between bounds, overlap between include and
// exclude sets, and includes that reference things absent from the graph.
func validateCommon(s Set, g *graph.Graph) error {
	if s.ExactLength < 0 || s.MinLength < 0 || s.MaxLength < 0 ||
		s.ExactScore < 0 || s.MinScore < 0 || s.MaxScore < 0 {
		return invalidf("negative length or score bound")
	}
	if s.MinLength != 0 && s.MaxLength != 0 && s.MinLength > s.MaxLength {
		return invalidf("min-length %d exceeds max-length %d", s.MinLength, s.MaxLength)
	}
	if s.MinScore != 0 && s.MaxScore != 0 && s.MinScore > s.MaxScore {
		return invalidf("min-score %d exceeds max-score %d", s.MinScore, s.MaxScore)
	}
	if s.ExactLength != 0 {
		if s.MinLength != 0 && s.ExactLength < s.MinLength {
			return invalidf("exact-length %d below min-length %d", s.ExactLength, s.MinLength)
		}
		if s.MaxLength != 0 && s.ExactLength > s.MaxLength {
			return invalidf("exact-length %d exceeds max-length %d", s.ExactLength, s.MaxLength)
		}
	}
	if s.ExactScore != 0 {
		if s.MinScore != 0 && s.ExactScore < s.MinScore {
			return invalidf("exact-score %d below min-score %d", s.ExactScore, s.MinScore)
		}
		if s.MaxScore != 0 && s.ExactScore > s.MaxScore {
			return invalidf("exact-score %d exceeds max-score %d", s.ExactScore, s.MaxScore)
		}
	}

	for _, v := range s.IncludeVertices {
		if s.ExcludesVertex(v) {
			return invalidf("vertex %d both included and excluded", v)
		}
		if !g.ContainsVertex(v) {
			return invalidf("include-vertex %d not in graph", v)
		}
	}
	for _, e := range s.IncludeEdges {
		if s.ExcludesEdge(e.From, e.To) {
			return invalidf("edge %d->%d both included and excluded", e.From, e.To)
		}
		if !g.ContainsEdge(e.From, e.To) {
			return invalidf("include-edge %d->%d not in graph", e.From, e.To)
		}
		if s.ExcludesVertex(e.From) || s.ExcludesVertex(e.To) {
			return invalidf("include-edge %d->%d touches an excluded vertex", e.From, e.To)
		}
	}
	return nil
}

// ValidateForPath checks the set against a start->end path query. It
// returns an ErrInvalid-wrapped error for every internal contradiction, so
// the caller can refuse the query before any search work happens.
func ValidateForPath(s Set, g *graph.Graph, start, end graph.VertexID) error {
	if err := validateCommon(s, g); err != nil {
		return err
	}
	if len(s.IncludeEdges) != 0 {
		return invalidf("include-edges applies to cycle queries only")
	}
	if s.RequireCycle && s.ForbidCycle {
		return invalidf("require-cycle and forbid-cycle are mutually exclusive")
	}
	if s.ExcludesVertex(start) {
		return invalidf("start vertex %d is excluded", start)
	}
	if s.ExcludesVertex(end) {
		return invalidf("end vertex %d is excluded", end)
	}

	seen := make(map[graph.VertexID]struct{}, len(s.OrderedVertices))
	for _, v := range s.OrderedVertices {
		if _, dup := seen[v]; dup {
			return invalidf("ordered-vertices repeats vertex %d", v)
		}
		seen[v] = struct{}{}
		if s.ExcludesVertex(v) {
			return invalidf("ordered vertex %d is excluded", v)
		}
		if !g.ContainsVertex(v) {
			return invalidf("ordered vertex %d not in graph", v)
		}
	}
	if len(s.OrderedVertices) != 0 && len(s.IncludeVertices) != 0 {
		include := make(map[graph.VertexID]struct{}, len(s.IncludeVertices))
		for _, v := range s.IncludeVertices {
			include[v] = struct{}{}
		}
		for _, v := range s.OrderedVertices {
			if _, ok := include[v]; !ok {
				return invalidf("ordered vertex %d missing from include-vertices", v)
			}
		}
	}

	// A path must visit each mandatory vertex plus both endpoints at least
	// once, so its vertex count cannot be below the size of that union.
	if s.ExactLength != 0 {
		need := map[graph.VertexID]struct{}{start: {}, end: {}}
		for _, v := range s.Mandatory() {
			need[v] = struct{}{}
		}
		if s.ExactLength < len(need) {
			return invalidf("exact-length %d below the %d mandatory vertices", s.ExactLength, len(need))
		}
	}
	return nil
}

// ValidateForCycle checks the set against a cycle query, rejecting fields
// that only make sense for paths.
func ValidateForCycle(s Set, g *graph.Graph) error {
	if err := validateCommon(s, g); err != nil {
		return err
	}
	if len(s.OrderedVertices) != 0 {
		return invalidf("ordered-vertices applies to path queries only")
	}
	if s.RequireCycle || s.ForbidCycle {
		return invalidf("require-cycle and forbid-cycle apply to path queries only")
	}
	if s.ExactLength == 1 || (s.MaxLength != 0 && s.MaxLength < 2) {
		return invalidf("a cycle has at least two vertices")
	}
	return nil
}
