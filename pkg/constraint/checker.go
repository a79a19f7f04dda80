package constraint

import (
	"errors"
	"fmt"

	"github.com/kovacq/gravl/pkg/graph"
)

// ErrViolated is the base error reported by the post-hoc checker when a
// result does not satisfy a predicate it was supposed to.
var ErrViolated = errors.New("constraint violated")

func violatedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrViolated, fmt.Sprintf(format, args...))
}

// CheckPath verifies, independently of any search bookkeeping, that sp is a
// real start->end walk of g satisfying every predicate in s. The score is
// recomputed from the graph and compared against the reported one.
func CheckPath(s Set, g *graph.Graph, start, end graph.VertexID, sp graph.ScoredPath) error {
	p := sp.Path
	if p.IsEmpty() {
		return violatedf("empty path")
	}
	if p.First() != start || p.Last() != end {
		return violatedf("path runs %d->%d, query asked %d->%d", p.First(), p.Last(), start, end)
	}

	var score int64
	for _, e := range p.Edges() {
		w, ok := g.Weight(e.From, e.To)
		if !ok {
			return violatedf("edge %d->%d not in graph", e.From, e.To)
		}
		score += w
	}
	if score != sp.Score {
		return violatedf("reported score %d, edges sum to %d", sp.Score, score)
	}

	if err := checkShared(s, p, p.Len(), score); err != nil {
		return err
	}

	if s.RequireCycle && !p.HasRepeatedVertex() {
		return violatedf("require-cycle set but no vertex repeats")
	}
	if s.ForbidCycle && p.HasRepeatedVertex() {
		return violatedf("forbid-cycle set but a vertex repeats")
	}
	if len(s.OrderedVertices) != 0 {
		ordered := make(map[graph.VertexID]struct{}, len(s.OrderedVertices))
		for _, v := range s.OrderedVertices {
			ordered[v] = struct{}{}
		}
		var visits []graph.VertexID
		for _, v := range p.Vertices {
			if _, ok := ordered[v]; ok {
				visits = append(visits, v)
			}
		}
		if len(visits) != len(s.OrderedVertices) {
			return violatedf("ordered vertices visited %d times, want %d", len(visits), len(s.OrderedVertices))
		}
		for i, v := range s.OrderedVertices {
			if visits[i] != v {
				return violatedf("ordered vertex %d visited out of order", v)
			}
		}
	}
	return nil
}

// CheckCycle verifies that c is a real simple cycle of g in canonical
// rotation satisfying every predicate in s.
func CheckCycle(s Set, g *graph.Graph, c graph.Cycle, score int64) error {
	if c.Len() < 2 {
		return violatedf("cycle has %d vertices, need at least 2", c.Len())
	}
	canon := c.Canonical()
	for i, v := range canon.Vertices {
		if v != c.Vertices[i] {
			return violatedf("cycle not in canonical rotation")
		}
	}

	closed := c.AsPath()
	var sum int64
	for _, e := range closed.Edges() {
		w, ok := g.Weight(e.From, e.To)
		if !ok {
			return violatedf("edge %d->%d not in graph", e.From, e.To)
		}
		sum += w
	}
	if sum != score {
		return violatedf("reported score %d, edges sum to %d", score, sum)
	}

	if err := checkShared(s, closed, c.Len(), score); err != nil {
		return err
	}

	for _, e := range s.IncludeEdges {
		if !closed.ContainsEdge(e) {
			return violatedf("include-edge %d->%d not traversed", e.From, e.To)
		}
	}
	return nil
}

// checkShared applies the predicates common to both query kinds. The walk
// carries the traversed edges; length is the query's vertex count, which
// for a cycle is one less than the closed walk's.
func checkShared(s Set, walk graph.Path, length int, score int64) error {
	for _, v := range s.IncludeVertices {
		if !walk.ContainsVertex(v) {
			return violatedf("include-vertex %d not visited", v)
		}
	}
	for _, v := range walk.Vertices {
		if s.ExcludesVertex(v) {
			return violatedf("excluded vertex %d visited", v)
		}
	}
	for _, e := range walk.Edges() {
		if s.ExcludesEdge(e.From, e.To) {
			return violatedf("excluded edge %d->%d traversed", e.From, e.To)
		}
	}

	minLen, maxLen := s.LengthBounds()
	if minLen != 0 && length < minLen {
		return violatedf("length %d below minimum %d", length, minLen)
	}
	if maxLen != 0 && length > maxLen {
		return violatedf("length %d above maximum %d", length, maxLen)
	}
	minScore, maxScore := s.ScoreBounds()
	if minScore != 0 && score < minScore {
		return violatedf("score %d below minimum %d", score, minScore)
	}
	if maxScore != 0 && score > maxScore {
		return violatedf("score %d above maximum %d", score, maxScore)
	}
	return nil
}
