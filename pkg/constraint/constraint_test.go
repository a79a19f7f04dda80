package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovacq/gravl/pkg/graph"
)

// diamond returns the graph 1->2, 2->3, 3->4, 4->1, 2->4, all weight 1.
func diamond() *graph.Graph {
	g := graph.New()
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)
	g.AddEdge(3, 4, 1)
	g.AddEdge(4, 1, 1)
	g.AddEdge(2, 4, 1)
	return g
}

func TestValidateForPathAcceptsZeroSet(t *testing.T) {
	assert.NoError(t, ValidateForPath(Set{}, diamond(), 1, 4))
}

func TestValidateForPathRejections(t *testing.T) {
	g := diamond()
	cases := map[string]Set{
		"include and exclude overlap": {
			IncludeVertices: []graph.VertexID{2},
			ExcludeVertices: []graph.VertexID{2},
		},
		"include vertex not in graph": {
			IncludeVertices: []graph.VertexID{99},
		},
		"min length above max": {MinLength: 5, MaxLength: 3},
		"min score above max":  {MinScore: 9, MaxScore: 2},
		"exact length outside range": {
			ExactLength: 10, MaxLength: 4,
		},
		"include edges on a path query": {
			IncludeEdges: []graph.Edge{{From: 1, To: 2}},
		},
		"require and forbid cycle together": {
			RequireCycle: true, ForbidCycle: true,
		},
		"start excluded": {ExcludeVertices: []graph.VertexID{1}},
		"ordered vertex repeated": {
			OrderedVertices: []graph.VertexID{2, 3, 2},
		},
		"ordered vertex outside include set": {
			IncludeVertices: []graph.VertexID{2},
			OrderedVertices: []graph.VertexID{2, 3},
		},
		"exact length below mandatory count": {
			IncludeVertices: []graph.VertexID{2, 3},
			ExactLength:     3,
		},
	}
	for name, set := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateForPath(set, g, 1, 4), ErrInvalid)
		})
	}
}

func TestValidateForCycleRejectsPathOnlyFields(t *testing.T) {
	g := diamond()

	assert.ErrorIs(t, ValidateForCycle(Set{OrderedVertices: []graph.VertexID{1, 2}}, g), ErrInvalid)
	assert.ErrorIs(t, ValidateForCycle(Set{RequireCycle: true}, g), ErrInvalid)
	assert.ErrorIs(t, ValidateForCycle(Set{ForbidCycle: true}, g), ErrInvalid)
	assert.ErrorIs(t, ValidateForCycle(Set{ExactLength: 1}, g), ErrInvalid)
}

func TestValidateForCycleIncludeEdge(t *testing.T) {
	g := diamond()

	assert.NoError(t, ValidateForCycle(Set{IncludeEdges: []graph.Edge{{From: 2, To: 3}}}, g))
	assert.ErrorIs(t, ValidateForCycle(Set{IncludeEdges: []graph.Edge{{From: 3, To: 2}}}, g), ErrInvalid)
}

func TestMandatoryDeduplicates(t *testing.T) {
	s := Set{
		IncludeVertices: []graph.VertexID{2, 3},
		OrderedVertices: []graph.VertexID{3, 5},
	}
	assert.Equal(t, []graph.VertexID{2, 3, 5}, s.Mandatory())
}

func TestBoundsFolding(t *testing.T) {
	s := Set{ExactLength: 4, MinLength: 2, MaxLength: 9, ExactScore: 7}

	minLen, maxLen := s.LengthBounds()
	assert.Equal(t, 4, minLen)
	assert.Equal(t, 4, maxLen)

	minScore, maxScore := s.ScoreBounds()
	assert.Equal(t, int64(7), minScore)
	assert.Equal(t, int64(7), maxScore)

	assert.True(t, s.HasMinimum())
	assert.False(t, Set{MaxLength: 3}.HasMinimum())
}

func TestCheckPath(t *testing.T) {
	g := diamond()
	ok := graph.ScoredPath{Path: graph.PathOf(1, 2, 4), Score: 2}

	require.NoError(t, CheckPath(Set{}, g, 1, 4, ok))

	assert.ErrorIs(t, CheckPath(Set{}, g, 1, 3, ok), ErrViolated)
	assert.ErrorIs(t, CheckPath(Set{}, g, 1, 4,
		graph.ScoredPath{Path: graph.PathOf(1, 2, 4), Score: 5}), ErrViolated)
	assert.ErrorIs(t, CheckPath(Set{}, g, 1, 4,
		graph.ScoredPath{Path: graph.PathOf(1, 3, 4), Score: 2}), ErrViolated)
	assert.ErrorIs(t, CheckPath(Set{ExcludeVertices: []graph.VertexID{2}}, g, 1, 4, ok), ErrViolated)
	assert.ErrorIs(t, CheckPath(Set{IncludeVertices: []graph.VertexID{3}}, g, 1, 4, ok), ErrViolated)
	assert.ErrorIs(t, CheckPath(Set{MinLength: 4}, g, 1, 4, ok), ErrViolated)
	assert.ErrorIs(t, CheckPath(Set{RequireCycle: true}, g, 1, 4, ok), ErrViolated)
}

func TestCheckPathOrdered(t *testing.T) {
	g := diamond()
	sp := graph.ScoredPath{Path: graph.PathOf(1, 2, 3, 4), Score: 3}

	assert.NoError(t, CheckPath(Set{OrderedVertices: []graph.VertexID{2, 3}}, g, 1, 4, sp))
	assert.ErrorIs(t, CheckPath(Set{OrderedVertices: []graph.VertexID{3, 2}}, g, 1, 4, sp), ErrViolated)
}

func TestCheckCycle(t *testing.T) {
	g := diamond()
	c, ok := graph.CycleOf(1, 2, 3, 4)
	require.True(t, ok)

	require.NoError(t, CheckCycle(Set{}, g, c, 4))

	assert.ErrorIs(t, CheckCycle(Set{}, g, c, 3), ErrViolated)
	assert.ErrorIs(t, CheckCycle(Set{ExcludeVertices: []graph.VertexID{3}}, g, c, 4), ErrViolated)
	assert.ErrorIs(t, CheckCycle(Set{MaxLength: 3}, g, c, 4), ErrViolated)
	assert.NoError(t, CheckCycle(Set{IncludeEdges: []graph.Edge{{From: 4, To: 1}}}, g, c, 4))
	assert.ErrorIs(t, CheckCycle(Set{IncludeEdges: []graph.Edge{{From: 2, To: 4}}}, g, c, 4), ErrViolated)

	rotated := graph.Cycle{Vertices: []graph.VertexID{2, 3, 4, 1}}
	assert.ErrorIs(t, CheckCycle(Set{}, g, rotated, 4), ErrViolated)
}
