package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovacq/gravl/pkg/constraint"
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

func mustPath(t *testing.T, g *graph.Graph, start, end graph.VertexID, set constraint.Set) PathResult {
	t.Helper()
	res, err := ShortestPath(g, start, end, set)
	require.NoError(t, err)
	require.True(t, res.Found)
	require.NoError(t, constraint.CheckPath(set, g, start, end,
		graph.ScoredPath{Path: res.Path, Score: res.Score}))
	return res
}

func TestShortestPathUnconstrained(t *testing.T) {
	res := mustPath(t, diamond(), 1, 4, constraint.Set{})

	assert.Equal(t, []graph.VertexID{1, 2, 4}, res.Path.Vertices)
	assert.Equal(t, int64(2), res.Score)
}

func TestShortestPathExcludeVertex(t *testing.T) {
	res, err := ShortestPath(diamond(), 1, 4, constraint.Set{
		ExcludeVertices: []graph.VertexID{2},
	})
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestShortestPathExcludeEdge(t *testing.T) {
	res := mustPath(t, diamond(), 1, 4, constraint.Set{
		ExcludeEdges: []graph.Edge{{From: 2, To: 4}},
	})
	assert.Equal(t, []graph.VertexID{1, 2, 3, 4}, res.Path.Vertices)
	assert.Equal(t, int64(3), res.Score)
}

func TestShortestPathIncludeVertex(t *testing.T) {
	res := mustPath(t, diamond(), 1, 4, constraint.Set{
		IncludeVertices: []graph.VertexID{3},
	})
	assert.Equal(t, []graph.VertexID{1, 2, 3, 4}, res.Path.Vertices)
}

func TestShortestPathPrefersLowWeight(t *testing.T) {
	g := graph.New()
	g.AddEdge(1, 2, 5)
	g.AddEdge(1, 3, 1)
	g.AddEdge(3, 2, 1)
	g.AddEdge(2, 4, 1)

	res := mustPath(t, g, 1, 4, constraint.Set{})
	assert.Equal(t, []graph.VertexID{1, 3, 2, 4}, res.Path.Vertices)
	assert.Equal(t, int64(3), res.Score)
}

func TestShortestPathTieBreaksByLength(t *testing.T) {
	g := graph.New()
	g.AddEdge(1, 4, 2)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 4, 1)

	res := mustPath(t, g, 1, 4, constraint.Set{})
	assert.Equal(t, []graph.VertexID{1, 4}, res.Path.Vertices)
}

func TestShortestPathTieBreaksByVertexID(t *testing.T) {
	g := graph.New()
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 4, 1)
	g.AddEdge(1, 3, 1)
	g.AddEdge(3, 4, 1)

	res := mustPath(t, g, 1, 4, constraint.Set{})
	assert.Equal(t, []graph.VertexID{1, 2, 4}, res.Path.Vertices)
}

func TestShortestPathOrderedVertices(t *testing.T) {
	res := mustPath(t, diamond(), 1, 4, constraint.Set{
		OrderedVertices: []graph.VertexID{2, 3},
	})
	assert.Equal(t, []graph.VertexID{1, 2, 3, 4}, res.Path.Vertices)

	// The reversed order is unsatisfiable: vertex 2 guards every way in.
	rev, err := ShortestPath(diamond(), 1, 4, constraint.Set{
		OrderedVertices: []graph.VertexID{3, 2},
	})
	require.NoError(t, err)
	assert.False(t, rev.Found)
}

func TestShortestPathRequireCycle(t *testing.T) {
	res := mustPath(t, diamond(), 1, 4, constraint.Set{RequireCycle: true})

	assert.Equal(t, []graph.VertexID{1, 2, 4, 1, 2, 4}, res.Path.Vertices)
	assert.Equal(t, int64(5), res.Score)
}

func TestShortestPathForbidCycle(t *testing.T) {
	res := mustPath(t, diamond(), 1, 4, constraint.Set{ForbidCycle: true})
	assert.False(t, res.Path.HasRepeatedVertex())
	assert.Equal(t, []graph.VertexID{1, 2, 4}, res.Path.Vertices)
}

func TestShortestPathExactLength(t *testing.T) {
	res := mustPath(t, diamond(), 1, 4, constraint.Set{ExactLength: 4})
	assert.Equal(t, []graph.VertexID{1, 2, 3, 4}, res.Path.Vertices)
	assert.Equal(t, int64(3), res.Score)
}

func TestShortestPathMinScore(t *testing.T) {
	res := mustPath(t, diamond(), 1, 4, constraint.Set{MinScore: 3})
	assert.Equal(t, int64(3), res.Score)
}

func TestShortestPathLargeMinScore(t *testing.T) {
	// Meeting the score floor needs a walk far longer than the graph; the
	// search must keep looping rather than cap itself out of the answer.
	res := mustPath(t, diamond(), 1, 4, constraint.Set{MinScore: 100})

	assert.Equal(t, int64(100), res.Score)
	assert.Equal(t, 101, res.Path.Len())
}

func TestShortestPathLargeMinLength(t *testing.T) {
	res := mustPath(t, diamond(), 1, 4, constraint.Set{MinLength: 100})

	assert.Equal(t, 100, res.Path.Len())
	assert.Equal(t, int64(99), res.Score)
}

func TestShortestPathLargeMinScoreHeavyEdges(t *testing.T) {
	g := graph.New()
	g.AddEdge(1, 2, 7)
	g.AddEdge(2, 1, 7)
	g.AddEdge(2, 3, 7)

	// Every walk here has an even number of hops at 7 each, so the
	// cheapest score at or above the floor overshoots to 112.
	res := mustPath(t, g, 1, 3, constraint.Set{MinScore: 100})
	assert.Equal(t, int64(112), res.Score)
}

func TestShortestPathMaxLengthUnsatisfiable(t *testing.T) {
	res, err := ShortestPath(diamond(), 1, 4, constraint.Set{MaxLength: 2})
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestShortestPathAbsentEndpoint(t *testing.T) {
	res, err := ShortestPath(diamond(), 1, 99, constraint.Set{})
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestShortestPathStartEqualsEnd(t *testing.T) {
	res := mustPath(t, diamond(), 2, 2, constraint.Set{})
	assert.Equal(t, []graph.VertexID{2}, res.Path.Vertices)
	assert.Equal(t, int64(0), res.Score)
}

func TestShortestPathUnreachable(t *testing.T) {
	g := graph.New()
	g.AddEdge(1, 2, 1)
	g.AddVertex(9)

	res, err := ShortestPath(g, 1, 9, constraint.Set{})
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestShortestPathTooManyMandatory(t *testing.T) {
	include := make([]graph.VertexID, MaxMandatoryVertices+1)
	for i := range include {
		include[i] = graph.VertexID(i + 1)
	}
	_, err := ShortestPath(diamond(), 1, 4, constraint.Set{IncludeVertices: include})
	assert.ErrorIs(t, err, ErrTooManyMandatory)
}
