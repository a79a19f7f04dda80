package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeReplaysInOrder(t *testing.T) {
	g := Materialize([]Command{
		AddVertex(1),
		AddVertex(2),
		AddEdge(1, 2, 3),
		AddEdge(2, 1, 1),
		RemoveEdge(2, 1),
	})

	assert.Equal(t, 2, g.VertexCount())
	assert.Equal(t, 1, g.EdgeCount())
	w, ok := g.Weight(1, 2)
	require.True(t, ok)
	assert.Equal(t, int64(3), w)
	assert.False(t, g.ContainsEdge(2, 1))
}

func TestMaterializeMatchesDirectApplication(t *testing.T) {
	cmds := []Command{
		AddVertex(5),
		AddEdge(5, 6, 2),
		AddEdge(6, 7, 4),
		RemoveVertex(6),
		AddVertex(6),
		AddEdge(7, 5, 1),
	}

	replayed := Materialize(cmds)
	direct := New()
	for _, cmd := range cmds {
		direct.Apply(cmd)
	}

	assert.Equal(t, direct.Vertices(), replayed.Vertices())
	assert.Equal(t, direct.EdgeCount(), replayed.EdgeCount())
	for _, from := range direct.Vertices() {
		direct.EachOut(from, func(to VertexID, weight int64) bool {
			w, ok := replayed.Weight(from, to)
			require.True(t, ok)
			assert.Equal(t, weight, w)
			return true
		})
	}
}

func TestAddVertexIdempotent(t *testing.T) {
	g := New()
	assert.True(t, g.AddVertex(1))
	assert.False(t, g.AddVertex(1))
	assert.Equal(t, 1, g.VertexCount())
}

func TestAddEdgeCreatesEndpoints(t *testing.T) {
	g := New()
	assert.True(t, g.AddEdge(1, 2, 1))
	assert.True(t, g.ContainsVertex(1))
	assert.True(t, g.ContainsVertex(2))
}

func TestAddEdgeReplacesWeight(t *testing.T) {
	g := New()
	g.AddEdge(1, 2, 1)
	assert.False(t, g.AddEdge(1, 2, 9))

	assert.Equal(t, 1, g.EdgeCount())
	w, _ := g.Weight(1, 2)
	assert.Equal(t, int64(9), w)
	// The reverse adjacency row carries the replaced weight too.
	g.EachIn(2, func(from VertexID, weight int64) bool {
		assert.Equal(t, VertexID(1), from)
		assert.Equal(t, int64(9), weight)
		return true
	})
}

func TestAddEdgeNormalizesWeight(t *testing.T) {
	g := New()
	g.AddEdge(1, 2, 0)
	w, _ := g.Weight(1, 2)
	assert.Equal(t, DefaultWeight, w)
}

func TestRemoveVertexCascades(t *testing.T) {
	g := New()
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)
	g.AddEdge(3, 2, 1)
	g.AddEdge(2, 2, 1)

	assert.True(t, g.RemoveVertex(2))

	assert.False(t, g.ContainsVertex(2))
	assert.Equal(t, 0, g.EdgeCount())
	assert.Equal(t, 0, g.OutDegree(1))
	assert.Equal(t, 0, g.InDegree(3))
}

func TestReAddAfterRemoveStartsFresh(t *testing.T) {
	g := New()
	g.AddEdge(1, 2, 1)
	g.RemoveVertex(2)
	g.AddVertex(2)

	assert.True(t, g.ContainsVertex(2))
	assert.False(t, g.ContainsEdge(1, 2))
	assert.Equal(t, 0, g.InDegree(2))
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	g := New()
	g.AddVertex(1)
	assert.False(t, g.RemoveVertex(9))
	assert.False(t, g.RemoveEdge(1, 9))
	assert.Equal(t, 1, g.VertexCount())
}

func TestIterationAscending(t *testing.T) {
	g := New()
	g.AddEdge(3, 1, 1)
	g.AddEdge(3, 7, 1)
	g.AddEdge(3, 2, 1)
	g.AddVertex(5)

	assert.Equal(t, []VertexID{1, 2, 3, 5, 7}, g.Vertices())

	var succ []VertexID
	g.EachOut(3, func(to VertexID, _ int64) bool {
		succ = append(succ, to)
		return true
	})
	assert.Equal(t, []VertexID{1, 2, 7}, succ)
}

func TestMinEdgeWeight(t *testing.T) {
	g := New()
	_, ok := g.MinEdgeWeight()
	assert.False(t, ok)

	g.AddEdge(1, 2, 7)
	g.AddEdge(2, 3, 2)
	g.AddEdge(3, 1, 5)
	min, ok := g.MinEdgeWeight()
	require.True(t, ok)
	assert.Equal(t, int64(2), min)
}

func TestCommandsRebuildGraph(t *testing.T) {
	g := Materialize([]Command{
		AddVertex(4),
		AddEdge(4, 2, 3),
		AddEdge(2, 4, 1),
		AddVertex(9),
		RemoveVertex(9),
	})

	rebuilt := Materialize(g.Commands())
	assert.Equal(t, g.Vertices(), rebuilt.Vertices())
	assert.Equal(t, g.EdgeCount(), rebuilt.EdgeCount())
	w, _ := rebuilt.Weight(4, 2)
	assert.Equal(t, int64(3), w)
}

func TestCycleCanonical(t *testing.T) {
	c := Cycle{Vertices: []VertexID{3, 1, 2}}
	assert.Equal(t, []VertexID{1, 2, 3}, c.Canonical().Vertices)

	already := Cycle{Vertices: []VertexID{1, 2, 3}}
	assert.Equal(t, already.Vertices, already.Canonical().Vertices)
}

func TestCycleOfRejectsDegenerate(t *testing.T) {
	_, ok := CycleOf(1)
	assert.False(t, ok)
	_, ok = CycleOf(1, 2, 1)
	assert.False(t, ok)
}

func TestCycleScoreIncludesClosingEdge(t *testing.T) {
	g := New()
	g.AddEdge(1, 2, 2)
	g.AddEdge(2, 3, 3)
	g.AddEdge(3, 1, 4)

	c, _ := CycleOf(1, 2, 3)
	score, ok := c.Score(g)
	require.True(t, ok)
	assert.Equal(t, int64(9), score)
}

func TestTopoSortLexicographic(t *testing.T) {
	g := New()
	g.AddEdge(3, 1, 1)
	g.AddEdge(3, 2, 1)
	g.AddEdge(1, 4, 1)
	g.AddEdge(2, 4, 1)

	order, err := TopoSort(g)
	require.NoError(t, err)
	assert.Equal(t, []VertexID{3, 1, 2, 4}, order)
}

func TestTopoSortDetectsCycle(t *testing.T) {
	g := New()
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 1, 1)

	_, err := TopoSort(g)
	assert.ErrorIs(t, err, ErrCyclic)
}

func TestPathHelpers(t *testing.T) {
	p := PathOf(1, 2, 4)

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, VertexID(1), p.First())
	assert.Equal(t, VertexID(4), p.Last())
	assert.True(t, p.ContainsEdge(Edge{From: 2, To: 4}))
	assert.False(t, p.ContainsEdge(Edge{From: 4, To: 2}))
	assert.False(t, p.HasRepeatedVertex())
	assert.True(t, PathOf(1, 2, 1).HasRepeatedVertex())

	longer := p.Append(7)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, VertexID(7), longer.Last())
}
