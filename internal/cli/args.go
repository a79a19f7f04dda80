package cli

import (
	"fmt"
	"strings"

	"github.com/kovacq/gravl/pkg/graph"
)

func toVertexIDs(raw []uint) ([]graph.VertexID, error) {
	ids := make([]graph.VertexID, 0, len(raw))
	for _, v := range raw {
		if v == 0 {
			return nil, fmt.Errorf("vertex ids must be positive")
		}
		ids = append(ids, graph.VertexID(v))
	}
	return ids, nil
}

// toEdges interprets a flat id list as consecutive (from, to) pairs, the
// shape the edge flags take: --edge 1,2,3,4 is the edges 1->2 and 3->4.
func toEdges(raw []uint) ([]graph.Edge, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("edge list needs an even number of ids, got %d", len(raw))
	}
	ids, err := toVertexIDs(raw)
	if err != nil {
		return nil, err
	}
	edges := make([]graph.Edge, 0, len(ids)/2)
	for i := 0; i < len(ids); i += 2 {
		edges = append(edges, graph.Edge{From: ids[i], To: ids[i+1]})
	}
	return edges, nil
}

func formatVertices(ids []graph.VertexID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, " -> ")
}

func formatPath(p graph.Path) string {
	return formatVertices(p.Vertices)
}

// formatCycle renders the closed walk with the starting vertex repeated.
func formatCycle(c graph.Cycle) string {
	return formatVertices(c.AsPath().Vertices)
}
