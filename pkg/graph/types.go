// Package graph holds the directed-graph data model: vertices, weighted
// edges, mutation commands and the in-memory snapshot built by replaying a
// command sequence in order.
//
// A Graph value is built once per invocation (see Materialize) and treated
// as read-only by every search that consumes it.
package graph

// VertexID identifies a vertex. Valid identifiers are positive; zero is
// reserved as the "no vertex" value.
type VertexID uint64

// Edge is an ordered pair of vertex identifiers. The direction matters:
// Edge{1, 2} and Edge{2, 1} are distinct edges.
type Edge struct {
	From VertexID
	To   VertexID
}

// DefaultWeight is the edge weight used when a producer does not specify one.
const DefaultWeight int64 = 1

// CommandKind discriminates the four mutation commands.
type CommandKind byte

const (
	KindAddVertex CommandKind = iota + 1
	KindAddEdge
	KindRemoveVertex
	KindRemoveEdge
)

// Command is a single graph mutation. Commands are appended to the durable
// log and replayed in order; they are never updated in place.
type Command struct {
	Kind   CommandKind
	ID     VertexID // AddVertex / RemoveVertex
	From   VertexID // AddEdge / RemoveEdge
	To     VertexID // AddEdge / RemoveEdge
	Weight int64    // AddEdge only, always > 0
}

// AddVertex returns the command that creates a vertex.
func AddVertex(id VertexID) Command {
	return Command{Kind: KindAddVertex, ID: id}
}

// AddEdge returns the command that creates a weighted directed edge.
// Missing endpoints are created implicitly at replay time. A non-positive
// weight is normalized to DefaultWeight.
func AddEdge(from, to VertexID, weight int64) Command {
	if weight <= 0 {
		weight = DefaultWeight
	}
	return Command{Kind: KindAddEdge, From: from, To: to, Weight: weight}
}

// RemoveVertex returns the command that deletes a vertex and every edge
// incident to it.
func RemoveVertex(id VertexID) Command {
	return Command{Kind: KindRemoveVertex, ID: id}
}

// RemoveEdge returns the command that deletes a single directed edge.
func RemoveEdge(from, to VertexID) Command {
	return Command{Kind: KindRemoveEdge, From: from, To: to}
}
