// Package engine is the façade over the graph store: it owns the durable
// command log, rebuilds the in-memory snapshot on demand, and runs the
// constrained queries against it. One Engine serves one store directory for
// the lifetime of one invocation; no state survives across invocations
// except the log itself.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kovacq/gravl/pkg/constraint"
	"github.com/kovacq/gravl/pkg/graph"
	"github.com/kovacq/gravl/pkg/metrics"
	"github.com/kovacq/gravl/pkg/persistence"
	"github.com/kovacq/gravl/pkg/search"
)

// Engine binds a store directory to the query machinery.
type Engine struct {
	store *persistence.Store
	log   *slog.Logger
}

// Open returns an engine over the store rooted at dir. The store need not
// exist yet; Init creates it. A nil logger disables engine logging.
func Open(dir string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		store: persistence.At(dir),
		log:   logger.With(slog.String("store", dir)),
	}
}

// Exists reports whether the store has been initialized.
func (e *Engine) Exists() bool { return e.store.Exists() }

// Init creates the store. Initializing an existing store keeps its log.
func (e *Engine) Init() error {
	if err := e.store.Init(); err != nil {
		return classifyStoreErr(err)
	}
	e.log.Info("store initialized")
	return nil
}

// Append durably records the commands, in order, as one batch.
func (e *Engine) Append(cmds ...graph.Command) error {
	if err := e.store.Append(cmds...); err != nil {
		return classifyStoreErr(err)
	}
	for _, cmd := range cmds {
		metrics.CommandsAppended.WithLabelValues(kindLabel(cmd.Kind)).Inc()
	}
	e.log.Debug("commands appended", slog.Int("count", len(cmds)))
	return nil
}

func kindLabel(k graph.CommandKind) string {
	switch k {
	case graph.KindAddVertex:
		return "add_vertex"
	case graph.KindAddEdge:
		return "add_edge"
	case graph.KindRemoveVertex:
		return "remove_vertex"
	case graph.KindRemoveEdge:
		return "remove_edge"
	}
	return "unknown"
}

// Build replays the full log into a fresh snapshot. Every query path calls
// this; snapshots are never reused across mutations.
func (e *Engine) Build() (*graph.Graph, error) {
	cmds, err := e.store.Load()
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	g := graph.Materialize(cmds)
	metrics.LogReplays.Inc()
	metrics.ReplayedCommands.Set(float64(len(cmds)))
	e.log.Debug("snapshot built",
		slog.Int("commands", len(cmds)),
		slog.Int("vertices", g.VertexCount()),
		slog.Int("edges", g.EdgeCount()))
	return g, nil
}

// Compact rewrites the log as the minimal command sequence reproducing the
// current snapshot, discarding superseded mutations.
func (e *Engine) Compact() error {
	g, err := e.Build()
	if err != nil {
		return err
	}
	if err := e.store.Rewrite(g.Commands()); err != nil {
		return classifyStoreErr(err)
	}
	e.log.Info("log compacted",
		slog.Int("vertices", g.VertexCount()),
		slog.Int("edges", g.EdgeCount()))
	return nil
}

// Clear truncates the log, keeping the store initialized.
func (e *Engine) Clear() error {
	if err := e.store.Clear(); err != nil {
		return classifyStoreErr(err)
	}
	e.log.Info("log cleared")
	return nil
}

// Destroy removes the store directory entirely.
func (e *Engine) Destroy() error {
	if err := e.store.Destroy(); err != nil {
		return classifyStoreErr(err)
	}
	e.log.Info("store destroyed")
	return nil
}

// ShortestPath builds a snapshot and runs the constrained path query.
// An unsatisfiable query reports Found false; only store failures, invalid
// constraints and unrepresentable queries are errors.
func (e *Engine) ShortestPath(start, end graph.VertexID, set constraint.Set) (search.PathResult, error) {
	g, err := e.Build()
	if err != nil {
		return search.PathResult{}, err
	}
	if err := constraint.ValidateForPath(set, g, start, end); err != nil {
		return search.PathResult{}, err
	}

	log := e.log.With(slog.String("query_id", uuid.NewString()))
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("path"))
	defer timer.ObserveDuration()
	log.Debug("path query",
		slog.Uint64("start", uint64(start)),
		slog.Uint64("end", uint64(end)))

	res, err := search.ShortestPath(g, start, end, set)
	if err != nil {
		return search.PathResult{}, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	log.Debug("path query done",
		slog.Bool("found", res.Found),
		slog.Int("length", res.Path.Len()),
		slog.Int64("score", res.Score))
	return res, nil
}

// LongestPath builds a snapshot and finds the maximum-score path. Defined
// on acyclic graphs only; graph.ErrCyclic passes through untouched.
func (e *Engine) LongestPath(start, end graph.VertexID) (search.PathResult, error) {
	g, err := e.Build()
	if err != nil {
		return search.PathResult{}, err
	}
	log := e.log.With(slog.String("query_id", uuid.NewString()))
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("longest"))
	defer timer.ObserveDuration()

	res, err := search.LongestPath(g, start, end)
	if err != nil {
		return search.PathResult{}, err
	}
	log.Debug("longest path query done",
		slog.Bool("found", res.Found),
		slog.Int("length", res.Path.Len()),
		slog.Int64("score", res.Score))
	return res, nil
}

// MaxFlow builds a snapshot and computes the maximum start->end flow with
// edge weights as capacities.
func (e *Engine) MaxFlow(start, end graph.VertexID) (search.FlowResult, error) {
	g, err := e.Build()
	if err != nil {
		return search.FlowResult{}, err
	}
	log := e.log.With(slog.String("query_id", uuid.NewString()))
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("flow"))
	defer timer.ObserveDuration()

	res := search.MaxFlow(g, start, end)
	log.Debug("flow query done",
		slog.Bool("found", res.Found),
		slog.Int64("max", res.Max))
	return res, nil
}

// Cycles builds a snapshot and runs one cycle query. Girth accepts no
// constraints at all; the other modes take the cycle-applicable subset.
func (e *Engine) Cycles(req search.CycleRequest, set constraint.Set) (search.CycleResult, error) {
	g, err := e.Build()
	if err != nil {
		return search.CycleResult{}, err
	}
	if req.Mode == search.ModeGirth && !set.IsZero() {
		return search.CycleResult{}, fmt.Errorf("%w: girth accepts no constraints", constraint.ErrInvalid)
	}
	if err := constraint.ValidateForCycle(set, g); err != nil {
		return search.CycleResult{}, err
	}

	log := e.log.With(slog.String("query_id", uuid.NewString()))
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues(req.Mode.String()))
	defer timer.ObserveDuration()
	log.Debug("cycle query", slog.String("mode", req.Mode.String()))

	res, err := search.Cycles(g, req, set)
	if err != nil {
		return search.CycleResult{}, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	log.Debug("cycle query done",
		slog.Bool("found", res.Found),
		slog.Int("cycles", len(res.Cycles)),
		slog.Int("count", res.Count))
	return res, nil
}

// TopoSort builds a snapshot and returns its topological order, or
// graph.ErrCyclic when none exists.
func (e *Engine) TopoSort() ([]graph.VertexID, error) {
	g, err := e.Build()
	if err != nil {
		return nil, err
	}
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("topo"))
	defer timer.ObserveDuration()
	return graph.TopoSort(g)
}
