package osmalt

import (
	"github.com/pkg/errors"
)

// ALT is A* search with landmark-based lower bounds (A*, Landmarks, Triangle inequality).
// It returns the same distances as plain Dijkstra while finalizing fewer nodes.
type ALT struct {
	graph *Graph
	table *LandmarkTable
}

// NewALT returns ALT engine. Table must be built for the very same graph.
func NewALT(g *Graph, table *LandmarkTable) (*ALT, error) {
	if table == nil || table.LandmarksNum() == 0 {
		return nil, ErrNoLandmarks
	}
	if table.NodesNum() != g.NodesNum() {
		return nil, errors.Wrapf(ErrTableMismatch, "table covers %d nodes, graph has %d", table.NodesNum(), g.NodesNum())
	}
	return &ALT{graph: g, table: table}, nil
}

// Heuristic returns landmark lower bound towards target
func (alt *ALT) Heuristic(target NodeID) Heuristic {
	return func(id NodeID) Weight {
		return alt.table.Estimate(id, target)
	}
}

// ShortestPath finds shortest path between source and target.
// Unreachable target is not an error: result has Infinity distance and empty path.
func (alt *ALT) ShortestPath(source, target NodeID) (*PathResult, error) {
	if err := alt.graph.checkNode(source); err != nil {
		return nil, err
	}
	if err := alt.graph.checkNode(target); err != nil {
		return nil, err
	}
	state := alt.graph.search(source, alt.Heuristic(target), stopAtTarget(target))
	return newPathResult(state, target), nil
}
