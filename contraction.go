package osmalt

import (
	"fmt"
	"math"
	"time"

	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// ContractionHierarchies is contracted copy of road network.
// It is used as independent check of distances found by Dijkstra and ALT.
type ContractionHierarchies struct {
	graph    *ch.Graph
	nodesNum int
}

// ToContractionHierarchies converts graph into contraction hierarchies.
// Self-loops are dropped and only the lightest of parallel edges is kept: neither affects distances.
func ToContractionHierarchies(g *Graph, verbose bool) (*ContractionHierarchies, error) {
	contracted := ch.Graph{}
	for i := range g.nodes {
		err := contracted.CreateVertex(int64(i))
		if err != nil {
			return nil, errors.Wrapf(err, "Can not create vertex %d", i)
		}
	}
	for i := range g.nodes {
		lightest := make(map[NodeID]Weight)
		order := []NodeID{}
		for _, e := range g.forward[i] {
			if e.To == e.From {
				continue
			}
			w, ok := lightest[e.To]
			if !ok {
				order = append(order, e.To)
			}
			if !ok || e.Weight < w {
				lightest[e.To] = e.Weight
			}
		}
		for _, to := range order {
			err := contracted.AddEdge(int64(i), int64(to), float64(lightest[to]))
			if err != nil {
				return nil, errors.Wrapf(err, "Can not wrap vertices %d and %d as edge", i, to)
			}
		}
	}
	if verbose {
		fmt.Println("Starting contraction process....")
	}
	st := time.Now()
	contracted.PrepareContractionHierarchies()
	if verbose {
		fmt.Printf("Done contraction process in %v\n", time.Since(st))
	}
	return &ContractionHierarchies{
		graph:    &contracted,
		nodesNum: len(g.nodes),
	}, nil
}

// ShortestPath finds shortest path using bidirectional search over contracted graph.
// Number of visited nodes is not reported.
func (c *ContractionHierarchies) ShortestPath(source, target NodeID) (*PathResult, error) {
	for _, id := range []NodeID{source, target} {
		if id < 0 || int(id) >= c.nodesNum {
			return nil, errors.Wrapf(ErrNodeOutOfRange, "node %d (nodes: %d)", id, c.nodesNum)
		}
	}
	if source == target {
		return &PathResult{Distance: 0, Path: []NodeID{source}}, nil
	}
	cost, vertices := c.graph.ShortestPath(int64(source), int64(target))
	if cost < 0 || math.IsInf(cost, 1) || len(vertices) == 0 {
		return &PathResult{Distance: Infinity, Path: []NodeID{}}, nil
	}
	path := make([]NodeID, len(vertices))
	for i, v := range vertices {
		path[i] = NodeID(v)
	}
	return &PathResult{Distance: Weight(math.Round(cost)), Path: path}, nil
}
