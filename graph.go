package osmalt

import (
	"fmt"

	"github.com/pkg/errors"
)

// Graph is an adjacency structure over road network nodes with weighted directed edges.
// Every edge is stored twice: in forward adjacency of its source and, reversed, in
// reverse adjacency of its target. The reverse adjacency is what allows to compute
// "distance to" some node as "distance from" it in the transposed graph.
//
// Graph is not safe for concurrent building, but once built it is read-only and
// could be shared between any number of concurrent queries.
type Graph struct {
	nodes    []Node
	forward  [][]Edge
	reverse  [][]Edge
	edgesNum int

	poiByName map[string]NodeID
}

// NewGraph returns empty graph
func NewGraph(options ...func(*Graph)) *Graph {
	g := &Graph{
		poiByName: make(map[string]NodeID),
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// WithNodesCapacity preallocates storage for expected number of nodes
func WithNodesCapacity(n int) func(*Graph) {
	return func(g *Graph) {
		if n <= 0 {
			return
		}
		g.nodes = make([]Node, 0, n)
		g.forward = make([][]Edge, 0, n)
		g.reverse = make([][]Edge, 0, n)
	}
}

// AddNode adds node with given coordinates and returns its identifier.
// Identifiers are dense: the first node gets 0, the next one gets 1 and so on.
func (g *Graph) AddNode(pt GeoPoint) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, Node{ID: id, Point: pt})
	g.forward = append(g.forward, nil)
	g.reverse = append(g.reverse, nil)
	return id
}

// AddEdge adds directed edge from -> to. Its reversed copy goes to the transposed adjacency.
// Duplicates and self-loops are kept as is.
func (g *Graph) AddEdge(from, to NodeID, weight Weight, options ...EdgeOption) error {
	if !g.HasNode(from) {
		return errors.Wrapf(ErrNodeOutOfRange, "edge source %d (nodes: %d)", from, len(g.nodes))
	}
	if !g.HasNode(to) {
		return errors.Wrapf(ErrNodeOutOfRange, "edge target %d (nodes: %d)", to, len(g.nodes))
	}
	if weight < 0 {
		return errors.Wrapf(ErrNegativeWeight, "edge %d->%d weight=%d", from, to, weight)
	}
	edge := Edge{From: from, To: to, Weight: weight}
	for _, option := range options {
		option(&edge)
	}
	g.forward[from] = append(g.forward[from], edge)
	g.reverse[to] = append(g.reverse[to], edge.reversed())
	g.edgesNum++
	return nil
}

// AddPOI merges point of interest data into node classification.
// Categories of several points of interest on the same node are summed up; the first non-empty name is kept.
func (g *Graph) AddPOI(id NodeID, category Category, name string) error {
	if !g.HasNode(id) {
		return errors.Wrapf(ErrNodeOutOfRange, "point of interest at %d (nodes: %d)", id, len(g.nodes))
	}
	node := &g.nodes[id]
	node.Category |= category
	if node.Name == "" {
		node.Name = name
	}
	if name != "" {
		if _, ok := g.poiByName[name]; !ok {
			g.poiByName[name] = id
		}
	}
	return nil
}

// FindByName returns node of point of interest with given name
func (g *Graph) FindByName(name string) (NodeID, bool) {
	id, ok := g.poiByName[name]
	return id, ok
}

// HasNode checks if identifier belongs to [0, N)
func (g *Graph) HasNode(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Node returns node by its identifier. Panics when identifier is out of range.
func (g *Graph) Node(id NodeID) Node {
	return g.nodes[id]
}

// NodesNum returns number of nodes
func (g *Graph) NodesNum() int {
	return len(g.nodes)
}

// EdgesNum returns number of (forward) edges
func (g *Graph) EdgesNum() int {
	return g.edgesNum
}

// Neighbors returns outgoing edges of node
func (g *Graph) Neighbors(id NodeID) []Edge {
	return g.forward[id]
}

// ReverseNeighbors returns incoming edges of node as edges of the transposed graph (From == id)
func (g *Graph) ReverseNeighbors(id NodeID) []Edge {
	return g.reverse[id]
}

// Reversed returns transposed view of the graph. Nodes storage is shared, no copying is done.
func (g *Graph) Reversed() *Graph {
	return &Graph{
		nodes:     g.nodes,
		forward:   g.reverse,
		reverse:   g.forward,
		edgesNum:  g.edgesNum,
		poiByName: g.poiByName,
	}
}

// String returns short summary of graph
func (g *Graph) String() string {
	return fmt.Sprintf("Graph: nodes = %d, edges = %d, points of interest = %d", len(g.nodes), g.edgesNum, len(g.poiByName))
}

func (g *Graph) checkNode(id NodeID) error {
	if !g.HasNode(id) {
		return errors.Wrapf(ErrNodeOutOfRange, "node %d (nodes: %d)", id, len(g.nodes))
	}
	return nil
}
