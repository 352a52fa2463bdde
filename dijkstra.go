package osmalt

// Dijkstra is a plain point-to-point engine: the kernel with zero heuristic
type Dijkstra struct {
	graph *Graph
}

// NewDijkstra returns Dijkstra engine over given graph
func NewDijkstra(g *Graph) *Dijkstra {
	return &Dijkstra{graph: g}
}

// ShortestPath finds shortest path between source and target.
// Unreachable target is not an error: result has Infinity distance and empty path.
func (d *Dijkstra) ShortestPath(source, target NodeID) (*PathResult, error) {
	if err := d.graph.checkNode(source); err != nil {
		return nil, err
	}
	if err := d.graph.checkNode(target); err != nil {
		return nil, err
	}
	state := d.graph.search(source, nil, stopAtTarget(target))
	return newPathResult(state, target), nil
}

// ShortestPath is a shorthand for plain Dijkstra query on the graph
func (g *Graph) ShortestPath(source, target NodeID) (*PathResult, error) {
	return NewDijkstra(g).ShortestPath(source, target)
}

// DistancesFrom runs full single-source sweep and returns distances to every node.
// Unreachable nodes have Infinity distance.
func (g *Graph) DistancesFrom(source NodeID) ([]Weight, error) {
	if err := g.checkNode(source); err != nil {
		return nil, err
	}
	return g.search(source, nil, nil).dist, nil
}

// DistancesTo returns distances from every node to target (full sweep on the transposed graph)
func (g *Graph) DistancesTo(target NodeID) ([]Weight, error) {
	return g.Reversed().DistancesFrom(target)
}
