package osmalt

// PathResult is an answer to point-to-point query
type PathResult struct {
	// Shortest distance from source to target; Infinity when there is no path
	Distance Weight
	// Nodes of the shortest path (source and target included); empty when there is no path
	Path []NodeID
	// Nodes in order they have been finalized by the search
	Visited []NodeID
}

// Found reports whether target is reachable
func (result *PathResult) Found() bool {
	return result.Distance != Infinity
}

// Router is implemented by every point-to-point engine: plain Dijkstra, ALT and contraction hierarchies
type Router interface {
	ShortestPath(source, target NodeID) (*PathResult, error)
}

func newPathResult(state *searchState, target NodeID) *PathResult {
	result := &PathResult{
		Distance: state.dist[target],
		Path:     state.pathTo(target),
		Visited:  state.settled,
	}
	if result.Path == nil {
		result.Path = []NodeID{}
	}
	return result
}
