package osmalt

// Heuristic estimates remaining distance from node to the target of a search.
// It must never overestimate (admissible) and must satisfy h(u) <= w(u,v) + h(v) for
// every edge (consistent). Nil heuristic means plain Dijkstra.
type Heuristic func(id NodeID) Weight

// searchState is a per-query state of best-first search. It is never shared between queries.
type searchState struct {
	dist       []Weight
	prev       []NodeID
	estimate   []Weight
	finalized  []bool
	discovered []bool
	// Nodes in order of finalization
	settled []NodeID
	queue   *nodeQueue
}

func newSearchState(nodesNum int) *searchState {
	state := &searchState{
		dist:       make([]Weight, nodesNum),
		prev:       make([]NodeID, nodesNum),
		estimate:   make([]Weight, nodesNum),
		finalized:  make([]bool, nodesNum),
		discovered: make([]bool, nodesNum),
		settled:    make([]NodeID, 0, 64),
		queue:      newNodeQueue(nodesNum),
	}
	for i := 0; i < nodesNum; i++ {
		state.dist[i] = Infinity
		state.prev[i] = NoNode
	}
	return state
}

// stopCondition is called right after node has been finalized. Returning true terminates the search.
type stopCondition func(id NodeID, state *searchState) bool

// search is the single relaxation loop shared by every query in the package:
//
//	full sweep:     heuristic == nil, stop == nil
//	point-to-point: stop when target is finalized (optionally with heuristic)
//	bounded search: stop when enough matching nodes are finalized
//
// Edge weights are expected to be non-negative; that is checked once when graph is built.
func (g *Graph) search(source NodeID, heuristic Heuristic, stop stopCondition) *searchState {
	state := newSearchState(len(g.nodes))
	state.dist[source] = 0
	state.discovered[source] = true
	if heuristic != nil {
		state.estimate[source] = heuristic(source)
	}
	state.queue.push(source, state.estimate[source])

	for state.queue.Len() > 0 {
		n := state.queue.popMin()
		state.finalized[n] = true
		state.settled = append(state.settled, n)
		if stop != nil && stop(n, state) {
			break
		}
		nDist := state.dist[n]
		for _, e := range g.forward[n] {
			m := e.To
			if state.finalized[m] {
				continue
			}
			if !state.discovered[m] {
				state.discovered[m] = true
				if heuristic != nil {
					state.estimate[m] = heuristic(m)
				}
			}
			newDist := nDist + e.Weight
			if newDist < state.dist[m] {
				state.dist[m] = newDist
				state.prev[m] = n
				state.queue.push(m, newDist+state.estimate[m])
			}
		}
	}
	return state
}

// pathTo walks predecessors from target back to the source and reverses the sequence.
// Returns nil if target has not been reached.
func (state *searchState) pathTo(target NodeID) []NodeID {
	if state.dist[target] == Infinity {
		return nil
	}
	path := []NodeID{}
	for n := target; n != NoNode; n = state.prev[n] {
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// stopAtTarget is a stop condition of point-to-point search
func stopAtTarget(target NodeID) stopCondition {
	return func(id NodeID, _ *searchState) bool {
		return id == target
	}
}
