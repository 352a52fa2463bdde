package osmalt

import (
	"math"

	"github.com/pkg/errors"
)

// SelectLandmarksByName resolves landmarks by names of points of interest
func SelectLandmarksByName(g *Graph, names []string) ([]NodeID, error) {
	landmarks := make([]NodeID, 0, len(names))
	for _, name := range names {
		id, ok := g.FindByName(name)
		if !ok {
			return nil, errors.Wrapf(ErrLandmarkNotFound, "'%s'", name)
		}
		landmarks = append(landmarks, id)
	}
	return landmarks, nil
}

// SelectFarthestLandmarks picks landmarks greedily: the first one is the node farthest from start,
// every next one maximizes the smallest network distance to already chosen landmarks.
// Distances are measured in both directions (max of "from" and "to"), unreachable nodes are ignored.
// The result could contain fewer than count landmarks when graph is small or poorly connected.
func SelectFarthestLandmarks(g *Graph, count int, start NodeID) ([]NodeID, error) {
	if err := g.checkNode(start); err != nil {
		return nil, err
	}
	if count <= 0 {
		return []NodeID{}, nil
	}
	nodesNum := g.NodesNum()
	reversed := g.Reversed()

	// closest[v] is the smallest known distance between v and chosen landmarks (or start at first)
	closest := make([]Weight, nodesNum)
	for v := range closest {
		closest[v] = Infinity
	}
	chosen := make([]bool, nodesNum)
	update := func(id NodeID) {
		forward := g.search(id, nil, nil).dist
		backward := reversed.search(id, nil, nil).dist
		for v := 0; v < nodesNum; v++ {
			d := mutualDistance(forward[v], backward[v])
			if d < closest[v] {
				closest[v] = d
			}
		}
	}

	update(start)
	landmarks := make([]NodeID, 0, count)
	for len(landmarks) < count {
		best := NoNode
		bestDist := Weight(-1)
		for v := 0; v < nodesNum; v++ {
			if chosen[v] || closest[v] == Infinity {
				continue
			}
			if closest[v] > bestDist {
				best = NodeID(v)
				bestDist = closest[v]
			}
		}
		if best == NoNode || (bestDist == 0 && len(landmarks) > 0) {
			break
		}
		chosen[best] = true
		landmarks = append(landmarks, best)
		update(best)
	}
	return landmarks, nil
}

// mutualDistance returns the larger of two finite distances; Infinity when both are infinite
func mutualDistance(a, b Weight) Weight {
	switch {
	case a == Infinity:
		return b
	case b == Infinity:
		return a
	case a > b:
		return a
	default:
		return b
	}
}

// SelectPeripheralLandmarks splits the map around its geographic center into count equal
// sectors and picks the node farthest from the center in every sector. Landmarks on the
// periphery give tight bounds for most queries. Empty sectors are skipped.
func SelectPeripheralLandmarks(g *Graph, count int) []NodeID {
	nodesNum := g.NodesNum()
	if count <= 0 || nodesNum == 0 {
		return []NodeID{}
	}
	points := make([]GeoPoint, nodesNum)
	for i := range g.nodes {
		points[i] = g.nodes[i].Point
	}
	center := findCentroid(points)

	sectorSize := 2 * math.Pi / float64(count)
	best := make([]NodeID, count)
	bestDist := make([]float64, count)
	for i := range best {
		best[i] = NoNode
		bestDist[i] = -1
	}
	for i, pt := range points {
		sector := int(initialBearing(center, pt) / sectorSize)
		if sector >= count {
			sector = count - 1
		}
		d := greatCircleDistance(center, pt)
		if d > bestDist[sector] {
			best[sector] = NodeID(i)
			bestDist[sector] = d
		}
	}
	landmarks := make([]NodeID, 0, count)
	for _, id := range best {
		if id != NoNode {
			landmarks = append(landmarks, id)
		}
	}
	return landmarks
}

// LandmarkStrategy is a way of choosing landmarks
type LandmarkStrategy uint16

const (
	LANDMARKS_UNDEFINED = LandmarkStrategy(iota)
	LANDMARKS_BY_NAME
	LANDMARKS_FARTHEST
	LANDMARKS_PERIPHERAL
)

func (iotaIdx LandmarkStrategy) String() string {
	names := [...]string{"undefined", "name", "farthest", "peripheral"}
	if int(iotaIdx) >= len(names) {
		return names[LANDMARKS_UNDEFINED]
	}
	return names[iotaIdx]
}

// ParseLandmarkStrategy converts strategy name to LandmarkStrategy
func ParseLandmarkStrategy(s string) (LandmarkStrategy, error) {
	for strategy := LANDMARKS_BY_NAME; strategy <= LANDMARKS_PERIPHERAL; strategy++ {
		if strategy.String() == s {
			return strategy, nil
		}
	}
	return LANDMARKS_UNDEFINED, errors.Errorf("unknown landmark selection strategy '%s'", s)
}

// SelectLandmarks chooses landmarks by strategy. Names are used by LANDMARKS_BY_NAME only,
// count is used by the rest (LANDMARKS_FARTHEST starts from node 0).
func SelectLandmarks(g *Graph, strategy LandmarkStrategy, names []string, count int) ([]NodeID, error) {
	switch strategy {
	case LANDMARKS_BY_NAME:
		return SelectLandmarksByName(g, names)
	case LANDMARKS_FARTHEST:
		if g.NodesNum() == 0 {
			return []NodeID{}, nil
		}
		return SelectFarthestLandmarks(g, count, 0)
	case LANDMARKS_PERIPHERAL:
		return SelectPeripheralLandmarks(g, count), nil
	default:
		return nil, errors.Errorf("unsupported landmark selection strategy '%s'", strategy)
	}
}
