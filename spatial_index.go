package osmalt

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/paulmach/orb/quadtree"
	"github.com/pkg/errors"
)

const (
	// Web Mercator is undefined at the poles
	maxMercatorLat = 85.0
	// Extra quadtree candidates re-ranked by great circle distance
	nearestCandidates = 8
)

// indexedNode is node stored in quadtree. Quadtree works with Mercator coordinates
// where local distances keep their proportions at any latitude.
type indexedNode struct {
	id       NodeID
	geo      GeoPoint
	mercator orb.Point
}

// Point implements orb.Pointer
func (n indexedNode) Point() orb.Point {
	return n.mercator
}

func toMercator(pt GeoPoint) orb.Point {
	p := pt.Point()
	p[1] = math.Max(-maxMercatorLat, math.Min(maxMercatorLat, p[1]))
	return project.WGS84.ToMercator(p)
}

// NodeIndex snaps coordinates to the nearest graph nodes
type NodeIndex struct {
	tree *quadtree.Quadtree
	size int
}

// NewNodeIndex builds spatial index over nodes of the graph
func NewNodeIndex(g *Graph) (*NodeIndex, error) {
	nodes := make([]indexedNode, 0, len(g.nodes))
	for i := range g.nodes {
		nodes = append(nodes, indexedNode{
			id:       g.nodes[i].ID,
			geo:      g.nodes[i].Point,
			mercator: toMercator(g.nodes[i].Point),
		})
	}
	return newNodeIndex(nodes)
}

func newNodeIndex(nodes []indexedNode) (*NodeIndex, error) {
	bound := orb.Bound{
		Min: toMercator(GeoPoint{Lat: -maxMercatorLat, Lon: -180}),
		Max: toMercator(GeoPoint{Lat: maxMercatorLat, Lon: 180}),
	}
	if len(nodes) > 0 {
		bound = orb.Bound{Min: nodes[0].mercator, Max: nodes[0].mercator}
		for _, n := range nodes[1:] {
			bound = bound.Extend(n.mercator)
		}
		// Degenerate bounds make quadtree unable to split (meters)
		bound = bound.Pad(1.0)
	}
	index := &NodeIndex{
		tree: quadtree.New(bound),
	}
	for _, n := range nodes {
		err := index.tree.Add(n)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't index node %d", n.id)
		}
		index.size++
	}
	return index, nil
}

// Len returns number of indexed nodes
func (index *NodeIndex) Len() int {
	return index.size
}

// Nearest returns node closest to the given point by great circle distance.
// Second value is false for empty index.
func (index *NodeIndex) Nearest(pt GeoPoint) (NodeID, bool) {
	found := index.KNearest(pt, 1)
	if len(found) == 0 {
		return NoNode, false
	}
	return found[0], true
}

// KNearest returns up to k nodes closest to the given point by great circle distance, the closest one goes first
func (index *NodeIndex) KNearest(pt GeoPoint, k int) []NodeID {
	if k <= 0 {
		return []NodeID{}
	}
	found := index.tree.KNearest(nil, toMercator(pt), k+nearestCandidates)
	candidates := make([]indexedNode, 0, len(found))
	distances := make(map[NodeID]float64, len(found))
	for _, p := range found {
		n := p.(indexedNode)
		candidates = append(candidates, n)
		distances[n.id] = greatCircleDistance(pt, n.geo)
	}
	sort.Slice(candidates, func(i, j int) bool {
		di, dj := distances[candidates[i].id], distances[candidates[j].id]
		if di != dj {
			return di < dj
		}
		return candidates[i].id < candidates[j].id
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	ids := make([]NodeID, 0, len(candidates))
	for _, n := range candidates {
		ids = append(ids, n.id)
	}
	return ids
}
