package osmalt

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// PathToWKT returns WKT representation of path as LineString.
// Single node path is represented as Point, empty path as empty LineString.
func PathToWKT(g *Graph, path []NodeID) string {
	if len(path) == 1 {
		return wkt.MarshalString(g.nodes[path[0]].Point.Point())
	}
	line := make(orb.LineString, len(path))
	for i, id := range path {
		line[i] = g.nodes[id].Point.Point()
	}
	return wkt.MarshalString(line)
}

// PointToWKT returns WKT representation of node
func PointToWKT(g *Graph, id NodeID) string {
	return wkt.MarshalString(g.nodes[id].Point.Point())
}
