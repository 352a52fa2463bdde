package osmalt

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// osmScanner is common interface of PBF and XML scanners
type osmScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

// osmPOI is point of interest found among OSM nodes
type osmPOI struct {
	osmID    osm.NodeID
	point    GeoPoint
	category Category
	name     string
}

func newOSMScanner(ctx context.Context, f *os.File) osmScanner {
	switch strings.ToLower(filepath.Ext(f.Name())) {
	case ".osm", ".xml":
		return osmxml.New(ctx, f)
	default:
		return osmpbf.New(ctx, f, 4)
	}
}

// ImportFromOSMFile Imports road network from OSM file
/*
	Files with '.osm' or '.xml' extension are treated as OSM XML, any other file is treated as PBF
	(Protocolbuffer Binary Format). See https://github.com/paulmach/osm

	Nodes of the graph are OSM nodes used by roads. Every pair of consecutive way nodes becomes an edge
	(two edges for two-way roads). Points of interest which are not on roads are attached to the nearest
	road node.
*/
func ImportFromOSMFile(ctx context.Context, fileName string, cfg *OsmConfiguration, verbose bool) (*Graph, error) {
	if cfg == nil {
		cfg = DefaultOsmConfiguration()
	}
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer f.Close()

	if verbose {
		fmt.Printf("Scanning ways...")
	}
	st := time.Now()
	ways, nodesSeen, err := scanWays(ctx, f, cfg, verbose)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("Done in %v\n\tWays: %d\n", time.Since(st), len(ways))
	}

	// Seek file to start
	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking")
	}

	if verbose {
		fmt.Printf("Scanning nodes...")
	}
	st = time.Now()
	points, pois, err := scanNodes(ctx, f, nodesSeen, cfg)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("Done in %v\n\tNodes: %d\n\tPoints of interest: %d\n", time.Since(st), len(points), len(pois))
	}

	if verbose {
		fmt.Printf("Preparing edges...")
	}
	st = time.Now()
	g, osmToNode := buildRoadGraph(ways, points, cfg, verbose)
	if verbose {
		fmt.Printf("Done in %v\n\tNodes: %d\n\tEdges: %d\n", time.Since(st), g.NodesNum(), g.EdgesNum())
	}

	if len(pois) > 0 {
		if verbose {
			fmt.Printf("Attaching points of interest...")
		}
		st = time.Now()
		attached, err := attachPOI(g, osmToNode, pois, cfg.POIMaxSnapMeters)
		if err != nil {
			return nil, err
		}
		if verbose {
			fmt.Printf("Done in %v\n\tAttached: %d of %d\n", time.Since(st), attached, len(pois))
		}
	}
	return g, nil
}

// scanWays collects roads and set of nodes they use
func scanWays(ctx context.Context, f *os.File, cfg *OsmConfiguration, verbose bool) ([]Way, map[osm.NodeID]struct{}, error) {
	scanner := newOSMScanner(ctx, f)
	defer scanner.Close()

	ways := []Way{}
	nodesSeen := make(map[osm.NodeID]struct{})
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		prepared, ok := newWay(way, cfg, verbose)
		if !ok {
			continue
		}
		ways = append(ways, prepared)
		for _, nodeID := range prepared.Nodes {
			nodesSeen[nodeID] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "Scanner error on Ways")
	}
	return ways, nodesSeen, nil
}

// scanNodes collects coordinates of road nodes and points of interest
func scanNodes(ctx context.Context, f *os.File, nodesSeen map[osm.NodeID]struct{}, cfg *OsmConfiguration) (map[osm.NodeID]GeoPoint, []osmPOI, error) {
	scanner := newOSMScanner(ctx, f)
	defer scanner.Close()

	points := make(map[osm.NodeID]GeoPoint, len(nodesSeen))
	pois := []osmPOI{}
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		pt := GeoPoint{Lat: node.Lat, Lon: node.Lon}
		if _, ok := nodesSeen[node.ID]; ok {
			points[node.ID] = pt
		}
		if !cfg.POI {
			continue
		}
		if category := classifyPOI(node.Tags); category != CATEGORY_NONE {
			pois = append(pois, osmPOI{
				osmID:    node.ID,
				point:    pt,
				category: category,
				name:     node.Tags.Find("name"),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "Scanner error on Nodes")
	}
	return points, pois, nil
}

// buildRoadGraph turns ways into graph. Dense identifiers are assigned in order of first appearance of nodes in ways.
func buildRoadGraph(ways []Way, points map[osm.NodeID]GeoPoint, cfg *OsmConfiguration, verbose bool) (*Graph, map[osm.NodeID]NodeID) {
	g := NewGraph(WithNodesCapacity(len(points)))
	osmToNode := make(map[osm.NodeID]NodeID, len(points))
	nodeFor := func(osmID osm.NodeID) (NodeID, bool) {
		if id, ok := osmToNode[osmID]; ok {
			return id, true
		}
		pt, ok := points[osmID]
		if !ok {
			return NoNode, false
		}
		id := g.AddNode(pt)
		osmToNode[osmID] = id
		return id, true
	}
	missing := 0
	for _, way := range ways {
		speed := way.Speed(cfg)
		prev := NoNode
		for _, osmID := range way.Nodes {
			id, ok := nodeFor(osmID)
			if !ok {
				// Way is cut by extract boundary
				missing++
				prev = NoNode
				continue
			}
			if prev != NoNode && prev != id {
				length := greatCircleDistance(g.nodes[prev].Point, g.nodes[id].Point)
				cost := cfg.EdgeCost(length, speed)
				options := []EdgeOption{WithLength(length), WithSpeedLimit(int(speed + 0.5))}
				// Identifiers come from the graph itself and costs are never negative: errors are not possible here
				if way.Direction != DIRECTION_BACKWARD {
					_ = g.AddEdge(prev, id, cost, options...)
				}
				if way.Direction != DIRECTION_FORWARD {
					_ = g.AddEdge(id, prev, cost, options...)
				}
			}
			prev = id
		}
	}
	if missing > 0 && verbose {
		fmt.Printf("[WARNING]: %d way nodes are missing in the file\n", missing)
	}
	return g, osmToNode
}

// attachPOI merges points of interest into road nodes and returns number of attached ones
func attachPOI(g *Graph, osmToNode map[osm.NodeID]NodeID, pois []osmPOI, maxSnapMeters float64) (int, error) {
	var index *NodeIndex
	attached := 0
	for _, poi := range pois {
		id, ok := osmToNode[poi.osmID]
		if !ok {
			if index == nil {
				var err error
				index, err = NewNodeIndex(g)
				if err != nil {
					return attached, errors.Wrap(err, "Can't build spatial index")
				}
			}
			id, ok = index.Nearest(poi.point)
			if !ok {
				continue
			}
			if maxSnapMeters > 0 && greatCircleDistance(poi.point, g.nodes[id].Point) > maxSnapMeters {
				continue
			}
		}
		err := g.AddPOI(id, poi.category, poi.name)
		if err != nil {
			return attached, errors.Wrapf(err, "Can't attach point of interest %d", poi.osmID)
		}
		attached++
	}
	return attached, nil
}
