package osmalt

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// PathToGeoJSON returns GeoJSON FeatureCollection for the result of point-to-point query:
// LineString of the path and MultiPoint of finalized (visited) nodes
func PathToGeoJSON(g *Graph, result *PathResult) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	if len(result.Path) > 0 {
		line := geojson.NewLineStringFeature(nodesToCoordinates(g, result.Path))
		line.SetProperty("kind", "path")
		line.SetProperty("distance", int64(result.Distance))
		line.SetProperty("duration", FormatDuration(result.Distance))
		line.SetProperty("length_meters", g.PathLengthMeters(result.Path))
		line.SetProperty("nodes", len(result.Path))
		fc.AddFeature(line)
	}

	if len(result.Visited) > 0 {
		visited := geojson.NewMultiPointFeature(nodesToCoordinates(g, result.Visited)...)
		visited.SetProperty("kind", "visited")
		visited.SetProperty("nodes", len(result.Visited))
		fc.AddFeature(visited)
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "Can't convert path to geojson format")
	}
	return b, nil
}

// FacilitiesToGeoJSON returns GeoJSON FeatureCollection of Point features
func FacilitiesToGeoJSON(facilities []Facility) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i, facility := range facilities {
		f := geojson.NewPointFeature([]float64{facility.Point.Lon, facility.Point.Lat})
		f.SetProperty("rank", i+1)
		f.SetProperty("node_id", int64(facility.ID))
		f.SetProperty("name", facility.Name)
		f.SetProperty("category", facility.Category.String())
		f.SetProperty("distance", int64(facility.Distance))
		fc.AddFeature(f)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "Can't convert facilities to geojson format")
	}
	return b, nil
}

func nodesToCoordinates(g *Graph, ids []NodeID) [][]float64 {
	pts2d := make([][]float64, len(ids))
	for i, id := range ids {
		pt := g.nodes[id].Point
		pts2d[i] = []float64{pt.Lon, pt.Lat}
	}
	return pts2d
}
