package osmalt

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// cheapestEdge returns the lightest edge u -> v, if any
func (g *Graph) cheapestEdge(u, v NodeID) (Edge, bool) {
	found := false
	var best Edge
	for _, e := range g.forward[u] {
		if e.To != v {
			continue
		}
		if !found || e.Weight < best.Weight {
			best = e
			found = true
		}
	}
	return best, found
}

// PathWeight sums weights of the cheapest edges along the path.
// The second value is false if some consecutive pair of nodes is not connected by an edge.
func (g *Graph) PathWeight(path []NodeID) (Weight, bool) {
	total := Weight(0)
	for i := 1; i < len(path); i++ {
		e, ok := g.cheapestEdge(path[i-1], path[i])
		if !ok {
			return Infinity, false
		}
		total += e.Weight
	}
	return total, true
}

// PathLengthMeters returns physical length of path. Edges without length metadata
// are measured as great circle distance between their endpoints.
func (g *Graph) PathLengthMeters(path []NodeID) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		e, ok := g.cheapestEdge(path[i-1], path[i])
		if ok && e.LengthMeters > 0 {
			total += e.LengthMeters
			continue
		}
		total += greatCircleDistance(g.nodes[path[i-1]].Point, g.nodes[path[i]].Point)
	}
	return total
}

// FormatDuration prints travel time given in hundredths of a second as HH:MM:SS
func FormatDuration(w Weight) string {
	if w == Infinity {
		return "unreachable"
	}
	seconds := int64(w) / 100
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// WritePathCSV writes coordinates of path nodes as "latitude,longitude" rows, target first.
// Long paths are thinned out to at most maxPoints rows (zero means no limit, target and source are
// always written): every k-th node is written and the source closes the list.
func WritePathCSV(w io.Writer, g *Graph, path []NodeID, maxPoints int) error {
	step := 1
	if maxPoints > 0 && len(path) > maxPoints {
		if maxPoints < 2 {
			maxPoints = 2
		}
		// One row is reserved for the source
		step = (len(path) + maxPoints - 3) / (maxPoints - 1)
	}
	last := len(path) - 1
	rows := make([]NodeID, 0, len(path)/step+1)
	for i := 0; i < last; i += step {
		rows = append(rows, path[last-i])
	}
	if len(path) > 0 {
		rows = append(rows, path[0])
	}
	writer := csv.NewWriter(w)
	for _, id := range rows {
		pt := g.nodes[id].Point
		err := writer.Write([]string{
			strconv.FormatFloat(pt.Lat, 'f', -1, 64),
			strconv.FormatFloat(pt.Lon, 'f', -1, 64),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write path node")
		}
	}
	writer.Flush()
	return writer.Error()
}

// SavePathCSV writes path coordinates to the file. See WritePathCSV.
func SavePathCSV(fname string, g *Graph, path []NodeID, maxPoints int) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	return WritePathCSV(file, g, path, maxPoints)
}
