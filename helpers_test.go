package osmalt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// pathGraph returns the 5-node graph: 0->1 (1), 1->2 (1), 0->2 (5), 2->3 (1), 3->4 (1)
func pathGraph(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	for i := 0; i < 5; i++ {
		g.AddNode(GeoPoint{Lat: 63.0 + 0.01*float64(i), Lon: 10.0 + 0.01*float64(i)})
	}
	edges := []struct {
		from, to NodeID
		w        Weight
	}{
		{0, 1, 1},
		{1, 2, 1},
		{0, 2, 5},
		{2, 3, 1},
		{3, 4, 1},
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e.from, e.to, e.w))
	}
	return g
}

// gridGraph returns rows x cols grid with random weights. Every cell is connected to its
// right and lower neighbors in both directions, but about 10% of reverse edges are dropped,
// so the graph is not symmetric.
func gridGraph(t *testing.T, rnd *rand.Rand, rows, cols int) *Graph {
	t.Helper()
	g := NewGraph(WithNodesCapacity(rows * cols))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.AddNode(GeoPoint{Lat: 60.0 + 0.01*float64(r), Lon: 10.0 + 0.01*float64(c)})
		}
	}
	id := func(r, c int) NodeID {
		return NodeID(r*cols + c)
	}
	connect := func(a, b NodeID) {
		require.NoError(t, g.AddEdge(a, b, Weight(1+rnd.Intn(100))))
		if rnd.Intn(10) > 0 {
			require.NoError(t, g.AddEdge(b, a, Weight(1+rnd.Intn(100))))
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				connect(id(r, c), id(r, c+1))
			}
			if r+1 < rows {
				connect(id(r, c), id(r+1, c))
			}
		}
	}
	return g
}

// randomGraph returns graph with n nodes and m random edges. Graph could be disconnected,
// could contain zero weights, duplicates and self-loops.
func randomGraph(t *testing.T, rnd *rand.Rand, n, m int) *Graph {
	t.Helper()
	g := NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(GeoPoint{Lat: 59.0 + rnd.Float64(), Lon: 10.0 + rnd.Float64()})
	}
	for i := 0; i < m; i++ {
		from := NodeID(rnd.Intn(n))
		to := NodeID(rnd.Intn(n))
		require.NoError(t, g.AddEdge(from, to, Weight(rnd.Intn(50))))
	}
	return g
}

// checkPath asserts that path is made of real edges and their weights sum up to distance
func checkPath(t *testing.T, g *Graph, source, target NodeID, result *PathResult) {
	t.Helper()
	if !result.Found() {
		require.Empty(t, result.Path)
		return
	}
	require.NotEmpty(t, result.Path)
	require.Equal(t, source, result.Path[0])
	require.Equal(t, target, result.Path[len(result.Path)-1])
	total, ok := g.PathWeight(result.Path)
	require.True(t, ok, "path %v contains missing edge", result.Path)
	require.Equal(t, result.Distance, total)
}
