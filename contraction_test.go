package osmalt

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractionPathGraph(t *testing.T) {
	g := pathGraph(t)
	contracted, err := ToContractionHierarchies(g, false)
	require.NoError(t, err)

	result, err := contracted.ShortestPath(0, 4)
	require.NoError(t, err)
	assert.Equal(t, Weight(4), result.Distance)
	assert.Equal(t, []NodeID{0, 1, 2, 3, 4}, result.Path)

	result, err = contracted.ShortestPath(3, 3)
	require.NoError(t, err)
	assert.Equal(t, Weight(0), result.Distance)
	assert.Equal(t, []NodeID{3}, result.Path)

	result, err = contracted.ShortestPath(4, 0)
	require.NoError(t, err)
	assert.False(t, result.Found())
	assert.Empty(t, result.Path)

	_, err = contracted.ShortestPath(-1, 2)
	assert.True(t, errors.Is(err, ErrNodeOutOfRange), "unexpected error: %v", err)
}

func TestContractionEqualsDijkstra(t *testing.T) {
	rnd := rand.New(rand.NewSource(31))
	g := gridGraph(t, rnd, 10, 10)
	// Parallel edges and self-loops should not affect distances
	require.NoError(t, g.AddEdge(0, 1, 1000))
	require.NoError(t, g.AddEdge(5, 5, 3))

	contracted, err := ToContractionHierarchies(g, false)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		s := NodeID(rnd.Intn(g.NodesNum()))
		d := NodeID(rnd.Intn(g.NodesNum()))
		expected, err := g.ShortestPath(s, d)
		require.NoError(t, err)
		actual, err := contracted.ShortestPath(s, d)
		require.NoError(t, err)
		require.Equal(t, expected.Distance, actual.Distance, "query %d -> %d", s, d)
		checkPath(t, g, s, d, actual)
	}
}
