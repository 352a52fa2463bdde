package osmalt

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatDuration(0))
	assert.Equal(t, "00:00:01", FormatDuration(199))
	assert.Equal(t, "01:01:01", FormatDuration(366100))
	assert.Equal(t, "27:46:40", FormatDuration(10000000))
	assert.Equal(t, "unreachable", FormatDuration(Infinity))
}

func TestPathWeightAndLength(t *testing.T) {
	g := NewGraph()
	for i := 0; i < 3; i++ {
		g.AddNode(GeoPoint{Lat: 59.0, Lon: 10.0 + 0.01*float64(i)})
	}
	require.NoError(t, g.AddEdge(0, 1, 30, WithLength(600)))
	require.NoError(t, g.AddEdge(0, 1, 20, WithLength(650)))
	require.NoError(t, g.AddEdge(1, 2, 10))

	w, ok := g.PathWeight([]NodeID{0, 1, 2})
	assert.True(t, ok)
	assert.Equal(t, Weight(30), w)
	_, ok = g.PathWeight([]NodeID{2, 1})
	assert.False(t, ok)
	w, ok = g.PathWeight([]NodeID{1})
	assert.True(t, ok)
	assert.Equal(t, Weight(0), w)

	// The cheapest edge has length metadata, the second one is measured by coordinates
	length := g.PathLengthMeters([]NodeID{0, 1, 2})
	expected := 650 + greatCircleDistance(g.Node(1).Point, g.Node(2).Point)
	assert.InDelta(t, expected, length, 1e-9)
	assert.Equal(t, 0.0, g.PathLengthMeters([]NodeID{}))
}

func TestWritePathCSV(t *testing.T) {
	g := NewGraph()
	path := []NodeID{}
	for i := 0; i < 10; i++ {
		path = append(path, g.AddNode(GeoPoint{Lat: 63.0 + float64(i), Lon: 10.5}))
	}

	buf := bytes.Buffer{}
	require.NoError(t, WritePathCSV(&buf, g, path, 0))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "72,10.5", lines[0])
	assert.Equal(t, "63,10.5", lines[9])

	buf.Reset()
	require.NoError(t, WritePathCSV(&buf, g, path, 3))
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Every 5-th node and the source
	assert.Equal(t, []string{"72,10.5", "67,10.5", "63,10.5"}, lines)

	// Path that already fits is not thinned
	buf.Reset()
	require.NoError(t, WritePathCSV(&buf, g, path, 10))
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "63,10.5", lines[9])

	buf.Reset()
	require.NoError(t, WritePathCSV(&buf, g, path, 4))
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"72,10.5", "69,10.5", "66,10.5", "63,10.5"}, lines)

	// Target and source are kept even for the tiniest limit
	buf.Reset()
	require.NoError(t, WritePathCSV(&buf, g, path, 1))
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"72,10.5", "63,10.5"}, lines)

	fname := filepath.Join(t.TempDir(), "alt.csv")
	require.NoError(t, SavePathCSV(fname, g, path, 0))
	content, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Equal(t, 10, strings.Count(string(content), "\n"))
}
