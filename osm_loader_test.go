package osmalt

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="59.0" lon="10.0"/>
  <node id="2" lat="59.0" lon="10.01"/>
  <node id="3" lat="59.01" lon="10.01">
    <tag k="amenity" v="cafe"/>
    <tag k="name" v="Kafe"/>
  </node>
  <node id="4" lat="59.01" lon="10.0"/>
  <node id="10" lat="59.0005" lon="10.0001">
    <tag k="amenity" v="fuel"/>
    <tag k="name" v="Circle K"/>
  </node>
  <node id="12" lat="60.0" lon="11.0">
    <tag k="tourism" v="hotel"/>
    <tag k="name" v="Too far"/>
  </node>
  <way id="100">
    <nd ref="1"/>
    <nd ref="2"/>
    <tag k="highway" v="primary"/>
    <tag k="maxspeed" v="60"/>
  </way>
  <way id="101">
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="residential"/>
    <tag k="oneway" v="yes"/>
  </way>
  <way id="102">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="tertiary"/>
    <tag k="oneway" v="-1"/>
    <tag k="maxspeed" v="30 mph"/>
  </way>
  <way id="103">
    <nd ref="4"/>
    <nd ref="1"/>
    <tag k="highway" v="footway"/>
  </way>
  <way id="104">
    <nd ref="1"/>
    <nd ref="3"/>
    <tag k="highway" v="service"/>
    <tag k="access" v="private"/>
  </way>
</osm>
`

func TestImportFromOSMFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "sample.osm")
	require.NoError(t, os.WriteFile(fname, []byte(sampleOSM), 0644))

	cfg := DefaultOsmConfiguration()
	g, err := ImportFromOSMFile(context.Background(), fname, cfg, false)
	require.NoError(t, err)

	// OSM nodes 1, 2, 3, 4 become 0, 1, 2, 3
	require.Equal(t, 4, g.NodesNum())
	require.Equal(t, 4, g.EdgesNum())
	assert.Equal(t, GeoPoint{Lat: 59.01, Lon: 10.0}, g.Node(3).Point)

	// Two-way primary road with speed limit
	require.Len(t, g.Neighbors(0), 1)
	e := g.Neighbors(0)[0]
	assert.Equal(t, NodeID(1), e.To)
	assert.Equal(t, 60, e.SpeedLimit)
	length := greatCircleDistance(g.Node(0).Point, g.Node(1).Point)
	assert.InDelta(t, length, e.LengthMeters, 1e-9)
	assert.Equal(t, cfg.EdgeCost(length, 60), e.Weight)
	require.Len(t, g.ReverseNeighbors(0), 1)

	// One way residential road uses default speed of road class
	require.Len(t, g.ReverseNeighbors(2), 2)
	for _, re := range g.Neighbors(1) {
		if re.To == 2 {
			assert.Equal(t, 30, re.SpeedLimit)
		}
	}
	assert.Empty(t, g.Neighbors(2))

	// oneway=-1: edge goes against order of way nodes; 30 mph is about 48 km/h
	require.Len(t, g.Neighbors(3), 1)
	e = g.Neighbors(3)[0]
	assert.Equal(t, NodeID(2), e.To)
	assert.Equal(t, 48, e.SpeedLimit)

	result, err := g.ShortestPath(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{0, 1, 2}, result.Path)
	result, err = g.ShortestPath(2, 0)
	require.NoError(t, err)
	assert.False(t, result.Found())

	// Points of interest: on the road, snapped to the road and too far away
	assert.Equal(t, CATEGORY_FOOD, g.Node(2).Category)
	assert.Equal(t, "Kafe", g.Node(2).Name)
	assert.Equal(t, CATEGORY_GAS, g.Node(0).Category)
	id, ok := g.FindByName("Circle K")
	assert.True(t, ok)
	assert.Equal(t, NodeID(0), id)
	_, ok = g.FindByName("Too far")
	assert.False(t, ok)
	assert.Equal(t, CATEGORY_NONE, g.Node(1).Category)
	assert.Equal(t, CATEGORY_NONE, g.Node(3).Category)
}

func TestImportFromOSMFileOptions(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "sample.osm")
	require.NoError(t, os.WriteFile(fname, []byte(sampleOSM), 0644))

	cfg := DefaultOsmConfiguration()
	cfg.POI = false
	require.NoError(t, cfg.ParseTags("primary,residential"))
	require.NoError(t, cfg.ParseCostType("distance"))
	g, err := ImportFromOSMFile(context.Background(), fname, cfg, false)
	require.NoError(t, err)
	assert.Equal(t, 3, g.NodesNum())
	assert.Equal(t, 3, g.EdgesNum())
	for i := 0; i < g.NodesNum(); i++ {
		assert.Equal(t, CATEGORY_NONE, g.Node(NodeID(i)).Category)
	}
	e := g.Neighbors(0)[0]
	assert.Equal(t, Weight(math.Round(e.LengthMeters)), e.Weight)

	_, err = ImportFromOSMFile(context.Background(), filepath.Join(t.TempDir(), "missing.osm.pbf"), nil, false)
	assert.Error(t, err)
}

func TestWayTags(t *testing.T) {
	cfg := DefaultOsmConfiguration()
	way := &osm.Way{
		ID:    1,
		Nodes: osm.WayNodes{{ID: 1}, {ID: 2}, {ID: 3}},
		Tags:  osm.Tags{{Key: "highway", Value: "motorway"}},
	}
	prepared, ok := newWay(way, cfg, false)
	require.True(t, ok)
	assert.Equal(t, []osm.NodeID{1, 2, 3}, prepared.Nodes)
	assert.Equal(t, HIGHWAY_MOTORWAY, prepared.Highway)
	// Motorways are one way by default
	assert.Equal(t, DIRECTION_FORWARD, prepared.Direction)
	assert.Equal(t, 120.0, prepared.Speed(cfg))

	cases := []struct {
		tags      osm.Tags
		ok        bool
		direction Direction
	}{
		{osm.Tags{{Key: "highway", Value: "secondary"}}, true, DIRECTION_BOTH},
		{osm.Tags{{Key: "highway", Value: "secondary"}, {Key: "oneway", Value: "true"}}, true, DIRECTION_FORWARD},
		{osm.Tags{{Key: "highway", Value: "secondary"}, {Key: "oneway", Value: "reverse"}}, true, DIRECTION_BACKWARD},
		{osm.Tags{{Key: "highway", Value: "secondary"}, {Key: "oneway", Value: "reversible"}}, true, DIRECTION_BOTH},
		{osm.Tags{{Key: "highway", Value: "secondary"}, {Key: "junction", Value: "roundabout"}}, true, DIRECTION_FORWARD},
		{osm.Tags{{Key: "highway", Value: "motorway"}, {Key: "oneway", Value: "no"}}, true, DIRECTION_BOTH},
		{osm.Tags{{Key: "highway", Value: "residential"}, {Key: "access", Value: "no"}, {Key: "motor_vehicle", Value: "yes"}}, true, DIRECTION_BOTH},
		{osm.Tags{{Key: "highway", Value: "residential"}, {Key: "motor_vehicle", Value: "no"}}, false, DIRECTION_BOTH},
		{osm.Tags{{Key: "highway", Value: "service"}, {Key: "service", Value: "parking_aisle"}}, false, DIRECTION_BOTH},
		{osm.Tags{{Key: "highway", Value: "cycleway"}}, false, DIRECTION_BOTH},
		{osm.Tags{{Key: "railway", Value: "rail"}}, false, DIRECTION_BOTH},
	}
	for i, c := range cases {
		way.Tags = c.tags
		prepared, ok := newWay(way, cfg, false)
		require.Equal(t, c.ok, ok, "case %d", i)
		if ok {
			assert.Equal(t, c.direction, prepared.Direction, "case %d", i)
		}
	}
}

func TestParseMaxSpeed(t *testing.T) {
	way := &Way{ID: 1}
	cases := []struct {
		value    string
		expected float64
	}{
		{"", -1},
		{"50", 50},
		{"50 km/h", 50},
		{"40 mph", 40 * mphToKmh},
		{"40mph", 40 * mphToKmh},
		{"none", -1},
		{"walk", -1},
	}
	for _, c := range cases {
		assert.InDelta(t, c.expected, way.parseMaxSpeed(c.value, false), 1e-9, "value '%s'", c.value)
	}
}

func TestClassifyPOI(t *testing.T) {
	assert.Equal(t, CATEGORY_CHARGING, classifyPOI(osm.Tags{{Key: "amenity", Value: "charging_station"}}))
	assert.Equal(t, CATEGORY_PLACE, classifyPOI(osm.Tags{{Key: "place", Value: "town"}, {Key: "name", Value: "Orkanger"}}))
	assert.Equal(t, CATEGORY_LODGING|CATEGORY_FOOD, classifyPOI(osm.Tags{{Key: "tourism", Value: "hotel"}, {Key: "amenity", Value: "restaurant"}}))
	assert.Equal(t, CATEGORY_NONE, classifyPOI(osm.Tags{{Key: "amenity", Value: "bench"}}))
	assert.Equal(t, CATEGORY_NONE, classifyPOI(nil))
}

func TestOsmConfiguration(t *testing.T) {
	cfg := DefaultOsmConfiguration()
	assert.True(t, cfg.CheckTag("motorway_link"))
	assert.False(t, cfg.CheckTag("footway"))

	assert.Error(t, cfg.ParseTags("primary,footway"))
	require.NoError(t, cfg.ParseTags(" primary , trunk "))
	assert.Equal(t, []string{"primary", "trunk"}, cfg.Tags)
	require.NoError(t, cfg.ParseTags(""))
	assert.Equal(t, []string{"primary", "trunk"}, cfg.Tags)

	require.NoError(t, cfg.ParseCostType("time->static->50"))
	assert.Equal(t, COST_TIME, cfg.CostType)
	assert.True(t, cfg.IgnoreMaxSpeed)
	assert.Equal(t, 50.0, cfg.DefaultSpeed)
	// 1000 meters at 36 km/h (10 m/s) is 100 seconds
	assert.Equal(t, Weight(10000), cfg.EdgeCost(1000, 36))
	assert.Equal(t, Weight(7200), cfg.EdgeCost(1000, 0))

	require.NoError(t, cfg.ParseCostType("time->maxspeed"))
	assert.False(t, cfg.IgnoreMaxSpeed)

	require.NoError(t, cfg.ParseCostType("distance"))
	assert.Equal(t, Weight(1000), cfg.EdgeCost(999.6, 36))

	assert.Error(t, cfg.ParseCostType("hours"))
	assert.Error(t, cfg.ParseCostType("time->sometimes"))
	assert.Error(t, cfg.ParseCostType("time->static->fast"))
	assert.Error(t, cfg.ParseCostType("time->static->-5"))
}
