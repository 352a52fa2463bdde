package osmalt

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/paulmach/osm"
)

const mphToKmh = 1.609344

var (
	mphRegExp    = regexp.MustCompile(`\d+\.?\d*\s*mph`)
	numberRegExp = regexp.MustCompile(`\d+\.?\d*`)
)

// Direction is allowed direction of movement along OSM way
type Direction uint16

const (
	DIRECTION_BOTH = Direction(iota)
	DIRECTION_FORWARD
	DIRECTION_BACKWARD
)

func (iotaIdx Direction) String() string {
	return [...]string{"both", "forward", "backward"}[iotaIdx]
}

// Way is road segment taken from OSM data
type Way struct {
	ID        osm.WayID
	Nodes     []osm.NodeID
	Name      string
	Highway   HighwayType
	Direction Direction
	// Speed limit in km/h. Negative value means absence of `maxspeed` tag.
	MaxSpeed float64
}

// newWay prepares road segment from OSM way. Second value is false if way is not a road for motor vehicles.
func newWay(way *osm.Way, cfg *OsmConfiguration, verbose bool) (Way, bool) {
	tags := way.Tags
	highway := tags.Find(cfg.EntityName)
	if highway == "" || !cfg.CheckTag(highway) {
		return Way{}, false
	}
	if !isAutoAllowed(tags) || len(way.Nodes) < 2 {
		return Way{}, false
	}
	prepared := Way{
		ID:       way.ID,
		Nodes:    make([]osm.NodeID, 0, len(way.Nodes)),
		Name:     tags.Find("name"),
		Highway:  getHighwayType(highway),
		MaxSpeed: -1,
	}
	for _, node := range way.Nodes {
		prepared.Nodes = append(prepared.Nodes, node.ID)
	}
	prepared.Direction = prepared.parseDirection(tags, verbose)
	prepared.MaxSpeed = prepared.parseMaxSpeed(tags.Find("maxspeed"), verbose)
	return prepared, true
}

func (way *Way) parseDirection(tags osm.Tags, verbose bool) Direction {
	oneway := tags.Find("oneway")
	if _, ok := onewayForward[oneway]; ok {
		return DIRECTION_FORWARD
	}
	if _, ok := onewayBackward[oneway]; ok {
		return DIRECTION_BACKWARD
	}
	if _, ok := onewayNo[oneway]; ok {
		return DIRECTION_BOTH
	}
	if _, ok := onewayReversible[oneway]; ok {
		// Direction depends on time of day: both are allowed
		return DIRECTION_BOTH
	}
	if oneway != "" && verbose {
		fmt.Printf("[WARNING]: Unknown `oneway` tag value '%s'. Way ID: '%d'\n", oneway, way.ID)
	}
	if _, ok := junctionTypes[tags.Find("junction")]; ok {
		return DIRECTION_FORWARD
	}
	if way.Highway.LinkType().OnewayDefault() {
		return DIRECTION_FORWARD
	}
	return DIRECTION_BOTH
}

// parseMaxSpeed extracts speed limit in km/h from `maxspeed` tag value like '60', '60 km/h' or '40 mph'
func (way *Way) parseMaxSpeed(maxSpeed string, verbose bool) float64 {
	if maxSpeed == "" {
		return -1
	}
	if mphMaxSpeed := mphRegExp.FindString(maxSpeed); mphMaxSpeed != "" {
		value, err := strconv.ParseFloat(numberRegExp.FindString(mphMaxSpeed), 64)
		if err != nil {
			if verbose {
				fmt.Printf("[WARNING]: Provided `maxspeed (mph)` tag value should be an float (or integer?). Got '%s'. Way ID: '%d'\n", maxSpeed, way.ID)
			}
			return -1
		}
		return value * mphToKmh
	}
	kmhMaxSpeed := numberRegExp.FindString(maxSpeed)
	if kmhMaxSpeed == "" {
		// Values like 'none', 'walk' or 'signals'
		return -1
	}
	value, err := strconv.ParseFloat(kmhMaxSpeed, 64)
	if err != nil {
		if verbose {
			fmt.Printf("[WARNING]: Provided `maxspeed (km/h)` tag value should be an float (or integer?). Got '%s'. Way ID: '%d'\n", maxSpeed, way.ID)
		}
		return -1
	}
	return value
}

// Speed returns speed (km/h) to be used for travel time estimation
func (way *Way) Speed(cfg *OsmConfiguration) float64 {
	if way.MaxSpeed > 0 && !cfg.IgnoreMaxSpeed {
		return way.MaxSpeed
	}
	if speed := way.Highway.LinkType().DefaultSpeed(); speed > 0 {
		return speed
	}
	return cfg.DefaultSpeed
}
