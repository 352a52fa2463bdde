package osmalt

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const fallbackSpeed = 40.0 // km/h

// CostType is how edge weight is computed from OSM data
type CostType uint16

const (
	// Travel time in hundredths of a second
	COST_TIME = CostType(iota)
	// Length in meters
	COST_DISTANCE
)

func (iotaIdx CostType) String() string {
	return [...]string{"time", "distance"}[iotaIdx]
}

// OsmConfiguration Allows to filter ways by certain tags from OSM data
type OsmConfiguration struct {
	EntityName string // Currrently we support 'highway' only
	Tags       []string
	CostType   CostType
	// Speed (km/h) for ways which road class has no default speed
	DefaultSpeed float64
	// Use default speeds of road classes even if `maxspeed` tag is present
	IgnoreMaxSpeed bool
	// Classify points of interest (places, fuel, food, lodging)
	POI bool
	// Points of interest further than this distance (meters) from the road network are dropped
	POIMaxSnapMeters float64
}

// DefaultOsmConfiguration returns configuration for motor vehicle road network
func DefaultOsmConfiguration() *OsmConfiguration {
	tags := make([]string, 0, len(highwaysTypes))
	for i := HIGHWAY_MOTORWAY; i <= HIGHWAY_UNCLASSIFIED; i++ {
		tags = append(tags, i.String())
	}
	return &OsmConfiguration{
		EntityName:       "highway",
		Tags:             tags,
		CostType:         COST_TIME,
		DefaultSpeed:     fallbackSpeed,
		POI:              true,
		POIMaxSnapMeters: 1000.0,
	}
}

// CheckTag Checks if incoming tag is represented in configuration
func (cfg *OsmConfiguration) CheckTag(tag string) bool {
	for i := range cfg.Tags {
		if cfg.Tags[i] == tag {
			return true
		}
	}
	return false
}

// ParseTags sets allowed values of entity tag from comma separated list.
// Empty list keeps current tags.
func (cfg *OsmConfiguration) ParseTags(tags string) error {
	if strings.TrimSpace(tags) == "" {
		return nil
	}
	parsed := []string{}
	for _, tag := range strings.Split(tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if getHighwayType(tag) == 0 {
			return errors.Errorf("unsupported %s tag '%s'", cfg.EntityName, tag)
		}
		parsed = append(parsed, tag)
	}
	cfg.Tags = parsed
	return nil
}

// ParseCostType parsing flag cost_type
/*
	Format is "type[->speed_source[->default_speed]]", e.g.:
		"distance"
		"time"
		"time->maxspeed"
		"time->static->50"
	Speed source 'static' ignores `maxspeed` tags.
*/
func (cfg *OsmConfiguration) ParseCostType(tag string) error {
	paramsTag := strings.Split(tag, "->")
	switch paramsTag[0] {
	case "time":
		cfg.CostType = COST_TIME
	case "distance":
		cfg.CostType = COST_DISTANCE
	default:
		return errors.Errorf("first param bad for tag cost_type: '%s'", paramsTag[0])
	}
	if cfg.CostType == COST_DISTANCE {
		return nil
	}
	if len(paramsTag) >= 2 {
		switch paramsTag[1] {
		case "static":
			cfg.IgnoreMaxSpeed = true
		case "maxspeed":
			cfg.IgnoreMaxSpeed = false
		default:
			return errors.Errorf("second param bad for tag cost_type: '%s'", paramsTag[1])
		}
	}
	if len(paramsTag) == 3 {
		value, err := strconv.ParseFloat(paramsTag[2], 64)
		if err != nil {
			return errors.Wrap(err, "third param bad for tag cost_type")
		}
		if value <= 0 {
			return errors.Errorf("default speed should be positive, got %f", value)
		}
		cfg.DefaultSpeed = value
	}
	return nil
}

// EdgeCost returns weight of road segment with given length (meters) and speed (km/h)
func (cfg *OsmConfiguration) EdgeCost(lengthMeters, speedKmh float64) Weight {
	if cfg.CostType == COST_DISTANCE {
		return Weight(lengthMeters + 0.5)
	}
	if speedKmh <= 0 {
		speedKmh = cfg.DefaultSpeed
	}
	if speedKmh <= 0 {
		speedKmh = fallbackSpeed
	}
	return Weight(lengthMeters/(speedKmh/3.6)*100 + 0.5)
}
