package osmalt

import (
	"github.com/paulmach/osm"
)

var (
	// Motor vehicles are not allowed on ways with such tags
	autoFiltersExclude = map[AccessType]map[string]struct{}{
		ACCESS_HIGHWAY: {
			"cycleway":   {},
			"footway":    {},
			"pedestrian": {},
			"steps":      {},
			"corridor":   {},
			"elevator":   {},
			"escalator":  {},
		},
		ACCESS_MOTOR_VEHICLE: {
			"no": {},
		},
		ACCESS_MOTORCAR: {
			"no": {},
		},
		ACCESS_OSM_ACCESS: {
			"no":      {},
			"private": {},
		},
		ACCESS_SERVICE: {
			"parking":          {},
			"parking_aisle":    {},
			"driveway":         {},
			"private":          {},
			"emergency_access": {},
		},
	}

	// Explicit permission overrides `access=no`
	autoFiltersInclude = map[AccessType]map[string]struct{}{
		ACCESS_MOTOR_VEHICLE: {
			"yes": {},
		},
		ACCESS_MOTORCAR: {
			"yes": {},
		},
	}

	// Junctions which imply one way traffic
	junctionTypes = map[string]struct{}{
		"circular":   {},
		"roundabout": {},
	}

	// See ref.: https://wiki.openstreetmap.org/wiki/Key:oneway
	onewayForward = map[string]struct{}{
		"yes":  {},
		"1":    {},
		"true": {},
	}
	onewayBackward = map[string]struct{}{
		"-1":      {},
		"reverse": {},
	}
	onewayNo = map[string]struct{}{
		"no":    {},
		"0":     {},
		"false": {},
	}
	// See ref.: https://wiki.openstreetmap.org/wiki/Tag:oneway%3Dreversible
	onewayReversible = map[string]struct{}{
		"reversible":  {},
		"alternating": {},
	}

	// Points of interest classification: tag key -> tag value -> category
	poiTagsCategories = map[string]map[string]Category{
		"place": {
			"city":    CATEGORY_PLACE,
			"town":    CATEGORY_PLACE,
			"village": CATEGORY_PLACE,
			"hamlet":  CATEGORY_PLACE,
			"suburb":  CATEGORY_PLACE,
		},
		"amenity": {
			"fuel":             CATEGORY_GAS,
			"charging_station": CATEGORY_CHARGING,
			"restaurant":       CATEGORY_FOOD,
			"fast_food":        CATEGORY_FOOD,
			"cafe":             CATEGORY_FOOD,
			"food_court":       CATEGORY_FOOD,
			"bar":              CATEGORY_DRINK,
			"pub":              CATEGORY_DRINK,
			"biergarten":       CATEGORY_DRINK,
		},
		"tourism": {
			"hotel":       CATEGORY_LODGING,
			"motel":       CATEGORY_LODGING,
			"hostel":      CATEGORY_LODGING,
			"guest_house": CATEGORY_LODGING,
			"camp_site":   CATEGORY_LODGING,
		},
	}
)

// classifyPOI returns categories of OSM object by its tags. CATEGORY_NONE means it is not a point of interest.
func classifyPOI(tags osm.Tags) Category {
	category := CATEGORY_NONE
	for _, tag := range tags {
		values, ok := poiTagsCategories[tag.Key]
		if !ok {
			continue
		}
		category |= values[tag.Value]
	}
	return category
}

// isAutoAllowed checks access tags for motor vehicles
func isAutoAllowed(tags osm.Tags) bool {
	for accessType, values := range autoFiltersInclude {
		if _, ok := values[tags.Find(accessType.Key())]; ok {
			return true
		}
	}
	for accessType, values := range autoFiltersExclude {
		if _, ok := values[tags.Find(accessType.Key())]; ok {
			return false
		}
	}
	return true
}
