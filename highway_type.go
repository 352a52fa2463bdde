package osmalt

// HighwayType is value of OSM `highway` tag supported by importer
type HighwayType uint16

const (
	HIGHWAY_MOTORWAY = HighwayType(iota + 1)
	HIGHWAY_MOTORWAY_LINK
	HIGHWAY_TRUNK
	HIGHWAY_TRUNK_LINK
	HIGHWAY_PRIMARY
	HIGHWAY_PRIMARY_LINK
	HIGHWAY_SECONDARY
	HIGHWAY_SECONDARY_LINK
	HIGHWAY_TERTIARY
	HIGHWAY_TERTIARY_LINK
	HIGHWAY_RESIDENTIAL
	HIGHWAY_LIVING_STREET
	HIGHWAY_SERVICE
	HIGHWAY_SERVICES
	HIGHWAY_TRACK
	HIGHWAY_UNCLASSIFIED
)

func (iotaIdx HighwayType) String() string {
	return [...]string{"motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link", "secondary", "secondary_link", "tertiary", "tertiary_link", "residential", "living_street", "service", "services", "track", "unclassified"}[iotaIdx-1]
}

// LinkType returns road class for the highway type
func (iotaIdx HighwayType) LinkType() LinkType {
	return linkTypeByHighway[iotaIdx]
}

// IsLink tells if highway is a ramp connecting two roads (e.g. 'motorway_link')
func (iotaIdx HighwayType) IsLink() bool {
	_, ok := rampHighways[iotaIdx]
	return ok
}

func getHighwayType(str string) HighwayType {
	if found, ok := highwaysTypes[str]; ok {
		return found
	}
	return 0
}

var (
	linkTypeByHighway = map[HighwayType]LinkType{
		HIGHWAY_MOTORWAY:       LINK_MOTORWAY,
		HIGHWAY_MOTORWAY_LINK:  LINK_MOTORWAY,
		HIGHWAY_TRUNK:          LINK_TRUNK,
		HIGHWAY_TRUNK_LINK:     LINK_TRUNK,
		HIGHWAY_PRIMARY:        LINK_PRIMARY,
		HIGHWAY_PRIMARY_LINK:   LINK_PRIMARY,
		HIGHWAY_SECONDARY:      LINK_SECONDARY,
		HIGHWAY_SECONDARY_LINK: LINK_SECONDARY,
		HIGHWAY_TERTIARY:       LINK_TERTIARY,
		HIGHWAY_TERTIARY_LINK:  LINK_TERTIARY,
		HIGHWAY_RESIDENTIAL:    LINK_RESIDENTIAL,
		HIGHWAY_LIVING_STREET:  LINK_LIVING_STREET,
		HIGHWAY_SERVICE:        LINK_SERVICE,
		HIGHWAY_SERVICES:       LINK_SERVICE,
		HIGHWAY_TRACK:          LINK_TRACK,
		HIGHWAY_UNCLASSIFIED:   LINK_UNCLASSIFIED,
	}

	rampHighways = map[HighwayType]struct{}{
		HIGHWAY_MOTORWAY_LINK:  {},
		HIGHWAY_TRUNK_LINK:     {},
		HIGHWAY_PRIMARY_LINK:   {},
		HIGHWAY_SECONDARY_LINK: {},
		HIGHWAY_TERTIARY_LINK:  {},
	}

	highwaysTypes = map[string]HighwayType{
		"motorway":       HIGHWAY_MOTORWAY,
		"motorway_link":  HIGHWAY_MOTORWAY_LINK,
		"trunk":          HIGHWAY_TRUNK,
		"trunk_link":     HIGHWAY_TRUNK_LINK,
		"primary":        HIGHWAY_PRIMARY,
		"primary_link":   HIGHWAY_PRIMARY_LINK,
		"secondary":      HIGHWAY_SECONDARY,
		"secondary_link": HIGHWAY_SECONDARY_LINK,
		"tertiary":       HIGHWAY_TERTIARY,
		"tertiary_link":  HIGHWAY_TERTIARY_LINK,
		"residential":    HIGHWAY_RESIDENTIAL,
		"living_street":  HIGHWAY_LIVING_STREET,
		"service":        HIGHWAY_SERVICE,
		"services":       HIGHWAY_SERVICES,
		"track":          HIGHWAY_TRACK,
		"unclassified":   HIGHWAY_UNCLASSIFIED,
	}
)
