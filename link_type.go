package osmalt

// LinkType is road class of an edge imported from OSM
type LinkType uint16

const (
	LINK_MOTORWAY = LinkType(iota + 1)
	LINK_TRUNK
	LINK_PRIMARY
	LINK_SECONDARY
	LINK_TERTIARY
	LINK_RESIDENTIAL
	LINK_LIVING_STREET
	LINK_SERVICE
	LINK_TRACK
	LINK_UNCLASSIFIED
	LINK_UNDEFINED = LinkType(0)
)

func (iotaIdx LinkType) String() string {
	return [...]string{"undefined", "motorway", "trunk", "primary", "secondary", "tertiary", "residential", "living_street", "service", "track", "unclassified"}[iotaIdx]
}

// DefaultSpeed returns free flow speed (km/h) for roads without `maxspeed` tag.
// Zero is returned for unknown link type.
func (iotaIdx LinkType) DefaultSpeed() float64 {
	return defaultSpeedByLinkType[iotaIdx]
}

// OnewayDefault tells if roads of such class are one way unless tagged otherwise
func (iotaIdx LinkType) OnewayDefault() bool {
	return onewayDefaultByLink[iotaIdx]
}

var (
	onewayDefaultByLink = map[LinkType]bool{
		LINK_MOTORWAY:      true,
		LINK_TRUNK:         false,
		LINK_PRIMARY:       false,
		LINK_SECONDARY:     false,
		LINK_TERTIARY:      false,
		LINK_RESIDENTIAL:   false,
		LINK_LIVING_STREET: false,
		LINK_SERVICE:       false,
		LINK_TRACK:         false,
		LINK_UNCLASSIFIED:  false,
	}
	defaultSpeedByLinkType = map[LinkType]float64{
		LINK_MOTORWAY:      120,
		LINK_TRUNK:         100,
		LINK_PRIMARY:       80,
		LINK_SECONDARY:     60,
		LINK_TERTIARY:      40,
		LINK_RESIDENTIAL:   30,
		LINK_LIVING_STREET: 20,
		LINK_SERVICE:       30,
		LINK_TRACK:         30,
		LINK_UNCLASSIFIED:  30,
	}
)
