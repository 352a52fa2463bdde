package osmalt

// AccessType is OSM tag which could forbid motor vehicles on a way
type AccessType uint16

const (
	ACCESS_HIGHWAY = AccessType(iota + 1)
	ACCESS_MOTOR_VEHICLE
	ACCESS_MOTORCAR
	ACCESS_OSM_ACCESS
	ACCESS_SERVICE
	ACCESS_UNDEFINED = AccessType(0)
)

func (iotaIdx AccessType) String() string {
	return [...]string{"undefined", "highway", "motor_vehicle", "motorcar", "access", "service"}[iotaIdx]
}

// Key returns OSM tag key for the access type
func (iotaIdx AccessType) Key() string {
	return iotaIdx.String()
}
