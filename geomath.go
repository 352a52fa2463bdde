package osmalt

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const (
	pi180    = math.Pi / 180.0
	pi180Rev = 180.0 / math.Pi
)

// GeoPoint representation of point on Earth
type GeoPoint struct {
	Lat float64
	Lon float64
}

// String returns pretty printed value for for GeoPoint
func (gp GeoPoint) String() string {
	return fmt.Sprintf("Lon: %f | Lat: %f", gp.Lon, gp.Lat)
}

// Point returns orb representation of the point (X = longitude, Y = latitude)
func (gp GeoPoint) Point() orb.Point {
	return orb.Point{gp.Lon, gp.Lat}
}

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// radiansTodegrees r = deg  * 180 / pi
func radiansTodegrees(d float64) float64 {
	return d * pi180Rev
}

// greatCircleDistance returns distance between two geo-points (meters)
func greatCircleDistance(p, q GeoPoint) float64 {
	return geo.DistanceHaversine(p.Point(), q.Point())
}

// initialBearing returns bearing from p to q in radians, normalized to [0, 2*pi)
func initialBearing(p, q GeoPoint) float64 {
	lat1 := degreesToRadians(p.Lat)
	lat2 := degreesToRadians(q.Lat)
	diffLon := degreesToRadians(q.Lon - p.Lon)
	y := math.Sin(diffLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(diffLon)
	bearing := math.Atan2(y, x)
	if bearing < 0 {
		bearing += 2 * math.Pi
	}
	return bearing
}

// findCentroid returns center point for given set of points (not middle point)
func findCentroid(points []GeoPoint) GeoPoint {
	totalPoints := len(points)
	if totalPoints == 0 {
		return GeoPoint{}
	}
	if totalPoints == 1 {
		return points[0]
	}
	x, y, z := 0.0, 0.0, 0.0
	for i := 0; i < totalPoints; i++ {
		longitude := degreesToRadians(points[i].Lon)
		latitude := degreesToRadians(points[i].Lat)
		c1 := math.Cos(latitude)
		x += c1 * math.Cos(longitude)
		y += c1 * math.Sin(longitude)
		z += math.Sin(latitude)
	}

	x /= float64(totalPoints)
	y /= float64(totalPoints)
	z /= float64(totalPoints)

	centralLongitude := math.Atan2(y, x)
	centralSquareRoot := math.Sqrt(x*x + y*y)
	centralLatitude := math.Atan2(z, centralSquareRoot)

	return GeoPoint{
		Lon: radiansTodegrees(centralLongitude),
		Lat: radiansTodegrees(centralLatitude),
	}
}
