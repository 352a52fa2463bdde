package osmalt

import (
	"math"
)

// Weight is a traversal cost of edge. For road data it is travel time in hundredths of a second.
type Weight int64

// Infinity marks unknown or unreachable distance
const Infinity = Weight(math.MaxInt64)

// Edge is a directed weighted connection between two nodes
type Edge struct {
	From   NodeID
	To     NodeID
	Weight Weight
	// Optional metadata for reporting purposes
	LengthMeters float64
	SpeedLimit   int // km/h, zero when unknown
}

// reversed returns edge with swapped endpoints and the same weight and metadata
func (e Edge) reversed() Edge {
	e.From, e.To = e.To, e.From
	return e
}

// EdgeOption sets optional metadata of edge
type EdgeOption func(*Edge)

// WithLength sets physical length of edge (meters)
func WithLength(meters float64) EdgeOption {
	return func(e *Edge) {
		e.LengthMeters = meters
	}
}

// WithSpeedLimit sets speed limit of edge (km/h)
func WithSpeedLimit(kmh int) EdgeOption {
	return func(e *Edge) {
		e.SpeedLimit = kmh
	}
}
