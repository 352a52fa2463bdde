package osmalt

import (
	"github.com/pkg/errors"
)

var (
	// ErrNodeOutOfRange is returned when an identifier does not belong to [0, N)
	ErrNodeOutOfRange = errors.New("node is out of range")
	// ErrNegativeWeight is returned when an edge with negative weight is being added
	ErrNegativeWeight = errors.New("negative edge weight")
	// ErrNonDenseID is returned when loaded node identifiers are not 0..N-1 in order
	ErrNonDenseID = errors.New("node identifiers must be dense and ordered")
	// ErrLandmarkNotFound is returned when a landmark can't be resolved by name
	ErrLandmarkNotFound = errors.New("landmark not found")
	// ErrNoLandmarks is returned when preprocessing is requested for empty landmark set
	ErrNoLandmarks = errors.New("no landmarks provided")
	// ErrTableMismatch is returned when landmark table does not fit the graph or the requested landmarks
	ErrTableMismatch = errors.New("landmark table does not match")
	// ErrMalformedInput is returned for unparsable input lines
	ErrMalformedInput = errors.New("malformed input")
)
