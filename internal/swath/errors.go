package swath

import "errors"

var (
	// ErrInvalidGeometry reports an axis with fewer than two edges, edges
	// that are not strictly increasing, or a non-positive bin width.
	ErrInvalidGeometry = errors.New("swath: invalid grid geometry")

	// ErrShapeMismatch reports observation or grid arrays whose extents
	// disagree with each other or with the edge-derived grid shape.
	ErrShapeMismatch = errors.New("swath: shape mismatch")
)
