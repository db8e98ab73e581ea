package filter

import "errors"

// Sentinel kinds for filter errors.
var (
	ErrUnknownDimension = errors.New("unknown filter dimension")
)
