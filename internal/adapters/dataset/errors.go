package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrOpen      = errors.New("dataset open failed")
	ErrNoHeader  = errors.New("dataset has no header row")
	ErrNoColumns = errors.New("dataset has no recognised columns")
)
