package render

import "errors"

// Sentinel kinds for render errors.
var (
	ErrUnknownChart = errors.New("unknown chart")
	ErrNoRaster     = errors.New("chart has no raster form")
	ErrEmptyChart   = errors.New("chart has no data")
	ErrRender       = errors.New("chart render failed")
)
