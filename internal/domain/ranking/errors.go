package ranking

import "errors"

// Sentinel kinds for ranking parameter errors.
var (
	ErrInvalidTopN      = errors.New("top_n must be >= 1")
	ErrInvalidThreshold = errors.New("min_owned must be within [0,100]")
)
