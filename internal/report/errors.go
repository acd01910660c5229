package report

import "errors"

// ErrUnknownReport is returned for a report kind the printer does not know.
var ErrUnknownReport = errors.New("unknown report")
