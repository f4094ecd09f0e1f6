package services

import "errors"

// Analysis service errors
var (
	// ErrNoUsableData means every row of the uploaded schedule was dropped
	// during parsing; the computation halts with no partial output.
	ErrNoUsableData = errors.New("no usable schedule data after parsing")

	// ErrInvalidWindow means the selected window does not satisfy end > start.
	ErrInvalidWindow = errors.New("invalid analysis window")

	// ErrInvalidScanParams means the lookahead scan parameters are not positive.
	ErrInvalidScanParams = errors.New("invalid lookahead scan parameters")
)
