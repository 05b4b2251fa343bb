package market

import "errors"

// Error kinds shared by the feature pipeline. Callers match them with errors.Is.
var (
	// ErrInsufficientData means the bar sequence is shorter than the longest
	// lookback the configuration needs. No snapshot can be produced.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateNumeric marks a zero or near zero ATR/range. It is recovered
	// locally with epsilon guards and only ever shows up in debug logs.
	ErrDegenerateNumeric = errors.New("degenerate numeric")

	// ErrIndexOutOfRange is returned when a derived lookup asks for a bar index
	// outside the sequence.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrMalformedBar flags a bar with non-finite prices or high below low.
	ErrMalformedBar = errors.New("malformed bar")
)
