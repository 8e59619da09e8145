package scoring

import "errors"

var (
	ErrMalformedResponse = errors.New("malformed model response")
	ErrDuplicateTicker   = errors.New("duplicate ticker in batch")
	ErrInvalidMode       = errors.New("invalid scoring mode")
)
