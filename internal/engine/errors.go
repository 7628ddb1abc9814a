package engine

import "errors"

// ErrInvalidConfiguration is returned when the stock length or a piece
// length cannot be planned: non-positive, not finite, or a piece longer
// than the stock.
var ErrInvalidConfiguration = errors.New("invalid configuration")
