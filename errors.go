package heuristic

import "errors"

// ErrInvalidInput reports caller misuse: an empty constraint set, an
// unknown constraint kind, malformed parameters or a value whose shape
// the constraint kind cannot inspect.
//
// It is never transient. Retrying with the same input fails the same way.
var ErrInvalidInput = errors.New("heuristic: invalid input")
