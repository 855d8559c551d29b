package mines

import "errors"

var (
	ErrInvalidCoordinate    = errors.New("invalid cell coordinates")
	ErrInvalidConfiguration = errors.New("invalid game configuration")
)

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
