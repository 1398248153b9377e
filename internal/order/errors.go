package order

import "errors"

var (
	ErrNotFound           = errors.New("order not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrForbidden          = errors.New("not authorized to update this order")
	ErrInvalidTransition  = errors.New("status change not allowed from current status")
	ErrConflict           = errors.New("order was modified concurrently")
)

// ValidationError reports malformed input. Nothing is persisted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
