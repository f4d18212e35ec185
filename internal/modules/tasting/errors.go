package tasting

import "errors"

var (
	ErrNameRequired    = errors.New("please enter a valid name before submitting")
	ErrUnknownWine     = errors.New("wine is not one of the offered options")
	ErrInvalidRating   = errors.New("rating must be between 1 and 10")
	ErrInvalidCategory = errors.New("category must be Rating or Taste")
)

// IsValidationError reports whether err comes from input validation rather
// than from the record store.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrUnknownWine) ||
		errors.Is(err, ErrInvalidRating) ||
		errors.Is(err, ErrInvalidCategory)
}
