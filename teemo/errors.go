package teemo

import "errors"

// All library errors carry the "teemo:" tag so callers can tell them
// apart from transport errors when logging.
var (
	// ErrMissingContact is returned by New when no contact string is given.
	ErrMissingContact = errors.New("teemo: contact information required")

	// ErrInvalidPlatform is returned when a platform argument resolves to
	// neither a known short code nor a known full name.
	ErrInvalidPlatform = errors.New("teemo: invalid platform")

	// ErrInvalidJSON is returned when a response body cannot be parsed.
	ErrInvalidJSON = errors.New("teemo: invalid JSON")

	// ErrAPIFailure is returned when the API reports failure through
	// either of its success flags.
	ErrAPIFailure = errors.New("teemo: API reported failure")
)
