package favorites

import "errors"

var (
	// ErrUnavailable means the remote favorites store could not serve the
	// call: the session is unauthenticated or the backing write failed.
	// Local-cache paths keep working when this is returned.
	ErrUnavailable = errors.New("remote favorites unavailable")

	ErrNotFound = errors.New("catalog item not found")
)
