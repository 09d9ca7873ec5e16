package forum

import "errors"

// Error taxonomy surfaced to the view layer. Handlers map these to distinct
// status codes so permission failures and lookup failures never collapse into
// a generic error.
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
