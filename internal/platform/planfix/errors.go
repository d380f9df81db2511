package planfix

import "errors"

var (
	// ErrAPIFailure indicates the API answered with a result=fail
	// envelope. The wrapped message carries the server's error text.
	ErrAPIFailure = errors.New("planfix api returned failure")

	// ErrUnexpectedStatus indicates a non-200 HTTP response.
	ErrUnexpectedStatus = errors.New("unexpected http status from planfix api")
)
