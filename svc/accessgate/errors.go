package accessgate

import "errors"

var (
	// ErrNotConfigured means no access password is set on the server.
	ErrNotConfigured = errors.New("accessgate: access password not configured")
	// ErrUnauthorized means the candidate did not match the password.
	ErrUnauthorized = errors.New("accessgate: unauthorized")
	// ErrInvalidToken means an access token is missing, forged, expired or
	// issued for another purpose.
	ErrInvalidToken = errors.New("accessgate: invalid access token")
	// ErrTokensDisabled means the Service was built without WithTokens.
	ErrTokensDisabled = errors.New("accessgate: access tokens are disabled")
)
