package auth

import (
	"errors"
	"fmt"
)

// Common authentication service errors
var (
	// ErrInvalidToken is the parent of every token verification failure.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrInvalidSignature indicates the token was not signed with our key.
	ErrInvalidSignature = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrInvalidToken)

	// ErrMalformedToken indicates the token could not be parsed, used an
	// unexpected algorithm, or carried unusable claims.
	ErrMalformedToken = fmt.Errorf("%w: malformed token", ErrInvalidToken)

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrPasswordMismatch indicates a plaintext password does not match a stored hash.
	ErrPasswordMismatch = errors.New("password does not match")
)
