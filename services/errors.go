package services

import "errors"

var (
	ErrTextRequired       = errors.New("text required")
	ErrRateLimited        = errors.New("rate limited")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrMalformedQuery     = errors.New("malformed query string")
	ErrPublishingDisabled = errors.New("image publishing is not configured")
)
