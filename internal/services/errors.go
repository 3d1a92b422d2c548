package services

import "errors"

var (
	ErrInvalidToken    = errors.New("invalid push token")
	ErrInvalidPlatform = errors.New("invalid platform")
	ErrNotFound        = errors.New("not found")
)
