// Package domain errors.go contains sentinel errors
package domain

import "errors"

// Sentinel domain-level errors reused by higher layers.
var (
	ErrInvalidID        = errors.New("invalid post id")
	ErrTTLInvalid       = errors.New("ttl invalid")
	ErrEmptyText        = errors.New("post text empty")
	ErrPasswordRequired = errors.New("post password required")
	ErrPostNotFound     = errors.New("post not found")
)
