// Package domain ttl.go contains TTL option parsing and validation against
// configured bounds.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// TTLOption is a single offered lifetime choice ("1m", "1h", "24h").
type TTLOption struct {
	Duration time.Duration
	Label    string
}

// NewTTLOption parses a TTL label into an option. Only units supported by
// time.ParseDuration up to hours are accepted; calendar units (d/w/M/y) are
// rejected so option labels stay unambiguous.
func NewTTLOption(s string) (TTLOption, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TTLOption{}, fmt.Errorf("empty TTL label")
	}
	if strings.ContainsAny(s, "dwMy") {
		return TTLOption{}, fmt.Errorf("unsupported TTL unit in %q", s)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return TTLOption{}, err
	}
	if d <= 0 {
		return TTLOption{}, ErrTTLInvalid
	}
	return TTLOption{Duration: d, Label: s}, nil
}

// ValidateTTL checks that ttl is positive and within [min, max].
// Returns ErrTTLInvalid on any violation.
func ValidateTTL(ttl, minTTL, maxTTL time.Duration) error {
	if ttl <= 0 {
		return ErrTTLInvalid
	}
	if ttl < minTTL {
		return ErrTTLInvalid
	}
	if ttl > maxTTL {
		return ErrTTLInvalid
	}
	return nil
}

// ClampTTL returns ttl constrained to the inclusive range [min, max].
func ClampTTL(ttl, minTTL, maxTTL time.Duration) time.Duration {
	if ttl < minTTL {
		return minTTL
	}
	if ttl > maxTTL {
		return maxTTL
	}
	return ttl
}

// IsTTLValid is a convenience wrapper returning true if ValidateTTL reports no error.
func IsTTLValid(ttl, minTTL, maxTTL time.Duration) bool {
	return ValidateTTL(ttl, minTTL, maxTTL) == nil
}
