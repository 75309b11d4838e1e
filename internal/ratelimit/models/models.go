package models

import (
	"time"

	dErrors "noid/pkg/domain-errors"
)

// EndpointClass categorizes endpoints for differentiated rate limiting.
type EndpointClass string

const (
	// ClassValidate: checksum validation and force-checksum endpoints.
	ClassValidate EndpointClass = "validate"
	// ClassGenerate: test-data generation, which is more expensive per request.
	ClassGenerate EndpointClass = "generate"
)

// ParseEndpointClass creates an EndpointClass from a string, validating it.
func ParseEndpointClass(s string) (EndpointClass, error) {
	c := EndpointClass(s)
	if !c.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid endpoint class: must be 'validate' or 'generate'")
	}
	return c, nil
}

// IsValid checks if the endpoint class is one of the supported enum values.
func (c EndpointClass) IsValid() bool {
	switch c {
	case ClassValidate, ClassGenerate:
		return true
	}
	return false
}

func (c EndpointClass) String() string {
	return string(c)
}

// Limit is the number of requests allowed per window for one class.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}
