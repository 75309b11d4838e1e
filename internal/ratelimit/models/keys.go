package models

import "strings"

// KeyPrefix namespaces bucket keys by the kind of identifier they count.
type KeyPrefix string

const KeyPrefixIP KeyPrefix = "ip"

// RateLimitKey addresses one sliding-window bucket.
type RateLimitKey struct {
	prefix     KeyPrefix
	identifier string
	class      EndpointClass
}

// NewRateLimitKey builds a key, sanitizing the caller-controlled identifier.
func NewRateLimitKey(prefix KeyPrefix, identifier string, class EndpointClass) RateLimitKey {
	return RateLimitKey{
		prefix:     prefix,
		identifier: SanitizeKeySegment(identifier),
		class:      class,
	}
}

// String renders the key as "prefix:identifier:class".
func (k RateLimitKey) String() string {
	return string(k.prefix) + ":" + k.identifier + ":" + string(k.class)
}

// SanitizeKeySegment escapes delimiter characters in rate limit key segments
// so an identifier containing ':' cannot address another bucket. IPv6
// addresses are the common case here.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
