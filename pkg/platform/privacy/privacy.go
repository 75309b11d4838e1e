// Package privacy reduces personal data to forms that are safe to log.
package privacy

import (
	"net"
	"strings"
)

// AnonymizeIP zeroes the host part of an address: the last octet for IPv4,
// everything after the first 48 bits for IPv6. Unparseable input yields "".
func AnonymizeIP(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if v4 := parsed.To4(); v4 != nil {
		return v4.Mask(net.CIDRMask(24, 32)).String()
	}
	return parsed.Mask(net.CIDRMask(48, 128)).String()
}

// MaskDigits keeps only the last two characters of an identifier, e.g.
// "97104512341" becomes "*********41".
func MaskDigits(s string) string {
	if len(s) <= 2 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-2) + s[len(s)-2:]
}
