package domain

import dErrors "noid/pkg/domain-errors"

// APIVersion is the version segment of a route, e.g. "v1".
type APIVersion string

const (
	APIVersionV1 APIVersion = "v1"
)

// versionOrder ranks versions; higher is newer.
var versionOrder = map[APIVersion]int{
	APIVersionV1: 1,
}

// ParseAPIVersion validates and returns an APIVersion.
func ParseAPIVersion(s string) (APIVersion, error) {
	v := APIVersion(s)
	if _, ok := versionOrder[v]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown API version: "+s)
	}
	return v, nil
}

func (v APIVersion) String() string {
	return string(v)
}

// IsNil returns true if the API version is empty.
func (v APIVersion) IsNil() bool {
	return v == ""
}

// IsAtLeast returns true if this version is >= other. Unknown versions rank
// below every known version.
func (v APIVersion) IsAtLeast(other APIVersion) bool {
	thisOrder, thisOK := versionOrder[v]
	otherOrder, otherOK := versionOrder[other]
	if !thisOK {
		return false
	}
	if !otherOK {
		return true
	}
	return thisOrder >= otherOrder
}

// SupportedVersions returns all currently supported API versions.
func SupportedVersions() []APIVersion {
	return []APIVersion{APIVersionV1}
}

// DefaultVersion returns the version served when a client does not ask for one.
func DefaultVersion() APIVersion {
	return APIVersionV1
}
