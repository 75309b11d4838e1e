package domain

import dErrors "noid/pkg/domain-errors"

// IdentifierKind names the class of identifier a caller asks to validate.
// Invariant: the value must be one of the supported kinds.
//
// Usage: construct via ParseIdentifierKind at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type IdentifierKind string

// Supported identifier kinds. The values match the stringnumber.Kind tags of
// the corresponding core types.
const (
	IdentifierKindBankAccount          IdentifierKind = "bank_account"
	IdentifierKindKID                  IdentifierKind = "kid"
	IdentifierKindSocialSecurityNumber IdentifierKind = "ssn"
)

// validIdentifierKinds is the single source of truth for valid identifier kinds.
var validIdentifierKinds = map[IdentifierKind]bool{
	IdentifierKindBankAccount:          true,
	IdentifierKindKID:                  true,
	IdentifierKindSocialSecurityNumber: true,
}

// ParseIdentifierKind constructs an IdentifierKind from external input.
//
// Usage: call from handlers when parsing requests.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported; no
// other errors are expected.
func ParseIdentifierKind(s string) (IdentifierKind, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "kind cannot be empty")
	}
	k := IdentifierKind(s)
	if !k.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid kind: must be 'bank_account', 'kid' or 'ssn'")
	}
	return k, nil
}

// IsValid checks if the kind is one of the supported enum values.
func (k IdentifierKind) IsValid() bool {
	return validIdentifierKinds[k]
}

// String returns the string representation of the kind.
func (k IdentifierKind) String() string {
	return string(k)
}
