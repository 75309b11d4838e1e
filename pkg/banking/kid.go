package banking

import (
	"noid/pkg/checksum"
	dErrors "noid/pkg/domain-errors"
	"noid/pkg/stringnumber"
)

// KindKIDNumber tags numbers validated as KID numbers.
const KindKIDNumber stringnumber.Kind = "kid"

const (
	kidMinLength = 2
	kidMaxLength = 25
)

// KIDNumber is a validated KID (customer reference) number: 2 to 25 digits
// whose last digit is a mod10 or mod11 checksum of the rest.
type KIDNumber struct {
	stringnumber.Number
}

// KIDOutcomes holds the result of each checksum scheme for a KID number.
// Issuers may use either scheme, so a number is valid if either matched.
type KIDOutcomes struct {
	Mod10 checksum.Outcome
	Mod11 checksum.Outcome
}

// Valid reports whether at least one scheme matched.
func (o KIDOutcomes) Valid() bool {
	return checksum.AnyMatched(o.Mod10, o.Mod11)
}

// MatchedSchemes lists the schemes whose checksum equals the trailing digit.
func (o KIDOutcomes) MatchedSchemes() []checksum.Scheme {
	var schemes []checksum.Scheme
	if o.Mod10 == checksum.Matched {
		schemes = append(schemes, checksum.SchemeMod10)
	}
	if o.Mod11 == checksum.Matched {
		schemes = append(schemes, checksum.SchemeMod11)
	}
	return schemes
}

// IsValidKIDNumber reports whether s is a valid KID number.
func IsValidKIDNumber(s string) bool {
	_, err := ParseKIDNumber(s)
	return err == nil
}

// ParseKIDNumber validates s and returns the KID number it represents.
//
// Errors: CodeInvalidFormat, CodeInvalidLength or CodeInvalidChecksum.
func ParseKIDNumber(s string) (KIDNumber, error) {
	if err := ValidateKIDSyntax(s); err != nil {
		return KIDNumber{}, err
	}
	if err := ValidateKIDChecksum(s); err != nil {
		return KIDNumber{}, err
	}
	return KIDNumber{stringnumber.New(KindKIDNumber, s)}, nil
}

// ValidateKIDSyntax checks that s is 2 to 25 digits.
func ValidateKIDSyntax(s string) error {
	if err := checksum.ValidateAllDigits(s); err != nil {
		return err
	}
	if err := checksum.ValidateLengthInRange(s, kidMinLength, kidMaxLength); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidLength, "a KID number is between 2 and 25 digits")
	}
	return nil
}

// ValidateKIDChecksum accepts s if its mod10 or its mod11 checksum matches the
// last digit. A mod11 dead end counts as a non-match for that scheme only.
func ValidateKIDChecksum(s string) error {
	outcomes, err := KIDChecksumOutcomes(s)
	if err != nil {
		return err
	}
	if !outcomes.Valid() {
		return dErrors.New(dErrors.CodeInvalidChecksum, "invalid checksum")
	}
	return nil
}

// KIDChecksumOutcomes evaluates both schemes against s without deciding
// validity.
func KIDChecksumOutcomes(s string) (KIDOutcomes, error) {
	n := stringnumber.New(KindKIDNumber, s)
	mod10, err := checksum.Verify(checksum.SchemeMod10, n)
	if err != nil {
		return KIDOutcomes{}, err
	}
	mod11, err := checksum.Verify(checksum.SchemeMod11, n)
	if err != nil {
		return KIDOutcomes{}, err
	}
	return KIDOutcomes{Mod10: mod10, Mod11: mod11}, nil
}
