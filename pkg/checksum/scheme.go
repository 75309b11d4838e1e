package checksum

import (
	dErrors "noid/pkg/domain-errors"
)

// Scheme selects a checksum algorithm together with its weight generator.
type Scheme string

const (
	SchemeMod10 Scheme = "mod10"
	SchemeMod11 Scheme = "mod11"
)

// Outcome is the result of checking one scheme against a number's trailing
// digit.
type Outcome string

const (
	// Matched: the computed checksum equals the trailing digit.
	Matched Outcome = "matched"
	// Mismatched: the computed checksum differs from the trailing digit.
	Mismatched Outcome = "mismatched"
	// NotComputable: the scheme has no valid checksum for this prefix
	// (mod11 remainder 1).
	NotComputable Outcome = "not_computable"
)

// Compute returns the scheme's checksum digit for number, using weights sized
// to number's length.
func (s Scheme) Compute(number Digits) (int, error) {
	switch s {
	case SchemeMod10:
		return Mod10(Mod10Weights(number.Len()), number)
	case SchemeMod11:
		return Mod11(Mod11Weights(number.Len()), number)
	}
	return 0, dErrors.New(dErrors.CodeInternal, "unknown checksum scheme "+string(s))
}

// Verify compares the scheme's checksum with number's trailing digit.
// Errors are reserved for malformed input; the mod11 dead end is reported as
// NotComputable.
func Verify(s Scheme, number Digits) (Outcome, error) {
	want, err := s.Compute(number)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNoValidChecksum) {
			return NotComputable, nil
		}
		return "", err
	}
	got, err := number.DigitAt(number.Len() - 1)
	if err != nil {
		return "", err
	}
	if got != want {
		return Mismatched, nil
	}
	return Matched, nil
}

// AnyMatched reports whether at least one outcome is Matched.
func AnyMatched(outcomes ...Outcome) bool {
	for _, o := range outcomes {
		if o == Matched {
			return true
		}
	}
	return false
}
