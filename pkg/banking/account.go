// Package banking validates and decomposes Norwegian bank account numbers and
// KID (customer reference) numbers.
package banking

import (
	"strconv"
	"strings"

	"noid/pkg/checksum"
	dErrors "noid/pkg/domain-errors"
	"noid/pkg/stringnumber"
)

// KindAccountNumber tags numbers validated as bank account numbers.
const KindAccountNumber stringnumber.Kind = "bank_account"

const (
	accountNumberLength  = 11
	accountTypeLength    = 2
	registerNumberLength = 4

	notAllowedAsLeading = "0000"
)

// AccountNumber is a validated 11-digit bank account number.
//
// Layout:
//
//	RRRR TT AAAA C
//	│    │  │    └─ checksum digit [10]
//	│    └──┴────── account [4:10), account type [4:6)
//	└────────────── register number [0:4)
type AccountNumber struct {
	stringnumber.Number
}

// RegisterNumber returns the four digits identifying the issuing bank.
func (a AccountNumber) RegisterNumber() string {
	return a.Slice(0, 4)
}

// AccountType returns the two digits after the register number.
func (a AccountNumber) AccountType() string {
	return a.Slice(4, 6)
}

// Account returns the six digits after the register number. It overlaps
// AccountType.
func (a AccountNumber) Account() string {
	return a.Slice(4, 10)
}

// GroupedValue formats the number as register.type.rest, e.g. 9710.45.12341.
func (a AccountNumber) GroupedValue() string {
	if a.Len() != accountNumberLength {
		return a.Value()
	}
	return a.RegisterNumber() + "." + a.AccountType() + "." + a.Slice(6, accountNumberLength)
}

// IsValidAccountNumber reports whether s is a syntactically valid account
// number with a correct checksum. Use ParseAccountNumber to learn why a value
// is rejected.
func IsValidAccountNumber(s string) bool {
	_, err := ParseAccountNumber(s)
	return err == nil
}

// ParseAccountNumber validates s and returns the account number it represents.
//
// Errors: CodeLeadingZeros, CodeInvalidFormat, CodeInvalidChecksum, or
// CodeNoValidChecksum when no final digit could make the prefix valid.
func ParseAccountNumber(s string) (AccountNumber, error) {
	if err := ValidateAccountNumberSyntax(s); err != nil {
		return AccountNumber{}, err
	}
	if err := ValidateAccountNumberChecksum(s); err != nil {
		return AccountNumber{}, err
	}
	return AccountNumber{stringnumber.New(KindAccountNumber, s)}, nil
}

// ForceValidAccountNumber validates the syntax of s and, if the checksum
// digit is wrong, replaces it with the correct one.
//
// Some 10-digit prefixes have no satisfying checksum digit at all; for those
// it fails with CodeNoValidChecksum whatever the final digit of s is.
func ForceValidAccountNumber(s string) (AccountNumber, error) {
	if err := ValidateAccountNumberSyntax(s); err != nil {
		return AccountNumber{}, err
	}
	err := ValidateAccountNumberChecksum(s)
	switch {
	case err == nil:
		return AccountNumber{stringnumber.New(KindAccountNumber, s)}, nil
	case !dErrors.HasCode(err, dErrors.CodeInvalidChecksum):
		return AccountNumber{}, err
	}

	digit, err := accountChecksum(s)
	if err != nil {
		return AccountNumber{}, err
	}
	corrected := s[:accountNumberLength-1] + strconv.Itoa(digit)
	return AccountNumber{stringnumber.New(KindAccountNumber, corrected)}, nil
}

// ValidateAccountNumberSyntax checks for exactly 11 digits not starting with
// four zeros.
func ValidateAccountNumberSyntax(s string) error {
	if strings.HasPrefix(s, notAllowedAsLeading) {
		return dErrors.New(dErrors.CodeLeadingZeros, "too many leading zeros")
	}
	return checksum.ValidateExactLength(s, accountNumberLength)
}

// ValidateAccountNumberChecksum compares the mod11 checksum of the first ten
// digits with the eleventh. The caller is expected to have checked syntax.
func ValidateAccountNumberChecksum(s string) error {
	want, err := accountChecksum(s)
	if err != nil {
		return err
	}
	got, err := stringnumber.New(KindAccountNumber, s).ChecksumDigit()
	if err != nil {
		return err
	}
	if got != want {
		return dErrors.New(dErrors.CodeInvalidChecksum, "invalid checksum")
	}
	return nil
}

// ValidateAccountTypeSyntax checks that s is exactly two digits.
func ValidateAccountTypeSyntax(s string) error {
	return checksum.ValidateExactLength(s, accountTypeLength)
}

// ValidateRegisterNumberSyntax checks that s is exactly four digits.
func ValidateRegisterNumberSyntax(s string) error {
	return checksum.ValidateExactLength(s, registerNumberLength)
}

func accountChecksum(s string) (int, error) {
	n := stringnumber.New(KindAccountNumber, s)
	return checksum.Mod11(checksum.Mod11Weights(accountNumberLength), n)
}
