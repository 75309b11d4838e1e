// Package stringnumber provides the value type shared by every numeric
// identifier: a string of decimal digits tagged with the identifier kind it
// was validated as.
//
// Invariants (for values returned by a validator):
//   - Every byte of the value is an ASCII digit
//   - The value never changes after construction
//
// Two numbers are equal only when both kind and value match, so an account
// number and a KID number spelling the same digits are distinct. Number is
// comparable and can be used as a map key.
package stringnumber

import (
	"strconv"

	dErrors "noid/pkg/domain-errors"
)

// Kind names the concrete identifier variant a Number represents.
type Kind string

// Number is an immutable digit string.
type Number struct {
	kind  Kind
	value string
}

// New wraps value without validating it. Validators call this after their
// syntax checks; the checksum engine also uses it for intermediate values.
func New(kind Kind, value string) Number {
	return Number{kind: kind, value: value}
}

// Kind returns the identifier variant.
func (n Number) Kind() Kind {
	return n.kind
}

// Value returns the underlying digit string.
func (n Number) Value() string {
	return n.value
}

// String returns the underlying digit string.
func (n Number) String() string {
	return n.value
}

// Len returns the number of digits.
func (n Number) Len() int {
	return len(n.value)
}

// IsZero returns true if this is the zero value.
func (n Number) IsZero() bool {
	return n.kind == "" && n.value == ""
}

// Equal reports whether both numbers are the same variant with the same digits.
func (n Number) Equal(other Number) bool {
	return n == other
}

// DigitAt returns the integer value of the digit at position i.
func (n Number) DigitAt(i int) (int, error) {
	if i < 0 || i >= len(n.value) {
		return 0, dErrors.New(dErrors.CodeInvalidFormat, "digit position "+strconv.Itoa(i)+" out of range")
	}
	c := n.value[i]
	if c < '0' || c > '9' {
		return 0, dErrors.New(dErrors.CodeInvalidFormat, "only digits are allowed")
	}
	return int(c - '0'), nil
}

// ChecksumDigit returns the last digit, which every identifier uses as its
// (final) checksum digit.
func (n Number) ChecksumDigit() (int, error) {
	return n.DigitAt(len(n.value) - 1)
}

// Slice returns value[from:to]. Bounds outside the value are clamped, so
// accessors on a zero Number return "" instead of panicking.
func (n Number) Slice(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(n.value) {
		to = len(n.value)
	}
	if from >= to {
		return ""
	}
	return n.value[from:to]
}

// Digit is DigitAt for values whose syntax is already validated. It returns 0
// for positions that do not hold a digit.
func (n Number) Digit(i int) int {
	d, err := n.DigitAt(i)
	if err != nil {
		return 0
	}
	return d
}
