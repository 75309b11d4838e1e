// Package checksum is the modular checksum engine shared by the identifier
// validators: weight generators, the mod10 and mod11 algorithms, and the
// generic digit/length syntax checks.
//
// Everything here is a pure function of its arguments.
package checksum

import (
	dErrors "noid/pkg/domain-errors"
)

var baseMod11Weights = [...]int{2, 3, 4, 5, 6, 7}

// Digits is the read access the engine needs from a number.
// stringnumber.Number implements it.
type Digits interface {
	DigitAt(i int) (int, error)
	Len() int
}

// ValidateAllDigits fails with CodeInvalidFormat if s is empty or contains
// anything other than ASCII digits.
func ValidateAllDigits(s string) error {
	if s == "" {
		return dErrors.New(dErrors.CodeInvalidFormat, "only digits are allowed: empty value")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return dErrors.New(dErrors.CodeInvalidFormat, "only digits are allowed")
		}
	}
	return nil
}

// ValidateExactLength fails with CodeInvalidFormat unless s is exactly n digits.
func ValidateExactLength(s string, n int) error {
	if len(s) != n {
		return dErrors.New(dErrors.CodeInvalidFormat, "only digits are allowed: wrong length")
	}
	return ValidateAllDigits(s)
}

// ValidateLengthInRange fails with CodeInvalidLength unless lo <= len(s) <= hi.
func ValidateLengthInRange(s string, lo, hi int) error {
	if len(s) < lo || len(s) > hi {
		return dErrors.New(dErrors.CodeInvalidLength, "length out of range")
	}
	return nil
}

// Mod10Weights returns the weights for a number of length n: n-1 entries
// alternating 2,1,2,1,... starting at 2.
func Mod10Weights(n int) []int {
	if n < 1 {
		return nil
	}
	weights := make([]int, n-1)
	for i := range weights {
		if i%2 == 0 {
			weights[i] = 2
		} else {
			weights[i] = 1
		}
	}
	return weights
}

// Mod11Weights returns the weights for a number of length n: n-1 entries
// cycling through 2,3,4,5,6,7.
func Mod11Weights(n int) []int {
	if n < 1 {
		return nil
	}
	weights := make([]int, n-1)
	for i := range weights {
		weights[i] = baseMod11Weights[i%len(baseMod11Weights)]
	}
	return weights
}

// WeightedSum multiplies weights[i] with the digit at len(weights)-1-i, so the
// first weight applies to the digit just before the checksum digit and the
// digits are read right to left. With fold set, two-digit products are
// reduced to their digit sum (product - 9).
func WeightedSum(weights []int, number Digits, fold bool) (int, error) {
	sum := 0
	for i, w := range weights {
		d, err := number.DigitAt(len(weights) - 1 - i)
		if err != nil {
			return 0, err
		}
		product := w * d
		if fold && product > 9 {
			product -= 9
		}
		sum += product
	}
	return sum, nil
}

// Mod10 computes the mod10 (Luhn style) checksum digit.
func Mod10(weights []int, number Digits) (int, error) {
	sum, err := WeightedSum(weights, number, true)
	if err != nil {
		return 0, err
	}
	c := sum % 10
	if c == 0 {
		return 0, nil
	}
	return 10 - c, nil
}

// Mod11 computes the mod11 checksum digit.
//
// A remainder of 1 would need the checksum "10", which is not a digit: no
// final digit can make the number valid. That dead end is reported as
// CodeNoValidChecksum so callers can tell it apart from a wrong digit.
func Mod11(weights []int, number Digits) (int, error) {
	sum, err := WeightedSum(weights, number, false)
	if err != nil {
		return 0, err
	}
	c := sum % 11
	if c == 1 {
		return 0, dErrors.New(dErrors.CodeNoValidChecksum, "no checksum digit satisfies the mod11 weighting")
	}
	if c == 0 {
		return 0, nil
	}
	return 11 - c, nil
}
