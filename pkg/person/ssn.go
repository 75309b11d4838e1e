// Package person decomposes Norwegian national identity numbers
// (fødselsnummer and D-numbers).
//
// Only decoding is provided. There is no checksum verification for this
// identifier: ParseSocialSecurityNumber checks syntax and nothing else.
package person

import (
	"strconv"

	"noid/pkg/checksum"
	"noid/pkg/stringnumber"
)

// KindSocialSecurityNumber tags numbers parsed as national identity numbers.
const KindSocialSecurityNumber stringnumber.Kind = "ssn"

const ssnLength = 11

// SocialSecurityNumber is an 11-digit national identity number.
//
// Layout:
//
//	DD MM YY III C1 C2
//	│  │  │  │   └──┴─ checksum digits [9], [10]
//	│  │  │  └──────── individual number [6:9); gender digit is [8]
//	│  │  └─────────── two-digit birth year [4:6)
//	│  └────────────── month [2:4)
//	└───────────────── day [0:2), offset by 40 for D-numbers
type SocialSecurityNumber struct {
	stringnumber.Number
}

// ParseSocialSecurityNumber checks that s is exactly 11 digits.
func ParseSocialSecurityNumber(s string) (SocialSecurityNumber, error) {
	if err := checksum.ValidateExactLength(s, ssnLength); err != nil {
		return SocialSecurityNumber{}, err
	}
	return SocialSecurityNumber{stringnumber.New(KindSocialSecurityNumber, s)}, nil
}

// DayAndMonth returns the first four digits with the D-number offset removed.
func (n SocialSecurityNumber) DayAndMonth() string {
	return ParseDNumber(n.Slice(0, 4))
}

// DayInMonth returns the day of birth with the D-number offset removed.
func (n SocialSecurityNumber) DayInMonth() string {
	return ParseDNumber(n.Slice(0, 2))
}

// Month returns the month of birth. The D-number rule is applied to it as
// well, so a month field starting with 4-7 is shifted the same way a day
// would be.
func (n SocialSecurityNumber) Month() string {
	return ParseDNumber(n.Slice(2, 4))
}

// DateOfBirth returns DDMMYY with the D-number offset removed.
func (n SocialSecurityNumber) DateOfBirth() string {
	return ParseDNumber(n.Slice(0, 6))
}

// DigitBirthYear returns the two-digit birth year.
func (n SocialSecurityNumber) DigitBirthYear() string {
	return n.Slice(4, 6)
}

// PersonNumber returns the last five digits: individual number plus both
// checksum digits.
func (n SocialSecurityNumber) PersonNumber() string {
	return n.Slice(6, 11)
}

// IndividualNumber returns digits 7-9.
func (n SocialSecurityNumber) IndividualNumber() string {
	return n.Slice(6, 9)
}

// GenderDigit returns the ninth digit: odd for men, even for women.
func (n SocialSecurityNumber) GenderDigit() int {
	return n.Digit(8)
}

// ChecksumDigit1 returns the tenth digit.
func (n SocialSecurityNumber) ChecksumDigit1() int {
	return n.Digit(9)
}

// ChecksumDigit2 returns the eleventh digit.
func (n SocialSecurityNumber) ChecksumDigit2() int {
	return n.Digit(10)
}

func (n SocialSecurityNumber) IsMale() bool {
	return n.GenderDigit()%2 != 0
}

func (n SocialSecurityNumber) IsFemale() bool {
	return !n.IsMale()
}

// Sex returns Woman or Man; never Both.
func (n SocialSecurityNumber) Sex() Sex {
	if n.IsFemale() {
		return Woman
	}
	return Man
}

// Century resolves the birth century from the individual number and the
// two-digit year. Rules are tried in order and the first match wins:
//
//	individual 000-499              -> 19
//	individual 500-999, year 00-39  -> 20
//	individual 500-749, year 55-99  -> 18
//	individual 900-999, year 40-99  -> 19
//
// Anything else (e.g. individual 750-899 with year 40-99) is unresolved and
// ok is false.
func (n SocialSecurityNumber) Century() (century string, ok bool) {
	ind, err := strconv.Atoi(n.IndividualNumber())
	if err != nil {
		return "", false
	}
	year, err := strconv.Atoi(n.DigitBirthYear())
	if err != nil {
		return "", false
	}

	switch {
	case ind <= 499:
		return "19", true
	case ind >= 500 && year < 40:
		return "20", true
	case ind >= 500 && ind <= 749 && year > 54:
		return "18", true
	case ind >= 900 && year > 39:
		return "19", true
	}
	return "", false
}

// Year returns the four-digit birth year, or only the two-digit year when the
// century is unresolved.
func (n SocialSecurityNumber) Year() string {
	century, _ := n.Century()
	return century + n.DigitBirthYear()
}

// IsDNumber reports whether the first digit of s is 4, 5, 6 or 7.
func IsDNumber(s string) bool {
	if s == "" {
		return false
	}
	first := s[0]
	return first > '3' && first < '8'
}

// ParseDNumber removes the D-number offset by subtracting 4 from the first
// digit. Anything that is not a D-number is returned unchanged, so the
// function is idempotent.
func ParseDNumber(s string) string {
	if !IsDNumber(s) {
		return s
	}
	return string([]byte{s[0] - 4}) + s[1:]
}
