package person

import (
	dErrors "noid/pkg/domain-errors"
)

// Sex is the sex encoded in, or queried against, a person's identity number.
type Sex int

const (
	Man Sex = iota
	Woman
	Both
)

var sexNames = map[Sex]string{
	Man:   "man",
	Woman: "woman",
	Both:  "both",
}

// ParseSex constructs a Sex from its lowercase name.
func ParseSex(s string) (Sex, error) {
	for sex, name := range sexNames {
		if name == s {
			return sex, nil
		}
	}
	return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid sex: must be 'man', 'woman' or 'both'")
}

// IsWoman returns true for Woman.
func (s Sex) IsWoman() bool {
	return s == Woman
}

// IsBoth returns true for Both.
func (s Sex) IsBoth() bool {
	return s == Both
}

// Toggle maps Woman to Man and everything else, Both included, to Woman.
// The mapping is not reversible for Both.
func (s Sex) Toggle() Sex {
	if s.IsWoman() {
		return Man
	}
	return Woman
}

func (s Sex) String() string {
	if name, ok := sexNames[s]; ok {
		return name
	}
	return "unknown"
}
