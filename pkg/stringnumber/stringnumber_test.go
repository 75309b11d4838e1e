package stringnumber_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "noid/pkg/domain-errors"
	"noid/pkg/stringnumber"
)

const (
	kindA stringnumber.Kind = "a"
	kindB stringnumber.Kind = "b"
)

type NumberSuite struct {
	suite.Suite
}

func TestNumberSuite(t *testing.T) {
	suite.Run(t, new(NumberSuite))
}

func (s *NumberSuite) TestDigitAt() {
	n := stringnumber.New(kindA, "9710")

	s.Run("returns digit values", func() {
		for i, want := range []int{9, 7, 1, 0} {
			got, err := n.DigitAt(i)
			s.Require().NoError(err)
			s.Equal(want, got)
		}
	})

	s.Run("rejects out of range positions", func() {
		_, err := n.DigitAt(4)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidFormat))

		_, err = n.DigitAt(-1)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidFormat))
	})

	s.Run("rejects non-digit characters", func() {
		_, err := stringnumber.New(kindA, "12a4").DigitAt(2)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidFormat))
	})
}

func (s *NumberSuite) TestChecksumDigit() {
	s.Run("is the last digit", func() {
		d, err := stringnumber.New(kindA, "97104512341").ChecksumDigit()
		s.Require().NoError(err)
		s.Equal(1, d)
	})

	s.Run("empty number has none", func() {
		_, err := stringnumber.Number{}.ChecksumDigit()
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidFormat))
	})
}

func (s *NumberSuite) TestEquality() {
	s.Run("same kind and value are equal", func() {
		s.True(stringnumber.New(kindA, "2345").Equal(stringnumber.New(kindA, "2345")))
	})

	s.Run("different kinds are never equal", func() {
		s.False(stringnumber.New(kindA, "2345").Equal(stringnumber.New(kindB, "2345")))
	})

	s.Run("different values are not equal", func() {
		s.False(stringnumber.New(kindA, "2345").Equal(stringnumber.New(kindA, "2346")))
	})

	s.Run("usable as map key", func() {
		seen := map[stringnumber.Number]int{}
		seen[stringnumber.New(kindA, "2345")]++
		seen[stringnumber.New(kindA, "2345")]++
		seen[stringnumber.New(kindB, "2345")]++
		s.Len(seen, 2)
		s.Equal(2, seen[stringnumber.New(kindA, "2345")])
	})
}

func (s *NumberSuite) TestSlice() {
	n := stringnumber.New(kindA, "01010560000")
	s.Equal("0101", n.Slice(0, 4))
	s.Equal("60000", n.Slice(6, 11))
	s.Equal("", stringnumber.Number{}.Slice(0, 4))
	s.Equal("000", n.Slice(8, 20))
	s.Equal(0, stringnumber.Number{}.Digit(3))
	s.True(stringnumber.Number{}.IsZero())
	s.Equal(11, n.Len())
	s.Equal("01010560000", n.String())
}
