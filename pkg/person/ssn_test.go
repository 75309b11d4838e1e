package person_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "noid/pkg/domain-errors"
	"noid/pkg/person"
)

type SocialSecurityNumberSuite struct {
	suite.Suite
}

func TestSocialSecurityNumberSuite(t *testing.T) {
	suite.Run(t, new(SocialSecurityNumberSuite))
}

func (s *SocialSecurityNumberSuite) mustParse(value string) person.SocialSecurityNumber {
	ssn, err := person.ParseSocialSecurityNumber(value)
	s.Require().NoError(err)
	return ssn
}

func (s *SocialSecurityNumberSuite) TestParse() {
	s.Run("accepts eleven digits", func() {
		ssn := s.mustParse("01010560000")
		s.Equal("01010560000", ssn.String())
		s.Equal(person.KindSocialSecurityNumber, ssn.Kind())
	})

	s.Run("rejects anything else", func() {
		for _, bad := range []string{"", "0101056000", "010105600001", "0101056000a", "010105 60000"} {
			_, err := person.ParseSocialSecurityNumber(bad)
			s.Require().Error(err, "input %q", bad)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidFormat), "input %q", bad)
		}
	})
}

func (s *SocialSecurityNumberSuite) TestFields() {
	ssn := s.mustParse("01010560000")

	s.Equal("01", ssn.DayInMonth())
	s.Equal("01", ssn.Month())
	s.Equal("0101", ssn.DayAndMonth())
	s.Equal("010105", ssn.DateOfBirth())
	s.Equal("05", ssn.DigitBirthYear())
	s.Equal("600", ssn.IndividualNumber())
	s.Equal("60000", ssn.PersonNumber())
	s.Equal(0, ssn.GenderDigit())
	s.Equal(0, ssn.ChecksumDigit1())
	s.Equal(0, ssn.ChecksumDigit2())
	s.True(ssn.IsFemale())
	s.False(ssn.IsMale())
	s.Equal(person.Woman, ssn.Sex())

	century, ok := ssn.Century()
	s.True(ok)
	s.Equal("20", century)
	s.Equal("2005", ssn.Year())
}

func (s *SocialSecurityNumberSuite) TestGender() {
	male := s.mustParse("01010512345")
	s.Equal(3, male.GenderDigit())
	s.True(male.IsMale())
	s.Equal(person.Man, male.Sex())
	s.Equal(4, male.ChecksumDigit1())
	s.Equal(5, male.ChecksumDigit2())
}

func (s *SocialSecurityNumberSuite) TestDNumber() {
	s.Run("day offset is removed", func() {
		ssn := s.mustParse("41010512345")
		s.Equal("01", ssn.DayInMonth())
		s.Equal("0101", ssn.DayAndMonth())
		s.Equal("010105", ssn.DateOfBirth())
	})

	s.Run("month is shifted by the same rule", func() {
		ssn := s.mustParse("01510560000")
		s.Equal("11", ssn.Month())
		s.Equal("0151", ssn.DayAndMonth(), "composite only looks at its own first digit")
	})

	s.Run("detection covers 4 through 7 only", func() {
		for _, first := range "0123456789" {
			want := first >= '4' && first <= '7'
			s.Equal(want, person.IsDNumber(string(first)+"1"), "first digit %c", first)
		}
		s.False(person.IsDNumber(""))
	})

	s.Run("non D-numbers are unchanged", func() {
		for _, v := range []string{"01", "11", "21", "31", "81", "91", "", "x1"} {
			s.Equal(v, person.ParseDNumber(v))
		}
	})

	s.Run("normalizing twice is a fixed point", func() {
		for _, v := range []string{"41", "52", "63", "71", "010105", "710105"} {
			once := person.ParseDNumber(v)
			s.Equal(once, person.ParseDNumber(once), "input %s", v)
			s.False(person.IsDNumber(once))
		}
	})
}

func (s *SocialSecurityNumberSuite) TestCentury() {
	tests := []struct {
		name       string
		year       string
		individual string
		want       string
		resolved   bool
	}{
		{"low individual", "99", "499", "19", true},
		{"low individual early year", "05", "000", "19", true},
		{"high individual early year", "39", "500", "20", true},
		{"very high individual early year", "10", "950", "20", true},
		{"1800s range", "55", "749", "18", true},
		{"1800s range upper year", "99", "500", "18", true},
		{"late 1900s", "40", "900", "19", true},
		{"between 1800s and 2000s years", "54", "749", "", false},
		{"individual 750-899 late year", "60", "750", "", false},
		{"individual 899", "50", "899", "", false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			ssn := s.mustParse("0101" + tt.year + tt.individual + "00")
			century, ok := ssn.Century()
			s.Equal(tt.resolved, ok)
			s.Equal(tt.want, century)
			s.Equal(tt.want+tt.year, ssn.Year())
		})
	}
}

func (s *SocialSecurityNumberSuite) TestZeroValue() {
	var ssn person.SocialSecurityNumber
	century, ok := ssn.Century()
	s.False(ok)
	s.Empty(century)
	s.Empty(ssn.DayInMonth())
	s.Equal(0, ssn.GenderDigit())
}
