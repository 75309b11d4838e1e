package identifier

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"noid/internal/identifier/metrics"
	"noid/pkg/banking"
	"noid/pkg/checksum"
	id "noid/pkg/domain"
	dErrors "noid/pkg/domain-errors"
	"noid/pkg/person"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	metrics *metrics.Metrics
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithBatchLimits(5, 2),
		WithMaxGenerate(50),
		WithGeneratorSeed(7),
	)
}

func (s *ServiceSuite) TestValidateBankAccount() {
	s.Run("valid number is decomposed", func() {
		res, err := s.service.Validate(s.ctx, id.IdentifierKindBankAccount, "97104512341")
		s.Require().NoError(err)
		s.True(res.Valid)
		s.Require().NotNil(res.Account)
		s.Equal("9710", res.Account.RegisterNumber)
		s.Equal("45", res.Account.AccountType)
		s.Equal("451234", res.Account.Account)
		s.Equal(1, res.Account.ChecksumDigit)
		s.Equal("9710.45.12341", res.Account.Grouped)
		s.Nil(res.KID)
		s.Nil(res.SSN)
	})

	s.Run("rejections keep their code", func() {
		cases := map[string]dErrors.Code{
			"97104512340": dErrors.CodeInvalidChecksum,
			"00001234567": dErrors.CodeLeadingZeros,
			"9710451234":  dErrors.CodeInvalidFormat,
			"90000000000": dErrors.CodeNoValidChecksum,
		}
		for value, code := range cases {
			_, err := s.service.Validate(s.ctx, id.IdentifierKindBankAccount, value)
			s.Require().Error(err, value)
			s.Equal(code, dErrors.CodeOf(err), value)
		}
	})

	s.Equal(1.0, testutil.ToFloat64(s.metrics.Validations.WithLabelValues("bank_account", "valid")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Validations.WithLabelValues("bank_account", "invalid_checksum")))
}

func (s *ServiceSuite) TestValidateKID() {
	s.Run("mod10 only", func() {
		res, err := s.service.Validate(s.ctx, id.IdentifierKindKID, "2345")
		s.Require().NoError(err)
		s.Require().NotNil(res.KID)
		s.Equal(4, res.KID.Length)
		s.Equal(checksum.Matched, res.KID.Mod10)
		s.Equal(checksum.Mismatched, res.KID.Mod11)
		s.Equal([]checksum.Scheme{checksum.SchemeMod10}, res.KID.MatchedSchemes)
	})

	s.Run("mod11 only", func() {
		res, err := s.service.Validate(s.ctx, id.IdentifierKindKID, "19")
		s.Require().NoError(err)
		s.Equal([]checksum.Scheme{checksum.SchemeMod11}, res.KID.MatchedSchemes)
	})

	s.Run("mod11 dead end does not block mod10", func() {
		res, err := s.service.Validate(s.ctx, id.IdentifierKindKID, "67")
		s.Require().NoError(err)
		s.Equal(checksum.NotComputable, res.KID.Mod11)
	})

	s.Run("rejections", func() {
		_, err := s.service.Validate(s.ctx, id.IdentifierKindKID, "1234")
		s.Equal(dErrors.CodeInvalidChecksum, dErrors.CodeOf(err))
		_, err = s.service.Validate(s.ctx, id.IdentifierKindKID, "1")
		s.Equal(dErrors.CodeInvalidLength, dErrors.CodeOf(err))
		_, err = s.service.Validate(s.ctx, id.IdentifierKindKID, "12a4")
		s.Equal(dErrors.CodeInvalidFormat, dErrors.CodeOf(err))
	})
}

func (s *ServiceSuite) TestValidateSocialSecurityNumber() {
	s.Run("twentieth century man", func() {
		res, err := s.service.Validate(s.ctx, id.IdentifierKindSocialSecurityNumber, "01017012345")
		s.Require().NoError(err)
		s.Require().NotNil(res.SSN)
		s.Equal("010170", res.SSN.DateOfBirth)
		s.Equal("19", res.SSN.Century)
		s.Equal("1970", res.SSN.Year)
		s.Equal("123", res.SSN.IndividualNumber)
		s.Equal("12345", res.SSN.PersonNumber)
		s.Equal(person.Man, res.SSN.Sex)
		s.False(res.SSN.DNumber)
	})

	s.Run("D-number", func() {
		res, err := s.service.Validate(s.ctx, id.IdentifierKindSocialSecurityNumber, "41017012345")
		s.Require().NoError(err)
		s.True(res.SSN.DNumber)
		s.Equal("01", res.SSN.Day)
		s.Equal("010170", res.SSN.DateOfBirth)
	})

	s.Run("twenty-first century woman", func() {
		res, err := s.service.Validate(s.ctx, id.IdentifierKindSocialSecurityNumber, "01010550045")
		s.Require().NoError(err)
		s.Equal("2005", res.SSN.Year)
		s.Equal(person.Woman, res.SSN.Sex)
	})

	s.Run("unresolved century leaves year empty", func() {
		res, err := s.service.Validate(s.ctx, id.IdentifierKindSocialSecurityNumber, "01015080012")
		s.Require().NoError(err)
		s.Empty(res.SSN.Century)
		s.Empty(res.SSN.Year)
		s.Equal("50", res.SSN.BirthYear)
	})

	s.Run("wrong length", func() {
		_, err := s.service.Validate(s.ctx, id.IdentifierKindSocialSecurityNumber, "0101701234")
		s.Equal(dErrors.CodeInvalidFormat, dErrors.CodeOf(err))
	})
}

func (s *ServiceSuite) TestValidateUnknownKind() {
	_, err := s.service.Validate(s.ctx, id.IdentifierKind("iban"), "NO9386011117947")
	s.Require().Error(err)
	s.Equal(dErrors.CodeInvalidInput, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestValidateBatch() {
	s.Run("mixed items keep order and capture rejections", func() {
		items := []BatchItem{
			{Kind: id.IdentifierKindBankAccount, Value: "97104512341"},
			{Kind: id.IdentifierKindKID, Value: "1234"},
			{Kind: id.IdentifierKindSocialSecurityNumber, Value: "01017012345"},
			{Kind: id.IdentifierKindBankAccount, Value: "90000000000"},
			{Kind: id.IdentifierKindKID, Value: "2345"},
		}
		results, err := s.service.ValidateBatch(s.ctx, items)
		s.Require().NoError(err)
		s.Require().Len(results, len(items))

		for i, item := range items {
			s.Equal(item.Value, results[i].Value)
			s.Equal(item.Kind, results[i].Kind)
		}
		s.True(results[0].Valid)
		s.False(results[1].Valid)
		s.Equal(dErrors.CodeInvalidChecksum, results[1].ErrorCode)
		s.Equal("invalid checksum", results[1].ErrorMessage)
		s.True(results[2].Valid)
		s.Equal(dErrors.CodeNoValidChecksum, results[3].ErrorCode)
		s.True(results[4].Valid)
	})

	s.Run("empty batch", func() {
		_, err := s.service.ValidateBatch(s.ctx, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("oversized batch", func() {
		items := make([]BatchItem, 6)
		_, err := s.service.ValidateBatch(s.ctx, items)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("cancelled context aborts", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		_, err := s.service.ValidateBatch(ctx, []BatchItem{{Kind: id.IdentifierKindKID, Value: "2345"}})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

func (s *ServiceSuite) TestForceAccountNumber() {
	s.Run("corrects the checksum digit", func() {
		res, err := s.service.ForceAccountNumber(s.ctx, "97104512340")
		s.Require().NoError(err)
		s.Equal("97104512341", res.Value)
		s.True(banking.IsValidAccountNumber(res.Value))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.Forced))
	})

	s.Run("valid input is unchanged", func() {
		res, err := s.service.ForceAccountNumber(s.ctx, "97104512341")
		s.Require().NoError(err)
		s.Equal("97104512341", res.Value)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.Forced))
	})

	s.Run("no valid checksum", func() {
		_, err := s.service.ForceAccountNumber(s.ctx, "90000000005")
		s.Equal(dErrors.CodeNoValidChecksum, dErrors.CodeOf(err))
	})

	s.Run("syntax errors propagate", func() {
		_, err := s.service.ForceAccountNumber(s.ctx, "0000123456")
		s.Equal(dErrors.CodeLeadingZeros, dErrors.CodeOf(err))
		_, err = s.service.ForceAccountNumber(s.ctx, "971045123")
		s.Equal(dErrors.CodeInvalidFormat, dErrors.CodeOf(err))
	})
}

func (s *ServiceSuite) TestGenerateAccountNumbers() {
	s.Run("seeded sessions are reproducible", func() {
		first, err := s.service.GenerateAccountNumbers(s.ctx, GenerateRequest{Count: 10})
		s.Require().NoError(err)
		second, err := s.service.GenerateAccountNumbers(s.ctx, GenerateRequest{Count: 10})
		s.Require().NoError(err)
		s.Equal(first, second)
		for _, n := range first {
			s.True(banking.IsValidAccountNumber(n), n)
		}
	})

	s.Run("fixed account type", func() {
		numbers, err := s.service.GenerateAccountNumbers(s.ctx, GenerateRequest{Count: 5, AccountType: "45"})
		s.Require().NoError(err)
		for _, n := range numbers {
			s.Equal("45", n[4:6])
		}
	})

	s.Run("fixed register number", func() {
		numbers, err := s.service.GenerateAccountNumbers(s.ctx, GenerateRequest{Count: 5, RegisterNumber: "9710"})
		s.Require().NoError(err)
		for _, n := range numbers {
			s.Equal("9710", n[:4])
		}
	})

	s.Run("request validation", func() {
		_, err := s.service.GenerateAccountNumbers(s.ctx, GenerateRequest{Count: 0})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		_, err = s.service.GenerateAccountNumbers(s.ctx, GenerateRequest{Count: 51})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		_, err = s.service.GenerateAccountNumbers(s.ctx, GenerateRequest{Count: 1, AccountType: "45", RegisterNumber: "9710"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		_, err = s.service.GenerateAccountNumbers(s.ctx, GenerateRequest{Count: 1, AccountType: "4"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidFormat))
	})

	s.Run("unsatisfiable register number", func() {
		_, err := s.service.GenerateAccountNumbers(s.ctx, GenerateRequest{Count: 1, RegisterNumber: "0000"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
