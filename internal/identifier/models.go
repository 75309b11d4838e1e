package identifier

import (
	"errors"

	"noid/pkg/banking"
	"noid/pkg/checksum"
	id "noid/pkg/domain"
	dErrors "noid/pkg/domain-errors"
	"noid/pkg/person"
)

// Result is the decomposition of one identifier. Exactly one of the detail
// fields is set when Valid is true; none are set otherwise.
type Result struct {
	Kind  id.IdentifierKind
	Value string
	Valid bool

	// ErrorCode and ErrorMessage describe why the value was rejected. They
	// are only filled for batch items; single validations return the error.
	ErrorCode    dErrors.Code
	ErrorMessage string

	Account *AccountDetails
	KID     *KIDDetails
	SSN     *SSNDetails
}

// AccountDetails are the fields of a bank account number.
type AccountDetails struct {
	RegisterNumber string
	AccountType    string
	Account        string
	ChecksumDigit  int
	Grouped        string
}

// KIDDetails records which checksum schemes a KID number satisfies.
type KIDDetails struct {
	Length         int
	Mod10          checksum.Outcome
	Mod11          checksum.Outcome
	MatchedSchemes []checksum.Scheme
}

// SSNDetails are the fields of a social security number. Century and Year are
// empty when the century cannot be resolved.
type SSNDetails struct {
	DateOfBirth      string
	Day              string
	Month            string
	BirthYear        string
	Century          string
	Year             string
	IndividualNumber string
	PersonNumber     string
	Sex              person.Sex
	DNumber          bool
}

// BatchItem is one entry of a batch validation.
type BatchItem struct {
	Kind  id.IdentifierKind
	Value string
}

// GenerateRequest asks for Count valid account numbers. At most one of
// AccountType and RegisterNumber may be set.
type GenerateRequest struct {
	Count          int
	AccountType    string
	RegisterNumber string
}

func accountResult(acc banking.AccountNumber) *Result {
	digit, _ := acc.ChecksumDigit()
	return &Result{
		Kind:  id.IdentifierKindBankAccount,
		Value: acc.Value(),
		Valid: true,
		Account: &AccountDetails{
			RegisterNumber: acc.RegisterNumber(),
			AccountType:    acc.AccountType(),
			Account:        acc.Account(),
			ChecksumDigit:  digit,
			Grouped:        acc.GroupedValue(),
		},
	}
}

func kidResult(kid banking.KIDNumber, outcomes banking.KIDOutcomes) *Result {
	return &Result{
		Kind:  id.IdentifierKindKID,
		Value: kid.Value(),
		Valid: true,
		KID: &KIDDetails{
			Length:         kid.Len(),
			Mod10:          outcomes.Mod10,
			Mod11:          outcomes.Mod11,
			MatchedSchemes: outcomes.MatchedSchemes(),
		},
	}
}

func ssnResult(ssn person.SocialSecurityNumber) *Result {
	century, _ := ssn.Century()
	details := &SSNDetails{
		DateOfBirth:      ssn.DateOfBirth(),
		Day:              ssn.DayInMonth(),
		Month:            ssn.Month(),
		BirthYear:        ssn.DigitBirthYear(),
		Century:          century,
		IndividualNumber: ssn.IndividualNumber(),
		PersonNumber:     ssn.PersonNumber(),
		Sex:              ssn.Sex(),
		DNumber:          person.IsDNumber(ssn.Value()),
	}
	if century != "" {
		details.Year = ssn.Year()
	}
	return &Result{
		Kind:  id.IdentifierKindSocialSecurityNumber,
		Value: ssn.Value(),
		Valid: true,
		SSN:   details,
	}
}

// rejected captures a domain failure as a batch item result.
func rejected(item BatchItem, err error) *Result {
	r := &Result{
		Kind:      item.Kind,
		Value:     item.Value,
		ErrorCode: dErrors.CodeOf(err),
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		r.ErrorMessage = de.Message
	}
	return r
}
