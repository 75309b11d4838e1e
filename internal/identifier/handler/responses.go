package handler

import (
	"time"

	"noid/internal/identifier"
)

// ValidateResponse is the HTTP response for one validated identifier.
type ValidateResponse struct {
	Kind    string           `json:"kind"`
	Value   string           `json:"value"`
	Valid   bool             `json:"valid"`
	Error   string           `json:"error,omitempty"`
	Message string           `json:"message,omitempty"`
	Account *AccountResponse `json:"bank_account,omitempty"`
	KID     *KIDResponse     `json:"kid,omitempty"`
	SSN     *SSNResponse     `json:"ssn,omitempty"`
}

type AccountResponse struct {
	RegisterNumber string `json:"register_number"`
	AccountType    string `json:"account_type"`
	Account        string `json:"account"`
	ChecksumDigit  int    `json:"checksum_digit"`
	Grouped        string `json:"grouped"`
}

type KIDResponse struct {
	Length         int      `json:"length"`
	Mod10          string   `json:"mod10"`
	Mod11          string   `json:"mod11"`
	MatchedSchemes []string `json:"matched_schemes"`
}

type SSNResponse struct {
	DateOfBirth      string `json:"date_of_birth"`
	Day              string `json:"day"`
	Month            string `json:"month"`
	BirthYear        string `json:"birth_year"`
	Century          string `json:"century,omitempty"`
	Year             string `json:"year,omitempty"`
	IndividualNumber string `json:"individual_number"`
	PersonNumber     string `json:"person_number"`
	Sex              string `json:"sex"`
	DNumber          bool   `json:"d_number"`
}

// BatchValidateResponse is the HTTP response for POST /identifiers/validate/batch.
type BatchValidateResponse struct {
	BatchID     string              `json:"batch_id"`
	Total       int                 `json:"total"`
	Valid       int                 `json:"valid"`
	Results     []*ValidateResponse `json:"results"`
	ValidatedAt time.Time           `json:"validated_at"`
}

// GenerateResponse is the HTTP response for POST /bank-accounts/generate.
type GenerateResponse struct {
	AccountNumbers []string `json:"account_numbers"`
}

// FromResult converts a service Result to an HTTP response.
func FromResult(result *identifier.Result) *ValidateResponse {
	resp := &ValidateResponse{
		Kind:    result.Kind.String(),
		Value:   result.Value,
		Valid:   result.Valid,
		Error:   string(result.ErrorCode),
		Message: result.ErrorMessage,
	}
	if a := result.Account; a != nil {
		resp.Account = &AccountResponse{
			RegisterNumber: a.RegisterNumber,
			AccountType:    a.AccountType,
			Account:        a.Account,
			ChecksumDigit:  a.ChecksumDigit,
			Grouped:        a.Grouped,
		}
	}
	if k := result.KID; k != nil {
		schemes := make([]string, len(k.MatchedSchemes))
		for i, sc := range k.MatchedSchemes {
			schemes[i] = string(sc)
		}
		resp.KID = &KIDResponse{
			Length:         k.Length,
			Mod10:          string(k.Mod10),
			Mod11:          string(k.Mod11),
			MatchedSchemes: schemes,
		}
	}
	if s := result.SSN; s != nil {
		resp.SSN = &SSNResponse{
			DateOfBirth:      s.DateOfBirth,
			Day:              s.Day,
			Month:            s.Month,
			BirthYear:        s.BirthYear,
			Century:          s.Century,
			Year:             s.Year,
			IndividualNumber: s.IndividualNumber,
			PersonNumber:     s.PersonNumber,
			Sex:              s.Sex.String(),
			DNumber:          s.DNumber,
		}
	}
	return resp
}

// FromBatch converts batch results to an HTTP response.
func FromBatch(batchID string, results []*identifier.Result, validatedAt time.Time) *BatchValidateResponse {
	resp := &BatchValidateResponse{
		BatchID:     batchID,
		Total:       len(results),
		Results:     make([]*ValidateResponse, len(results)),
		ValidatedAt: validatedAt,
	}
	for i, r := range results {
		resp.Results[i] = FromResult(r)
		if r.Valid {
			resp.Valid++
		}
	}
	return resp
}
