package handler

import (
	"strconv"
	"strings"

	"noid/internal/identifier"
	id "noid/pkg/domain"
	dErrors "noid/pkg/domain-errors"
)

// maxValueLength rejects absurd inputs before they reach the validators. The
// longest identifier is a 25-digit KID; grouped input may add separators.
const maxValueLength = 64

// ValidateRequest is the HTTP request body for POST /identifiers/validate.
type ValidateRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`

	parsedKind id.IdentifierKind
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ValidateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	kind, value, err := parseItem(r.Kind, r.Value, "")
	if err != nil {
		return err
	}
	r.parsedKind, r.Value = kind, value
	return nil
}

// ParsedKind returns the validated identifier kind.
func (r *ValidateRequest) ParsedKind() id.IdentifierKind {
	return r.parsedKind
}

// BatchValidateRequest is the HTTP request body for POST /identifiers/validate/batch.
type BatchValidateRequest struct {
	Items []ValidateRequest `json:"items"`
}

// Validate checks every item. The batch size limit is enforced by the service.
func (r *BatchValidateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Items) == 0 {
		return dErrors.New(dErrors.CodeValidation, "items is required")
	}
	for i := range r.Items {
		field := "items[" + strconv.Itoa(i) + "]."
		kind, value, err := parseItem(r.Items[i].Kind, r.Items[i].Value, field)
		if err != nil {
			return err
		}
		r.Items[i].parsedKind, r.Items[i].Value = kind, value
	}
	return nil
}

// ParsedItems returns the validated items in request order.
func (r *BatchValidateRequest) ParsedItems() []identifier.BatchItem {
	items := make([]identifier.BatchItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = identifier.BatchItem{Kind: it.parsedKind, Value: it.Value}
	}
	return items
}

// ForceChecksumRequest is the HTTP request body for POST /bank-accounts/force-checksum.
type ForceChecksumRequest struct {
	Value string `json:"value"`
}

func (r *ForceChecksumRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	value, err := parseValue(r.Value, "")
	if err != nil {
		return err
	}
	r.Value = value
	return nil
}

// GenerateRequest is the HTTP request body for POST /bank-accounts/generate.
type GenerateRequest struct {
	Count          int    `json:"count"`
	AccountType    string `json:"account_type,omitempty"`
	RegisterNumber string `json:"register_number,omitempty"`
}

// Validate trims the filters. Count bounds are enforced by the service, which
// owns the configured maximum.
func (r *GenerateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.AccountType = strings.TrimSpace(r.AccountType)
	r.RegisterNumber = strings.TrimSpace(r.RegisterNumber)
	if r.Count < 1 {
		return dErrors.New(dErrors.CodeValidation, "count must be at least 1")
	}
	return nil
}

// ToDomain converts the request to the service type.
func (r *GenerateRequest) ToDomain() identifier.GenerateRequest {
	return identifier.GenerateRequest{
		Count:          r.Count,
		AccountType:    r.AccountType,
		RegisterNumber: r.RegisterNumber,
	}
}

func parseItem(rawKind, rawValue, field string) (id.IdentifierKind, string, error) {
	rawKind = strings.TrimSpace(rawKind)
	if rawKind == "" {
		return "", "", dErrors.New(dErrors.CodeValidation, field+"kind is required")
	}
	kind, err := id.ParseIdentifierKind(rawKind)
	if err != nil {
		return "", "", err
	}
	value, err := parseValue(rawValue, field)
	if err != nil {
		return "", "", err
	}
	return kind, value, nil
}

// parseValue trims surrounding whitespace only. Inner characters are left for
// the validators to reject, so a grouped "9710.45.12341" fails with
// invalid_format rather than being silently normalized.
func parseValue(raw, field string) (string, error) {
	if len(raw) > maxValueLength {
		return "", dErrors.New(dErrors.CodeValidation, field+"value must be at most "+strconv.Itoa(maxValueLength)+" characters")
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", dErrors.New(dErrors.CodeValidation, field+"value is required")
	}
	return value, nil
}
