// Package generator produces random but valid bank account numbers for test
// data. It only uses the banking package's fragment syntax checks and
// ForceValidAccountNumber; it holds no validation logic of its own.
package generator

import (
	"math/rand/v2"
	"strconv"

	"noid/pkg/banking"
	dErrors "noid/pkg/domain-errors"
)

const (
	accountNumberLength = 11
	registerNumberStart = 0
	accountTypeStart    = 4

	// attemptsPerNumber bounds the retries for one requested number. Roughly
	// one prefix in eleven has no valid checksum, so this is never reached for
	// usable seeds.
	attemptsPerNumber = 100
)

// Generator is one generation session. All digits come from a single seeded
// source; a Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New creates a session whose output is fully determined by seed.
func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandom creates a session seeded from the runtime's random source.
func NewRandom() *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// AccountNumbers returns count random valid account numbers.
func (g *Generator) AccountNumbers(count int) ([]banking.AccountNumber, error) {
	return g.generate(count, "", 0)
}

// AccountNumbersForAccountType returns count valid account numbers that all
// have the given two-digit account type.
func (g *Generator) AccountNumbersForAccountType(accountType string, count int) ([]banking.AccountNumber, error) {
	if err := banking.ValidateAccountTypeSyntax(accountType); err != nil {
		return nil, err
	}
	return g.generate(count, accountType, accountTypeStart)
}

// AccountNumbersForRegisterNumber returns count valid account numbers that
// all have the given four-digit register number.
func (g *Generator) AccountNumbersForRegisterNumber(registerNumber string, count int) ([]banking.AccountNumber, error) {
	if err := banking.ValidateRegisterNumberSyntax(registerNumber); err != nil {
		return nil, err
	}
	return g.generate(count, registerNumber, registerNumberStart)
}

func (g *Generator) generate(count int, fixed string, fixedAt int) ([]banking.AccountNumber, error) {
	if count < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "count must not be negative")
	}
	result := make([]banking.AccountNumber, 0, count)
	budget := count * attemptsPerNumber
	for len(result) < count {
		if budget == 0 {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "could not generate enough valid account numbers for "+strconv.Quote(fixed))
		}
		budget--

		acc, err := banking.ForceValidAccountNumber(g.candidate(fixed, fixedAt))
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeNoValidChecksum) || dErrors.HasCode(err, dErrors.CodeLeadingZeros) {
				continue
			}
			return nil, err
		}
		result = append(result, acc)
	}
	return result, nil
}

// candidate builds an 11-digit string with fixed placed at fixedAt and random
// digits everywhere else.
func (g *Generator) candidate(fixed string, fixedAt int) string {
	buf := make([]byte, 0, accountNumberLength)
	for len(buf) < accountNumberLength {
		if fixed != "" && len(buf) == fixedAt {
			buf = append(buf, fixed...)
			continue
		}
		buf = append(buf, byte('0'+g.rng.IntN(10)))
	}
	return string(buf)
}
