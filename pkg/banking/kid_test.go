package banking_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noid/pkg/banking"
	"noid/pkg/checksum"
	dErrors "noid/pkg/domain-errors"
	"noid/pkg/stringnumber"
)

func TestParseKIDNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr dErrors.Code
	}{
		{"valid via mod10", "2345", ""},
		{"valid via mod11", "19", ""},
		{"valid via both", "00", ""},
		{"mod10 with mod11 dead end", "67", ""},
		{"invalid under both", "1234", dErrors.CodeInvalidChecksum},
		{"dead end and mod10 mismatch", "68", dErrors.CodeInvalidChecksum},
		{"too short", "5", dErrors.CodeInvalidLength},
		{"too long", strings.Repeat("1", 26), dErrors.CodeInvalidLength},
		{"empty", "", dErrors.CodeInvalidFormat},
		{"letters", "23a5", dErrors.CodeInvalidFormat},
		{"spaces", "23 45", dErrors.CodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kid, err := banking.ParseKIDNumber(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, tt.wantErr), "got %v", err)
				assert.False(t, banking.IsValidKIDNumber(tt.input))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, kid.String())
			assert.Equal(t, banking.KindKIDNumber, kid.Kind())
			assert.True(t, banking.IsValidKIDNumber(tt.input))
		})
	}
}

func TestKIDChecksumOutcomes(t *testing.T) {
	t.Run("reports each scheme", func(t *testing.T) {
		outcomes, err := banking.KIDChecksumOutcomes("2345")
		require.NoError(t, err)
		assert.Equal(t, checksum.Matched, outcomes.Mod10)
		assert.Equal(t, checksum.Mismatched, outcomes.Mod11)
		assert.Equal(t, []checksum.Scheme{checksum.SchemeMod10}, outcomes.MatchedSchemes())
	})

	t.Run("dead end is not computable, not an error", func(t *testing.T) {
		outcomes, err := banking.KIDChecksumOutcomes("67")
		require.NoError(t, err)
		assert.Equal(t, checksum.Matched, outcomes.Mod10)
		assert.Equal(t, checksum.NotComputable, outcomes.Mod11)
		assert.True(t, outcomes.Valid())
	})
}

// The validator must accept exactly the numbers where either scheme matches.
func TestKIDDisjunction(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for range 5000 {
		length := 2 + rng.IntN(24)
		s := randomDigits(rng, length)
		n := stringnumber.New("test", s)
		last := int(s[len(s)-1] - '0')

		mod10, err := checksum.Mod10(checksum.Mod10Weights(length), n)
		require.NoError(t, err)
		mod11, mod11Err := checksum.Mod11(checksum.Mod11Weights(length), n)

		want := mod10 == last || (mod11Err == nil && mod11 == last)
		assert.Equal(t, want, banking.IsValidKIDNumber(s), "input %s", s)
	}
}

func FuzzParseKIDNumber(f *testing.F) {
	f.Add("2345")
	f.Add("1234")
	f.Add("")
	f.Add("67")
	f.Add(strings.Repeat("9", 30))

	f.Fuzz(func(t *testing.T, input string) {
		kid, err := banking.ParseKIDNumber(input)
		if err != nil {
			return
		}
		if kid.String() != input {
			t.Errorf("round trip changed value: %q -> %q", input, kid.String())
		}
		if len(input) < 2 || len(input) > 25 {
			t.Errorf("accepted KID of length %d", len(input))
		}
	})
}

func FuzzForceValidAccountNumber(f *testing.F) {
	f.Add("97104512341")
	f.Add("97104512349")
	f.Add("90000000000")
	f.Add("00001234567")

	f.Fuzz(func(t *testing.T, input string) {
		acc, err := banking.ForceValidAccountNumber(input)
		if err != nil {
			return
		}
		if !banking.IsValidAccountNumber(acc.String()) {
			t.Errorf("forced number %q is not valid", acc.String())
		}
		if acc.String()[:10] != input[:10] {
			t.Errorf("prefix changed: %q -> %q", input, acc.String())
		}
	})
}
