package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "1234.56", "1234.56", true},
		{"currency_and_thousands", "$1,234.56", "1234.56", true},
		{"pound_sign", "£99.00", "99", true},
		{"euro_sign", "€42.10", "42.1", true},
		{"parentheses_negative", "(1234.56)", "-1234.56", true},
		{"parentheses_with_symbol", "($1,234.56)", "-1234.56", true},
		{"debit_suffix", "1234.56 DR", "-1234.56", true},
		{"debit_suffix_db", "1234.56DB", "-1234.56", true},
		{"credit_suffix", "1234.56 CR", "1234.56", true},
		{"credit_suffix_wins_over_parens", "(1234.56) CR", "1234.56", true},
		{"explicit_negative", "-4.50", "-4.5", true},
		{"embedded_spaces", "1 234.56", "1234.56", true},
		{"zero", "0.00", "0", true},
		{"empty", "", "", false},
		{"whitespace_only", "   ", "", false},
		{"not_a_number", "N/A", "", false},
		{"lone_minus", "-", "", false},
		{"currency_only", "$", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				want, err := decimal.NewFromString(tt.want)
				require.NoError(t, err)
				assert.True(t, got.Equal(want), "got %s, want %s", got, want)
			}
		})
	}
}

func TestParseSplit(t *testing.T) {
	tests := []struct {
		name   string
		debit  string
		credit string
		want   string
		ok     bool
	}{
		{"debit_only", "50.00", "", "-50", true},
		{"credit_only", "", "125.00", "125", true},
		{"both_empty", "", "", "0", true},
		{"both_zero", "0.00", "0.00", "0", true},
		// Malformed row with both slots populated: debit takes precedence
		{"both_nonzero_debit_wins", "50.00", "30.00", "-50", true},
		{"debit_with_symbol", "$1,000.00", "", "-1000", true},
		{"debit_already_negative", "-50.00", "", "-50", true},
		{"unparseable_debit", "abc", "", "", false},
		{"unparseable_credit", "", "abc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSplit(tt.debit, tt.credit)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				want, err := decimal.NewFromString(tt.want)
				require.NoError(t, err)
				assert.True(t, got.Equal(want), "got %s, want %s", got, want)
			}
		})
	}
}

// Unparseable tokens must fail, never silently become zero
func TestParseFailureIsNotZero(t *testing.T) {
	_, ok := Parse("garbage")
	require.False(t, ok)
}
