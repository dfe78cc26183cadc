package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/statement-ingest/internal/money"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		wantKey string
		found   bool
	}{
		{
			name:    "chase_checking",
			headers: []string{"Posting Date", "Description", "Amount", "Type"},
			wantKey: "chase-checking",
			found:   true,
		},
		{
			name:    "bank_of_america",
			headers: []string{"Date", "Description", "Amount", "Running Bal."},
			wantKey: "bank-of-america",
			found:   true,
		},
		{
			name:    "generic_split",
			headers: []string{"Date", "Description", "Debit", "Credit"},
			wantKey: "generic-split",
			found:   true,
		},
		{
			name:    "generic_signed_is_last_resort",
			headers: []string{"Date", "Description", "Amount"},
			wantKey: "generic-signed",
			found:   true,
		},
		{
			name:    "case_insensitive_headers",
			headers: []string{"posting date", "DESCRIPTION", "amount"},
			wantKey: "chase-checking",
			found:   true,
		},
		{
			name:    "no_match",
			headers: []string{"Col1", "Col2", "Col3"},
			found:   false,
		},
		{
			name:    "empty_headers",
			headers: nil,
			found:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Detect(tt.headers)
			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.wantKey, p.Key)
			}
		})
	}
}

// A header set matching both a specific and the generic profile must
// resolve to the specific one: catalog order encodes precedence.
func TestDetectPrecedence(t *testing.T) {
	p, ok := Detect([]string{"Posting Date", "Description", "Amount", "Date"})
	require.True(t, ok)
	assert.Equal(t, "chase-checking", p.Key)
}

func TestGet(t *testing.T) {
	p, ok := Get("generic-split")
	require.True(t, ok)
	assert.Equal(t, money.Split, p.Convention)

	_, ok = Get("no-such-profile")
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	keys := List()
	require.NotEmpty(t, keys)
	// The loosest detector must stay last
	assert.Equal(t, "generic-signed", keys[len(keys)-1])
}

func TestColumnFirstPresentWins(t *testing.T) {
	p, ok := Get("generic-signed")
	require.True(t, ok)

	headers := NewHeaderSet([]string{"Transaction Date", "Payee", "Amount"})
	col, ok := p.Column(FieldDescription, headers)
	require.True(t, ok)
	assert.Equal(t, "Payee", col)

	_, ok = p.Column(FieldCheckNumber, headers)
	assert.False(t, ok)
}

func TestCustomConventionInference(t *testing.T) {
	split := Custom(FieldMap{
		FieldDate:   {"When"},
		FieldDebit:  {"Out"},
		FieldCredit: {"In"},
	}, nil)
	assert.Equal(t, money.Split, split.Convention)

	signed := Custom(FieldMap{
		FieldDate:   {"When"},
		FieldAmount: {"Value"},
	}, nil)
	assert.Equal(t, money.Signed, signed.Convention)

	// Custom profiles never participate in auto-detection
	assert.False(t, split.Detect(NewHeaderSet([]string{"When", "Out", "In"})))
}
