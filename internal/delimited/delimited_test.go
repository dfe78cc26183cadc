package delimited

import (
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/statement-ingest/internal/format"
	"github.com/finbooks/statement-ingest/internal/types"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestNormalizeAutoDetectChase(t *testing.T) {
	headers := []string{"Posting Date", "Description", "Amount", "Type"}
	rows := [][]string{
		{"03/01/2024", "COFFEE SHOP", "-4.50", "DEBIT_CARD"},
	}

	result, err := Normalize(headers, rows, Options{}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "chase-checking", result.ProfileKey)
	assert.False(t, result.RequiresMapping)
	require.Len(t, result.Candidates, 1)

	c := result.Candidates[0]
	assert.Equal(t, "2024-03-01", c.Date)
	assert.Equal(t, "COFFEE SHOP", c.Description)
	assert.True(t, c.Amount.Equal(decimal.RequireFromString("-4.50")))
	assert.Equal(t, types.DirectionExpense, c.Direction)
	assert.Equal(t, types.MethodDebitCard, c.PaymentMethod)
	assert.Equal(t, "Meals & Entertainment", c.Category)
	assert.False(t, c.NeedsReview)
	assert.Equal(t, 0, c.SourceRowIndex)
}

func TestNormalizeSplitConvention(t *testing.T) {
	headers := []string{"Date", "Description", "Debit", "Credit"}
	rows := [][]string{
		{"01/02/2024", "OFFICE RENT", "50.00", ""},
		{"01/03/2024", "CUSTOMER PAYMENT", "", "200.00"},
	}

	result, err := Normalize(headers, rows, Options{}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "generic-split", result.ProfileKey)
	require.Len(t, result.Candidates, 2)

	expense := result.Candidates[0]
	assert.True(t, expense.Amount.Equal(decimal.RequireFromString("-50.00")))
	assert.Equal(t, types.DirectionExpense, expense.Direction)

	income := result.Candidates[1]
	assert.True(t, income.Amount.Equal(decimal.RequireFromString("200.00")))
	assert.Equal(t, types.DirectionIncome, income.Direction)
	assert.Equal(t, "Business Income", income.Category)
}

// Bad rows must surface as row errors, never silently vanish
func TestNormalizePartialFailure(t *testing.T) {
	headers := []string{"Date", "Description", "Amount"}
	var rows [][]string
	for i := 0; i < 10; i++ {
		rows = append(rows, []string{"06/15/2024", fmt.Sprintf("VENDOR %d", i), "-10.00"})
	}
	rows = append(rows, []string{"not-a-date", "VENDOR X", "-10.00"})
	rows = append(rows, []string{"99/99/9999", "VENDOR Y", "-10.00"})

	result, err := Normalize(headers, rows, Options{}, testLogger())
	require.NoError(t, err)

	assert.Len(t, result.Candidates, 10)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 10, result.Errors[0].Index)
	assert.Equal(t, 11, result.Errors[1].Index)
	assert.Contains(t, result.Errors[0].Reason, "date")
}

func TestNormalizeRowErrors(t *testing.T) {
	headers := []string{"Date", "Description", "Amount"}
	rows := [][]string{
		{"06/15/2024", "", "-10.00"},
		{"06/15/2024", "VENDOR", "not-money"},
		{"", "VENDOR", "-10.00"},
	}

	result, err := Normalize(headers, rows, Options{}, testLogger())
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0].Reason, "description")
	assert.Contains(t, result.Errors[1].Reason, "amount")
	assert.Contains(t, result.Errors[2].Reason, "date")
}

func TestNormalizeNoProfileMatch(t *testing.T) {
	headers := []string{"Col1", "Col2", "Col3"}
	rows := [][]string{
		{"a", "b", "c"},
		{"d", "e", "f"},
		{"g", "h", "i"},
	}

	result, err := Normalize(headers, rows, Options{}, testLogger())
	require.NoError(t, err)

	assert.True(t, result.RequiresMapping)
	assert.Empty(t, result.Candidates)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Unmapped, len(rows))
	assert.Equal(t, 1, result.Unmapped[1].Index)
	assert.Equal(t, rows[1], result.Unmapped[1].Fields)
}

func TestNormalizeCustomMapping(t *testing.T) {
	headers := []string{"When", "What", "Out", "In"}
	rows := [][]string{
		{"2024-05-01", "Working lunch", "12.00", ""},
	}
	opts := Options{
		FormatKey: FormatCustom,
		Custom: format.FieldMap{
			format.FieldDate:        {"When"},
			format.FieldDescription: {"What"},
			format.FieldDebit:       {"Out"},
			format.FieldCredit:      {"In"},
		},
	}

	result, err := Normalize(headers, rows, opts, testLogger())
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
	assert.True(t, result.Candidates[0].Amount.Equal(decimal.RequireFromString("-12.00")))

	_, err = Normalize(headers, rows, Options{FormatKey: FormatCustom}, testLogger())
	assert.Error(t, err)
}

func TestNormalizeExplicitFormatKey(t *testing.T) {
	headers := []string{"Date", "Description", "Amount"}
	rows := [][]string{{"06/15/2024", "VENDOR", "-10.00"}}

	result, err := Normalize(headers, rows, Options{FormatKey: "generic-signed"}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "generic-signed", result.ProfileKey)

	_, err = Normalize(headers, rows, Options{FormatKey: "no-such-format"}, testLogger())
	assert.Error(t, err)
}

func TestNormalizeDateLayoutHint(t *testing.T) {
	headers := []string{"Date", "Description", "Amount"}
	rows := [][]string{{"15.06.2024", "VENDOR", "-10.00"}}

	result, err := Normalize(headers, rows, Options{DateLayout: "02.01.2006"}, testLogger())
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "2024-06-15", result.Candidates[0].Date)
}

func TestNormalizeCheckNumberSuppression(t *testing.T) {
	headers := []string{"Posting Date", "Description", "Amount", "Type", "Check or Slip #"}
	rows := [][]string{
		{"03/01/2024", "REMOTE DEPOSIT", "500.00", "DEPOSIT", "123"},
		{"03/02/2024", "RENT PAYMENT", "-900.00", "CHECK", "1102"},
	}

	result, err := Normalize(headers, rows, Options{}, testLogger())
	require.NoError(t, err)
	require.Len(t, result.Candidates, 2)

	// Slip numbers are not issued-check numbers
	assert.Empty(t, result.Candidates[0].CheckNumber)
	assert.Equal(t, types.MethodBankTransfer, result.Candidates[0].PaymentMethod)

	assert.Equal(t, "1102", result.Candidates[1].CheckNumber)
	assert.Equal(t, types.MethodCheck, result.Candidates[1].PaymentMethod)
}

func TestNormalizeEmptyBatch(t *testing.T) {
	_, err := Normalize([]string{"Date"}, nil, Options{}, testLogger())
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestNormalizeSummary(t *testing.T) {
	headers := []string{"Date", "Description", "Amount"}
	rows := [][]string{
		{"06/15/2024", "SALE", "100.00"},
		{"06/16/2024", "SUPPLY RUN", "-40.00"},
	}

	result, err := Normalize(headers, rows, Options{}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Summary.Count)
	assert.True(t, result.Summary.TotalIncome.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, result.Summary.TotalExpense.Equal(decimal.RequireFromString("40.00")))
}

func TestPreview(t *testing.T) {
	headers := []string{"Posting Date", "Description", "Amount"}
	rows := [][]string{
		{"03/01/2024", "A", "-1.00"},
		{"03/02/2024", "B", "-2.00"},
		{"03/03/2024", "C", "-3.00"},
	}

	preview := Preview(headers, rows, 2)
	assert.Equal(t, headers, preview.Headers)
	assert.Len(t, preview.Rows, 2)
	assert.Equal(t, 3, preview.TotalRows)
	assert.True(t, preview.Detected)
	assert.Equal(t, "chase-checking", preview.ProfileKey)

	unknown := Preview([]string{"Foo"}, rows, 10)
	assert.False(t, unknown.Detected)
	assert.Len(t, unknown.Rows, 3)
}
