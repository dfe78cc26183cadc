// Package qif parses QIF bank exports and normalizes their records into
// transaction candidates. QIF carries no header row, so this path skips
// format detection entirely.
package qif

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/finbooks/statement-ingest/internal/classify"
	"github.com/finbooks/statement-ingest/internal/dates"
	"github.com/finbooks/statement-ingest/internal/money"
	"github.com/finbooks/statement-ingest/internal/types"
)

// Record is a single raw QIF transaction record
type Record struct {
	Date     string
	Amount   string
	Payee    string
	Category string
	Number   string
	Memo     string
}

// dateLayouts covers the date forms QIF exports use in the wild,
// including the two-digit apostrophe-year form
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"01/02'06",
	"1/ 2'06",
}

// ParseReader reads QIF records from r. Records are separated by a line
// beginning with ^; unknown field tags are ignored.
func ParseReader(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)

	var records []Record
	current := Record{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case '^':
			if current.Date != "" {
				records = append(records, current)
				current = Record{}
			}
		case 'D':
			current.Date = line[1:]
		case 'T':
			current.Amount = line[1:]
		case 'P':
			current.Payee = line[1:]
		case 'L':
			current.Category = line[1:]
		case 'N':
			current.Number = line[1:]
		case 'M':
			current.Memo = line[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading qif: %w", err)
	}

	if current.Date != "" {
		records = append(records, current)
	}

	return records, nil
}

// Result mirrors the delimited path's outcome for QIF input
type Result struct {
	Candidates []types.Candidate `json:"candidates"`
	Errors     []types.RowError  `json:"errors,omitempty"`
	Summary    types.Summary     `json:"summary"`
}

// Normalize maps raw QIF records to candidates with the same row-error
// semantics as the delimited path: bad dates or amounts exclude the
// record and continue the batch.
func Normalize(records []Record, logger *log.Logger) *Result {
	result := &Result{}

	for i, rec := range records {
		description := strings.Join(strings.Fields(rec.Payee), " ")
		if description == "" {
			description = strings.Join(strings.Fields(rec.Memo), " ")
		}
		if description == "" {
			result.Errors = append(result.Errors, types.RowError{Index: i, Reason: "missing payee"})
			continue
		}

		isoDate, ok := dates.Parse(rec.Date, dateLayouts)
		if !ok {
			logger.Debug("qif record rejected", "record", i, "date", rec.Date)
			result.Errors = append(result.Errors, types.RowError{Index: i, Reason: fmt.Sprintf("unparseable date %q", rec.Date)})
			continue
		}

		amount, ok := money.Parse(rec.Amount)
		if !ok {
			logger.Debug("qif record rejected", "record", i, "amount", rec.Amount)
			result.Errors = append(result.Errors, types.RowError{Index: i, Reason: fmt.Sprintf("unparseable amount %q", rec.Amount)})
			continue
		}

		direction := types.DirectionFromAmount(amount)
		category := rec.Category
		if category == "" {
			category = classify.Classify(description, direction)
		}

		method, isDeposit := classify.MethodFromType(rec.Number)
		checkNumber := ""
		// A numeric N field is an issued-check number unless the record
		// is a deposit, whose slip numbers are a different namespace.
		if !isDeposit && isNumeric(rec.Number) {
			checkNumber = rec.Number
			method = types.MethodCheck
		}

		candidate := types.Candidate{
			Date:           isoDate,
			Description:    description,
			Amount:         amount,
			Direction:      direction,
			Category:       category,
			PaymentMethod:  method,
			CheckNumber:    checkNumber,
			Confidence:     types.ConfidenceHigh,
			NeedsReview:    category == types.CategoryUncategorized,
			SourceRowIndex: i,
		}
		if candidate.NeedsReview {
			candidate.Confidence = types.ConfidenceLow
		}
		result.Candidates = append(result.Candidates, candidate)
	}

	result.Summary = types.Summarize(result.Candidates)
	return result
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
