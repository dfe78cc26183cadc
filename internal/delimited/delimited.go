// Package delimited normalizes tabular bank exports into canonical
// transaction candidates using the format profile catalog.
package delimited

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/finbooks/statement-ingest/internal/classify"
	"github.com/finbooks/statement-ingest/internal/dates"
	"github.com/finbooks/statement-ingest/internal/format"
	"github.com/finbooks/statement-ingest/internal/money"
	"github.com/finbooks/statement-ingest/internal/types"
)

// ErrNoRows is returned when the input carries no data rows at all.
// This is the only whole-batch failure; everything else is best-effort.
var ErrNoRows = errors.New("delimited: input has no rows")

// FormatCustom selects the caller-supplied field mapping in Options
const FormatCustom = "custom"

// Options carries the caller directives for a normalization run
type Options struct {
	// FormatKey selects a profile explicitly, or FormatCustom to use the
	// Custom mapping. Empty means auto-detect against the catalog.
	FormatKey string
	// Custom is a caller-supplied field map with the same shape as a
	// profile's; required when FormatKey is FormatCustom.
	Custom format.FieldMap
	// DateLayout, when set, is tried before the profile's own layouts
	DateLayout string
}

// Result is the outcome of normalizing one batch. Every input row yields
// exactly one of candidate, unmapped row, or row error.
type Result struct {
	Candidates []types.Candidate   `json:"candidates"`
	Unmapped   []types.UnmappedRow `json:"unmapped,omitempty"`
	Errors     []types.RowError    `json:"errors,omitempty"`
	// ProfileKey and ProfileName identify the detected or selected format;
	// empty when no profile matched
	ProfileKey  string `json:"profile_key,omitempty"`
	ProfileName string `json:"profile_name,omitempty"`
	// RequiresMapping is set when no profile matched and no custom mapping
	// was supplied. Not an error: the caller should collect a mapping and
	// re-run.
	RequiresMapping bool          `json:"requires_mapping"`
	Summary         types.Summary `json:"summary"`
}

// Normalize maps raw tabular rows to transaction candidates. The header
// row is passed separately from the data rows; row indexes in the result
// are 0-based positions within rows.
func Normalize(headers []string, rows [][]string, opts Options, logger *log.Logger) (*Result, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	profile, err := selectProfile(headers, opts)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		// Absence of a confident format is not an error; hand every row
		// back for manual column mapping.
		logger.Debug("no format profile matched", "headers", strings.Join(headers, ","))
		result := &Result{RequiresMapping: true}
		for i, row := range rows {
			result.Unmapped = append(result.Unmapped, types.UnmappedRow{Index: i, Fields: row})
		}
		return result, nil
	}

	logger.Debug("using format profile", "profile", profile.Key)

	headerSet := format.NewHeaderSet(headers)
	index := columnIndex(headers)
	layouts := profile.DateLayouts
	if opts.DateLayout != "" {
		layouts = append([]string{opts.DateLayout}, layouts...)
	}

	result := &Result{}
	if profile.Key != FormatCustom {
		result.ProfileKey = profile.Key
		result.ProfileName = profile.DisplayName
	}

	for i, row := range rows {
		candidate, reason := normalizeRow(row, i, profile, headerSet, index, layouts)
		if reason != "" {
			logger.Debug("row rejected", "row", i, "reason", reason)
			result.Errors = append(result.Errors, types.RowError{Index: i, Reason: reason})
			continue
		}
		result.Candidates = append(result.Candidates, *candidate)
	}

	result.Summary = types.Summarize(result.Candidates)
	return result, nil
}

func selectProfile(headers []string, opts Options) (*format.Profile, error) {
	switch opts.FormatKey {
	case "":
		if p, ok := format.Detect(headers); ok {
			return p, nil
		}
		return nil, nil
	case FormatCustom:
		if len(opts.Custom) == 0 {
			return nil, errors.New("delimited: custom format requires a field mapping")
		}
		return format.Custom(opts.Custom, nil), nil
	default:
		p, ok := format.Get(opts.FormatKey)
		if !ok {
			return nil, fmt.Errorf("delimited: unknown format key %q", opts.FormatKey)
		}
		return p, nil
	}
}

// normalizeRow produces a candidate or a rejection reason. Only a missing
// description, an unusable date, or an unusable amount reject a row;
// optional fields are extracted permissively.
func normalizeRow(row []string, rowIndex int, profile *format.Profile, headers format.HeaderSet, index map[string]int, layouts []string) (*types.Candidate, string) {
	cell := func(field format.Field) string {
		col, ok := profile.Column(field, headers)
		if !ok {
			return ""
		}
		i, ok := index[strings.ToLower(strings.TrimSpace(col))]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	description := normalizeWhitespace(cell(format.FieldDescription))
	if description == "" {
		return nil, "missing description"
	}

	rawDate := cell(format.FieldDate)
	if rawDate == "" {
		return nil, "missing date"
	}
	isoDate, ok := dates.Parse(rawDate, layouts)
	if !ok {
		return nil, fmt.Sprintf("unparseable date %q", rawDate)
	}

	var amount decimal.Decimal
	if profile.Convention == money.Split {
		amount, ok = money.ParseSplit(cell(format.FieldDebit), cell(format.FieldCredit))
		if !ok {
			return nil, "unparseable debit/credit amount"
		}
	} else {
		raw := cell(format.FieldAmount)
		if raw == "" {
			return nil, "missing amount"
		}
		amount, ok = money.Parse(raw)
		if !ok {
			return nil, fmt.Sprintf("unparseable amount %q", raw)
		}
	}

	direction := types.DirectionFromAmount(amount)

	typeToken := cell(format.FieldType)
	method, isDeposit := classify.MethodFromType(typeToken)

	category := cell(format.FieldCategory)
	if category == "" {
		category = classify.Classify(description, direction)
	}

	checkNumber := cell(format.FieldCheckNumber)
	if isDeposit {
		// Deposit-slip numbers are not issued-check numbers; surfacing
		// them as such conflates two numbering namespaces.
		checkNumber = ""
	}

	candidate := &types.Candidate{
		Date:            isoDate,
		Description:     description,
		Amount:          amount,
		Direction:       direction,
		Category:        category,
		PaymentMethod:   method,
		CheckNumber:     checkNumber,
		ReferenceNumber: cell(format.FieldReferenceNumber),
		Confidence:      types.ConfidenceHigh,
		NeedsReview:     category == types.CategoryUncategorized,
		SourceRowIndex:  rowIndex,
	}
	if candidate.NeedsReview {
		candidate.Confidence = types.ConfidenceLow
	}
	return candidate, ""
}

func columnIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
