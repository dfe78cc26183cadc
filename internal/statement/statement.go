// Package statement extracts transaction candidates from the plain text
// of a bank statement document. The scan is a single forward pass over
// lines with a small fixed lookahead for payment blocks that span lines;
// there are no columns to remap, so unmatched lines are skipped rather
// than surfaced for manual mapping.
package statement

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/finbooks/statement-ingest/internal/classify"
	"github.com/finbooks/statement-ingest/internal/dates"
	"github.com/finbooks/statement-ingest/internal/money"
	"github.com/finbooks/statement-ingest/internal/types"
)

// ErrEmptyInput is returned when the statement text carries no lines
var ErrEmptyInput = errors.New("statement: input text is empty")

// Amounts at or above this are treated as extraction noise, not money
var sanityCeiling = decimal.NewFromInt(10_000_000)

// electronicLookahead bounds how many lines past an electronic-payment
// originator line are searched for its amount
const electronicLookahead = 2

var (
	depositRe = regexp.MustCompile(
		`^(\d{1,2}/\d{1,2})\s*((?:Remote Online |ATM Check |ATM )?Deposit)\s*#?\s*(\d+)?\s*\$?([\d,]+\.\d{2})\s*$`)
	cardRe = regexp.MustCompile(
		`^(\d{1,2}/\d{1,2})\s*Card Purchase(?:\s+With Pin)?\s*(?:(\d{1,2}/\d{1,2})\s+)?(.+?)\s*Card\s*\d+\s*\$?([\d,]+\.\d{2})\s*$`)
	electronicRe = regexp.MustCompile(
		`^(\d{1,2}/\d{1,2})\s*(?:Orig CO Name:\s*|Electronic (?:Pmt|Payment)[-:\s]*|ACH Debit\s*)(.*)$`)
	checkRe = regexp.MustCompile(
		`(?i)\bcheck\s*#?\s*(\d+)\b`)

	amountTokenRe = regexp.MustCompile(`\$?([\d,]+\.\d{2})`)
	dateTokenRe   = regexp.MustCompile(`\b(\d{1,2}/\d{1,2})\b`)

	accountNumberRe = regexp.MustCompile(`(?i)account\s*(?:number|no\.?|#)[:\s]*([\d-]{4,})`)
	periodTextRe    = regexp.MustCompile(`(?i)([A-Za-z]+ \d{1,2}, \d{4})\s*(?:through|to|-)\s*([A-Za-z]+ \d{1,2}, \d{4})`)
	periodNumericRe = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})\s*(?:through|to|-)\s*(\d{1,2}/\d{1,2}/\d{2,4})`)
	beginBalanceRe  = regexp.MustCompile(`(?i)beginning balance[:\s]*\(?\$?([\d,]+\.\d{2})\)?`)
	endBalanceRe    = regexp.MustCompile(`(?i)ending balance[:\s]*\(?\$?([\d,]+\.\d{2})\)?`)
)

// Result is the outcome of scanning one statement document
type Result struct {
	Account    types.AccountInfo `json:"account"`
	Company    types.CompanyInfo `json:"company"`
	Candidates []types.Candidate `json:"candidates"`
	// DroppedBlocks counts electronic-payment blocks abandoned because no
	// amount appeared within the lookahead window
	DroppedBlocks int           `json:"dropped_blocks"`
	Summary       types.Summary `json:"summary"`
}

// Extract scans statement text for transaction candidates plus
// best-effort account and company information. Candidates are returned
// sorted by date ascending.
func Extract(text string, logger *log.Logger) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	lines := strings.Split(text, "\n")
	result := &Result{
		Account: extractAccountInfo(text),
		Company: extractCompany(lines),
	}

	year := periodYear(result.Account)

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if m := depositRe.FindStringSubmatch(line); m != nil {
			c, ok := buildCandidate(m[1], year, i, depositDescription(m[2], m[3]), m[4], types.DirectionIncome, types.MethodBankTransfer)
			if ok {
				c.ReferenceNumber = m[3]
				result.Candidates = append(result.Candidates, *c)
			}
			continue
		}

		if m := cardRe.FindStringSubmatch(line); m != nil {
			c, ok := buildCandidate(m[1], year, i, m[3], m[4], types.DirectionExpense, types.MethodDebitCard)
			if ok {
				result.Candidates = append(result.Candidates, *c)
			}
			continue
		}

		if m := electronicRe.FindStringSubmatch(line); m != nil {
			originator := strings.TrimSpace(m[2])
			amount, consumed := searchAmountAhead(line[len(m[1]):], lines, i)
			if consumed == 0 {
				// Amount sat on the originator line; keep it out of the
				// description.
				if loc := amountTokenRe.FindStringIndex(originator); loc != nil {
					originator = strings.TrimSpace(originator[:loc[0]] + originator[loc[1]:])
				}
			}
			if amount == "" {
				// The source behavior drops an amount-less block without
				// raising an error; we keep that but count it.
				logger.Debug("dropping electronic block without amount", "line", i, "originator", originator)
				result.DroppedBlocks++
				continue
			}
			c, ok := buildCandidate(m[1], year, i, originator, amount, types.DirectionExpense, types.MethodBankTransfer)
			if ok {
				result.Candidates = append(result.Candidates, *c)
			}
			i += consumed
			continue
		}

		if m := checkRe.FindStringSubmatch(line); m != nil {
			c, ok := buildCheckCandidate(line, m[1], year, i)
			if ok {
				result.Candidates = append(result.Candidates, *c)
			}
			continue
		}
	}

	slices.SortStableFunc(result.Candidates, func(a, b types.Candidate) int {
		return strings.Compare(a.Date, b.Date)
	})
	result.Summary = types.Summarize(result.Candidates)
	return result, nil
}

func depositDescription(marker, sequence string) string {
	if sequence == "" {
		return marker
	}
	return marker + " " + sequence
}

// searchAmountAhead looks for an amount token on the remainder of the
// originator line, then within the bounded lookahead window. It returns
// the token and how many following lines were consumed.
func searchAmountAhead(rest string, lines []string, start int) (string, int) {
	if m := amountTokenRe.FindStringSubmatch(rest); m != nil {
		return m[1], 0
	}
	for offset := 1; offset <= electronicLookahead && start+offset < len(lines); offset++ {
		if m := amountTokenRe.FindStringSubmatch(lines[start+offset]); m != nil {
			return m[1], offset
		}
	}
	return "", 0
}

// buildCandidate validates the extracted date and amount and assembles a
// classified candidate. Invalid extractions are dropped, not reported.
func buildCandidate(monthDay string, year, lineIndex int, description, rawAmount string, direction types.Direction, method types.PaymentMethod) (*types.Candidate, bool) {
	isoDate, ok := dates.ParseMonthDay(monthDay, year)
	if !ok {
		return nil, false
	}
	amount, ok := parseStatementAmount(rawAmount)
	if !ok {
		return nil, false
	}
	if direction == types.DirectionExpense {
		amount = amount.Neg()
	}

	description = strings.Join(strings.Fields(description), " ")
	if description == "" {
		return nil, false
	}

	category := classify.Classify(description, direction)
	candidate := &types.Candidate{
		Date:           isoDate,
		Description:    description,
		Amount:         amount,
		Direction:      direction,
		Category:       category,
		PaymentMethod:  method,
		Confidence:     types.ConfidenceHigh,
		NeedsReview:    category == types.CategoryUncategorized,
		SourceRowIndex: lineIndex,
	}
	if candidate.NeedsReview {
		candidate.Confidence = types.ConfidenceLow
	}
	return candidate, true
}

func buildCheckCandidate(line, checkNumber string, year, lineIndex int) (*types.Candidate, bool) {
	dateMatch := dateTokenRe.FindStringSubmatch(line)
	amountMatch := amountTokenRe.FindStringSubmatch(line)
	if dateMatch == nil || amountMatch == nil {
		return nil, false
	}
	c, ok := buildCandidate(dateMatch[1], year, lineIndex, fmt.Sprintf("Check #%s", checkNumber), amountMatch[1], types.DirectionExpense, types.MethodCheck)
	if !ok {
		return nil, false
	}
	c.CheckNumber = checkNumber
	return c, true
}

// parseStatementAmount applies the shared amount cleanup plus the
// statement-specific bounds sanity: extracted magnitudes must be positive
// and below the ceiling.
func parseStatementAmount(raw string) (decimal.Decimal, bool) {
	amount, ok := money.Parse(raw)
	if !ok {
		return decimal.Zero, false
	}
	if amount.Sign() <= 0 || amount.GreaterThanOrEqual(sanityCeiling) {
		return decimal.Zero, false
	}
	return amount, true
}

// extractAccountInfo runs the independent header lookups. Each field is
// optional; failure of one never blocks the others.
func extractAccountInfo(text string) types.AccountInfo {
	info := types.AccountInfo{}

	if m := accountNumberRe.FindStringSubmatch(text); m != nil {
		info.AccountNumber = strings.TrimSpace(m[1])
	}
	if m := periodTextRe.FindStringSubmatch(text); m != nil {
		if start, ok := dates.Parse(m[1], []string{"January 2, 2006", "Jan 2, 2006"}); ok {
			info.PeriodStart = start
		}
		if end, ok := dates.Parse(m[2], []string{"January 2, 2006", "Jan 2, 2006"}); ok {
			info.PeriodEnd = end
		}
	} else if m := periodNumericRe.FindStringSubmatch(text); m != nil {
		if start, ok := dates.Parse(m[1], nil); ok {
			info.PeriodStart = start
		}
		if end, ok := dates.Parse(m[2], nil); ok {
			info.PeriodEnd = end
		}
	}
	if m := beginBalanceRe.FindStringSubmatch(text); m != nil {
		if amount, ok := money.Parse(m[1]); ok {
			info.BeginningBalance = amount
			info.HasBeginning = true
		}
	}
	if m := endBalanceRe.FindStringSubmatch(text); m != nil {
		if amount, ok := money.Parse(m[1]); ok {
			info.EndingBalance = amount
			info.HasEnding = true
		}
	}
	return info
}

// periodYear supplies the year for month/day transaction dates: the
// statement period's start year when the header yielded one, otherwise
// the current year.
func periodYear(info types.AccountInfo) int {
	if info.PeriodStart != "" {
		if t, err := time.Parse(dates.ISO, info.PeriodStart); err == nil {
			return t.Year()
		}
	}
	return time.Now().Year()
}
