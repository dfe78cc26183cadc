package types

import "github.com/shopspring/decimal"

// Direction indicates whether money moved into or out of the account
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// PaymentMethod represents the payment channel used for a transaction
type PaymentMethod string

const (
	MethodCheck        PaymentMethod = "check"
	MethodDebitCard    PaymentMethod = "debit_card"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCash         PaymentMethod = "cash"
	MethodPeerToPeer   PaymentMethod = "peer_to_peer"
	MethodOther        PaymentMethod = "other"
)

// CategoryUncategorized is the sentinel returned when classification
// found no matching rule. Candidates carrying it are flagged for review.
const CategoryUncategorized = "Uncategorized"

// Confidence levels assigned by the extraction paths
const (
	ConfidenceHigh = 0.9
	ConfidenceLow  = 0.5
)

// Candidate is a provisionally extracted transaction, not yet persisted.
// Ownership passes to the caller on return; the engine keeps no copy.
type Candidate struct {
	// Date is the canonical calendar date in ISO form (2006-01-02)
	Date string `json:"date"`
	// Description is the whitespace-normalized free text
	Description string `json:"description"`
	// Amount is signed: positive = inflow, negative = outflow
	Amount decimal.Decimal `json:"amount"`
	// Direction is derived from the sign of Amount (>= 0 is income)
	Direction Direction `json:"direction"`
	// Category is the best-guess classification, or CategoryUncategorized
	Category      string        `json:"category"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	// CheckNumber is suppressed for deposit/slip records, whose numbering
	// is not in the issued-check namespace
	CheckNumber     string  `json:"check_number,omitempty"`
	ReferenceNumber string  `json:"reference_number,omitempty"`
	Confidence      float64 `json:"confidence"`
	NeedsReview     bool    `json:"needs_review"`
	// SourceRowIndex is the 0-based position in the original input,
	// carried for error reporting only
	SourceRowIndex int `json:"source_row_index"`
}

// DirectionFromAmount derives the transaction direction from the sign
// of the amount. Zero counts as income.
func DirectionFromAmount(amount decimal.Decimal) Direction {
	if amount.Sign() < 0 {
		return DirectionExpense
	}
	return DirectionIncome
}

// UnmappedRow is returned instead of a Candidate when no format profile
// matched and no custom mapping was supplied. It carries the raw fields so
// a caller can present a manual-mapping UI.
type UnmappedRow struct {
	Index  int      `json:"index"`
	Fields []string `json:"fields"`
}

// RowError records a single row that could not be normalized. It does not
// abort the batch; the engine is best-effort and returns partial results.
type RowError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Summary holds quick-display aggregates over a set of candidates
type Summary struct {
	Count        int             `json:"count"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// Summarize computes display aggregates for a batch of candidates.
// TotalExpense is reported as a positive magnitude.
func Summarize(candidates []Candidate) Summary {
	s := Summary{
		Count:        len(candidates),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, c := range candidates {
		if c.Direction == DirectionIncome {
			s.TotalIncome = s.TotalIncome.Add(c.Amount)
		} else {
			s.TotalExpense = s.TotalExpense.Add(c.Amount.Neg())
		}
	}
	return s
}

// AccountInfo holds the best-effort header fields extracted from a
// free-text statement. Every field is optional.
type AccountInfo struct {
	AccountNumber    string          `json:"account_number,omitempty"`
	PeriodStart      string          `json:"period_start,omitempty"`
	PeriodEnd        string          `json:"period_end,omitempty"`
	BeginningBalance decimal.Decimal `json:"beginning_balance"`
	EndingBalance    decimal.Decimal `json:"ending_balance"`
	HasBeginning     bool            `json:"has_beginning"`
	HasEnding        bool            `json:"has_ending"`
}

// CompanyInfo is the best-effort business name/address block extracted
// from a free-text statement, used to auto-associate it with an entity.
type CompanyInfo struct {
	Name       string  `json:"name,omitempty"`
	Street     string  `json:"street,omitempty"`
	City       string  `json:"city,omitempty"`
	Region     string  `json:"region,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	Confidence float64 `json:"confidence"`
}
