package format

import "github.com/finbooks/statement-ingest/internal/money"

// catalog is the ordered list of known export layouts. Order is
// precedence: detectors requiring several distinctive headers sit above
// looser ones, and the generic signed layout is always last.
var catalog = []Profile{
	{
		Key:         "chase-checking",
		DisplayName: "Chase Checking",
		Detect: func(h HeaderSet) bool {
			return h.HasAll("Posting Date", "Description")
		},
		FieldMap: FieldMap{
			FieldDate:            {"Posting Date"},
			FieldDescription:     {"Description"},
			FieldAmount:          {"Amount"},
			FieldCheckNumber:     {"Check or Slip #"},
			FieldType:            {"Type", "Details"},
			FieldReferenceNumber: {"Check or Slip #"},
		},
		DateLayouts: []string{"01/02/2006", "1/2/2006"},
		Convention:  money.Signed,
	},
	{
		Key:         "bank-of-america",
		DisplayName: "Bank of America",
		Detect: func(h HeaderSet) bool {
			return h.HasAll("Date", "Description", "Amount", "Running Bal.")
		},
		FieldMap: FieldMap{
			FieldDate:        {"Date"},
			FieldDescription: {"Description"},
			FieldAmount:      {"Amount"},
		},
		DateLayouts: []string{"01/02/2006"},
		Convention:  money.Signed,
	},
	{
		Key:         "wells-fargo",
		DisplayName: "Wells Fargo",
		Detect: func(h HeaderSet) bool {
			return h.HasAll("Date", "Amount", "Check Number") ||
				h.HasAll("Date", "Amount", "Check #")
		},
		FieldMap: FieldMap{
			FieldDate:        {"Date"},
			FieldDescription: {"Description", "Memo"},
			FieldAmount:      {"Amount"},
			FieldCheckNumber: {"Check Number", "Check #"},
		},
		DateLayouts: []string{"01/02/2006"},
		Convention:  money.Signed,
	},
	{
		Key:         "amex-card",
		DisplayName: "American Express",
		Detect: func(h HeaderSet) bool {
			return h.HasAll("Date", "Description", "Amount", "Reference")
		},
		FieldMap: FieldMap{
			FieldDate:            {"Date"},
			FieldDescription:     {"Description"},
			FieldAmount:          {"Amount"},
			FieldReferenceNumber: {"Reference"},
			FieldCategory:        {"Category"},
		},
		DateLayouts: []string{"01/02/2006", "01/02/06"},
		Convention:  money.Signed,
	},
	{
		Key:         "generic-split",
		DisplayName: "Generic Debit/Credit Export",
		Detect: func(h HeaderSet) bool {
			return h.HasAll("Date", "Debit", "Credit") ||
				h.HasAll("Transaction Date", "Debit", "Credit")
		},
		FieldMap: FieldMap{
			FieldDate:        {"Date", "Transaction Date", "Posted Date"},
			FieldDescription: {"Description", "Payee", "Memo", "Narrative"},
			FieldDebit:       {"Debit", "Withdrawal", "Money Out"},
			FieldCredit:      {"Credit", "Deposit", "Money In"},
			FieldCheckNumber: {"Check Number", "Check #"},
			FieldType:        {"Type", "Transaction Type"},
		},
		DateLayouts: []string{"01/02/2006", "2006-01-02"},
		Convention:  money.Split,
	},
	// Loosest detector; keep last so it never shadows a bank-specific one
	{
		Key:         "generic-signed",
		DisplayName: "Generic Bank Export",
		Detect: func(h HeaderSet) bool {
			return h.HasAll("Date", "Description", "Amount")
		},
		FieldMap: FieldMap{
			FieldDate:            {"Date", "Transaction Date", "Posted Date"},
			FieldDescription:     {"Description", "Payee", "Memo", "Narrative"},
			FieldAmount:          {"Amount", "Value"},
			FieldCheckNumber:     {"Check Number", "Check #"},
			FieldReferenceNumber: {"Reference", "Reference Number"},
			FieldCategory:        {"Category"},
			FieldType:            {"Type", "Transaction Type"},
		},
		DateLayouts: []string{"01/02/2006", "2006-01-02", "02/01/2006"},
		Convention:  money.Signed,
	},
}
