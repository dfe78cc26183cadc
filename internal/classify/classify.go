// Package classify maps free-text transaction descriptions to bookkeeping
// categories and bank type tokens to payment-method buckets. Rules are
// immutable ordered lists built once at init; nothing here mutates at
// runtime, so the package is safe for concurrent use.
package classify

import (
	"strings"

	"github.com/finbooks/statement-ingest/internal/types"
)

// CategoryBusinessIncome is the default category for inflow candidates
const CategoryBusinessIncome = "Business Income"

type rule struct {
	match    string
	category string
}

// merchantRules map known merchant substrings to categories. Checked
// before the generic keyword ladder; first match wins.
var merchantRules = []rule{
	{"home depot", "Repairs & Maintenance"},
	{"lowe's", "Repairs & Maintenance"},
	{"lowes", "Repairs & Maintenance"},
	{"staples", "Office Supplies"},
	{"office depot", "Office Supplies"},
	{"uline", "Supplies"},
	{"amazon", "Supplies"},
	{"amzn", "Supplies"},
	{"usps", "Postage & Shipping"},
	{"fedex", "Postage & Shipping"},
	{"ups store", "Postage & Shipping"},
	{"shell", "Fuel"},
	{"chevron", "Fuel"},
	{"exxon", "Fuel"},
	{"speedway", "Fuel"},
	{"wawa", "Fuel"},
	{"costco", "Supplies"},
	{"sam's club", "Supplies"},
	{"verizon", "Utilities"},
	{"at&t", "Utilities"},
	{"comcast", "Utilities"},
	{"geico", "Insurance"},
	{"state farm", "Insurance"},
	{"progressive", "Insurance"},
	{"godaddy", "Software & Subscriptions"},
	{"intuit", "Software & Subscriptions"},
	{"adobe", "Software & Subscriptions"},
	{"irs", "Taxes"},
	{"united states treasury", "Taxes"},
}

// incomeRules override the business-income default for inflows
var incomeRules = []rule{
	{"interest", "Interest Income"},
	{"refund", "Refunds"},
	{"rebate", "Refunds"},
}

// keywordRules is the generic fallback ladder for expenses
var keywordRules = []rule{
	{"fuel", "Fuel"},
	{"gas station", "Fuel"},
	{"restaurant", "Meals & Entertainment"},
	{"cafe", "Meals & Entertainment"},
	{"coffee", "Meals & Entertainment"},
	{"pizza", "Meals & Entertainment"},
	{"grill", "Meals & Entertainment"},
	{"diner", "Meals & Entertainment"},
	{"hotel", "Travel"},
	{"motel", "Travel"},
	{"inn ", "Travel"},
	{"airline", "Travel"},
	{"airways", "Travel"},
	{"office", "Office Supplies"},
	{"supply", "Supplies"},
	{"supplies", "Supplies"},
	{"service charge", "Bank Fees"},
	{"service fee", "Bank Fees"},
	{"monthly fee", "Bank Fees"},
	{"overdraft", "Bank Fees"},
	{"wire fee", "Bank Fees"},
}

// Classify maps a description and direction to a best-guess category.
// Pure and total: it never fails, only ever returns a category string,
// possibly the uncategorized sentinel.
func Classify(description string, direction types.Direction) string {
	// Trailing pad lets boundary-sensitive keywords like "inn " match at
	// the end of the description too.
	desc := strings.ToLower(description) + " "

	if direction == types.DirectionIncome {
		for _, r := range incomeRules {
			if strings.Contains(desc, r.match) {
				return r.category
			}
		}
		return CategoryBusinessIncome
	}

	for _, r := range merchantRules {
		if strings.Contains(desc, r.match) {
			return r.category
		}
	}
	for _, r := range keywordRules {
		if strings.Contains(desc, r.match) {
			return r.category
		}
	}
	return types.CategoryUncategorized
}

type methodRule struct {
	match  string
	method types.PaymentMethod
}

// methodRules is the payment-method ladder for bank-supplied type tokens.
// Order is significant: deposit/slip sits first so "check deposit" and
// "deposit slip" tokens are not shadowed by the looser check match below,
// and the named P2P services sit above "cash" so "cash app" is not
// swallowed by the generic cash match.
var methodRules = []methodRule{
	{"deposit", types.MethodBankTransfer},
	{"slip", types.MethodBankTransfer},
	{"check", types.MethodCheck},
	{"cheque", types.MethodCheck},
	{"debit", types.MethodDebitCard},
	{"pos", types.MethodDebitCard},
	{"point of sale", types.MethodDebitCard},
	{"credit card", types.MethodCreditCard},
	{"visa", types.MethodCreditCard},
	{"mastercard", types.MethodCreditCard},
	{"ach", types.MethodBankTransfer},
	{"transfer", types.MethodBankTransfer},
	{"wire", types.MethodBankTransfer},
	{"electronic", types.MethodBankTransfer},
	{"zelle", types.MethodPeerToPeer},
	{"venmo", types.MethodPeerToPeer},
	{"paypal", types.MethodPeerToPeer},
	{"cash app", types.MethodPeerToPeer},
	{"square", types.MethodPeerToPeer},
	{"atm", types.MethodCash},
	{"cash", types.MethodCash},
}

// MethodFromType infers the payment channel from a bank-supplied
// transaction-type token. The second return reports whether the token is
// a deposit/slip record, whose slip numbers live outside the issued-check
// namespace and must not surface as check numbers.
func MethodFromType(token string) (types.PaymentMethod, bool) {
	t := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(token), "_", " "))
	if t == "" {
		return types.MethodOther, false
	}

	isDeposit := strings.Contains(t, "deposit") || strings.Contains(t, "slip")
	for _, r := range methodRules {
		if strings.Contains(t, r.match) {
			return r.method, isDeposit
		}
	}
	return types.MethodOther, isDeposit
}
