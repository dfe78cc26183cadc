package statement

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/finbooks/statement-ingest/internal/types"
)

// Confidence constants for the company pass. Low applies whenever no
// business name was found; the address alone is weak evidence.
const (
	companyConfidenceHigh = 0.75
	companyConfidenceLow  = 0.3
)

// businessKeywords mark a line as a likely business-entity name
var businessKeywords = []string{
	"inc", "inc.", "incorporated",
	"llc", "l.l.c.",
	"corp", "corp.", "corporation",
	"ltd", "ltd.", "limited",
	"llp", "partnership", "partners",
	"company", "co.",
	"enterprises", "associates", "holdings", "group",
}

var (
	streetRe = regexp.MustCompile(`(?i)^\d+\s+[A-Za-z0-9 .'-]+(?:\s+(?:st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|ln|lane|way|ct|court|pl|place|ste|suite|unit)\.?\b.*)?$`)
	cityRe   = regexp.MustCompile(`^(.+?),\s*([A-Z]{2})\s+(\d{5}(?:-\d{4})?)$`)
)

// extractCompany is a best-effort secondary pass over the statement text
// that looks for the account holder's business name and address block. It
// never blocks candidate extraction; when nothing convincing is found the
// result simply carries low confidence.
func extractCompany(lines []string) types.CompanyInfo {
	info := types.CompanyInfo{Confidence: companyConfidenceLow}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || !isBusinessName(line) {
			continue
		}

		info.Name = line
		info.Confidence = companyConfidenceHigh

		// The 1-3 lines after the name usually hold the address block
		for j := i + 1; j <= i+3 && j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				continue
			}
			if info.Street == "" && streetRe.MatchString(next) {
				info.Street = next
				continue
			}
			if m := cityRe.FindStringSubmatch(next); m != nil {
				info.City = strings.TrimSpace(m[1])
				info.Region = m[2]
				info.PostalCode = m[3]
				break
			}
		}
		break
	}

	return info
}

// statementNoise filters uppercase boilerplate that is never the account
// holder's name.
var statementNoise = []string{"bank", "statement", "balance", "account", "page", "deposit", "withdrawal", "transaction"}

// isBusinessName accepts lines carrying a business-entity keyword, or
// lines that are mostly uppercase and long enough to be a letterhead name.
func isBusinessName(line string) bool {
	lower := strings.ToLower(line)
	for _, noise := range statementNoise {
		if strings.Contains(lower, noise) {
			return false
		}
	}
	for _, kw := range businessKeywords {
		if strings.HasSuffix(lower, " "+kw) || strings.Contains(lower, " "+kw+" ") {
			return true
		}
	}
	return mostlyUppercase(line) && len(line) >= 10
}

func mostlyUppercase(line string) bool {
	var letters, upper int
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters < 5 {
		return false
	}
	return float64(upper)/float64(letters) >= 0.8
}
