package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finbooks/statement-ingest/internal/format"
)

// mappingFile is the YAML shape of a caller-supplied column mapping:
//
//	date: ["Posting Date"]
//	description: ["Description", "Memo"]
//	debit: ["Money Out"]
//	credit: ["Money In"]
type mappingFile map[string][]string

// knownFields guards against typos in mapping files
var knownFields = map[format.Field]bool{
	format.FieldDate:            true,
	format.FieldDescription:     true,
	format.FieldAmount:          true,
	format.FieldDebit:           true,
	format.FieldCredit:          true,
	format.FieldCheckNumber:     true,
	format.FieldReferenceNumber: true,
	format.FieldCategory:        true,
	format.FieldType:            true,
}

// LoadMapping reads a custom field mapping from a YAML file
func LoadMapping(path string) (format.FieldMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping file: %w", err)
	}

	var raw mappingFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing mapping file: %w", err)
	}

	fieldMap := make(format.FieldMap, len(raw))
	for name, columns := range raw {
		field := format.Field(name)
		if !knownFields[field] {
			return nil, fmt.Errorf("mapping file: unknown field %q", name)
		}
		fieldMap[field] = columns
	}
	return fieldMap, nil
}
