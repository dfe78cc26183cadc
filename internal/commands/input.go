package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InputKind classifies an input file by extension
type InputKind string

const (
	InputDelimited InputKind = "delimited"
	InputQIF       InputKind = "qif"
	InputPDF       InputKind = "pdf"
	InputText      InputKind = "text"
)

// DetectInputKind picks the ingestion path for a file by extension
func DetectInputKind(path string) InputKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return InputDelimited
	case ".qif":
		return InputQIF
	case ".pdf":
		return InputPDF
	default:
		return InputText
	}
}

// ReadDelimited reads a delimited export, returning the header row and
// the data rows separately. Tab-separated files are handled by extension;
// ragged rows are tolerated since the normalizer treats short rows as
// missing fields.
func ReadDelimited(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		reader.Comma = '\t'
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: file is empty", path)
	}

	return records[0], records[1:], nil
}
