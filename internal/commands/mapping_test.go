package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/statement-ingest/internal/format"
)

func writeTempMapping(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMapping(t *testing.T) {
	path := writeTempMapping(t, `
date: ["Posting Date"]
description: ["Description", "Memo"]
debit: ["Money Out"]
credit: ["Money In"]
`)

	fieldMap, err := LoadMapping(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Posting Date"}, fieldMap[format.FieldDate])
	assert.Equal(t, []string{"Description", "Memo"}, fieldMap[format.FieldDescription])
	assert.Len(t, fieldMap, 4)
}

func TestLoadMappingUnknownField(t *testing.T) {
	path := writeTempMapping(t, `
date: ["Posting Date"]
banana: ["Peel"]
`)

	_, err := LoadMapping(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "banana")
}

func TestLoadMappingMissingFile(t *testing.T) {
	_, err := LoadMapping(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDetectInputKind(t *testing.T) {
	assert.Equal(t, InputDelimited, DetectInputKind("export.csv"))
	assert.Equal(t, InputDelimited, DetectInputKind("export.TSV"))
	assert.Equal(t, InputQIF, DetectInputKind("export.qif"))
	assert.Equal(t, InputPDF, DetectInputKind("statement.pdf"))
	assert.Equal(t, InputText, DetectInputKind("statement.txt"))
}

func TestReadDelimited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,Description,Amount\n03/01/2024,COFFEE,-4.50\n"), 0o644))

	headers, rows, err := ReadDelimited(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"03/01/2024", "COFFEE", "-4.50"}, rows[0])
}
