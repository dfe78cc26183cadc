package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/finbooks/statement-ingest/internal/commands"
	"github.com/finbooks/statement-ingest/internal/delimited"
	"github.com/finbooks/statement-ingest/internal/extractor"
	"github.com/finbooks/statement-ingest/internal/qif"
	"github.com/finbooks/statement-ingest/internal/statement"
)

type CLI struct {
	commands.CommonConfig

	File       string `arg:"" help:"Bank export to normalize (.csv, .tsv, .qif, .pdf, or plain text)" type:"existingfile"`
	Format     string `help:"Format profile key to use instead of auto-detection" default:""`
	Mapping    string `help:"Path to a YAML custom column mapping" type:"existingfile" optional:""`
	DateLayout string `help:"Date layout hint tried before the profile's own layouts (Go reference layout)" default:""`
	Compact    bool   `help:"Emit compact JSON instead of indented" default:"false"`
}

func (c *CLI) Run() error {
	logger := c.Logger()

	var result any
	var err error

	switch kind := commands.DetectInputKind(c.File); kind {
	case commands.InputDelimited:
		headers, rows, readErr := commands.ReadDelimited(c.File)
		if readErr != nil {
			return readErr
		}
		opts := delimited.Options{FormatKey: c.Format, DateLayout: c.DateLayout}
		if c.Mapping != "" {
			opts.FormatKey = delimited.FormatCustom
			opts.Custom, err = commands.LoadMapping(c.Mapping)
			if err != nil {
				return err
			}
		}
		result, err = delimited.Normalize(headers, rows, opts, logger)

	case commands.InputQIF:
		f, openErr := os.Open(c.File)
		if openErr != nil {
			return openErr
		}
		defer f.Close()
		records, parseErr := qif.ParseReader(f)
		if parseErr != nil {
			return parseErr
		}
		result = qif.Normalize(records, logger)

	case commands.InputPDF:
		text, exErr := extractor.ExtractText(c.File)
		if exErr != nil {
			return exErr
		}
		result, err = statement.Extract(text, logger)

	default:
		data, readErr := os.ReadFile(c.File)
		if readErr != nil {
			return readErr
		}
		result, err = statement.Extract(string(data), logger)
	}
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	if !c.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(result)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("statement-ingest"),
		kong.Description("Normalize a bank export into canonical transaction candidates"),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
