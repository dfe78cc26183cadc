package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/finbooks/statement-ingest/internal/commands"
	"github.com/finbooks/statement-ingest/internal/delimited"
)

type CLI struct {
	commands.CommonConfig

	File string `arg:"" help:"Delimited export to preview" type:"existingfile"`
	Rows int    `help:"Number of sample rows to include" default:"5"`
}

// Run prints the headers-only fast path: the header row, a few sample
// rows, and what auto-detection made of them. Mapping UIs use this to
// show a preview before committing to a mapping choice.
func (c *CLI) Run() error {
	headers, rows, err := commands.ReadDelimited(c.File)
	if err != nil {
		return err
	}

	preview := delimited.Preview(headers, rows, c.Rows)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(preview)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("statement-preview"),
		kong.Description("Preview a delimited bank export and its detected format"),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
