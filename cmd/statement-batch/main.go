package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finbooks/statement-ingest/internal/commands"
	"github.com/finbooks/statement-ingest/internal/delimited"
	"github.com/finbooks/statement-ingest/internal/extractor"
	"github.com/finbooks/statement-ingest/internal/qif"
	"github.com/finbooks/statement-ingest/internal/statement"
	"github.com/finbooks/statement-ingest/internal/types"
)

type CLI struct {
	commands.CommonConfig

	Files       []string `arg:"" help:"Bank exports to normalize" type:"existingfile"`
	Concurrency int      `help:"Number of files to process concurrently" default:"4"`
	NoProgress  bool     `help:"Disable progress bar" default:"false"`
}

// FileResult pairs one input file with its normalization outcome
type FileResult struct {
	File       string            `json:"file"`
	Error      string            `json:"error,omitempty"`
	Candidates []types.Candidate `json:"candidates,omitempty"`
	Errors     []types.RowError  `json:"errors,omitempty"`
	Summary    types.Summary     `json:"summary"`
}

// BatchResult aggregates every file plus whole-run totals
type BatchResult struct {
	Files   []FileResult  `json:"files"`
	Summary types.Summary `json:"summary"`
}

func (c *CLI) Run() error {
	logger := c.Logger()

	var progress commands.Progress
	if c.NoProgress {
		progress = commands.NewNoopProgress()
	} else {
		progress = commands.NewBarProgress(len(c.Files), "Normalizing statements")
	}
	defer progress.Close()

	// The engine is stateless and pure, so files can be normalized
	// concurrently with no coordination beyond collecting results.
	results := make([]FileResult, len(c.Files))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(c.Concurrency)
	for i, file := range c.Files {
		i, file := i, file
		g.Go(func() error {
			result := normalizeFile(file, logger)
			mu.Lock()
			results[i] = result
			mu.Unlock()
			return progress.Add(1)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	batch := BatchResult{
		Files: results,
		Summary: types.Summary{
			TotalIncome:  decimal.Zero,
			TotalExpense: decimal.Zero,
		},
	}
	for _, r := range results {
		batch.Summary.Count += r.Summary.Count
		batch.Summary.TotalIncome = batch.Summary.TotalIncome.Add(r.Summary.TotalIncome)
		batch.Summary.TotalExpense = batch.Summary.TotalExpense.Add(r.Summary.TotalExpense)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(batch)
}

func normalizeFile(file string, logger *log.Logger) FileResult {
	result := FileResult{File: file}

	switch commands.DetectInputKind(file) {
	case commands.InputDelimited:
		headers, rows, err := commands.ReadDelimited(file)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		r, err := delimited.Normalize(headers, rows, delimited.Options{}, logger)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		if r.RequiresMapping {
			result.Error = "no format profile matched; run statement-ingest with --mapping"
			return result
		}
		result.Candidates = r.Candidates
		result.Errors = r.Errors
		result.Summary = r.Summary

	case commands.InputQIF:
		f, err := os.Open(file)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		defer f.Close()
		records, err := qif.ParseReader(f)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		r := qif.Normalize(records, logger)
		result.Candidates = r.Candidates
		result.Errors = r.Errors
		result.Summary = r.Summary

	case commands.InputPDF:
		text, err := extractor.ExtractText(file)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		r, err := statement.Extract(text, logger)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		result.Candidates = r.Candidates
		result.Summary = r.Summary

	default:
		data, err := os.ReadFile(file)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		r, err := statement.Extract(string(data), logger)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		result.Candidates = r.Candidates
		result.Summary = r.Summary
	}

	return result
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("statement-batch"),
		kong.Description("Normalize many bank exports concurrently"),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
