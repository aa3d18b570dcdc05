// Package terms generates standardized term vocabulary files for a community
// configuration directory from the spreadsheets named in its terms manifest.
package terms

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/neurobagel/communities/internal/jsonfile"
	"github.com/neurobagel/communities/internal/logger"
	"github.com/neurobagel/communities/internal/manifest"
	"github.com/neurobagel/communities/internal/progress"
	"github.com/neurobagel/communities/internal/vocab"
)

// ErrUnknownEntry is returned when a requested output file is not in the manifest.
var ErrUnknownEntry = errors.New("no manifest entry for output file")

// TableSource fetches the term table of a spreadsheet.
type TableSource interface {
	FetchTable(ctx context.Context, spreadsheetID string) (vocab.Table, error)
}

// Reporter receives per-entry progress. *progress.ProgressDisplay satisfies it.
type Reporter interface {
	StartStage(stage progress.StageInfo) error
	CompleteStage(stage progress.StageInfo) error
	FailStage(stage progress.StageInfo, err error) error
}

// Step names the pipeline step an entry failed in.
type Step string

const (
	StepFetch    Step = "fetch"
	StepValidate Step = "validate"
	StepWrite    Step = "write"
)

// EntryError reports the failure of one manifest entry.
type EntryError struct {
	OutputFile    string
	SpreadsheetID string
	Step          Step
	Err           error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s (%s from sheet %s): %v", e.OutputFile, e.Step, e.SpreadsheetID, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// Generator turns manifest entries into vocabulary files.
type Generator struct {
	Source   TableSource
	Logger   logger.Logger
	Progress Reporter
}

// Result describes one generated file.
type Result struct {
	Path    string
	Terms   int
	Removed []vocab.InvalidTerm
}

// NewGenerator creates a Generator reading tables from source.
func NewGenerator(source TableSource, log logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{Source: source, Logger: log}
}

// Run processes the manifest entries in order and stops at the first failure.
// Files written before the failure are kept. A non-empty only restricts the run
// to the entry producing that output file.
func (g *Generator) Run(ctx context.Context, m *manifest.Manifest, only string) ([]Result, error) {
	entries := m.Entries
	if only != "" {
		e, ok := m.Entry(filepath.Base(only))
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEntry, only)
		}
		entries = []manifest.Entry{e}
	}

	results := make([]Result, 0, len(entries))
	for i, e := range entries {
		stage := progress.StageInfo{Name: e.OutputFile, Number: i + 1, TotalStages: len(entries)}
		g.startStage(stage)

		res, err := g.Generate(ctx, m.OutputPath(e), e)
		if err != nil {
			g.failStage(stage, err)
			return results, err
		}
		g.completeStage(stage)
		results = append(results, res)
	}
	return results, nil
}

// Generate fetches, validates and writes the vocabulary for a single entry.
func (g *Generator) Generate(ctx context.Context, path string, e manifest.Entry) (Result, error) {
	g.Logger.Info(fmt.Sprintf("Generating %s from Google Sheet ID %s...", path, e.SourceSpreadsheetID))

	fail := func(step Step, err error) (Result, error) {
		return Result{}, &EntryError{
			OutputFile:    e.OutputFile,
			SpreadsheetID: e.SourceSpreadsheetID,
			Step:          step,
			Err:           err,
		}
	}

	table, err := g.Source.FetchTable(ctx, e.SourceSpreadsheetID)
	if err != nil {
		return fail(StepFetch, err)
	}

	validated, err := vocab.Prepare(table)
	if err != nil {
		return fail(StepValidate, err)
	}

	filtered, removed := vocab.RemoveInvalidRows(validated)
	vocab.LogRemoved(g.Logger, removed)

	if err := jsonfile.Write(path, vocab.Assemble(filtered, e.Metadata())); err != nil {
		return fail(StepWrite, err)
	}

	g.Logger.Info(fmt.Sprintf("Successfully generated %s.", path))
	return Result{Path: path, Terms: filtered.Len(), Removed: removed}, nil
}

func (g *Generator) startStage(s progress.StageInfo) {
	if g.Progress != nil {
		g.reportProgress(g.Progress.StartStage(s))
	}
}

func (g *Generator) completeStage(s progress.StageInfo) {
	if g.Progress != nil {
		g.reportProgress(g.Progress.CompleteStage(s))
	}
}

func (g *Generator) failStage(s progress.StageInfo, err error) {
	if g.Progress != nil {
		g.reportProgress(g.Progress.FailStage(s, err))
	}
}

// reportProgress logs display errors at debug level; they never fail a run.
func (g *Generator) reportProgress(err error) {
	if err != nil {
		g.Logger.Debug("progress display failed", "error", err)
	}
}
