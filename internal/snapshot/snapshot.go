// Package snapshot orchestrates a full dirsnap run: criteria normalization,
// the filesystem walk, optional concurrent keyword scanning, tree rendering,
// and collation into the output buffer.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ataylor/dirsnap/internal/collate"
	"github.com/ataylor/dirsnap/internal/criteria"
	"github.com/ataylor/dirsnap/internal/matcher"
	"github.com/ataylor/dirsnap/internal/progress"
	"github.com/ataylor/dirsnap/internal/scan"
	"github.com/ataylor/dirsnap/internal/tree"
	"github.com/ataylor/dirsnap/internal/walker"
)

// ErrNoKeywords marks a search invoked without any usable keyword. Fatal
// before any content is read.
var ErrNoKeywords = errors.New("search requires at least one non-empty keyword")

// ErrOutputWrite marks a failure to write the output file. The scan itself
// completed; the returned Result still carries everything it produced.
var ErrOutputWrite = errors.New("cannot write output file")

// Mode selects between the two operations.
type Mode int

const (
	// ModeFilter snapshots every file passing the criteria.
	ModeFilter Mode = iota
	// ModeSearch additionally gates files by keyword matches.
	ModeSearch
)

// Options configure one run. The zero value of Style means tree.Unicode.
type Options struct {
	Root     string
	Mode     Mode
	Criteria criteria.Inputs

	Keywords        []string
	SearchContents  bool
	CompareFullPath bool
	ScanBinary      bool
	MaxWorkers      int

	GenerateTree  bool
	ShowTreeStats bool
	Style         tree.Style

	TokenMode       collate.TokenMode
	SeparatorChar   string
	SeparatorLength int

	UseGitignore bool

	// OutputPath, when non-empty, receives the collated buffer. Parent
	// directories are created as needed.
	OutputPath string

	Reporter progress.Reporter
}

// Result carries everything a run produced.
type Result struct {
	TreeLines []string
	Matched   []walker.Candidate
	Metrics   collate.Metrics
	Buffer    string
	Summary   scan.Summary
}

// Run executes one snapshot or search pass. Fatal conditions (bad root,
// empty keyword set) are detected before any scanning; per-file failures
// degrade and never abort the batch.
func Run(ctx context.Context, opts Options) (*Result, error) {
	absRoot, err := walker.ValidateRoot(opts.Root)
	if err != nil {
		return nil, err
	}

	var keywords []string
	if opts.Mode == ModeSearch {
		keywords = matcher.NormalizeKeywords(opts.Keywords)
		if len(keywords) == 0 {
			return nil, ErrNoKeywords
		}
	}

	crit := criteria.Normalize(opts.Criteria)
	style := opts.Style
	if style == (tree.Style{}) {
		style = tree.Unicode
	}

	walkMode := walker.ModeFilter
	if opts.Mode == ModeSearch {
		walkMode = walker.ModeSearch
	}
	candidates, err := walker.Walk(absRoot, crit, walker.Options{
		Mode:         walkMode,
		UseGitignore: opts.UseGitignore,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Walk finished.", "root", absRoot, "candidates", len(candidates))

	result := &Result{}
	switch opts.Mode {
	case ModeSearch:
		coord := &scan.Coordinator{
			Workers:  opts.MaxWorkers,
			Keywords: keywords,
			Opts: matcher.Options{
				SearchContents:  opts.SearchContents,
				CompareFullPath: opts.CompareFullPath,
				ScanBinary:      opts.ScanBinary,
			},
			Reporter: opts.Reporter,
			Activity: &scan.Activity{},
		}
		result.Matched, result.Summary = coord.Run(ctx, candidates)
		walker.SortCandidates(result.Matched)
		if opts.GenerateTree && len(result.Matched) > 0 {
			rels := make([]string, len(result.Matched))
			for i, m := range result.Matched {
				rels[i] = m.RelPath
			}
			result.TreeLines = tree.RenderPaths(filepath.Base(absRoot), rels, style, opts.ShowTreeStats)
		}
	default:
		result.Matched = candidates
		walker.SortCandidates(result.Matched)
		result.Summary = scan.Summary{Submitted: len(candidates), Matched: len(candidates)}
		if opts.GenerateTree {
			result.TreeLines = tree.RenderFilesystem(absRoot, crit, style, opts.ShowTreeStats)
		}
	}

	files := make([]collate.File, len(result.Matched))
	for i, m := range result.Matched {
		files[i] = collate.File{AbsPath: m.AbsPath, RelPath: m.RelPath}
	}
	collateMode := collate.ModeFilter
	if opts.Mode == ModeSearch {
		collateMode = collate.ModeSearch
	}
	result.Buffer, result.Metrics = collate.Collate(result.TreeLines, files, collate.Options{
		SeparatorChar:   opts.SeparatorChar,
		SeparatorLength: opts.SeparatorLength,
		TokenMode:       opts.TokenMode,
		ShowStatsKey:    opts.ShowTreeStats && len(result.TreeLines) > 0,
		Mode:            collateMode,
	})

	if opts.OutputPath != "" {
		if err := writeOutput(opts.OutputPath, result.Buffer); err != nil {
			// The scan completed; hand the results back alongside the
			// write failure so nothing is silently lost.
			return result, err
		}
		slog.Info("Output written.", "path", opts.OutputPath,
			"files", result.Metrics.Files, "tokens", result.Metrics.Tokens)
	}
	return result, nil
}

func writeOutput(path, buffer string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrOutputWrite, path, err)
	}
	if dir := filepath.Dir(abs); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrOutputWrite, path, err)
		}
	}
	if err := os.WriteFile(abs, []byte(buffer), 0644); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrOutputWrite, path, err)
	}
	return nil
}
