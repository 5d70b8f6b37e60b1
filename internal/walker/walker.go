// Package walker enumerates files under a root directory, pruning ignored
// subtrees before descending into them.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/boyter/gocodewalker"

	"github.com/ataylor/dirsnap/internal/criteria"
)

// ErrRootNotFound marks an invalid or missing root directory. Fatal: nothing
// is scanned when the root cannot be resolved.
var ErrRootNotFound = errors.New("root directory not found")

// Candidate is a file that passed path-level filtering and is eligible for
// further matching. RelPath is slash-separated regardless of platform.
type Candidate struct {
	AbsPath string
	RelPath string
}

// Mode selects which classification the walker applies to files.
type Mode int

const (
	// ModeFilter applies the full criteria (extensions, exact names,
	// filename substrings). Every surviving file is a match.
	ModeFilter Mode = iota
	// ModeSearch applies only the extension gates; keyword matching
	// happens downstream.
	ModeSearch
)

// Options control a walk.
type Options struct {
	Mode Mode
	// UseGitignore switches to gitignore-aware enumeration. Ignore
	// components are still honored on the results.
	UseGitignore bool
}

// ValidateRoot resolves root to an absolute path and verifies it is an
// existing directory.
func ValidateRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrRootNotFound, root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrRootNotFound, root)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %q is not a directory", ErrRootNotFound, root)
	}
	return abs, nil
}

// Walk enumerates candidate files under root according to crit and opts.
// Permission errors and entries that vanish mid-walk yield zero entries for
// the affected directory, never a fatal error. Order of the returned slice
// is unspecified.
func Walk(root string, crit *criteria.Criteria, opts Options) ([]Candidate, error) {
	absRoot, err := ValidateRoot(root)
	if err != nil {
		return nil, err
	}
	if opts.UseGitignore {
		return walkGitignore(absRoot, crit, opts.Mode)
	}
	return walkPlain(absRoot, crit, opts.Mode)
}

func walkPlain(absRoot string, crit *criteria.Criteria, mode Mode) ([]Candidate, error) {
	var candidates []Candidate
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory or entry gone mid-walk: treat as
			// zero entries found here.
			slog.Debug("Skipping unreadable entry during walk.", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			if path != absRoot && crit.PruneDir(d.Name()) {
				slog.Debug("Pruning ignored subtree.", "path", path)
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if c, ok := classify(path, rel, d.Name(), crit, mode); ok {
			candidates = append(candidates, c)
		}
		return nil
	})
	if walkErr != nil {
		// The callback never propagates errors, so this is unexpected.
		return candidates, fmt.Errorf("walking %q: %w", absRoot, walkErr)
	}
	return candidates, nil
}

// walkGitignore delegates enumeration to gocodewalker so .gitignore and
// .ignore files are honored. Ignore components are handed to the walker for
// eager pruning and re-checked case-insensitively on every result, since the
// walker compares directory names exactly.
func walkGitignore(absRoot string, crit *criteria.Criteria, mode Mode) ([]Candidate, error) {
	queue := make(chan *gocodewalker.File, 100)
	fw := gocodewalker.NewFileWalker(absRoot, queue)
	fw.IgnoreGitIgnore = false
	fw.IgnoreIgnoreFile = false
	// The plain walker surfaces dotfiles, so keep the behaviors aligned.
	fw.IncludeHidden = true
	for comp := range crit.IgnoreComponents {
		fw.ExcludeDirectory = append(fw.ExcludeDirectory, comp)
	}
	fw.SetErrorHandler(func(e error) bool {
		slog.Debug("Walker reported error, continuing.", "error", e)
		return true
	})

	var startErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		startErr = fw.Start()
	}()

	var candidates []Candidate
	for f := range queue {
		rel, relErr := filepath.Rel(absRoot, f.Location)
		if relErr != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if hasIgnoredComponent(rel, crit) {
			continue
		}
		if c, ok := classify(f.Location, rel, f.Filename, crit, mode); ok {
			candidates = append(candidates, c)
		}
	}
	<-done
	if startErr != nil {
		return candidates, fmt.Errorf("walking %q: %w", absRoot, startErr)
	}
	return candidates, nil
}

func classify(absPath, relPath, name string, crit *criteria.Criteria, mode Mode) (Candidate, bool) {
	if crit.ExcludedByGlob(relPath) {
		return Candidate{}, false
	}
	var ok bool
	switch mode {
	case ModeSearch:
		ok = crit.CandidateFile(name)
	default:
		ok = crit.IncludeFile(name)
	}
	if !ok {
		return Candidate{}, false
	}
	return Candidate{AbsPath: absPath, RelPath: relPath}, true
}

// hasIgnoredComponent guards the prune invariant for the library-driven
// walk: no ignored component may appear at any depth of a candidate path.
func hasIgnoredComponent(relPath string, crit *criteria.Criteria) bool {
	if len(crit.IgnoreComponents) == 0 {
		return false
	}
	parts := strings.Split(relPath, "/")
	for _, part := range parts[:len(parts)-1] {
		if crit.PruneDir(part) {
			return true
		}
	}
	return false
}

// SortCandidates orders candidates by relative path, case-insensitive. This
// ordering is the contract every output-facing consumer relies on.
func SortCandidates(cands []Candidate) {
	sort.Slice(cands, func(i, j int) bool {
		return strings.ToLower(cands[i].RelPath) < strings.ToLower(cands[j].RelPath)
	})
}
