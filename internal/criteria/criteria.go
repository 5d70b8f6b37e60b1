// Package criteria normalizes raw include/exclude token lists and named
// presets into one canonical filter specification.
package criteria

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Criteria holds normalized, deduplicated filter sets. All members are
// lower-cased; extensions carry their leading dot. Extensions and ExactNames
// are disjoint by construction: a file-type token is routed to exactly one of
// them based on its leading dot.
type Criteria struct {
	Extensions          map[string]struct{}
	ExactNames          map[string]struct{}
	IgnoreExtensions    map[string]struct{}
	IgnoreComponents    map[string]struct{}
	WhitelistSubstrings []string
	IgnoreSubstrings    []string
	ExcludeGlobs        []string
}

// Inputs are the raw override lists plus chosen presets. Presets only add
// rules, never remove them.
type Inputs struct {
	FileTypes           []string
	IgnoreExtensions    []string
	IgnoreComponents    []string
	WhitelistSubstrings []string
	IgnoreSubstrings    []string
	ExcludeGlobs        []string
	LanguagePresets     []LanguageTag
	IgnorePresets       []IgnoreTag
}

// Normalize builds a Criteria from Inputs. Tokens are trimmed and
// lower-cased; empty tokens are dropped silently. Invalid exclude glob
// patterns are logged and skipped, matching how invalid patterns are
// tolerated elsewhere in the pipeline. Deterministic regardless of preset
// ordering: everything lands in sets.
func Normalize(in Inputs) *Criteria {
	fileTypes := append([]string(nil), in.FileTypes...)
	ignoreComponents := append([]string(nil), in.IgnoreComponents...)
	ignoreSubstrings := append([]string(nil), in.IgnoreSubstrings...)

	for _, tag := range in.LanguagePresets {
		fileTypes = append(fileTypes, languagePresets[tag]...)
	}
	// Ignore presets contribute both as path components and as filename
	// substrings, same as the manual ignore lists they extend.
	for _, tag := range in.IgnorePresets {
		ignoreComponents = append(ignoreComponents, ignorePresets[tag]...)
		ignoreSubstrings = append(ignoreSubstrings, ignorePresets[tag]...)
	}

	c := &Criteria{
		Extensions:       make(map[string]struct{}),
		ExactNames:       make(map[string]struct{}),
		IgnoreExtensions: make(map[string]struct{}),
		IgnoreComponents: make(map[string]struct{}),
	}

	for _, ft := range fileTypes {
		tok := strings.ToLower(strings.TrimSpace(ft))
		switch {
		case tok == "":
		case strings.HasPrefix(tok, "."):
			c.Extensions[tok] = struct{}{}
		default:
			c.ExactNames[tok] = struct{}{}
		}
	}
	for _, ext := range in.IgnoreExtensions {
		tok := strings.ToLower(strings.TrimSpace(ext))
		if tok == "" {
			continue
		}
		if !strings.HasPrefix(tok, ".") {
			tok = "." + tok
		}
		c.IgnoreExtensions[tok] = struct{}{}
	}
	for _, comp := range ignoreComponents {
		tok := strings.ToLower(strings.TrimSpace(comp))
		if tok != "" {
			c.IgnoreComponents[tok] = struct{}{}
		}
	}
	c.WhitelistSubstrings = normalizeSubstrings(in.WhitelistSubstrings)
	c.IgnoreSubstrings = normalizeSubstrings(ignoreSubstrings)

	for _, pattern := range in.ExcludeGlobs {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			slog.Warn("Invalid exclude glob pattern syntax, ignoring.", "pattern", pattern)
			continue
		}
		c.ExcludeGlobs = append(c.ExcludeGlobs, pattern)
	}
	return c
}

func normalizeSubstrings(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		tok := strings.ToLower(strings.TrimSpace(s))
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// PruneDir reports whether a directory entry of the given name should be
// skipped without descending.
func (c *Criteria) PruneDir(name string) bool {
	_, ok := c.IgnoreComponents[strings.ToLower(name)]
	return ok
}

// ExcludedByGlob reports whether a slash-separated relative path matches any
// exclude glob pattern.
func (c *Criteria) ExcludedByGlob(relPath string) bool {
	for _, pattern := range c.ExcludeGlobs {
		if doublestar.MatchUnvalidated(pattern, relPath) {
			return true
		}
	}
	return false
}

// IncludeFile applies the full filter-mode classification to a file name:
// ignore-component and ignore-extension first (ignore always wins), then
// extension or exact-name membership (an empty include set matches
// everything), then the whitelist and ignore filename substrings. Ignored
// path components apply to every part of a relative path, so a plain file
// named like a pruned directory is rejected too.
func (c *Criteria) IncludeFile(name string) bool {
	lower := strings.ToLower(name)
	ext := strings.ToLower(filepath.Ext(name))

	if _, pruned := c.IgnoreComponents[lower]; pruned {
		return false
	}
	if _, banned := c.IgnoreExtensions[ext]; banned {
		return false
	}
	if len(c.Extensions) > 0 || len(c.ExactNames) > 0 {
		_, byExt := c.Extensions[ext]
		_, byName := c.ExactNames[lower]
		if !byExt && !byName {
			return false
		}
	}
	if len(c.WhitelistSubstrings) > 0 && !containsAny(lower, c.WhitelistSubstrings) {
		return false
	}
	if containsAny(lower, c.IgnoreSubstrings) {
		return false
	}
	return true
}

// CandidateFile applies the looser search-mode classification: only the
// extension sets gate candidacy, the keyword matcher decides the rest.
func (c *Criteria) CandidateFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if _, banned := c.IgnoreExtensions[ext]; banned {
		return false
	}
	if len(c.Extensions) == 0 {
		return true
	}
	_, ok := c.Extensions[ext]
	return ok
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
