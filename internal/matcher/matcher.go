// Package matcher tests a single file against a keyword set, by name and
// optionally by content.
package matcher

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options control how keywords are applied to a file.
type Options struct {
	// SearchContents enables the line-by-line content scan after a name
	// miss.
	SearchContents bool
	// CompareFullPath matches keywords against the whole lower-cased path
	// instead of just the basename.
	CompareFullPath bool
	// ScanBinary forces content scanning of files whose extension looks
	// binary.
	ScanBinary bool
}

// Extensions skipped from content scanning unless explicitly overridden.
// Name matching still applies to them.
var binaryExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".ico": {},
	".pdf": {}, ".zip": {}, ".gz": {}, ".tar": {}, ".bz2": {}, ".xz": {}, ".7z": {},
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".bin": {}, ".wasm": {},
	".class": {}, ".jar": {}, ".pyc": {}, ".o": {}, ".a": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".otf": {}, ".eot": {},
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".sqlite": {}, ".db": {},
}

// Lines longer than this abort the content scan for that file; the file is
// almost certainly not text.
const maxLineBytes = 1 << 20

// NormalizeKeywords trims, lower-cases, and drops empty keywords.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Match reports whether the file at absPath matches any keyword. Keywords
// must already be normalized. The cheap name check runs first and
// short-circuits; the content scan, when enabled, stops at the first
// matching line. An unreadable file is "no match", never an error.
func Match(absPath string, keywords []string, opts Options) bool {
	target := filepath.Base(absPath)
	if opts.CompareFullPath {
		target = absPath
	}
	target = strings.ToLower(target)
	for _, k := range keywords {
		if strings.Contains(target, k) {
			return true
		}
	}

	if !opts.SearchContents {
		return false
	}
	if !opts.ScanBinary {
		ext := strings.ToLower(filepath.Ext(absPath))
		if _, skip := binaryExtensions[ext]; skip {
			return false
		}
	}
	return matchContents(absPath, keywords)
}

func matchContents(absPath string, keywords []string) bool {
	f, err := os.Open(absPath)
	if err != nil {
		slog.Debug("Cannot open file for content scan, treating as no match.",
			"path", absPath, "error", err)
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		// Lower-casing replaces undecodable bytes with U+FFFD, so a
		// binary-ish line degrades to "no match" instead of an error.
		line := strings.ToLower(scanner.Text())
		for _, k := range keywords {
			if strings.Contains(line, k) {
				return true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Debug("Content scan stopped early, treating as no match.",
			"path", absPath, "error", err)
	}
	return false
}
