// Package collate assembles tree lines and file contents into one snapshot
// buffer and computes its approximate token metric. The buffer layout is a
// stable contract: Deconstruct parses it back.
package collate

import (
	"log/slog"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// TreeHeader opens the tree section of a snapshot buffer.
	TreeHeader = "Project File Structure"
	// FileHeaderPrefix opens each per-file block.
	FileHeaderPrefix = "FILE: "

	DefaultSeparatorChar   = "-"
	DefaultSeparatorLength = 80

	noMatchesNotice = "No files found matching the specified criteria for content aggregation."
)

// File is one entry to collate. RelPath is the slash-separated path used in
// the FILE: header; AbsPath is read for content.
type File struct {
	AbsPath string
	RelPath string
}

// Mode distinguishes the stats-key wording between the two tree variants.
type Mode int

const (
	ModeFilter Mode = iota
	ModeSearch
)

// Options control buffer layout and the token metric.
type Options struct {
	SeparatorChar   string
	SeparatorLength int
	TokenMode       TokenMode
	// ShowStatsKey prepends the legend explaining tree annotations.
	ShowStatsKey bool
	Mode         Mode
}

// Metrics describe the finished buffer.
type Metrics struct {
	Tokens int
	Bytes  int
	Files  int
	Mode   TokenMode
}

func (o Options) separator() string {
	char := o.SeparatorChar
	if char == "" {
		char = DefaultSeparatorChar
	}
	length := o.SeparatorLength
	if length <= 0 {
		length = DefaultSeparatorLength
	}
	return strings.Repeat(char, length)
}

// Collate builds the snapshot buffer. Files are expected sorted by relative
// path (case-insensitive); the contract is enforced here rather than trusted.
// An unreadable file contributes an inline error note, never a failure. Zero
// files and no tree yields an explicit no-matches notice.
func Collate(treeLines []string, files []File, opts Options) (string, Metrics) {
	files = append([]File(nil), files...)
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i].RelPath) < strings.ToLower(files[j].RelPath)
	})

	sep := opts.separator()
	var buf strings.Builder

	if len(treeLines) > 0 {
		buf.WriteString(TreeHeader + "\n" + sep + "\n\n")
		if opts.ShowStatsKey {
			buf.WriteString(statsKey(opts.Mode))
		}
		buf.WriteString(strings.Join(treeLines, "\n") + "\n")
		buf.WriteString("\n" + sep + "\n\n")
	}

	for _, f := range files {
		buf.WriteString(sep + "\n" + FileHeaderPrefix + f.RelPath + "\n" + sep + "\n\n")
		content, err := os.ReadFile(f.AbsPath)
		if err != nil {
			slog.Warn("Cannot read file during collation, writing placeholder.",
				"path", f.RelPath, "error", err)
			buf.WriteString("Error: Could not read file '" + f.RelPath + "'.\n\n")
			continue
		}
		buf.WriteString(sanitize(content))
		buf.WriteString("\n\n")
	}

	if len(files) == 0 && len(treeLines) == 0 {
		buf.WriteString(noMatchesNotice + "\n")
	}

	out := buf.String()
	metrics := Metrics{
		Tokens: CountTokens(out, opts.TokenMode),
		Bytes:  len(out),
		Files:  len(files),
		Mode:   opts.TokenMode.orDefault(),
	}
	return out, metrics
}

// sanitize converts raw bytes to a string, replacing undecodable sequences
// so a stray binary file degrades instead of corrupting the buffer.
func sanitize(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	return strings.ToValidUTF8(string(content), string(utf8.RuneError))
}

func statsKey(mode Mode) string {
	if mode == ModeSearch {
		return "Key: [M: Matched files/dirs]\n     (f=files, d=directories)\n\n"
	}
	return "Key: [I: Included f/d | T: Total f/d in original dir]\n     (f=files, d=directories)\n\n"
}

// TokenMode selects the approximate size metric.
type TokenMode string

const (
	TokensChars             TokenMode = "chars"
	TokensCharsNoWhitespace TokenMode = "chars-no-whitespace"
	TokensWords             TokenMode = "words"
	// TokensTiktoken counts with the cl100k_base BPE encoding. Falls back
	// to character counting when the encoder cannot be loaded.
	TokensTiktoken TokenMode = "tiktoken"
)

// ParseTokenMode validates a user-supplied mode name.
func ParseTokenMode(s string) (TokenMode, error) {
	switch TokenMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", TokensChars:
		return TokensChars, nil
	case TokensCharsNoWhitespace:
		return TokensCharsNoWhitespace, nil
	case TokensWords:
		return TokensWords, nil
	case TokensTiktoken:
		return TokensTiktoken, nil
	}
	return "", &UnknownTokenModeError{Name: s}
}

// UnknownTokenModeError reports an unrecognized token-count mode.
type UnknownTokenModeError struct{ Name string }

func (e *UnknownTokenModeError) Error() string {
	return "unknown token-count mode \"" + e.Name + "\" (known: chars, chars-no-whitespace, words, tiktoken)"
}

func (m TokenMode) orDefault() TokenMode {
	if m == "" {
		return TokensChars
	}
	return m
}

// CountTokens computes the metric for text under the given mode.
func CountTokens(text string, mode TokenMode) int {
	switch mode.orDefault() {
	case TokensCharsNoWhitespace:
		n := 0
		for _, r := range text {
			if !unicode.IsSpace(r) {
				n++
			}
		}
		return n
	case TokensWords:
		return len(strings.Fields(text))
	case TokensTiktoken:
		return countTiktoken(text)
	default:
		return utf8.RuneCountInString(text)
	}
}
