package collate

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Snapshot is the parseable structure recovered from a collated buffer.
type Snapshot struct {
	TreeLines []string
	FilePaths []string
}

type parseState int

const (
	seekingTree parseState = iota
	readingTree
	seekingContent
	readingContent
)

// Deconstruct is the inverse of Collate: a line-oriented state machine that
// recovers the tree lines and the ordered FILE: paths from a snapshot
// buffer. separatorChar may be empty for the default. Legend (Key:) lines
// are stripped from the tree section.
func Deconstruct(r io.Reader, separatorChar string) (*Snapshot, error) {
	if separatorChar == "" {
		separatorChar = DefaultSeparatorChar
	}
	separator := regexp.MustCompile("^" + regexp.QuoteMeta(separatorChar) + "{4,}$")

	snap := &Snapshot{}
	state := seekingTree

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxSnapshotLine)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch state {
		case seekingTree:
			if line == TreeHeader {
				state = readingTree
				continue
			}
			// Buffers written without a tree section jump straight to
			// file blocks.
			if strings.HasPrefix(line, FileHeaderPrefix) {
				snap.FilePaths = append(snap.FilePaths,
					strings.TrimSpace(strings.TrimPrefix(line, FileHeaderPrefix)))
				state = readingContent
			}
		case readingTree:
			if line == "" || separator.MatchString(line) {
				if len(snap.TreeLines) > 0 && separator.MatchString(line) {
					state = seekingContent
				}
				continue
			}
			if isLegendLine(line) {
				continue
			}
			snap.TreeLines = append(snap.TreeLines, line)
		case seekingContent, readingContent:
			if strings.HasPrefix(line, FileHeaderPrefix) {
				snap.FilePaths = append(snap.FilePaths,
					strings.TrimSpace(strings.TrimPrefix(line, FileHeaderPrefix)))
				state = readingContent
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return snap, nil
}

const maxSnapshotLine = 4 << 20

func isLegendLine(line string) bool {
	return strings.HasPrefix(line, "Key:") || strings.HasPrefix(line, "(f=files")
}
