package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ataylor/dirsnap/internal/matcher"
	"github.com/ataylor/dirsnap/internal/walker"
)

func writeCandidates(t *testing.T, dir string, contents map[string]string) []walker.Candidate {
	t.Helper()
	names := make([]string, 0, len(contents))
	for name := range contents {
		names = append(names, name)
	}
	sort.Strings(names)
	cands := make([]walker.Candidate, 0, len(names))
	for _, name := range names {
		abs := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, []byte(contents[name]), 0644))
		cands = append(cands, walker.Candidate{AbsPath: abs, RelPath: name})
	}
	return cands
}

func TestCoordinator_MatchesByContent(t *testing.T) {
	tempDir := t.TempDir()
	cands := writeCandidates(t, tempDir, map[string]string{
		"src/config.json": `{"key": "secret-key-abc"}`,
		"main.py":         "print('hello')",
		"notes.txt":       "nothing relevant",
	})

	c := &Coordinator{
		Keywords: matcher.NormalizeKeywords([]string{"secret-key"}),
		Opts:     matcher.Options{SearchContents: true},
	}
	matched, summary := c.Run(context.Background(), cands)

	walker.SortCandidates(matched)
	require.Len(t, matched, 1)
	assert.Equal(t, "src/config.json", matched[0].RelPath)
	assert.Equal(t, Summary{Submitted: 3, Matched: 1, Unmatched: 2}, summary)
}

// Every submitted candidate is accounted for regardless of scheduling, even
// when some files are unreadable.
func TestCoordinator_AccountsForAllCandidates(t *testing.T) {
	tempDir := t.TempDir()
	contents := make(map[string]string, 1000)
	for i := 0; i < 1000; i++ {
		body := "filler"
		if i%7 == 0 {
			body = "needle inside"
		}
		contents[fmt.Sprintf("f/%04d.txt", i)] = body
	}
	cands := writeCandidates(t, tempDir, contents)
	// A vanished file must count as unmatched, not vanish from accounting.
	cands = append(cands, walker.Candidate{
		AbsPath: filepath.Join(tempDir, "gone.txt"),
		RelPath: "gone.txt",
	})

	c := &Coordinator{
		Workers:  4,
		Keywords: []string{"needle"},
		Opts:     matcher.Options{SearchContents: true},
	}
	matched, summary := c.Run(context.Background(), cands)

	assert.Equal(t, 1001, summary.Submitted)
	assert.Equal(t, summary.Submitted, summary.Matched+summary.Unmatched)
	assert.Len(t, matched, summary.Matched)
	assert.Equal(t, 143, summary.Matched, "ceil(1000/7) files carry the needle")
}

func TestCoordinator_EmptyCandidateSet(t *testing.T) {
	c := &Coordinator{Keywords: []string{"k"}}
	matched, summary := c.Run(context.Background(), nil)

	assert.Empty(t, matched)
	assert.Equal(t, Summary{}, summary)
}

func TestCoordinator_ActivityBoundedByWorkers(t *testing.T) {
	tempDir := t.TempDir()
	contents := make(map[string]string, 200)
	for i := 0; i < 200; i++ {
		contents[fmt.Sprintf("%03d.txt", i)] = "body"
	}
	cands := writeCandidates(t, tempDir, contents)

	activity := &Activity{}
	c := &Coordinator{
		Workers:  3,
		Keywords: []string{"zzz"},
		Opts:     matcher.Options{SearchContents: true},
		Activity: activity,
	}
	_, summary := c.Run(context.Background(), cands)

	assert.Equal(t, 200, summary.Submitted)
	for id := range activity.Snapshot() {
		assert.Less(t, id, 3, "worker ids come from the fixed pool")
	}
}

// recordingReporter captures reporter calls so tests can observe the feed
// from the activity map.
type recordingReporter struct {
	mu           sync.Mutex
	descriptions []string
	advanced     int
}

func (r *recordingReporter) Start(total int, description string) {}

func (r *recordingReporter) Advance(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advanced += n
}

func (r *recordingReporter) SetDescription(desc string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptions = append(r.descriptions, desc)
}

func (r *recordingReporter) Finish() {}

// The activity map feeds the reporter: each progress step carries the file
// some worker is currently scanning.
func TestCoordinator_ActivityFeedsReporterDescription(t *testing.T) {
	tempDir := t.TempDir()
	contents := make(map[string]string, 50)
	for i := 0; i < 50; i++ {
		contents[fmt.Sprintf("%02d.txt", i)] = "body"
	}
	cands := writeCandidates(t, tempDir, contents)

	reporter := &recordingReporter{}
	c := &Coordinator{
		Workers:  3,
		Keywords: []string{"zzz"},
		Opts:     matcher.Options{SearchContents: true},
		Reporter: reporter,
		Activity: &Activity{},
	}
	_, summary := c.Run(context.Background(), cands)

	assert.Equal(t, 50, summary.Submitted)
	assert.Equal(t, 50, reporter.advanced)
	require.NotEmpty(t, reporter.descriptions)
	for _, desc := range reporter.descriptions {
		rel := strings.TrimPrefix(desc, "Scanning ")
		_, known := contents[rel]
		assert.True(t, known, "description %q names a submitted candidate", desc)
	}
}

func TestActivity_Current(t *testing.T) {
	a := &Activity{}
	_, ok := a.Current()
	assert.False(t, ok)

	a.Set(2, "late.txt")
	a.Set(0, "first.txt")
	current, ok := a.Current()
	require.True(t, ok)
	assert.Equal(t, "first.txt", current, "lowest busy worker wins")
}

func TestActivity_OverwriteAndClear(t *testing.T) {
	a := &Activity{}
	a.Set(1, "a.txt")
	a.Set(1, "b.txt")
	a.Set(2, "c.txt")

	snap := a.Snapshot()
	assert.Equal(t, map[int]string{1: "b.txt", 2: "c.txt"}, snap)

	a.Clear(1)
	assert.Equal(t, map[int]string{2: "c.txt"}, a.Snapshot())
}
