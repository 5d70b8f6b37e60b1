package tree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ataylor/dirsnap/internal/criteria"
)

func setupTestDir(t *testing.T, structure map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()
	for relPath, content := range structure {
		absPath := filepath.Join(tempDir, filepath.FromSlash(relPath))
		if strings.HasSuffix(relPath, "/") {
			require.NoError(t, os.MkdirAll(absPath, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(absPath), 0755))
		require.NoError(t, os.WriteFile(absPath, []byte(content), 0644))
	}
	return tempDir
}

func TestStyleByName(t *testing.T) {
	s, err := StyleByName("ASCII")
	require.NoError(t, err)
	assert.Equal(t, ASCII, s)

	s, err = StyleByName("")
	require.NoError(t, err)
	assert.Equal(t, Unicode, s)

	_, err = StyleByName("fancy")
	assert.Error(t, err)
}

func TestStyleOverride(t *testing.T) {
	s := Unicode.Override("T-> ", "", "", "....")
	assert.Equal(t, "T-> ", s.Tee)
	assert.Equal(t, Unicode.Elbow, s.Elbow)
	assert.Equal(t, "....", s.Space)
}

func TestRenderFilesystem_Basic(t *testing.T) {
	tempDir := setupTestDir(t, map[string]string{
		"b.py":       "",
		"a.py":       "",
		"sub/c.py":   "",
		"skip.log":   "",
		"build/x.py": "",
	})
	crit := criteria.Normalize(criteria.Inputs{
		FileTypes:        []string{".py"},
		IgnoreComponents: []string{"build"},
	})

	lines := RenderFilesystem(tempDir, crit, ASCII, false)
	require.NotEmpty(t, lines)

	assert.Equal(t, filepath.Base(tempDir), lines[0])
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "|-- a.py")
	assert.Contains(t, joined, "|-- b.py")
	assert.Contains(t, joined, "+-- c.py")
	assert.NotContains(t, joined, "skip.log")
	assert.NotContains(t, joined, "build")
	// Alphabetical, case-insensitive: a.py, b.py, then sub last.
	assert.Equal(t, []string{
		filepath.Base(tempDir),
		"|-- a.py",
		"|-- b.py",
		"+-- sub",
		"    +-- c.py",
	}, lines)
}

func TestRenderFilesystem_Stats(t *testing.T) {
	tempDir := setupTestDir(t, map[string]string{
		"a.py":     "",
		"b.log":    "",
		"sub/c.py": "",
	})
	crit := criteria.Normalize(criteria.Inputs{FileTypes: []string{".py"}})

	lines := RenderFilesystem(tempDir, crit, Unicode, true)
	require.NotEmpty(t, lines)
	// Root: 1 included file of 2 total, 1 dir either way.
	assert.Equal(t, filepath.Base(tempDir)+" [I: 1f, 1d | T: 2f, 1d]", lines[0])

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "sub [I: 1f, 0d | T: 1f, 0d]")
}

func TestRenderFilesystem_StatsExcludePrunedSubtrees(t *testing.T) {
	tempDir := setupTestDir(t, map[string]string{
		"a.py":                "",
		"node_modules/x.js":   "",
		"node_modules/y/z.js": "",
	})
	crit := criteria.Normalize(criteria.Inputs{IgnoreComponents: []string{"node_modules"}})

	lines := RenderFilesystem(tempDir, crit, Unicode, true)
	require.NotEmpty(t, lines)
	assert.Equal(t, filepath.Base(tempDir)+" [I: 1f, 0d | T: 1f, 0d]", lines[0])
}

func TestRenderFilesystem_FileNamedLikeIgnoredComponent(t *testing.T) {
	tempDir := setupTestDir(t, map[string]string{
		"a.py":  "",
		"build": "a plain file carrying a pruned directory name",
	})
	crit := criteria.Normalize(criteria.Inputs{IgnoreComponents: []string{"build"}})

	lines := RenderFilesystem(tempDir, crit, Unicode, false)
	assert.Equal(t, []string{
		filepath.Base(tempDir),
		"└── a.py",
	}, lines)
}

func TestRenderPaths_DirsBeforeFiles(t *testing.T) {
	lines := RenderPaths("proj", []string{
		"zeta.py",
		"src/utils.py",
		"src/api/routes.js",
		"alpha.py",
	}, Unicode, false)

	assert.Equal(t, []string{
		"proj",
		"├── src",
		"│   ├── api",
		"│   │   └── routes.js",
		"│   └── utils.py",
		"├── alpha.py",
		"└── zeta.py",
	}, lines)
}

func TestRenderPaths_Stats(t *testing.T) {
	lines := RenderPaths("proj", []string{"src/a.py", "src/b.py", "top.py"}, Unicode, true)

	require.NotEmpty(t, lines)
	assert.Equal(t, "proj [M: 1f, 1d]", lines[0])
	assert.Contains(t, strings.Join(lines, "\n"), "src [M: 2f, 0d]")
}

func TestRenderPaths_Empty(t *testing.T) {
	assert.Nil(t, RenderPaths("proj", nil, Unicode, false))
}

func TestRenderPaths_EveryMatchedNameAppears(t *testing.T) {
	paths := []string{"a/b/c.txt", "a/d.txt", "e.txt"}
	lines := RenderPaths("root", paths, ASCII, false)
	joined := strings.Join(lines, "\n")

	for _, p := range paths {
		base := p[strings.LastIndex(p, "/")+1:]
		assert.Contains(t, joined, base)
	}
}
