package criteria

import (
	"fmt"
	"strings"
)

// LanguageTag names a predefined bundle of file extensions and exact
// filenames for a language or framework.
type LanguageTag string

// IgnoreTag names a predefined bundle of path components and filename
// substrings to ignore.
type IgnoreTag string

const (
	LangPython     LanguageTag = "python"
	LangJavaScript LanguageTag = "javascript"
	LangWeb        LanguageTag = "web"
	LangJava       LanguageTag = "java"
	LangGo         LanguageTag = "go"
)

const (
	IgnoreVersionControl IgnoreTag = "version-control"
	IgnoreNodeModules    IgnoreTag = "node-modules"
	IgnorePythonEnv      IgnoreTag = "python-env"
	IgnoreBuildArtifacts IgnoreTag = "build-artifacts"
	IgnoreTestFiles      IgnoreTag = "test-files"
)

// Preset bundles are token lists only. Composition is set union over the
// chosen tags plus manual overrides; no preset expresses negation.
var languagePresets = map[LanguageTag][]string{
	LangPython: {
		".py", ".pyw", "setup.py", "requirements.txt", "Pipfile", "pyproject.toml",
	},
	LangJavaScript: {".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"},
	LangWeb:        {".html", ".css", ".scss", ".less"},
	LangJava:       {".java", ".groovy", ".kt", ".gradle", ".properties"},
	LangGo:         {".go", "go.mod", "go.sum", "Makefile"},
}

var ignorePresets = map[IgnoreTag][]string{
	IgnoreVersionControl: {".git", ".svn", ".hg", ".idea"},
	IgnoreNodeModules:    {"node_modules", "package-lock.json", "yarn.lock"},
	IgnorePythonEnv:      {"__pycache__", "venv", ".venv", "env", "lib", "bin"},
	IgnoreBuildArtifacts: {"dist", "build", "target", "out", "temp", "tmp"},
	IgnoreTestFiles:      {"test", "spec", "fixture", "example", "mock"},
}

// LanguageTags lists the known language preset tags.
func LanguageTags() []LanguageTag {
	return []LanguageTag{LangPython, LangJavaScript, LangWeb, LangJava, LangGo}
}

// IgnoreTags lists the known ignore preset tags.
func IgnoreTags() []IgnoreTag {
	return []IgnoreTag{
		IgnoreVersionControl, IgnoreNodeModules, IgnorePythonEnv,
		IgnoreBuildArtifacts, IgnoreTestFiles,
	}
}

// ParseLanguageTag resolves a user-supplied preset name.
func ParseLanguageTag(s string) (LanguageTag, error) {
	tag := LanguageTag(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := languagePresets[tag]; !ok {
		return "", fmt.Errorf("unknown language preset %q (known: %v)", s, LanguageTags())
	}
	return tag, nil
}

// ParseIgnoreTag resolves a user-supplied ignore preset name.
func ParseIgnoreTag(s string) (IgnoreTag, error) {
	tag := IgnoreTag(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := ignorePresets[tag]; !ok {
		return "", fmt.Errorf("unknown ignore preset %q (known: %v)", s, IgnoreTags())
	}
	return tag, nil
}
