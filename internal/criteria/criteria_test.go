package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_RoutesTokensByLeadingDot(t *testing.T) {
	assertions := assert.New(t)

	c := Normalize(Inputs{
		FileTypes: []string{".PY", " .Txt ", "Makefile", "requirements.txt", "", "   "},
	})

	assertions.Contains(c.Extensions, ".py")
	assertions.Contains(c.Extensions, ".txt")
	assertions.Contains(c.ExactNames, "makefile")
	assertions.Contains(c.ExactNames, "requirements.txt")
	assertions.Len(c.Extensions, 2)
	assertions.Len(c.ExactNames, 2)
}

func TestNormalize_IgnoreExtensionsGetDotPrefix(t *testing.T) {
	c := Normalize(Inputs{IgnoreExtensions: []string{"log", ".TMP", ""}})

	assert.Contains(t, c.IgnoreExtensions, ".log")
	assert.Contains(t, c.IgnoreExtensions, ".tmp")
	assert.Len(t, c.IgnoreExtensions, 2)
}

func TestNormalize_PresetUnionCommutativeAndIdempotent(t *testing.T) {
	assertions := assert.New(t)

	ab := Normalize(Inputs{
		LanguagePresets: []LanguageTag{LangPython, LangJavaScript},
		IgnorePresets:   []IgnoreTag{IgnoreVersionControl, IgnoreNodeModules},
	})
	ba := Normalize(Inputs{
		LanguagePresets: []LanguageTag{LangJavaScript, LangPython},
		IgnorePresets:   []IgnoreTag{IgnoreNodeModules, IgnoreVersionControl},
	})
	aab := Normalize(Inputs{
		LanguagePresets: []LanguageTag{LangPython, LangPython, LangJavaScript},
		IgnorePresets:   []IgnoreTag{IgnoreVersionControl, IgnoreVersionControl, IgnoreNodeModules},
	})

	assertions.Equal(ab.Extensions, ba.Extensions)
	assertions.Equal(ab.ExactNames, ba.ExactNames)
	assertions.Equal(ab.IgnoreComponents, ba.IgnoreComponents)
	assertions.Equal(ab.Extensions, aab.Extensions)
	assertions.Equal(ab.IgnoreComponents, aab.IgnoreComponents)
	assertions.ElementsMatch(ab.IgnoreSubstrings, ba.IgnoreSubstrings)
}

func TestNormalize_IgnorePresetsFeedComponentsAndSubstrings(t *testing.T) {
	c := Normalize(Inputs{IgnorePresets: []IgnoreTag{IgnoreNodeModules}})

	assert.Contains(t, c.IgnoreComponents, "node_modules")
	assert.Contains(t, c.IgnoreSubstrings, "package-lock.json")
}

func TestNormalize_InvalidGlobSkipped(t *testing.T) {
	c := Normalize(Inputs{ExcludeGlobs: []string{"[a-z", "**/*.zip", ""}})

	assert.Equal(t, []string{"**/*.zip"}, c.ExcludeGlobs)
}

func TestIncludeFile_IgnoreExtensionBeatsInclude(t *testing.T) {
	c := Normalize(Inputs{
		FileTypes:        []string{".log"},
		IgnoreExtensions: []string{".log"},
	})

	assert.False(t, c.IncludeFile("server.log"))
	assert.False(t, c.CandidateFile("server.log"))
}

func TestIncludeFile_EmptyIncludeSetMatchesEverything(t *testing.T) {
	c := Normalize(Inputs{})

	assert.True(t, c.IncludeFile("anything.xyz"))
	assert.True(t, c.IncludeFile("no_extension"))
}

func TestIncludeFile_SubstringRules(t *testing.T) {
	assertions := assert.New(t)

	c := Normalize(Inputs{
		FileTypes:           []string{".py"},
		WhitelistSubstrings: []string{"api"},
		IgnoreSubstrings:    []string{"_test"},
	})

	assertions.True(c.IncludeFile("api_routes.py"))
	assertions.False(c.IncludeFile("util.py"), "misses whitelist substring")
	assertions.False(c.IncludeFile("api_test.py"), "hit by ignore substring")
	assertions.False(c.IncludeFile("api_routes.js"), "wrong extension")
}

// Ignored components reject every part of a relative path, including a plain
// file that happens to carry a pruned directory's name. Search-mode candidacy
// only ever prunes directory names.
func TestIncludeFile_IgnoredComponentNameRejectsFile(t *testing.T) {
	c := Normalize(Inputs{IgnoreComponents: []string{"node_modules", "build"}})

	assert.False(t, c.IncludeFile("node_modules"))
	assert.False(t, c.IncludeFile("BUILD"))
	assert.True(t, c.IncludeFile("build.gradle"), "only exact name matches reject")
	assert.True(t, c.CandidateFile("node_modules"))
}

func TestCandidateFile_OnlyExtensionGated(t *testing.T) {
	c := Normalize(Inputs{
		FileTypes:        []string{".py", "makefile"},
		IgnoreSubstrings: []string{"secret"},
	})

	assert.True(t, c.CandidateFile("secret_config.py"), "substrings do not gate candidacy")
	assert.False(t, c.CandidateFile("Makefile"), "exact names are filter-mode only")
}

func TestPruneDir_CaseInsensitive(t *testing.T) {
	c := Normalize(Inputs{IgnoreComponents: []string{"Node_Modules"}})

	assert.True(t, c.PruneDir("node_modules"))
	assert.True(t, c.PruneDir("NODE_MODULES"))
	assert.False(t, c.PruneDir("src"))
}

func TestExcludedByGlob(t *testing.T) {
	c := Normalize(Inputs{ExcludeGlobs: []string{"**/*.zip", "vendor/**"}})

	assert.True(t, c.ExcludedByGlob("archives/old.zip"))
	assert.True(t, c.ExcludedByGlob("vendor/lib/pkg.go"))
	assert.False(t, c.ExcludedByGlob("src/main.go"))
}

func TestParseTags(t *testing.T) {
	tag, err := ParseLanguageTag(" Python ")
	require.NoError(t, err)
	assert.Equal(t, LangPython, tag)

	_, err = ParseLanguageTag("cobol")
	assert.Error(t, err)

	itag, err := ParseIgnoreTag("NODE-MODULES")
	require.NoError(t, err)
	assert.Equal(t, IgnoreNodeModules, itag)

	_, err = ParseIgnoreTag("nonsense")
	assert.Error(t, err)
}
