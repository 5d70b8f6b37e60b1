package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/ataylor/dirsnap/internal/collate"
	"github.com/ataylor/dirsnap/internal/config"
	"github.com/ataylor/dirsnap/internal/criteria"
	"github.com/ataylor/dirsnap/internal/snapshot"
	"github.com/ataylor/dirsnap/internal/tree"
)

// filterFlags are the criteria and presentation flags shared by the snap and
// search commands.
type filterFlags struct {
	fileTypes        []string
	ignoreDirs       []string
	ignoreExtensions []string
	whitelistNames   []string
	ignoreNames      []string
	excludeGlobs     []string
	languagePresets  []string
	ignorePresets    []string

	output       string
	noTree       bool
	treeStats    bool
	treeStyle    string
	treeTee      string
	treeElbow    string
	treePipe     string
	treeSpace    string
	tokenMode    string
	useGitignore bool
	sepChar      string
	sepLength    int
}

func (f *filterFlags) register(flags *pflag.FlagSet) {
	flags.StringSliceVarP(&f.fileTypes, "extensions", "e", nil,
		"File extensions or exact filenames to include (dot-prefixed tokens are extensions)")
	flags.StringSliceVar(&f.ignoreDirs, "ignore-dirs", nil,
		"Directory names to prune entirely, at any depth")
	flags.StringSliceVar(&f.ignoreExtensions, "ignore-extensions", nil,
		"File extensions to reject even when included")
	flags.StringSliceVar(&f.whitelistNames, "whitelist-names", nil,
		"Filename substrings a file must contain")
	flags.StringSliceVar(&f.ignoreNames, "ignore-names", nil,
		"Filename substrings that reject a file")
	flags.StringSliceVarP(&f.excludeGlobs, "exclude", "x", nil,
		"Glob patterns (doublestar) excluding relative paths")
	flags.StringSliceVar(&f.languagePresets, "preset", nil,
		"Language presets to union in (python, javascript, web, java, go)")
	flags.StringSliceVar(&f.ignorePresets, "ignore-preset", nil,
		"Ignore presets to union in (version-control, node-modules, python-env, build-artifacts, test-files)")

	flags.StringVarP(&f.output, "output", "o", "",
		"Output file path (stdout when empty)")
	flags.BoolVar(&f.noTree, "no-tree", false, "Skip the directory tree section")
	flags.BoolVar(&f.treeStats, "tree-stats", false, "Annotate tree lines with file/dir counts")
	flags.StringVar(&f.treeStyle, "tree-style", "", "Tree glyph style (unicode, ascii, compact)")
	flags.StringVar(&f.treeTee, "tree-tee", "", "Override the tee connector glyph")
	flags.StringVar(&f.treeElbow, "tree-elbow", "", "Override the elbow connector glyph")
	flags.StringVar(&f.treePipe, "tree-pipe", "", "Override the vertical pipe glyph")
	flags.StringVar(&f.treeSpace, "tree-space", "", "Override the indent spacer glyph")
	flags.StringVar(&f.tokenMode, "token-mode", "",
		"Token metric (chars, chars-no-whitespace, words, tiktoken)")
	flags.BoolVar(&f.useGitignore, "use-gitignore", false,
		"Honor .gitignore/.ignore files during enumeration")
	flags.StringVar(&f.sepChar, "separator-char", "", "Separator character for output blocks")
	flags.IntVar(&f.sepLength, "separator-length", 0, "Separator line length")
}

// merge resolves flags over config file values into engine options. Flags
// that the user set win; slices from the config only apply when the flag was
// untouched.
func (f *filterFlags) merge(flags *pflag.FlagSet, cfg config.Config, root string) (snapshot.Options, error) {
	opts := snapshot.Options{Root: root}

	fileTypes := f.fileTypes
	if !flags.Changed("extensions") {
		fileTypes = cfg.IncludeExtensions
	}
	ignoreDirs := append([]string(nil), cfg.IgnoreComponents...)
	ignoreDirs = append(ignoreDirs, f.ignoreDirs...)
	ignoreExts := append([]string(nil), cfg.IgnoreExtensions...)
	ignoreExts = append(ignoreExts, f.ignoreExtensions...)
	excludeGlobs := append([]string(nil), cfg.ExcludePatterns...)
	excludeGlobs = append(excludeGlobs, f.excludeGlobs...)

	langNames := f.languagePresets
	if !flags.Changed("preset") {
		langNames = cfg.LanguagePresets
	}
	ignoreNames := f.ignorePresets
	if !flags.Changed("ignore-preset") {
		ignoreNames = cfg.IgnorePresets
	}
	langTags := make([]criteria.LanguageTag, 0, len(langNames))
	for _, name := range langNames {
		tag, err := criteria.ParseLanguageTag(name)
		if err != nil {
			return opts, err
		}
		langTags = append(langTags, tag)
	}
	ignoreTags := make([]criteria.IgnoreTag, 0, len(ignoreNames))
	for _, name := range ignoreNames {
		tag, err := criteria.ParseIgnoreTag(name)
		if err != nil {
			return opts, err
		}
		ignoreTags = append(ignoreTags, tag)
	}

	opts.Criteria = criteria.Inputs{
		FileTypes:           fileTypes,
		IgnoreExtensions:    ignoreExts,
		IgnoreComponents:    ignoreDirs,
		WhitelistSubstrings: f.whitelistNames,
		IgnoreSubstrings:    f.ignoreNames,
		ExcludeGlobs:        excludeGlobs,
		LanguagePresets:     langTags,
		IgnorePresets:       ignoreTags,
	}

	styleName := f.treeStyle
	if styleName == "" && cfg.TreeStyle != nil {
		styleName = *cfg.TreeStyle
	}
	style, err := tree.StyleByName(styleName)
	if err != nil {
		return opts, err
	}
	opts.Style = style.Override(f.treeTee, f.treeElbow, f.treePipe, f.treeSpace)

	tokenName := f.tokenMode
	if tokenName == "" && cfg.TokenCountMode != nil {
		tokenName = *cfg.TokenCountMode
	}
	tokenMode, err := collate.ParseTokenMode(tokenName)
	if err != nil {
		return opts, err
	}
	opts.TokenMode = tokenMode

	opts.GenerateTree = !f.noTree
	opts.ShowTreeStats = f.treeStats || (cfg.ShowTreeStats != nil && *cfg.ShowTreeStats && !flags.Changed("tree-stats"))
	opts.UseGitignore = f.useGitignore || (cfg.UseGitignore != nil && *cfg.UseGitignore && !flags.Changed("use-gitignore"))
	opts.OutputPath = f.output

	opts.SeparatorChar = f.sepChar
	if opts.SeparatorChar == "" && cfg.SeparatorChar != nil {
		opts.SeparatorChar = *cfg.SeparatorChar
	}
	opts.SeparatorLength = f.sepLength
	if opts.SeparatorLength == 0 && cfg.SeparatorLength != nil {
		opts.SeparatorLength = *cfg.SeparatorLength
	}
	if opts.SeparatorLength < 0 {
		return opts, fmt.Errorf("separator length must be positive, got %d", opts.SeparatorLength)
	}
	return opts, nil
}
