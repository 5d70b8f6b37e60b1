// Package config loads the optional TOML configuration file. Flags override
// everything here; the file only provides defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config mirrors the config file. Pointer fields distinguish "not set" from
// an explicit zero value so flag defaults are only applied when the file is
// silent.
type Config struct {
	IncludeExtensions []string `toml:"include_extensions"`
	IgnoreComponents  []string `toml:"ignore_components"`
	IgnoreExtensions  []string `toml:"ignore_extensions"`
	ExcludePatterns   []string `toml:"exclude_patterns"`
	LanguagePresets   []string `toml:"language_presets"`
	IgnorePresets     []string `toml:"ignore_presets"`
	TreeStyle         *string  `toml:"tree_style"`
	ShowTreeStats     *bool    `toml:"show_tree_stats"`
	TokenCountMode    *string  `toml:"token_count_mode"`
	MaxWorkers        *int     `toml:"max_workers"`
	UseGitignore      *bool    `toml:"use_gitignore"`
	SeparatorChar     *string  `toml:"separator_char"`
	SeparatorLength   *int     `toml:"separator_length"`
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// Default returns the baseline configuration applied when no file is found.
func Default() Config {
	return Config{
		IgnorePresets:  []string{"version-control"},
		TreeStyle:      strPtr("unicode"),
		ShowTreeStats:  boolPtr(false),
		TokenCountMode: strPtr("chars"),
		UseGitignore:   boolPtr(false),
	}
}

// Load reads the configuration from customPath, or from
// ~/.config/dirsnap/config.toml when customPath is empty. A missing default
// file is not an error; a missing custom file is.
func Load(customPath string) (Config, error) {
	cfg := Default()
	isCustom := customPath != ""

	configFile := customPath
	if !isCustom {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			slog.Warn("Could not determine user home directory, using default settings.", "error", err)
			return cfg, nil
		}
		configFile = filepath.Join(homeDir, ".config", "dirsnap", "config.toml")
	} else {
		abs, err := filepath.Abs(customPath)
		if err != nil {
			return cfg, fmt.Errorf("invalid config path %q: %w", customPath, err)
		}
		configFile = abs
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if isCustom {
				return cfg, fmt.Errorf("configuration file %q not found", configFile)
			}
			slog.Debug("No config file found, using default settings.", "path", configFile)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %q: %w", configFile, err)
	}
	if len(content) == 0 {
		slog.Info("Configuration file is empty, using default settings.", "path", configFile)
		return cfg, nil
	}

	loaded := Default()
	meta, err := toml.Decode(string(content), &loaded)
	if err != nil {
		return cfg, fmt.Errorf("decoding TOML from %q: %w", configFile, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		slog.Warn("Unrecognized keys in config file.", "path", configFile, "keys", undecoded)
	}

	// Re-apply defaults for pointer fields the file left unset.
	def := Default()
	if loaded.TreeStyle == nil {
		loaded.TreeStyle = def.TreeStyle
	}
	if loaded.ShowTreeStats == nil {
		loaded.ShowTreeStats = def.ShowTreeStats
	}
	if loaded.TokenCountMode == nil {
		loaded.TokenCountMode = def.TokenCountMode
	}
	if loaded.UseGitignore == nil {
		loaded.UseGitignore = def.UseGitignore
	}

	slog.Debug("Configuration loaded.", "path", configFile)
	return loaded, nil
}
