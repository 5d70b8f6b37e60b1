// Package cmd wires the dirsnap CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ataylor/dirsnap/internal/config"
)

var (
	logLevelFlag   string
	configPathFlag string
)

// NewRootCommand builds the dirsnap command tree.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "dirsnap",
		Short: "Snapshot a project directory into one annotated text file",
		Long: `dirsnap walks a project directory, selects files by composable
include/exclude rules and named presets, optionally searches file contents
for keywords concurrently, and collates a directory tree plus file contents
into a single snapshot file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(logLevelFlag)
		},
	}

	root.PersistentFlags().StringVar(&logLevelFlag, "loglevel", "warn",
		"Logging verbosity (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&configPathFlag, "config", "c", "",
		"Path to a custom configuration file")

	root.AddCommand(newSnapCommand())
	root.AddCommand(newSearchCommand())
	root.AddCommand(newDeconstructCommand())
	return root
}

func setupLogging(levelStr string) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q, defaulting to 'warn'.\n", levelStr)
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: level <= slog.LevelDebug}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}

func loadConfigOrDefault() config.Config {
	cfg, err := config.Load(configPathFlag)
	if err != nil {
		slog.Error("Failed to load configuration, using defaults.", "error", err)
		return config.Default()
	}
	return cfg
}
