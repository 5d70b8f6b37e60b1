package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ataylor/dirsnap/internal/collate"
)

func newDeconstructCommand() *cobra.Command {
	var (
		sepChar   string
		pathsOnly bool
	)

	cmd := &cobra.Command{
		Use:   "deconstruct <snapshot-file>",
		Short: "Recover the tree and file list from a snapshot buffer",
		Long: `deconstruct parses a previously generated snapshot file back into its
directory tree section and the ordered list of relative file paths, without
touching the filesystem the snapshot was taken from.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening snapshot %q: %w", args[0], err)
			}
			defer f.Close()

			snap, err := collate.Deconstruct(f, sepChar)
			if err != nil {
				return fmt.Errorf("parsing snapshot %q: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			heading := color.New(color.FgCyan, color.Bold)
			if !pathsOnly && len(snap.TreeLines) > 0 {
				heading.Fprintln(out, "Tree:")
				for _, line := range snap.TreeLines {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out)
			}
			if !pathsOnly {
				heading.Fprintf(out, "Files (%d):\n", len(snap.FilePaths))
			}
			for _, p := range snap.FilePaths {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sepChar, "separator-char", "",
		"Separator character the snapshot was written with")
	cmd.Flags().BoolVar(&pathsOnly, "paths-only", false,
		"Print only the recovered file paths, one per line")
	return cmd
}
