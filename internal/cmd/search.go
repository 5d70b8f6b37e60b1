package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ataylor/dirsnap/internal/progress"
	"github.com/ataylor/dirsnap/internal/snapshot"
)

func newSearchCommand() *cobra.Command {
	var (
		flags          filterFlags
		root           string
		searchContents bool
		fullPath       bool
		scanBinary     bool
		workers        int
	)

	cmd := &cobra.Command{
		Use:   "search <keyword>...",
		Short: "Snapshot only the files matching one or more keywords",
		Long: `search walks the root like snap, then keeps only the files whose name
(or, with --contents, whose text) contains at least one keyword,
case-insensitively. Candidates are scanned concurrently with progress
reported on stderr.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfigOrDefault()
			opts, err := flags.merge(cmd.Flags(), cfg, root)
			if err != nil {
				return err
			}
			opts.Mode = snapshot.ModeSearch
			opts.Keywords = args
			opts.SearchContents = searchContents
			opts.CompareFullPath = fullPath
			opts.ScanBinary = scanBinary
			opts.MaxWorkers = workers
			if !cmd.Flags().Changed("workers") && cfg.MaxWorkers != nil {
				opts.MaxWorkers = *cfg.MaxWorkers
			}
			opts.Reporter = progress.NewConsole(os.Stderr)

			result, err := snapshot.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Scanned %d candidates: %d matched, %d unmatched.\n",
				result.Summary.Submitted, result.Summary.Matched, result.Summary.Unmatched)
			return emitResult(cmd, opts, result)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&root, "root", "r", ".", "Directory to search")
	cmd.Flags().BoolVar(&searchContents, "contents", false,
		"Also scan readable text file contents for keywords")
	cmd.Flags().BoolVar(&fullPath, "full-path", false,
		"Match keywords against the full path instead of the basename")
	cmd.Flags().BoolVar(&scanBinary, "scan-binary", false,
		"Scan files with binary extensions as well")
	cmd.Flags().IntVar(&workers, "workers", 0,
		"Concurrent scan workers (0 = CPU count plus headroom)")
	return cmd
}
