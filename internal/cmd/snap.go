package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ataylor/dirsnap/internal/snapshot"
)

func newSnapCommand() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "snap [root]",
		Short: "Snapshot every file in a directory that passes the filter criteria",
		Long: `snap walks the given root (default: current directory), keeps the files
passing the include/exclude criteria, and collates a directory tree plus the
contents of every kept file into a single buffer, written to --output or to
stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			cfg := loadConfigOrDefault()
			opts, err := flags.merge(cmd.Flags(), cfg, root)
			if err != nil {
				return err
			}
			opts.Mode = snapshot.ModeFilter

			result, err := snapshot.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return emitResult(cmd, opts, result)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

// emitResult prints the buffer to stdout when no output file was requested
// and always reports the run metrics on stderr.
func emitResult(cmd *cobra.Command, opts snapshot.Options, result *snapshot.Result) error {
	if opts.OutputPath == "" {
		fmt.Fprint(cmd.OutOrStdout(), result.Buffer)
	}
	fmt.Fprintf(os.Stderr, "Files: %d  Tokens: %d (%s)  Bytes: %d\n",
		result.Metrics.Files, result.Metrics.Tokens, result.Metrics.Mode, result.Metrics.Bytes)
	return nil
}
