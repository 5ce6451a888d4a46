package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"autofrom/internal/gen"
)

var checkFlags struct {
	output string
	quiet  bool
}

var checkCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Verify generated files are up to date",
	Long: `Regenerate in memory and compare with the files on disk.

Differences are printed as line diffs and the command fails, which makes it
suitable for CI.

Examples:
  autofrom check ./...

  # Only the exit status
  autofrom check --quiet ./...`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.output, "output", "o", "", "directory holding generated files (default: next to the source)")
	checkCmd.Flags().BoolVarP(&checkFlags.quiet, "quiet", "q", false, "do not print diffs")
}

func runCheck(cmd *cobra.Command, args []string) error {
	fps, err := cli.resolve(cmd.Context(), args)
	if err != nil {
		return err
	}

	g, err := cli.generator()
	if err != nil {
		return err
	}

	files, err := g.Generate(fps)
	if err != nil {
		return err
	}

	orphans, err := g.Orphans(fps, checkFlags.output)
	if err != nil {
		return err
	}

	stale, err := gen.Compare(files, orphans, checkFlags.output, cli.color)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	for _, s := range stale {
		switch {
		case s.Missing:
			fmt.Fprintf(out, "%s: missing\n", s.Filename)
		case s.Orphan:
			fmt.Fprintf(out, "%s: no longer generated\n", s.Filename)
		default:
			fmt.Fprintf(out, "%s: out of date\n", s.Filename)
		}

		if !checkFlags.quiet {
			fmt.Fprint(out, s.Diff)
		}
	}

	if len(stale) > 0 {
		return fmt.Errorf("%d generated file(s) out of date, run autofrom gen", len(stale))
	}

	cli.logger.Info("generated files are up to date", "files", len(files))

	return nil
}
