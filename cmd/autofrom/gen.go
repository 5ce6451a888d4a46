package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"autofrom/internal/gen"
)

var genFlags struct {
	stdout bool
	output string
}

var genCmd = &cobra.Command{
	Use:   "gen [packages]",
	Short: "Generate conversion functions",
	Long: `Generate conversion functions for the annotated unions of the given packages.

One file is written next to every source file holding a union, named after
the source file with the configured suffix (default _autofrom.go). A source
file with a failing declaration gets no output. A file written by an earlier
run for a source that no longer yields any conversion is removed.

Examples:
  # From a go:generate directive, for the current package
  //go:generate autofrom gen

  # Every package of the module
  autofrom gen ./...

  # Print each declaration followed by its conversions
  autofrom gen --stdout ./events`,
	RunE: runGen,
}

func init() {
	rootCmd.AddCommand(genCmd)

	genCmd.Flags().BoolVar(&genFlags.stdout, "stdout", false, "print declarations and conversions instead of writing files")
	genCmd.Flags().StringVarP(&genFlags.output, "output", "o", "", "directory for generated files (default: next to the source)")
}

func runGen(cmd *cobra.Command, args []string) error {
	fps, resolveErr := cli.resolve(cmd.Context(), args)
	if fps == nil && resolveErr != nil {
		return resolveErr
	}

	g, err := cli.generator()
	if err != nil {
		return err
	}

	if genFlags.stdout {
		out := cmd.OutOrStdout()

		for _, fp := range fps {
			for _, p := range fp.Plans {
				spliced, err := g.Splice(p)
				if err != nil {
					return fmt.Errorf("%s: %w", p.Decl.Name, err)
				}

				fmt.Fprintf(out, "// %s\n%s\n", p.Decl.Pos, spliced)
			}
		}

		return resolveErr
	}

	files, err := g.Generate(fps)
	if err != nil {
		return err
	}

	if err := gen.WriteFiles(files, genFlags.output); err != nil {
		return err
	}

	for _, f := range files {
		cli.logger.Info("generated", "file", gen.OutputPath(f, genFlags.output), "source", f.Source)
	}

	orphans, err := g.Orphans(fps, genFlags.output)
	if err != nil {
		return err
	}

	if err := gen.RemoveFiles(orphans); err != nil {
		return err
	}

	for _, path := range orphans {
		cli.logger.Info("removed", "file", path)
	}

	return resolveErr
}
