package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"autofrom/internal/plan"
)

var analyzeFlags struct {
	dump bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [packages]",
	Short: "Report what happens to every variant",
	Long: `Print every annotated union with the status of each variant:
eligible (with its type key), disabled, or skipped (with the reason).

Examples:
  autofrom analyze ./...

  # Dump the resolved plans
  autofrom analyze --dump ./events`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeFlags.dump, "dump", false, "dump resolved plans")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	fps, resolveErr := cli.resolve(cmd.Context(), args)

	out := cmd.OutOrStdout()

	if analyzeFlags.dump {
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		for _, fp := range fps {
			dumper.Fdump(out, fp.Plans)
		}

		return resolveErr
	}

	for _, fp := range fps {
		for _, p := range fp.Plans {
			printReport(out, p)
		}
	}

	return resolveErr
}

// printReport writes the variant table of one plan.
func printReport(w io.Writer, p *plan.Plan) {
	fmt.Fprintf(w, "%s (%s)\n", p.Decl.Name, p.Decl.Pos)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, r := range p.Report {
		detail := r.Reason
		if r.Status == plan.StatusEligible {
			detail = r.TypeKey
		}

		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", r.Variant, r.Shape, r.Status, detail)
	}

	_ = tw.Flush()
}
