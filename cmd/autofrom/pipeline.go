package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"autofrom/internal/analyze"
	"autofrom/internal/diagnostic"
	"autofrom/internal/gen"
	"autofrom/internal/plan"
)

// defaultPatterns is used when no package pattern is given, which is the
// go:generate case.
var defaultPatterns = []string{"."}

// resolve loads patterns and resolves every annotated union. Diagnostics are
// printed; a failed declaration is returned as an error after the others
// have been resolved.
func (a *app) resolve(ctx context.Context, patterns []string) ([]plan.FilePlan, error) {
	if len(patterns) == 0 {
		patterns = defaultPatterns
	}

	loader := analyze.NewLoader(a.cfg.Directive)
	loader.Dir = rootFlags.dir
	loader.BuildTags = a.cfg.BuildTags
	loader.Tests = a.cfg.Tests
	loader.Logger = a.logger

	files, err := loader.LoadPackages(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	fps, diags := plan.ForFiles(files)
	a.report(diags)

	if diags.HasErrors() {
		return fps, fmt.Errorf("%d union declaration(s) failed", len(diags.Errors))
	}

	return fps, nil
}

// generator builds a Generator from the loaded configuration.
func (a *app) generator() (*gen.Generator, error) {
	return gen.NewGenerator(gen.ConfigFrom(a.cfg))
}

// report prints errors and warnings; infos go to the debug log.
func (a *app) report(diags *diagnostic.Diagnostics) {
	for _, d := range diags.Errors {
		printDiagnostic(a.stderr, d, a.color)
	}

	for _, d := range diags.Warnings {
		printDiagnostic(a.stderr, d, a.color)
	}

	for _, d := range diags.Infos {
		a.logger.Debug(d.Message, "union", d.Union, "variant", d.Variant, "pos", d.Pos.String())
	}
}

// printDiagnostic writes one diagnostic in "pos: severity: message" form.
func printDiagnostic(w io.Writer, d diagnostic.Diagnostic, colored bool) {
	sev := color.New(color.Bold)

	switch d.Severity {
	case diagnostic.DiagnosticError:
		sev.Add(color.FgRed)
	case diagnostic.DiagnosticWarning:
		sev.Add(color.FgYellow)
	case diagnostic.DiagnosticInfo:
		sev.Add(color.FgCyan)
	}

	if colored {
		sev.EnableColor()
	} else {
		sev.DisableColor()
	}

	if d.Pos.IsValid() {
		fmt.Fprintf(w, "%s: ", d.Pos)
	}

	fmt.Fprintf(w, "%s: %s", sev.Sprint(d.Severity), d.Message)

	if d.Code != "" {
		fmt.Fprintf(w, " [%s]", d.Code)
	}

	fmt.Fprintln(w)
}
