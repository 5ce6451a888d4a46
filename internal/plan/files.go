package plan

import (
	"autofrom/internal/analyze"
	"autofrom/internal/diagnostic"
)

// FilePlan pairs a source file with the plans of its unions, in source order.
type FilePlan struct {
	File  *analyze.File
	Plans []*Plan
}

// Impls counts the conversions generated for the file.
func (fp FilePlan) Impls() int {
	n := 0
	for _, p := range fp.Plans {
		n += len(p.Impls)
	}

	return n
}

// ForFiles resolves every annotated declaration of files. Each declaration is
// resolved on its own; a file with any failed declaration is left out of the
// result so that no partial output is written for it. Errors, warnings and
// infos are collected in the returned Diagnostics.
func ForFiles(files []*analyze.File) ([]FilePlan, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	var out []FilePlan

	for _, f := range files {
		fp := FilePlan{File: f}
		failed := false

		for _, a := range f.Unions {
			if a.Err != nil {
				diags.AddError(a.Name(), a.Err)
				failed = true

				continue
			}

			p, err := Generate(a.Directive, a.DirectivePos, a.Decl)
			if err != nil {
				diags.AddError(a.Decl.Name, err)
				failed = true

				continue
			}

			diags.Merge(p.Diagnostics)
			fp.Plans = append(fp.Plans, p)
		}

		if !failed {
			out = append(out, fp)
		}
	}

	return out, diags
}
