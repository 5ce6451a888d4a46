package gen

import "text/template"

// Header marks every generated file; the loader skips files carrying it.
const Header = "// Code generated by autofrom. DO NOT EDIT."

var fileTemplate = template.Must(template.New("file").Parse(Header + `

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Name}}{{.Name}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range .Unions}}{{template "union" .}}{{end}}
{{define "union"}}{{$u := .}}{{range .Impls}}
// {{.Func}} wraps v in the {{.Variant}} variant of {{$u.Name}}.
func {{.Func}}(v {{.Type}}) {{$u.Name}} {
	return {{.Variant}}{v}
}
{{end}}{{if .Dispatcher}}
// {{.Dispatcher}} wraps v in the variant of {{.Name}} holding its dynamic type.
// It reports false when no variant holds that type.
func {{.Dispatcher}}(v any) ({{.Name}}, bool) {
	switch v := v.(type) {
{{range .Impls}}	case {{.Type}}:
		return {{.Variant}}{v}, true
{{end}}	}

	return nil, false
}
{{end}}{{end}}`))

// unionTemplate renders the conversions of one union as a declaration list.
var unionTemplate = fileTemplate.Lookup("union")

// fileData is the template input for one output file.
type fileData struct {
	PackageName string
	Imports     []importData
	Unions      []unionData
}

type importData struct {
	Name string
	Path string
}

// unionData is the template input for one plan.
type unionData struct {
	Name string
	// Dispatcher is empty when no dispatcher is generated.
	Dispatcher string
	Impls      []implData
}

type implData struct {
	Func    string
	Variant string
	Type    string
}
