package gen

import (
	"bytes"
	"fmt"
	"go/token"
	"text/template"

	"autofrom/internal/plan"
)

// nameData is what naming templates see.
type nameData struct {
	Union   string
	Variant string
	// Type is the last path segment of the field type ("PathError").
	Type string
}

// namer renders generated identifiers from the configured templates.
type namer struct {
	constructor *template.Template
	dispatcher  *template.Template
}

func newNamer(constructor, dispatcher string) (*namer, error) {
	c, err := template.New("constructor").Parse(constructor)
	if err != nil {
		return nil, fmt.Errorf("parsing constructor name template: %w", err)
	}

	d, err := template.New("dispatcher").Parse(dispatcher)
	if err != nil {
		return nil, fmt.Errorf("parsing dispatcher name template: %w", err)
	}

	return &namer{constructor: c, dispatcher: d}, nil
}

// Constructor names the conversion function of impl.
func (n *namer) Constructor(impl plan.Impl) (string, error) {
	data := nameData{Union: impl.Union, Variant: impl.Variant}
	if segs := impl.FieldType.Segments; len(segs) > 0 {
		data.Type = segs[len(segs)-1]
	}

	return execName(n.constructor, data)
}

// Dispatcher names the type-switch function of a union.
func (n *namer) Dispatcher(union string) (string, error) {
	return execName(n.dispatcher, nameData{Union: union})
}

func execName(t *template.Template, data nameData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s name template: %w", t.Name(), err)
	}

	name := buf.String()
	if !token.IsIdentifier(name) {
		return "", fmt.Errorf("%s name template produced %q, which is not a Go identifier", t.Name(), name)
	}

	return name, nil
}
