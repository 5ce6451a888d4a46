// Package attr parses the configuration carried by an //autofrom:union
// directive.
//
// The language is a comma-separated list of attributes, each of the form
//
//	name=[ident, ident, ...]
//
// The only attribute currently understood is "disabled", which lists the
// variants that must not receive a generated conversion.
package attr
