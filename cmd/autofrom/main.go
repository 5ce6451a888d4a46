// Package main provides the CLI entrypoint for autofrom.
//
// autofrom is a go generate tool that:
//   - Finds type groups annotated with //autofrom:union
//   - Treats the first type as the union and the rest as its variants
//   - Generates a conversion function for every variant wrapping one value
//
// Usage:
//
//	# Generate next to the sources of the current package
//	//go:generate autofrom gen
//
//	# Fail when generated files are out of date
//	autofrom check ./...
//
//	# Explain which variants receive a conversion
//	autofrom analyze ./...
package main

func main() {
	Execute()
}
