// Package config loads the optional YAML settings file of the generator.
//
// Example .autofrom.yaml:
//
//	version: "1"
//	directive: autofrom:union
//	output:
//	  suffix: _autofrom.go
//	naming:
//	  constructor: "{{.Union}}From{{.Variant}}"
//	  dispatcher: "{{.Union}}From"
//	dispatcher: true
//	build_tags: [integration]
//	log:
//	  level: info
//	  format: text
//
// Every key is optional; missing keys take the values of Default.
package config
