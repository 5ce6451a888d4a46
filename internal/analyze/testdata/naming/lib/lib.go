// Package realname lives in a directory with another name.
package realname

// Token is wrapped by the union in naming.go.
type Token struct{ Text string }
