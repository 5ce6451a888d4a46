// Package match finds the declared name closest to a misspelled one.
//
// Names are compared case-insensitively with separators removed, by
// normalized Levenshtein similarity.
package match
