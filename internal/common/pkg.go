package common

import (
	"path"
	"strconv"
	"strings"
	"unicode"
)

// PkgAlias guesses the package name of an import path, the way goimports
// does when the package cannot be loaded: a trailing major version element
// (/v5) is dropped, a "go-" prefix is stripped and the name ends at the first
// character that cannot appear in an identifier.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)

	if isMajorVersion(base) {
		if dir := path.Dir(pkgPath); dir != "." {
			base = path.Base(dir)
		}
	}

	base = strings.TrimPrefix(base, "go-")

	if i := strings.IndexFunc(base, notIdentifier); i >= 0 {
		base = base[:i]
	}

	return base
}

// isMajorVersion matches "v2", "v5" and so on.
func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	n, err := strconv.Atoi(s[1:])

	return err == nil && n >= 2
}

func notIdentifier(r rune) bool {
	return !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
}
