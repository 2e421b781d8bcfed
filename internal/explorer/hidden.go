package explorer

import "strings"

// IsHiddenName reports whether name is a dot-file. "." and ".." are not
// considered hidden.
func IsHiddenName(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
