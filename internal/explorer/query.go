package explorer

import (
	"fmt"
	"strconv"
	"strings"
)

// SortKey orders folder contents.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortBySize     SortKey = "size"
	SortByModified SortKey = "modified"
)

// SortKeys lists the accepted sort keys in cycling order.
var SortKeys = []SortKey{SortByName, SortBySize, SortByModified}

// ParseSortKey accepts a sort key, defaulting to name for "".
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByName, nil
	case SortByName, SortBySize, SortByModified:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want name, size or modified)", s)
	}
}

// Next returns the sort key after k, wrapping around. The empty key is
// treated as name.
func (k SortKey) Next() SortKey {
	if k == "" {
		k = SortByName
	}
	for i, s := range SortKeys {
		if s == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortByName
}

// Query filters and orders a folder listing.
type Query struct {
	// Search keeps entries whose name contains it, case-insensitively.
	Search string
	SortBy SortKey
	// Reverse flips the sort order.
	Reverse bool
	// ShowHidden includes dot-files.
	ShowHidden bool
}

// ParseBool reads the loose boolean query values a browser or script
// might send: "1", "true", "yes", "on". Empty is false.
func ParseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "yes", "on":
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}
