// Package naming generates and recognizes the names of generated test entities.
package naming

import (
	"strconv"
	"strings"
)

// Marker is the literal every generated entity name carries.
const Marker = "Test_Face_"

// NameFor returns the deterministic name for the entity at index.
func NameFor(index int) string {
	return Marker + strconv.Itoa(index)
}

// IsTestEntity reports whether name contains Marker, ignoring case.
func IsTestEntity(name string) bool {
	return strings.Contains(strings.ToLower(name), lowerMarker)
}

// IndexOf extracts the index from a name produced by NameFor.
func IndexOf(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, Marker)
	if !ok || rest == "" {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

var lowerMarker = strings.ToLower(Marker)
