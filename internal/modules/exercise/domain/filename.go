package domain

import (
	"regexp"
	"strings"
)

// fileNamePattern matches ej<digits>.txt and ej<digits>_sol.txt, optionally
// behind directory segments from a folder upload.
var fileNamePattern = regexp.MustCompile(`(?i)^(?:.*[/\\])?ej(\d+)(_sol)?\.txt$`)

// FileRef is the typed result of parsing an exercise file name.
type FileRef struct {
	ID   string
	Kind Kind
}

// ParseFileName reports whether name follows the exercise naming convention
// and, if so, which exercise side it holds.
func ParseFileName(name string) (FileRef, bool) {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return FileRef{}, false
	}
	kind := KindProblem
	if m[2] != "" {
		kind = KindSolution
	}
	return FileRef{ID: NormalizeID(m[1]), Kind: kind}, true
}

// NormalizeID maps a digit string to its integer text form, so "007" and "7"
// name the same exercise. Leading zeros are stripped instead of parsing so
// arbitrarily long digit runs never overflow.
func NormalizeID(digits string) string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// CompareIDs orders normalized ids numerically.
func CompareIDs(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
