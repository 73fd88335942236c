// Package slug turns display names into identifiers safe for render ids and
// file names.
package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases input and collapses every run of other characters into a
// single dash. Blank input yields "diagram".
func Make(input string) string {
	s := nonAlphaNum.ReplaceAllString(strings.ToLower(input), "-")
	if s = strings.Trim(s, "-"); s == "" {
		return "diagram"
	}
	return s
}
