package components

import (
	"regexp"
	"sync"
)

var iconPattern = regexp.MustCompile(`\{icon:([a-z0-9-]+)\}`)

// IconSet maps icon names to glyphs. Views write {icon:<name>} placeholders
// and the set swaps in the glyphs after every render.
type IconSet struct {
	mu     sync.RWMutex
	glyphs map[string]string
}

// Icons is the set used by the TUI.
var Icons = NewIconSet(map[string]string{
	"home":     "⌂",
	"upload":   "⇪",
	"practice": "✎",
	"diagrams": "◫",
	"finished": "✔",
	"help":     "?",
	"about":    "ℹ",
	"timer":    "⏱",
	"error":    "✖",
	"ok":       "✓",
	"reveal":   "◉",
	"next":     "→",
	"open":     "↗",
})

func NewIconSet(glyphs map[string]string) *IconSet {
	copied := make(map[string]string, len(glyphs))
	for k, v := range glyphs {
		copied[k] = v
	}
	return &IconSet{glyphs: copied}
}

// Set overrides one glyph, e.g. to fall back to ASCII.
func (s *IconSet) Set(name, glyph string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.glyphs[name] = glyph
}

// Refresh replaces every known placeholder in text. Unknown names are
// dropped.
func (s *IconSet) Refresh(text string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return iconPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := iconPattern.FindStringSubmatch(match)[1]
		return s.glyphs[name]
	})
}

// Icon builds the placeholder for name.
func Icon(name string) string {
	return "{icon:" + name + "}"
}
