package services

import "strings"

// nicknames maps community shorthand to canonical card names.
var nicknames = map[string]string{
	"bob":       "Dark Confidant",
	"goyf":      "Tarmogoyf",
	"jtms":      "Jace, the Mind Sculptor",
	"sad robot": "Solemn Simulacrum",
	"bolt":      "Lightning Bolt",
	"sfm":       "Stoneforge Mystic",
	"uro":       "Uro, Titan of Nature's Wrath",
	"lotus":     "Black Lotus",
	"kiki":      "Kiki-Jiki, Mirror Breaker",
	"ancestral": "Ancestral Recall",
}

// LookupNickname returns the canonical name for a nickname. Matching is
// case-insensitive and ignores surrounding and repeated whitespace.
func LookupNickname(input string) (string, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(input), " "))
	name, ok := nicknames[key]
	return name, ok
}
