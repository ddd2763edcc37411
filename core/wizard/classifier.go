package wizard

import "strings"

// Category is one reply option a dialog state accepts: a label the state
// machine branches on, and the substring that selects it.
type Category struct {
	Label string
	Match string
}

// Classify maps a raw reply to the first accepted category whose match
// substring occurs in the case-folded text. Declaration order decides ties,
// so callers must list categories in precedence order. The text is not
// trimmed or otherwise normalized; "I want settings please" matches "set".
func Classify(raw string, accepted []Category) (string, bool) {
	folded := strings.ToLower(raw)
	for _, c := range accepted {
		if strings.Contains(folded, c.Match) {
			return c.Label, true
		}
	}
	return "", false
}
