package uniques

import (
	"regexp"
	"strings"
)

var (
	// reParams matches bracketed parameters, e.g. "[+15]%".
	reParams = regexp.MustCompile(`\[.*?\]`)
	// reConditional matches angle-bracket conditionals and the spaces before them.
	reConditional = regexp.MustCompile(` *<.*?>`)
)

// Key is the structural comparison form of an ability string.
type Key string

// Ability pairs the comparison key with the text as written.
type Ability struct {
	Key     Key
	Display string
}

// Normalize empties every bracketed parameter, strips conditionals and lowercases:
// "[+1] Movement <for [Mounted] units>" becomes "[] movement".
func Normalize(s string) Key {
	s = reParams.ReplaceAllString(s, "[]")
	s = reConditional.ReplaceAllString(s, "")
	return Key(strings.ToLower(strings.TrimSpace(s)))
}

// Parse returns the ability with its key.
func Parse(s string) Ability {
	return Ability{Key: Normalize(s), Display: s}
}

func parseAll(list []string) []Ability {
	out := make([]Ability, len(list))
	for i, s := range list {
		out[i] = Parse(s)
	}
	return out
}
