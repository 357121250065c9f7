package entity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// DeriveName reverses a name, lowercases it and title-cases every word:
// "Great Library" becomes "Yrarbil Taerg".
func DeriveName(name string) string {
	runes := []rune(name)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return titleCaser.String(strings.ToLower(string(runes)))
}
