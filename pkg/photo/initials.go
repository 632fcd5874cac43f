package photo

import "unicode"

// Initials derives the two-letter fallback identity from a pair of names:
// the uppercased first rune of each, concatenated. Either name missing yields
// the empty string so the avatar shows a neutral glyph instead of a single
// letter.
func Initials(firstName, lastName string) string {
	first := firstRune(firstName)
	last := firstRune(lastName)
	if first == 0 || last == 0 {
		return ""
	}
	return string(unicode.ToUpper(first)) + string(unicode.ToUpper(last))
}

func firstRune(s string) rune {
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		return r
	}
	return 0
}
