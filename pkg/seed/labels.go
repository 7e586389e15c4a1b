package seed

import (
	"regexp"
	"strings"
	"unicode"
)

var wordSeparators = regexp.MustCompile(`[_\-\s]+`)

// Labeler turns a schema property name into a field label.
type Labeler func(name string) string

// DefaultLabeler splits on underscores, dashes and camelCase boundaries and
// title-cases every word: "fullName" and "full_name" both become "Full Name".
func DefaultLabeler(name string) string {
	var words []string
	for _, chunk := range wordSeparators.Split(name, -1) {
		for _, word := range splitCamel(chunk) {
			words = append(words, titleCase(word))
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(input string) []string {
	if input == "" {
		return nil
	}
	runes := []rune(input)
	var (
		words []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur))
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

func titleCase(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
