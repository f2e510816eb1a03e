package properties

import (
	"strings"
	"unicode"
)

// PropertyName converts a field name into the TitleCase identifier a model
// property is expected to use. "page title", "page_title" and "pageTitle"
// all become "PageTitle". Characters that are not valid in an identifier are
// dropped, and a leading digit is prefixed with "X".
func PropertyName(fieldName string) string {
	tokens := tokenize(fieldName)

	var b strings.Builder
	b.Grow(len(fieldName))
	for _, token := range tokens {
		runes := []rune(strings.ToLower(token))
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}

	name := b.String()
	if name == "" {
		return ""
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "X" + name
	}
	return name
}

// lookupKey is the case-insensitive key used to match field names against
// property names, so PageURL and PageUrl resolve alike.
func lookupKey(name string) string {
	return strings.ToLower(PropertyName(name))
}

// tokenize splits on anything that is not a letter or digit and on camel case
// boundaries ("XMLParser" -> "XML", "Parser").
func tokenize(s string) []string {
	var tokens []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if i > 0 && len(current) > 0 && startsToken(runes, i) {
			flush()
		}
		current = append(current, r)
	}
	flush()

	return tokens
}

func startsToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// end of an acronym: "XMLParser" splits before 'P'
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
