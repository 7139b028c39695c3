package sgf

import (
	"strings"
	"unicode"
)

// Parse extracts the properties of a record's main line in file order: only
// the first game of a collection and the first variation at every branch
// are followed. Lowercase letters inside property identifiers are skipped
// as older file formats require, and values listed back to back
// (AB[aa][bb]) share the preceding key.
func Parse(text string) []Property {
	var (
		props   []Property
		key     strings.Builder
		lastKey string
	)

	// trees opened so far at each nesting level
	siblings := []int{0}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case r == '[':
			k := key.String()
			key.Reset()
			if k == "" {
				k = lastKey
			}

			value, end := readValue(runes, i+1)
			i = end

			if k != "" {
				props = append(props, Property{Key: k, Value: value})
			}
			lastKey = k
		case r == '(':
			key.Reset()
			lastKey = ""

			siblings[len(siblings)-1]++
			if siblings[len(siblings)-1] > 1 {
				i = skipTree(runes, i)
				continue
			}
			siblings = append(siblings, 0)
		case r == ')':
			key.Reset()
			lastKey = ""

			if len(siblings) > 1 {
				siblings = siblings[:len(siblings)-1]
			}
		case unicode.IsUpper(r):
			key.WriteRune(r)
		case unicode.IsLower(r), unicode.IsSpace(r):
		default:
			key.Reset()
			lastKey = ""
		}
	}

	return props
}

// skipTree returns the index of the ')' matching the '(' at start.
func skipTree(runes []rune, start int) int {
	depth := 0
	for i := start; i < len(runes); i++ {
		switch runes[i] {
		case '[':
			_, i = readValue(runes, i+1)
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(runes)
}

// readValue reads up to the first unescaped ']' and returns the unescaped
// value together with the index of the closing bracket.
func readValue(runes []rune, start int) (string, int) {
	var value strings.Builder

	i := start
	for ; i < len(runes); i++ {
		r := runes[i]

		if r == ']' {
			break
		}
		if r == '\\' && i+1 < len(runes) {
			i++
			if runes[i] == '\n' {
				// soft line break
				continue
			}
			value.WriteRune(runes[i])
			continue
		}
		value.WriteRune(r)
	}

	return value.String(), i
}
