package sgf

import (
	"fmt"
	"sort"
	"strings"
)

// Fixed property order used when writing nodes; anything else follows in
// alphabetical order.
var orderedKeys = []string{
	KeyFileFormat, KeyGameType, KeySize,
	KeyBlackName, KeyWhiteName, KeyBlackRank, KeyWhiteRank,
	KeyDate, KeyResult, KeyKomi, KeyRules, KeyComment,
	KeyAddBlack, KeyAddWhite, KeyBlack, KeyWhite,
}

func Serialize(s *SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	if s != nil && s.Root != nil {
		serializeGameTree(&builder, s.Root)
	}
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")

		used := make(map[string]bool)
		for _, key := range orderedKeys {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				writeProperty(builder, key, values)
			}
		}

		rest := make([]string, 0, len(node.Properties))
		for key := range node.Properties {
			if !used[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			writeProperty(builder, key, node.Properties[key])
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

func writeProperty(builder *strings.Builder, key string, values []string) {
	if len(values) == 0 {
		return
	}
	builder.WriteString(key)
	for _, v := range values {
		builder.WriteString("[")
		builder.WriteString(Escape(v))
		builder.WriteString("]")
	}
}

// Escape protects the characters that end or escape a property value.
func Escape(value string) string {
	if !strings.ContainsAny(value, `]\`) {
		return value
	}
	var b strings.Builder
	for _, r := range value {
		if r == ']' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AppendMove adds a single move node at the end of the main line, which
// is the first variation at every branch.
func AppendMove(sgfText, key, coordinates string) string {
	sgfText = strings.TrimRight(sgfText, " \t\r\n")
	node := fmt.Sprintf(";%s[%s]", key, Escape(coordinates))

	runes := []rune(sgfText)
	if end := mainLineEnd(runes); end >= 0 {
		return string(runes[:end]) + node + string(runes[end:])
	}
	return sgfText + node + ")"
}

// mainLineEnd returns the index of the first ')' outside property values,
// which closes the last tree of the main line, or -1 if there is none.
func mainLineEnd(runes []rune) int {
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '[':
			_, i = readValue(runes, i+1)
		case ')':
			return i
		}
	}
	return -1
}
