package filter

import "strings"

// ParseAttribute parses one attribute line into key, optional operator and
// values. It returns false when text is blank or a comment.
//
// Tokens are separated by unquoted spaces. Tabs are also accepted as
// separators, a deliberate widening so tab-aligned files parse like spaced
// ones. Double quotes toggle quoting and are kept in the token, so
// `Class "Stackable Currency"` yields the single value `"Stackable Currency"`.
// An unterminated quote absorbs the rest of the line into one token. Leading
// and trailing commas are stripped from each value and values left empty are
// discarded.
func ParseAttribute(text string) (AttributeLine, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return AttributeLine{}, false
	}

	tokens := tokenize(trimmed)

	line := AttributeLine{
		Key: tokens[0],
		Raw: trimmed,
	}

	start := 1
	if len(tokens) > 1 && IsOperator(tokens[1]) {
		line.Operator = tokens[1]
		start = 2
	}

	line.Values = sanitizeValues(tokens[start:])

	return line, true
}

func tokenize(s string) []string {
	var (
		tokens []string
		cur    strings.Builder
		quoted bool
	)

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted

			cur.WriteRune(r)
		case (r == ' ' || r == '\t') && !quoted:
			flush()
		default:
			cur.WriteRune(r)
		}
	}

	flush()

	return tokens
}

// sanitizeValues returns a new slice with leading and trailing commas
// stripped from each value and empty values removed. Whole comma runs are
// stripped so that output reparses to the same values.
func sanitizeValues(values []string) []string {
	out := make([]string, 0, len(values))

	for _, v := range values {
		v = strings.Trim(v, ",")

		if v != "" {
			out = append(out, v)
		}
	}

	return out
}
