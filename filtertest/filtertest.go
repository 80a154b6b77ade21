// Package filtertest provides helpers for building rule file text in tests.
package filtertest

import "strings"

// Indent is the indentation of attribute lines and inline comments.
const Indent = "    "

// JoinLF joins lines with LF line endings.
//
// Example:
//
//	text := filtertest.JoinLF(
//		"Show",
//		filtertest.Attr(`BaseType "Chaos Orb"`),
//	) // -> "Show\n    BaseType \"Chaos Orb\""
func JoinLF(lines ...string) string {
	return strings.Join(lines, "\n")
}

// JoinCRLF joins lines with CRLF line endings, as written by Windows
// editors.
func JoinCRLF(lines ...string) string {
	return strings.Join(lines, "\r\n")
}

// Attr returns s indented as an attribute line or inline comment.
func Attr(s string) string {
	return Indent + s
}

// Header returns text as an unindented header comment.
func Header(text string) string {
	return "# " + text
}

// Block returns the lines of one block: an optional header comment (omitted
// when header is empty), the type keyword, and each attribute indented.
// A trailing blank separator line is included, matching serializer output.
func Block(header, keyword string, attrs ...string) []string {
	var lines []string

	if header != "" {
		lines = append(lines, Header(header))
	}

	lines = append(lines, keyword)

	for _, a := range attrs {
		lines = append(lines, Attr(a))
	}

	return append(lines, "")
}

// Doc concatenates blocks built with [Block] and joins them with LF, giving
// the exact text the serializer produces for them.
func Doc(blocks ...[]string) string {
	var lines []string
	for _, b := range blocks {
		lines = append(lines, b...)
	}

	return JoinLF(lines...)
}

// Input strips one leading and one trailing newline from s and removes the
// indentation common to all non-blank lines. Whitespace-only lines become
// empty.
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")
	prefix := commonIndent(lines)

	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = strings.TrimPrefix(l, prefix)
	}

	return strings.Join(lines, "\n")
}

func commonIndent(lines []string) string {
	var (
		prefix string
		found  bool
	)

	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}

		ws := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if !found {
			prefix = ws
			found = true

			continue
		}

		n := 0
		for n < len(prefix) && n < len(ws) && prefix[n] == ws[n] {
			n++
		}

		prefix = prefix[:n]
	}

	return prefix
}
