package filter

import (
	"strings"
	"unicode"
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineTopComment
	lineInnerComment
	lineBlockStart
	lineAttribute
	lineStray
)

// classifiedLine is a raw line tagged with how the assembler should treat it.
// For comments, text is the stored comment text; for block starts, the
// keyword; for attributes and stray lines, the trimmed line.
type classifiedLine struct {
	text string
	kind lineKind
}

// classifyLine categorizes raw given whether a block is currently open.
func classifyLine(raw string, blockOpen bool) classifiedLine {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return classifiedLine{kind: lineBlank}
	}

	indented := strings.HasPrefix(raw, " ") || strings.HasPrefix(raw, "\t")

	if strings.HasPrefix(trimmed, "#") {
		if !blockOpen || !indented {
			text := strings.TrimPrefix(trimmed, "#")
			text = strings.TrimPrefix(text, " ")

			return classifiedLine{kind: lineTopComment, text: text}
		}

		// Inner comments keep their indentation and '#' verbatim.
		return classifiedLine{
			kind: lineInnerComment,
			text: strings.TrimRightFunc(raw, unicode.IsSpace),
		}
	}

	if !indented {
		keyword, _, _ := strings.Cut(trimmed, " ")
		keyword, _, _ = strings.Cut(keyword, "\t")

		if BlockType(keyword).Valid() {
			return classifiedLine{kind: lineBlockStart, text: keyword}
		}
	}

	if blockOpen {
		return classifiedLine{kind: lineAttribute, text: trimmed}
	}

	return classifiedLine{kind: lineStray, text: trimmed}
}

// splitLines splits text on LF and drops a trailing CR from each line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}

	return lines
}
