package filter

import "strings"

const headerDelimiter = " - "

// Header holds the fields decomposed from a block's header comment.
type Header struct {
	Category string
	Name     string
	Priority string
}

// DecomposeHeader splits a '#'-stripped header line on " - ".
//
// Three or more parts set category, name and priority, dropping any further
// parts. Two parts set category and name. Without a delimiter, the whole
// trimmed text is the name.
func DecomposeHeader(text string) Header {
	text = strings.TrimSpace(text)
	if text == "" {
		return Header{}
	}

	parts := strings.Split(text, headerDelimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch {
	case len(parts) >= 3:
		return Header{Category: parts[0], Name: parts[1], Priority: parts[2]}
	case len(parts) == 2:
		return Header{Category: parts[0], Name: parts[1]}
	}

	return Header{Name: text}
}

// String joins the non-empty fields with " - ". When both category and
// priority are set, the name slot is always written, even if empty, so the
// priority is not read back as the name.
//
// It is the inverse of [DecomposeHeader] for the name alone, category and
// name, or category and priority with any name. Other combinations shift
// fields when decomposed.
func (h Header) String() string {
	if h.Category != "" && h.Priority != "" {
		return h.Category + headerDelimiter + h.Name + headerDelimiter + h.Priority
	}

	parts := make([]string, 0, 3)

	for _, p := range []string{h.Category, h.Name, h.Priority} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, headerDelimiter)
}

// definitionalHeader returns the last non-blank line of header lines.
func definitionalHeader(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i]
		}
	}

	return ""
}
