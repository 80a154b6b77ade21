package filter

import "strings"

const indent = "    "

// Serializer renders a [Document] as rule file text.
//
// Create instances with [NewSerializer].
type Serializer struct {
	newline string
}

// SerializerOption configures a [Serializer].
type SerializerOption func(*Serializer)

// WithLineEnding sets the line terminator. The default is "\n".
func WithLineEnding(newline string) SerializerOption {
	return func(s *Serializer) {
		if newline != "" {
			s.newline = newline
		}
	}
}

// NewSerializer creates a [Serializer] with the given options.
func NewSerializer(opts ...SerializerOption) *Serializer {
	s := &Serializer{newline: "\n"}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

var defaultSerializer = NewSerializer()

// Serialize renders doc with LF line endings. See [Serializer.Serialize].
func Serialize(doc Document) string {
	return defaultSerializer.Serialize(doc)
}

// Serialize renders doc and sets each block's StartLine to the zero-based
// line where the block begins in the returned text.
//
// [Block.RawHeader] is emitted when present; otherwise a header is
// synthesized from the decomposed fields when the name is set. Attribute
// lines and inline comments are indented with four spaces, and every block
// is followed by one blank line.
func (s *Serializer) Serialize(doc Document) string {
	var lines []string

	for _, b := range doc {
		if b == nil {
			continue
		}

		b.StartLine = len(lines)

		lines = append(lines, headerLines(b)...)
		lines = append(lines, string(b.Type))

		for i, l := range b.Lines {
			lines = appendComments(lines, b, i)
			lines = append(lines, indent+l.String())
		}

		lines = appendComments(lines, b, len(b.Lines))
		lines = append(lines, "")
	}

	return strings.Join(lines, s.newline)
}

func headerLines(b *Block) []string {
	var out []string

	if strings.TrimSpace(b.RawHeader) != "" {
		for l := range strings.SplitSeq(b.RawHeader, "\n") {
			l = strings.TrimRight(l, " \t\r")
			if strings.TrimSpace(l) == "" {
				continue
			}

			// The parser strips exactly one '#', so a stored line that still
			// starts with '#' only needs that one restored.
			if strings.HasPrefix(l, "#") {
				out = append(out, "#"+l)
			} else {
				out = append(out, "# "+l)
			}
		}

		return out
	}

	if b.Name != "" {
		h := Header{Category: b.Category, Name: b.Name, Priority: b.Priority}
		out = append(out, "# "+h.String())
	}

	return out
}

// appendComments appends the comments anchored at index i. Anchors outside
// [0, len(b.Lines)] are clamped.
func appendComments(lines []string, b *Block, i int) []string {
	for _, c := range b.InlineComments {
		if clamp(c.BeforeIndex, len(b.Lines)) != i {
			continue
		}

		text := strings.TrimSpace(c.Text)
		if !strings.HasPrefix(text, "#") {
			text = "# " + text
		}

		lines = append(lines, indent+text)
	}

	return lines
}

func clamp(i, n int) int {
	return min(max(i, 0), n)
}
