package filter

import (
	"log/slog"
	"strings"
)

// Parser turns rule file text into a [Document].
//
// A Parser is safe for concurrent use as long as its [IDGenerator] is. Reuse
// one Parser across parses of the same file so that fresh IDs never collide
// with IDs handed out earlier.
//
// Create instances with [NewParser].
type Parser struct {
	ids    IDGenerator
	logger *slog.Logger
}

// Option configures a [Parser].
type Option func(*Parser)

// WithIDGenerator sets the source of block identities. The default is
// [UUIDGenerator].
func WithIDGenerator(g IDGenerator) Option {
	return func(p *Parser) {
		p.ids = g
	}
}

// WithLogger sets the logger used for debug diagnostics. The default is
// [slog.Default] at the time of each parse.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a [Parser] with the given options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{ids: UUIDGenerator{}}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

var defaultParser = NewParser()

// Parse parses text with a [Parser] that draws IDs from [UUIDGenerator].
func Parse(text string) Document {
	return defaultParser.Parse(text)
}

// Parse parses text into a [Document]. It never fails; empty or
// whitespace-only input yields an empty Document.
func (p *Parser) Parse(text string) Document {
	logger := p.logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &assembler{
		ids:         p.ids,
		logger:      logger,
		headerStart: -1,
	}

	for n, raw := range splitLines(text) {
		a.feed(n, raw)
	}

	return a.finish()
}

// assembler consumes classified lines and builds blocks.
type assembler struct {
	ids     IDGenerator
	logger  *slog.Logger
	current *Block
	blocks  Document
	header  []string
	// headerStart is the line of the first pending header line, or -1.
	headerStart int
}

func (a *assembler) feed(n int, raw string) {
	cl := classifyLine(raw, a.current != nil)

	switch cl.kind {
	case lineBlank:
	case lineTopComment:
		if a.headerStart < 0 {
			a.headerStart = n
		}

		a.header = append(a.header, cl.text)

	case lineInnerComment:
		a.current.InlineComments = append(a.current.InlineComments, InlineComment{
			BeforeIndex: len(a.current.Lines),
			Text:        cl.text,
		})

	case lineBlockStart:
		a.open(n, BlockType(cl.text))

	case lineAttribute:
		line, ok := ParseAttribute(cl.text)
		if ok {
			a.current.appendParsed(line)
		}

	case lineStray:
		a.logger.Debug("dropping line outside of any block",
			slog.Int("line", n+1),
			slog.String("text", cl.text),
		)
	}
}

func (a *assembler) open(n int, t BlockType) {
	if a.current != nil {
		a.blocks = append(a.blocks, a.current)
	}

	start := n
	if a.headerStart >= 0 {
		start = a.headerStart
	}

	h := DecomposeHeader(definitionalHeader(a.header))

	a.current = &Block{
		ID:        a.ids.NewID(),
		Type:      t,
		StartLine: start,
		Category:  h.Category,
		Name:      h.Name,
		Priority:  h.Priority,
		RawHeader: strings.Join(a.header, "\n"),
	}

	a.header = nil
	a.headerStart = -1
}

func (a *assembler) finish() Document {
	if a.current != nil {
		a.blocks = append(a.blocks, a.current)
		a.current = nil
	}

	if len(a.header) > 0 {
		a.logger.Debug("dropping trailing comments without a block",
			slog.Int("line", a.headerStart+1),
			slog.Int("count", len(a.header)),
		)
	}

	return a.blocks
}

// appendParsed appends a freshly parsed line, merging merge-set keys into an
// existing entry with the same (case-sensitive) key.
func (b *Block) appendParsed(line AttributeLine) {
	if IsMergeKey(line.Key) {
		for i := range b.Lines {
			if b.Lines[i].Key == line.Key {
				b.Lines[i].Values = append(b.Lines[i].Values, line.Values...)
				b.Lines[i].Raw = joinRaw(b.Lines[i].Raw, line.Raw)

				return
			}
		}
	}

	b.Lines = append(b.Lines, line)
}

func joinRaw(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}

	return a + "\n" + b
}
