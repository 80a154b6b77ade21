package filter

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sentinel errors returned by mutation methods.
var (
	ErrUnknownBlockType = errors.New("unknown block type")
	ErrEmptyKey         = errors.New("empty attribute key")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrBlockNotFound    = errors.New("block not found")
	ErrNilBlock         = errors.New("nil block")
)

// BlockType is the keyword that opens a block.
type BlockType string

// Block types.
const (
	Show     BlockType = "Show"
	Hide     BlockType = "Hide"
	Minimal  BlockType = "Minimal"
	Continue BlockType = "Continue"
)

// Attribute keys whose repeated occurrences within one block collapse into a
// single line.
const (
	BaseType = "BaseType"
	Class    = "Class"
	Prophecy = "Prophecy"
)

var (
	blockTypes = []BlockType{Show, Hide, Minimal, Continue}
	mergeKeys  = []string{BaseType, Class, Prophecy}
	operators  = []string{"==", "=", "<", ">", "<=", ">="}
)

// ParseBlockType returns the [BlockType] for the exact keyword s.
func ParseBlockType(s string) (BlockType, error) {
	t := BlockType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBlockType, s)
	}

	return t, nil
}

// Valid reports whether t is one of the known block keywords.
func (t BlockType) Valid() bool {
	return slices.Contains(blockTypes, t)
}

// BlockTypes returns all block keywords in canonical order.
func BlockTypes() []BlockType {
	return slices.Clone(blockTypes)
}

// IsMergeKey reports whether repeated lines with key are collapsed into one.
// The comparison is case-sensitive.
func IsMergeKey(key string) bool {
	return slices.Contains(mergeKeys, key)
}

// Operators returns all comparison operators.
func Operators() []string {
	return slices.Clone(operators)
}

// IsOperator reports whether tok is a comparison operator.
func IsOperator(tok string) bool {
	return slices.Contains(operators, tok)
}

// ID is an opaque block identity. It never appears in rule file text.
type ID string

// AttributeLine is one condition or action inside a block.
type AttributeLine struct {
	// Key is case-preserving; lookups compare it case-insensitively.
	Key string
	// Operator is empty when the line uses implicit equality.
	Operator string
	// Values keeps token order. Quoted tokens keep their quotes.
	Values []string
	// Raw is the source text the line was parsed from. Merged lines join
	// their sources with newlines.
	Raw string
}

// String renders l as "Key [Operator] [Values...]".
func (l AttributeLine) String() string {
	var sb strings.Builder

	sb.WriteString(l.Key)

	if l.Operator != "" {
		sb.WriteByte(' ')
		sb.WriteString(l.Operator)
	}

	for _, v := range l.Values {
		sb.WriteByte(' ')
		sb.WriteString(v)
	}

	return sb.String()
}

// InlineComment is a comment inside a block, emitted immediately before
// Lines[BeforeIndex]. BeforeIndex equal to len(Lines) places it at the end
// of the block.
type InlineComment struct {
	Text        string
	BeforeIndex int
}

// Block is one rule block.
type Block struct {
	ID        ID
	Type      BlockType
	Category  string
	Name      string
	Priority  string
	RawHeader string

	InlineComments []InlineComment
	Lines          []AttributeLine

	// StartLine is the zero-based line of the first header line, or of the
	// type keyword when there is no header. [Serialize] recomputes it.
	StartLine int
}

// Document is an ordered list of blocks.
type Document []*Block
