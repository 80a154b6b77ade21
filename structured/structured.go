package structured

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/lootfilter/filter"
)

// Sentinel errors.
var (
	ErrUnknownFormat   = errors.New("unknown format")
	ErrInvalidDocument = errors.New("invalid document")
	ErrEncode          = errors.New("encode")
)

// Format is a structured encoding.
type Format string

const (
	// FormatYAML encodes as YAML.
	FormatYAML Format = "yaml"
	// FormatJSON encodes as indented JSON.
	FormatJSON Format = "json"
)

// ParseFormat parses a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if slices.Contains(Formats(), f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Formats returns all supported formats.
func Formats() []Format {
	return []Format{FormatYAML, FormatJSON}
}

// File is the root of the structured form.
type File struct {
	Blocks []Block `json:"blocks" yaml:"blocks" jsonschema:"rule blocks in file order"`
}

// Block is the structured form of a [filter.Block].
type Block struct {
	ID       string    `json:"id,omitempty"       yaml:"id,omitempty"       jsonschema:"stable block identity generated when absent"`
	Type     string    `json:"type"               yaml:"type"               jsonschema:"block keyword"`
	Category string    `json:"category,omitempty" yaml:"category,omitempty" jsonschema:"first header field"`
	Name     string    `json:"name,omitempty"     yaml:"name,omitempty"     jsonschema:"second header field or the whole header"`
	Priority string    `json:"priority,omitempty" yaml:"priority,omitempty" jsonschema:"third header field"`
	Header   string    `json:"header,omitempty"   yaml:"header,omitempty"   jsonschema:"raw header comment text without the leading hash"`
	Comments []Comment `json:"comments,omitempty" yaml:"comments,omitempty" jsonschema:"comments inside the block"`
	Lines    []Line    `json:"lines,omitempty"    yaml:"lines,omitempty"    jsonschema:"conditions and actions"`
}

// Line is the structured form of a [filter.AttributeLine].
type Line struct {
	Key      string   `json:"key"                yaml:"key"                jsonschema:"attribute key"`
	Operator string   `json:"operator,omitempty" yaml:"operator,omitempty" jsonschema:"comparison operator omitted for implicit equality"`
	Values   []string `json:"values,omitempty"   yaml:"values,omitempty"   jsonschema:"value tokens where quoted tokens keep their quotes"`
}

// Comment is the structured form of a [filter.InlineComment].
type Comment struct {
	Text   string `json:"text"   yaml:"text"   jsonschema:"comment text"`
	Before int    `json:"before" yaml:"before" jsonschema:"index of the line the comment precedes"`
}

// FromDocument converts doc to its structured form.
func FromDocument(doc filter.Document) File {
	f := File{Blocks: make([]Block, 0, len(doc))}

	for _, b := range doc {
		if b == nil {
			continue
		}

		sb := Block{
			ID:       string(b.ID),
			Type:     string(b.Type),
			Category: b.Category,
			Name:     b.Name,
			Priority: b.Priority,
			Header:   b.RawHeader,
		}

		for _, c := range b.InlineComments {
			sb.Comments = append(sb.Comments, Comment{Before: c.BeforeIndex, Text: c.Text})
		}

		for _, l := range b.Lines {
			sb.Lines = append(sb.Lines, Line{
				Key:      l.Key,
				Operator: l.Operator,
				Values:   slices.Clone(l.Values),
			})
		}

		f.Blocks = append(f.Blocks, sb)
	}

	return f
}

// Document builds a [filter.Document] from f. Blocks without an ID draw one
// from ids.
func (f File) Document(ids filter.IDGenerator) (filter.Document, error) {
	doc := make(filter.Document, 0, len(f.Blocks))
	seen := make(map[filter.ID]bool, len(f.Blocks))

	for i, sb := range f.Blocks {
		b, err := sb.block(ids)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrInvalidDocument, i, err)
		}

		if seen[b.ID] {
			return nil, fmt.Errorf("%w: block %d: duplicate id %q", ErrInvalidDocument, i, b.ID)
		}

		seen[b.ID] = true
		doc = append(doc, b)
	}

	return doc, nil
}

func (sb Block) block(ids filter.IDGenerator) (*filter.Block, error) {
	t, err := filter.ParseBlockType(sb.Type)
	if err != nil {
		return nil, err
	}

	id := filter.ID(sb.ID)
	if id == "" {
		id = ids.NewID()
	}

	b, err := filter.NewBlock(id, t)
	if err != nil {
		return nil, err
	}

	b.RawHeader = sb.Header

	fields := filter.Header{Category: sb.Category, Name: sb.Name, Priority: sb.Priority}
	fromRaw := filter.DecomposeHeader(lastLine(sb.Header))

	switch {
	case fields == (filter.Header{}):
		b.Category, b.Name, b.Priority = fromRaw.Category, fromRaw.Name, fromRaw.Priority
	case fields != fromRaw:
		b.SetHeader(fields)
	default:
		b.Category, b.Name, b.Priority = fields.Category, fields.Name, fields.Priority
	}

	for _, l := range sb.Lines {
		err := b.AddLine(filter.AttributeLine{
			Key:      l.Key,
			Operator: l.Operator,
			Values:   slices.Clone(l.Values),
		})
		if err != nil {
			return nil, err
		}
	}

	for _, c := range sb.Comments {
		b.InlineComments = append(b.InlineComments, filter.InlineComment{
			BeforeIndex: c.Before,
			Text:        c.Text,
		})
	}

	return b, nil
}

func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i]
		}
	}

	return ""
}

// Marshal encodes doc in format f.
func Marshal(doc filter.Document, f Format) ([]byte, error) {
	file := FromDocument(doc)

	switch f {
	case FormatJSON:
		out, err := json.MarshalIndent(file, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncode, err)
		}

		return append(out, '\n'), nil

	case FormatYAML:
		out, err := yaml.Marshal(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncode, err)
		}

		return out, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Option configures [Unmarshal].
type Option func(*options)

type options struct {
	ids filter.IDGenerator
}

// WithIDGenerator sets the source of IDs for blocks that lack one. The
// default is [filter.UUIDGenerator].
func WithIDGenerator(g filter.IDGenerator) Option {
	return func(o *options) {
		o.ids = g
	}
}

// Unmarshal decodes data in format f, validates it against [Schema], and
// builds a [filter.Document]. Empty input yields an empty Document.
func Unmarshal(data []byte, f Format, opts ...Option) (filter.Document, error) {
	o := options{ids: filter.UUIDGenerator{}}
	for _, opt := range opts {
		opt(&o)
	}

	if !slices.Contains(Formats(), f) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return filter.Document{}, nil
	}

	jsonData := data

	if f == FormatYAML {
		var err error

		jsonData, err = yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
	}

	var instance any

	err := json.Unmarshal(jsonData, &instance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	resolved, err := resolvedSchema()
	if err != nil {
		return nil, err
	}

	err = resolved.Validate(instance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	var file File

	err = json.Unmarshal(jsonData, &file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return file.Document(o.ids)
}
