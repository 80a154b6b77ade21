package filter

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// NewBlock creates an empty block of type t.
func NewBlock(id ID, t BlockType) (*Block, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, t)
	}

	return &Block{ID: id, Type: t}, nil
}

// Header returns the decomposed header fields.
func (b *Block) Header() Header {
	return Header{Category: b.Category, Name: b.Name, Priority: b.Priority}
}

// SetHeader sets the decomposed header fields and rewrites the last non-blank
// line of [Block.RawHeader] to match, keeping any earlier lines.
func (b *Block) SetHeader(h Header) {
	b.Category = h.Category
	b.Name = h.Name
	b.Priority = h.Priority

	lines := strings.Split(b.RawHeader, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			lines[i] = h.String()
			b.RawHeader = strings.Join(lines, "\n")

			return
		}
	}

	b.RawHeader = h.String()
}

// Index returns the index of the first line whose key equals key, ignoring
// case, or -1.
func (b *Block) Index(key string) int {
	return slices.IndexFunc(b.Lines, func(l AttributeLine) bool {
		return strings.EqualFold(l.Key, key)
	})
}

// Line returns the first line whose key equals key, ignoring case.
func (b *Block) Line(key string) (AttributeLine, bool) {
	i := b.Index(key)
	if i < 0 {
		return AttributeLine{}, false
	}

	return b.Lines[i], true
}

// LinesFor returns every line whose key equals key, ignoring case.
func (b *Block) LinesFor(key string) []AttributeLine {
	var out []AttributeLine

	for _, l := range b.Lines {
		if strings.EqualFold(l.Key, key) {
			out = append(out, l)
		}
	}

	return out
}

// AddLine appends l, or merges its values into an existing line when l's key
// is a merge key.
func (b *Block) AddLine(l AttributeLine) error {
	return b.InsertLine(len(b.Lines), l)
}

// SetLine replaces the first line with l's key (ignoring case) in place and
// removes any later lines with that key. Without a match, l is appended.
func (b *Block) SetLine(l AttributeLine) error {
	l, err := normalizeLine(l)
	if err != nil {
		return err
	}

	i := b.Index(l.Key)
	if i < 0 {
		b.insertAt(len(b.Lines), l)
		b.collapse()

		return nil
	}

	b.Lines[i] = l

	for j := len(b.Lines) - 1; j > i; j-- {
		if strings.EqualFold(b.Lines[j].Key, l.Key) {
			b.removeAt(j)
		}
	}

	b.collapse()

	return nil
}

// InsertLine inserts l before Lines[i]. Inline comments anchored at or after
// i stay with the lines they preceded.
func (b *Block) InsertLine(i int, l AttributeLine) error {
	if i < 0 || i > len(b.Lines) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	l, err := normalizeLine(l)
	if err != nil {
		return err
	}

	b.insertAt(i, l)
	b.collapse()

	return nil
}

// ReplaceLine replaces Lines[i] with l.
func (b *Block) ReplaceLine(i int, l AttributeLine) error {
	if i < 0 || i >= len(b.Lines) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	l, err := normalizeLine(l)
	if err != nil {
		return err
	}

	b.Lines[i] = l
	b.collapse()

	return nil
}

// RemoveLine removes every line whose key equals key, ignoring case, and
// returns how many were removed.
func (b *Block) RemoveLine(key string) int {
	n := 0

	for i := len(b.Lines) - 1; i >= 0; i-- {
		if strings.EqualFold(b.Lines[i].Key, key) {
			b.removeAt(i)
			n++
		}
	}

	return n
}

// RemoveLineAt removes Lines[i].
func (b *Block) RemoveLineAt(i int) error {
	if i < 0 || i >= len(b.Lines) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	b.removeAt(i)

	return nil
}

// MoveLine moves Lines[from] so that it ends up at index to. Inline comments
// anchored directly before the moved line travel with it.
func (b *Block) MoveLine(from, to int) error {
	n := len(b.Lines)
	if from < 0 || from >= n {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, from)
	}

	if to < 0 || to >= n {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, to)
	}

	if from == to {
		return nil
	}

	var moved, kept []InlineComment

	for _, c := range b.InlineComments {
		if c.BeforeIndex == from {
			moved = append(moved, c)
		} else {
			kept = append(kept, c)
		}
	}

	b.InlineComments = kept

	l := b.Lines[from]
	b.removeAt(from)
	b.insertAt(to, l)

	for _, c := range moved {
		c.BeforeIndex = to
		b.InlineComments = append(b.InlineComments, c)
	}

	b.sortComments()

	return nil
}

// Clone returns a deep copy of b with the same ID.
func (b *Block) Clone() *Block {
	c := *b
	c.InlineComments = slices.Clone(b.InlineComments)
	c.Lines = make([]AttributeLine, len(b.Lines))

	for i, l := range b.Lines {
		l.Values = slices.Clone(l.Values)
		c.Lines[i] = l
	}

	return &c
}

func normalizeLine(l AttributeLine) (AttributeLine, error) {
	l.Key = strings.TrimSpace(l.Key)
	if l.Key == "" {
		return AttributeLine{}, ErrEmptyKey
	}

	l.Operator = strings.TrimSpace(l.Operator)
	l.Values = sanitizeValues(l.Values)

	if l.Raw == "" {
		l.Raw = l.String()
	}

	return l, nil
}

func (b *Block) insertAt(i int, l AttributeLine) {
	b.Lines = slices.Insert(b.Lines, i, l)

	for k := range b.InlineComments {
		if b.InlineComments[k].BeforeIndex >= i {
			b.InlineComments[k].BeforeIndex++
		}
	}
}

func (b *Block) removeAt(i int) {
	b.Lines = slices.Delete(b.Lines, i, i+1)

	for k := range b.InlineComments {
		if b.InlineComments[k].BeforeIndex > i {
			b.InlineComments[k].BeforeIndex--
		}
	}
}

// collapse merges later lines with the same merge key (case-sensitive) into
// the first one.
func (b *Block) collapse() {
	for i := 0; i < len(b.Lines); i++ {
		if !IsMergeKey(b.Lines[i].Key) {
			continue
		}

		for j := i + 1; j < len(b.Lines); {
			if b.Lines[j].Key != b.Lines[i].Key {
				j++

				continue
			}

			b.Lines[i].Values = append(b.Lines[i].Values, b.Lines[j].Values...)
			b.Lines[i].Raw = joinRaw(b.Lines[i].Raw, b.Lines[j].Raw)
			b.removeAt(j)
		}
	}
}

func (b *Block) sortComments() {
	slices.SortStableFunc(b.InlineComments, func(x, y InlineComment) int {
		return cmp.Compare(x.BeforeIndex, y.BeforeIndex)
	})
}
