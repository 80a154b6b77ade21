package filter

import (
	"fmt"
	"slices"
)

// Index returns the position of the block with the given ID, or -1.
func (d Document) Index(id ID) int {
	return slices.IndexFunc(d, func(b *Block) bool {
		return b != nil && b.ID == id
	})
}

// Find returns the block with the given ID, or nil.
func (d Document) Find(id ID) *Block {
	i := d.Index(id)
	if i < 0 {
		return nil
	}

	return d[i]
}

// Insert inserts b before d[i]. A nil b is rejected.
func (d *Document) Insert(i int, b *Block) error {
	if b == nil {
		return ErrNilBlock
	}

	if i < 0 || i > len(*d) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	*d = slices.Insert(*d, i, b)

	return nil
}

// Remove removes and returns the block with the given ID.
func (d *Document) Remove(id ID) (*Block, error) {
	i := d.Index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}

	b := (*d)[i]
	*d = slices.Delete(*d, i, i+1)

	return b, nil
}

// Move moves d[from] so that it ends up at index to.
func (d *Document) Move(from, to int) error {
	n := len(*d)
	if from < 0 || from >= n {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, from)
	}

	if to < 0 || to >= n {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, to)
	}

	b := (*d)[from]
	*d = slices.Delete(*d, from, from+1)
	*d = slices.Insert(*d, to, b)

	return nil
}

// Clone returns a deep copy of d. Block IDs are kept.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}

	out := make(Document, len(d))
	for i, b := range d {
		if b != nil {
			out[i] = b.Clone()
		}
	}

	return out
}
