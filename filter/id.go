package filter

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces block identities. Implementations must be safe for
// concurrent use and must not repeat an ID.
type IDGenerator interface {
	NewID() ID
}

// IDGeneratorFunc adapts a function to [IDGenerator].
type IDGeneratorFunc func() ID

// NewID calls f.
func (f IDGeneratorFunc) NewID() ID {
	return f()
}

// UUIDGenerator produces random (version 4) UUIDs. It is the default.
type UUIDGenerator struct{}

// NewID returns a new random UUID.
func (UUIDGenerator) NewID() ID {
	return ID(uuid.NewString())
}

// Counter produces deterministic IDs of the form prefix + n, with n starting
// at 1.
//
// Create instances with [NewCounter].
type Counter struct {
	prefix string
	n      atomic.Uint64
}

// NewCounter creates a [Counter] with the given prefix.
func NewCounter(prefix string) *Counter {
	return &Counter{prefix: prefix}
}

// NewID returns the next ID.
func (c *Counter) NewID() ID {
	return ID(c.prefix + strconv.FormatUint(c.n.Add(1), 10))
}
