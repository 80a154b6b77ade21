package filter

import (
	"encoding/hex"
	"strings"

	"github.com/zeebo/blake3"
)

const (
	fieldSep = "\x1f"
	lineSep  = "\x1e"
)

// Signature returns a digest of b's header, type and attribute lines. Blocks
// that serialize to the same text have the same signature. IDs, start lines
// and inline comments do not contribute.
func Signature(b *Block) string {
	var sb strings.Builder

	for _, l := range headerLines(b) {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}

	sb.WriteString(fieldSep)
	sb.WriteString(string(b.Type))
	sb.WriteString(fieldSep)

	for i, l := range b.Lines {
		if i > 0 {
			sb.WriteString(lineSep)
		}

		sb.WriteString(l.Key)
		sb.WriteByte(':')
		sb.WriteString(l.Operator)
		sb.WriteByte(':')
		sb.WriteString(strings.Join(l.Values, " "))
	}

	sum := blake3.Sum256([]byte(sb.String()))

	return hex.EncodeToString(sum[:])
}

// Reconcile assigns the IDs of previous to content-equivalent blocks of next,
// in place, and returns next.
//
// Blocks are matched by [Signature]. Several blocks with the same signature
// are matched in order: the first such block in next takes the ID of the
// first such block in previous, and so on. Blocks of next without a match
// keep their own ID.
func Reconcile(previous, next Document) Document {
	queues := make(map[string][]ID, len(previous))

	for _, b := range previous {
		if b == nil {
			continue
		}

		sig := Signature(b)
		queues[sig] = append(queues[sig], b.ID)
	}

	for _, b := range next {
		if b == nil {
			continue
		}

		sig := Signature(b)

		q := queues[sig]
		if len(q) == 0 {
			continue
		}

		b.ID = q[0]
		queues[sig] = q[1:]
	}

	return next
}
