package filter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/lootfilter/filter"
	"go.jacobcolvin.com/lootfilter/filtertest"
)

func ids(doc filter.Document) []filter.ID {
	out := make([]filter.ID, len(doc))
	for i, b := range doc {
		out[i] = b.ID
	}

	return out
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	x := filtertest.Block("Currency - Chaos", "Show", `BaseType "Chaos Orb"`)
	y := filtertest.Block("Gear - Rings", "Show", `Class "Rings"`, "ItemLevel >= 60")
	yEdited := filtertest.Block("Gear - Rings", "Show", `Class "Rings"`, "ItemLevel >= 75")
	z := filtertest.Block("Junk", "Hide", "Rarity Normal")

	tcs := map[string]struct {
		previous string
		next     string
		// want lists, per block of next, the index of the previous block
		// whose ID it should take, or -1 for a fresh ID.
		want []int
	}{
		"unchanged": {
			previous: filtertest.Doc(x, y),
			next:     filtertest.Doc(x, y),
			want:     []int{0, 1},
		},
		"one block edited": {
			previous: filtertest.Doc(x, y),
			next:     filtertest.Doc(x, yEdited),
			want:     []int{0, -1},
		},
		"blocks reordered": {
			previous: filtertest.Doc(x, y, z),
			next:     filtertest.Doc(z, x, y),
			want:     []int{2, 0, 1},
		},
		"block inserted": {
			previous: filtertest.Doc(x, y),
			next:     filtertest.Doc(x, z, y),
			want:     []int{0, -1, 1},
		},
		"block removed": {
			previous: filtertest.Doc(x, z, y),
			next:     filtertest.Doc(x, y),
			want:     []int{0, 2},
		},
		"duplicates matched in order": {
			previous: filtertest.Doc(z, x, z),
			next:     filtertest.Doc(z, z),
			want:     []int{0, 2},
		},
		"more duplicates than before": {
			previous: filtertest.Doc(z),
			next:     filtertest.Doc(z, z),
			want:     []int{0, -1},
		},
		"empty previous": {
			previous: "",
			next:     filtertest.Doc(x),
			want:     []int{-1},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := newParser()

			previous := p.Parse(tc.previous)
			next := p.Parse(tc.next)
			fresh := ids(next)

			got := filter.Reconcile(previous, next)
			require.Len(t, got, len(tc.want))

			for i, from := range tc.want {
				if from < 0 {
					assert.Equal(t, fresh[i], got[i].ID, "block %d should keep its fresh ID", i)
				} else {
					assert.Equal(t, previous[from].ID, got[i].ID, "block %d should take ID of previous block %d", i, from)
				}
			}
		})
	}
}

func TestReconcileDuplicateOrder(t *testing.T) {
	t.Parallel()

	z := filtertest.Block("", "Hide", "Rarity Normal")

	p := newParser()
	previous := p.Parse(filtertest.Doc(z, z))
	next := p.Parse(filtertest.Doc(z, z))

	z1, z2 := previous[0].ID, previous[1].ID

	filter.Reconcile(previous, next)

	assert.Equal(t, []filter.ID{z1, z2}, ids(next))
}

func TestReconcileAfterTextRoundTrip(t *testing.T) {
	t.Parallel()

	input := filtertest.JoinLF(
		"#",
		"# Banner",
		"# Currency - Chaos",
		"Show",
		filtertest.Attr(`BaseType "Chaos Orb",`),
		filtertest.Attr("# comment"),
		filtertest.Attr(`BaseType "Divine Orb"`),
		"Hide",
		filtertest.Attr("Rarity Normal"),
	)

	p := newParser()
	previous := p.Parse(input)

	// Edit only the second block in the raw text view.
	text := strings.Replace(filter.Serialize(previous), "Rarity Normal", "Rarity Magic", 1)
	next := filter.Reconcile(previous, p.Parse(text))

	require.Len(t, next, 2)
	assert.Equal(t, previous[0].ID, next[0].ID)
	assert.NotEqual(t, previous[1].ID, next[1].ID)
	assert.NotEqual(t, previous[0].ID, next[1].ID)
}

func TestSignature(t *testing.T) {
	t.Parallel()

	base := func() *filter.Block {
		return &filter.Block{
			ID:        "a",
			Type:      filter.Show,
			RawHeader: "A - B",
			Lines: []filter.AttributeLine{
				{Key: "ItemLevel", Operator: ">=", Values: []string{"60"}},
			},
		}
	}

	tcs := map[string]struct {
		mutate func(*filter.Block)
		same   bool
	}{
		"id ignored": {
			mutate: func(b *filter.Block) { b.ID = "other" },
			same:   true,
		},
		"start line ignored": {
			mutate: func(b *filter.Block) { b.StartLine = 40 },
			same:   true,
		},
		"inline comments ignored": {
			mutate: func(b *filter.Block) {
				b.InlineComments = []filter.InlineComment{{Text: "# x"}}
			},
			same: true,
		},
		"raw text ignored": {
			mutate: func(b *filter.Block) { b.Lines[0].Raw = "ItemLevel   >=   60" },
			same:   true,
		},
		"blank header lines ignored": {
			mutate: func(b *filter.Block) { b.RawHeader = "\nA - B\n" },
			same:   true,
		},
		"type": {
			mutate: func(b *filter.Block) { b.Type = filter.Hide },
		},
		"header": {
			mutate: func(b *filter.Block) { b.RawHeader = "A - C" },
		},
		"operator": {
			mutate: func(b *filter.Block) { b.Lines[0].Operator = "<=" },
		},
		"values": {
			mutate: func(b *filter.Block) { b.Lines[0].Values = []string{"61"} },
		},
		"key": {
			mutate: func(b *filter.Block) { b.Lines[0].Key = "DropLevel" },
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := base()
			tc.mutate(b)

			if tc.same {
				assert.Equal(t, filter.Signature(base()), filter.Signature(b))
			} else {
				assert.NotEqual(t, filter.Signature(base()), filter.Signature(b))
			}
		})
	}
}
