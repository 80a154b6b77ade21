package editor_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/lootfilter/editor"
	"go.jacobcolvin.com/lootfilter/filter"
	"go.jacobcolvin.com/lootfilter/filtertest"
	"go.jacobcolvin.com/lootfilter/structured"
)

var (
	blockA = filtertest.Block("Currency - Chaos", "Show", `BaseType "Chaos Orb"`, "SetFontSize 40")
	blockB = filtertest.Block("Gear - Rings", "Show", `Class "Rings"`, "Rarity Rare")
	blockC = filtertest.Block("", "Hide", "Rarity Normal")
)

func newSession(t *testing.T, text string) *editor.Session {
	t.Helper()

	return editor.NewSession(text, editor.WithIDGenerator(filter.NewCounter("b")))
}

func ids(doc filter.Document) []filter.ID {
	out := make([]filter.ID, 0, len(doc))
	for _, b := range doc {
		out = append(out, b.ID)
	}

	return out
}

func TestSessionText(t *testing.T) {
	t.Parallel()

	text := filtertest.Doc(blockA, blockB, blockC)
	s := newSession(t, text)

	assert.Equal(t, text, s.Text())
	assert.Equal(t, []filter.ID{"b1", "b2", "b3"}, ids(s.Blocks()))
}

func TestSessionLineEnding(t *testing.T) {
	t.Parallel()

	s := editor.NewSession(filtertest.Doc(blockC),
		editor.WithIDGenerator(filter.NewCounter("b")),
		editor.WithLineEnding("\r\n"))

	assert.Equal(t, filtertest.JoinCRLF(blockC...), s.Text())
}

func TestSessionSetText(t *testing.T) {
	t.Parallel()

	edited := filtertest.Block("Gear - Rings", "Show", `Class "Rings"`, "Rarity Unique")

	tcs := map[string]struct {
		text         string
		wantIDs      []filter.ID
		wantExpanded map[filter.ID]bool
		wantFocused  filter.ID
	}{
		"unchanged": {
			text:         filtertest.Doc(blockA, blockB, blockC),
			wantIDs:      []filter.ID{"b1", "b2", "b3"},
			wantExpanded: map[filter.ID]bool{"b1": true, "b2": true},
			wantFocused:  "b2",
		},
		"one block edited": {
			// The reparse hands out b4..b6; the edited block keeps its fresh
			// ID.
			text:         filtertest.Doc(blockA, edited, blockC),
			wantIDs:      []filter.ID{"b1", "b5", "b3"},
			wantExpanded: map[filter.ID]bool{"b1": true, "b2": false},
			wantFocused:  "",
		},
		"blocks reordered": {
			text:         filtertest.Doc(blockC, blockB, blockA),
			wantIDs:      []filter.ID{"b3", "b2", "b1"},
			wantExpanded: map[filter.ID]bool{"b1": true, "b2": true},
			wantFocused:  "b2",
		},
		"block removed": {
			text:         filtertest.Doc(blockA, blockC),
			wantIDs:      []filter.ID{"b1", "b3"},
			wantExpanded: map[filter.ID]bool{"b1": true, "b2": false},
			wantFocused:  "",
		},
		"emptied": {
			text:         "",
			wantIDs:      []filter.ID{},
			wantExpanded: map[filter.ID]bool{"b1": false, "b2": false},
			wantFocused:  "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := newSession(t, filtertest.Doc(blockA, blockB, blockC))

			require.NoError(t, s.Expand("b1"))
			require.NoError(t, s.Expand("b2"))
			require.NoError(t, s.Focus("b2"))

			s.SetText(tc.text)

			got := s.Blocks()
			require.Len(t, got, len(tc.wantIDs))

			assert.Equal(t, tc.wantIDs, ids(got))

			for id, want := range tc.wantExpanded {
				assert.Equal(t, want, s.Expanded(id), id)
			}

			focused, ok := s.Focused()
			assert.Equal(t, tc.wantFocused, focused)
			assert.Equal(t, tc.wantFocused != "", ok)
		})
	}
}

func TestSessionUpdate(t *testing.T) {
	t.Parallel()

	s := newSession(t, filtertest.Doc(blockA, blockC))

	err := s.Update("b1", func(b *filter.Block) error {
		b.ID = "hijacked"

		return b.SetLine(filter.AttributeLine{Key: "SetFontSize", Values: []string{"45"}})
	})
	require.NoError(t, err)

	assert.Equal(t, filtertest.Doc(
		filtertest.Block("Currency - Chaos", "Show", `BaseType "Chaos Orb"`, "SetFontSize 45"),
		blockC,
	), s.Text())

	b, ok := s.Block("b1")
	require.True(t, ok)
	assert.Equal(t, filter.ID("b1"), b.ID)

	errBoom := errors.New("boom")
	err = s.Update("b1", func(b *filter.Block) error {
		b.Lines = nil

		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	b, ok = s.Block("b1")
	require.True(t, ok)
	assert.Len(t, b.Lines, 2)

	err = s.Update("missing", func(*filter.Block) error { return nil })
	require.ErrorIs(t, err, filter.ErrBlockNotFound)
}

func TestSessionBlocksIsCopy(t *testing.T) {
	t.Parallel()

	s := newSession(t, filtertest.Doc(blockA))

	got := s.Blocks()
	got[0].Lines = nil

	b, ok := s.Block("b1")
	require.True(t, ok)
	assert.Len(t, b.Lines, 2)

	_, ok = s.Block("missing")
	assert.False(t, ok)
}

func TestSessionInsertRemoveMove(t *testing.T) {
	t.Parallel()

	s := newSession(t, filtertest.Doc(blockA, blockB))

	nb, err := filter.NewBlock("", filter.Minimal)
	require.NoError(t, err)
	require.NoError(t, nb.AddLine(filter.AttributeLine{Key: "Rarity", Values: []string{"Magic"}}))

	id, err := s.Insert(1, nb)
	require.NoError(t, err)
	assert.Equal(t, filter.ID("b3"), id)
	assert.Equal(t, []filter.ID{"b1", "b3", "b2"}, ids(s.Blocks()))

	dup, err := filter.NewBlock("b1", filter.Hide)
	require.NoError(t, err)

	_, err = s.Insert(0, dup)
	require.ErrorIs(t, err, editor.ErrDuplicateID)

	_, err = s.Insert(9, nb)
	require.ErrorIs(t, err, filter.ErrIndexOutOfRange)

	_, err = s.Insert(0, nil)
	require.ErrorIs(t, err, filter.ErrNilBlock)
	assert.Len(t, s.Blocks(), 3)

	require.NoError(t, s.Move(0, 2))
	assert.Equal(t, []filter.ID{"b3", "b2", "b1"}, ids(s.Blocks()))

	require.ErrorIs(t, s.Move(0, 3), filter.ErrIndexOutOfRange)

	require.NoError(t, s.Expand("b2"))
	require.NoError(t, s.Focus("b2"))
	require.NoError(t, s.Remove("b2"))

	assert.Equal(t, []filter.ID{"b3", "b1"}, ids(s.Blocks()))
	assert.False(t, s.Expanded("b2"))

	_, ok := s.Focused()
	assert.False(t, ok)

	require.ErrorIs(t, s.Remove("b2"), filter.ErrBlockNotFound)
}

func TestSessionExpandFocus(t *testing.T) {
	t.Parallel()

	s := newSession(t, filtertest.Doc(blockA))

	require.NoError(t, s.Expand("b1"))
	assert.True(t, s.Expanded("b1"))

	require.NoError(t, s.Collapse("b1"))
	assert.False(t, s.Expanded("b1"))

	require.ErrorIs(t, s.Expand("nope"), filter.ErrBlockNotFound)
	require.ErrorIs(t, s.Focus("nope"), filter.ErrBlockNotFound)

	require.NoError(t, s.Focus("b1"))

	id, ok := s.Focused()
	assert.True(t, ok)
	assert.Equal(t, filter.ID("b1"), id)

	require.NoError(t, s.Focus(""))

	_, ok = s.Focused()
	assert.False(t, ok)
}

func TestSessionBlockAtLine(t *testing.T) {
	t.Parallel()

	// Start lines: A=0, B=5, C=10.
	s := newSession(t, filtertest.Doc(blockA, blockB, blockC))

	tcs := map[string]struct {
		want filter.ID
		line int
		ok   bool
	}{
		"header of first":    {line: 0, want: "b1", ok: true},
		"separator of first": {line: 4, want: "b1", ok: true},
		"keyword of second":  {line: 6, want: "b2", ok: true},
		"last block":         {line: 11, want: "b3", ok: true},
		"past the end":       {line: 100, want: "b3", ok: true},
		"before first":       {line: -1, ok: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			id, ok := s.BlockAtLine(tc.line)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, id)
		})
	}
}

func TestSessionStructured(t *testing.T) {
	t.Parallel()

	text := filtertest.Doc(blockA, blockB)
	s := newSession(t, text)

	require.NoError(t, s.Expand("b2"))

	data, err := s.Structured(structured.FormatYAML)
	require.NoError(t, err)

	require.NoError(t, s.SetStructured(data, structured.FormatYAML))
	assert.Equal(t, text, s.Text())
	assert.Equal(t, []filter.ID{"b1", "b2"}, ids(s.Blocks()))
	assert.True(t, s.Expanded("b2"))

	err = s.SetStructured([]byte(`{"blocks":[{"type":"Nope"}]}`), structured.FormatJSON)
	require.ErrorIs(t, err, structured.ErrInvalidDocument)
	assert.Equal(t, text, s.Text())

	require.NoError(t, s.SetStructured([]byte(`{"blocks":[{"id":"b1","type":"Hide"}]}`), structured.FormatJSON))
	assert.Equal(t, "Hide\n", s.Text())
	assert.False(t, s.Expanded("b2"))
}

func TestSessionConcurrent(t *testing.T) {
	t.Parallel()

	text := filtertest.Doc(blockA, blockB, blockC)
	s := newSession(t, text)

	var wg sync.WaitGroup

	for range 8 {
		wg.Go(func() {
			for range 50 {
				s.SetText(text)
				_ = s.Text()
				_, _ = s.BlockAtLine(6)
				_ = s.Expand("b1")
			}
		})
	}

	wg.Wait()

	assert.Equal(t, []filter.ID{"b1", "b2", "b3"}, ids(s.Blocks()))
	assert.True(t, s.Expanded("b1"))
}
