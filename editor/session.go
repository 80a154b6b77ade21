package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.jacobcolvin.com/lootfilter/filter"
	"go.jacobcolvin.com/lootfilter/structured"
)

// ErrDuplicateID is returned when an inserted block reuses an existing ID.
var ErrDuplicateID = errors.New("duplicate block id")

// Session is an editable document plus the UI state attached to its blocks.
//
// Create instances with [NewSession].
type Session struct {
	ids        filter.IDGenerator
	logger     *slog.Logger
	parser     *filter.Parser
	serializer *filter.Serializer
	expanded   map[filter.ID]bool
	focused    filter.ID
	doc        filter.Document
	newline    string
	mu         sync.Mutex
}

// Option configures a [Session].
type Option func(*Session)

// WithIDGenerator sets the source of new block IDs. The default is
// [filter.UUIDGenerator].
func WithIDGenerator(g filter.IDGenerator) Option {
	return func(s *Session) {
		s.ids = g
	}
}

// WithLineEnding sets the newline used by [Session.Text].
func WithLineEnding(newline string) Option {
	return func(s *Session) {
		s.newline = newline
	}
}

// WithLogger sets the logger. The default is [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// NewSession parses text into a new [Session].
func NewSession(text string, opts ...Option) *Session {
	s := &Session{
		ids:      filter.UUIDGenerator{},
		newline:  "\n",
		expanded: map[filter.ID]bool{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.parser = filter.NewParser(filter.WithIDGenerator(s.ids), filter.WithLogger(s.logger))
	s.serializer = filter.NewSerializer(filter.WithLineEnding(s.newline))
	s.doc = s.parser.Parse(text)

	return s
}

// Text serializes the document and refreshes block start lines.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.serializer.Serialize(s.doc)
}

// SetText replaces the document with a parse of text. Blocks whose content
// is unchanged keep their IDs and UI state.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.parser.Parse(text)
	s.replace(filter.Reconcile(s.doc, next))
}

// Structured encodes the document in format f.
func (s *Session) Structured(f structured.Format) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return structured.Marshal(s.doc, f)
}

// SetStructured replaces the document with the decoded structured form.
// Blocks keep the IDs carried by data. On error the document is unchanged.
func (s *Session) SetStructured(data []byte, f structured.Format) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := structured.Unmarshal(data, f, structured.WithIDGenerator(s.ids))
	if err != nil {
		return err
	}

	s.replace(doc)

	return nil
}

// Blocks returns a deep copy of the document.
func (s *Session) Blocks() filter.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.doc.Clone()
}

// Block returns a copy of the block with the given ID.
func (s *Session) Block(id filter.ID) (*filter.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.doc.Find(id)
	if b == nil {
		return nil, false
	}

	return b.Clone(), true
}

// Update calls fn with a copy of the block with the given ID and stores the
// result if fn succeeds. The block keeps its ID.
func (s *Session) Update(id filter.ID, fn func(*filter.Block) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.doc.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", filter.ErrBlockNotFound, id)
	}

	b := s.doc[i].Clone()

	err := fn(b)
	if err != nil {
		return err
	}

	b.ID = id
	s.doc[i] = b

	return nil
}

// Insert inserts a copy of b before position i and returns its ID. A block
// without an ID gets a fresh one.
func (s *Session) Insert(i int, b *filter.Block) (filter.ID, error) {
	if b == nil {
		return "", filter.ErrNilBlock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b = b.Clone()
	if b.ID == "" {
		b.ID = s.ids.NewID()
	}

	if s.doc.Index(b.ID) >= 0 {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
	}

	err := s.doc.Insert(i, b)
	if err != nil {
		return "", err
	}

	return b.ID, nil
}

// Remove deletes the block with the given ID along with its UI state.
func (s *Session) Remove(id filter.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.doc.Remove(id)
	if err != nil {
		return err
	}

	s.prune()

	return nil
}

// Move moves the block at from so that it ends up at index to.
func (s *Session) Move(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.doc.Move(from, to)
}

// Expand marks a block as expanded.
func (s *Session) Expand(id filter.ID) error {
	return s.setExpanded(id, true)
}

// Collapse marks a block as collapsed.
func (s *Session) Collapse(id filter.ID) error {
	return s.setExpanded(id, false)
}

// Expanded reports whether a block is expanded.
func (s *Session) Expanded(id filter.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expanded[id]
}

// Focus marks a block as focused. An empty ID clears focus.
func (s *Session) Focus(id filter.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && s.doc.Index(id) < 0 {
		return fmt.Errorf("%w: %s", filter.ErrBlockNotFound, id)
	}

	s.focused = id

	return nil
}

// Focused returns the focused block, if any.
func (s *Session) Focused() (filter.ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.focused, s.focused != ""
}

// BlockAtLine returns the block that contains zero-based line n of
// [Session.Text]. Lines before the first block belong to no block.
func (s *Session) BlockAtLine(n int) (filter.ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.serializer.Serialize(s.doc)

	var (
		found filter.ID
		ok    bool
	)

	for _, b := range s.doc {
		if b.StartLine > n {
			break
		}

		found, ok = b.ID, true
	}

	return found, ok
}

func (s *Session) setExpanded(id filter.ID, v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.Index(id) < 0 {
		return fmt.Errorf("%w: %s", filter.ErrBlockNotFound, id)
	}

	if v {
		s.expanded[id] = true
	} else {
		delete(s.expanded, id)
	}

	return nil
}

func (s *Session) replace(doc filter.Document) {
	s.doc = doc
	s.prune()
}

// prune drops UI state of blocks that are gone.
func (s *Session) prune() {
	dropped := 0

	for id := range s.expanded {
		if s.doc.Index(id) < 0 {
			delete(s.expanded, id)
			dropped++
		}
	}

	if s.focused != "" && s.doc.Index(s.focused) < 0 {
		s.focused = ""
		dropped++
	}

	if dropped > 0 {
		s.logger.Debug("dropped state of removed blocks", slog.Int("count", dropped))
	}
}
