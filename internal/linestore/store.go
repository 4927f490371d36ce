package linestore

import (
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Errors returned by store operations.
var (
	ErrIndexOutOfRange = errors.New("line index out of range")
)

// DefaultTabWidth is the tab width used when none is configured.
const DefaultTabWidth = 4

// Store holds the document's lines in order. It is the single source of
// truth for both text and folding state.
//
// The store assumes exclusive single-writer access; see the package
// documentation for the concurrency contract.
type Store struct {
	lines    []Line
	tabWidth int
	revision uuid.UUID
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		tabWidth: DefaultTabWidth,
		revision: uuid.New(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FromString creates a store from text, one record per line. Line endings
// are normalized to LF before splitting. New lines start visible, at level
// zero, with no trigger state.
func FromString(text string, opts ...Option) *Store {
	s := New(opts...)
	text = normalizeLineEndings(text)
	for _, t := range strings.Split(text, "\n") {
		s.lines = append(s.lines, Line{Text: t, Visible: true})
	}
	return s
}

// FromReader creates a store from the full contents of r.
func FromReader(r io.Reader, opts ...Option) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromString(string(data), opts...), nil
}

// FromLines creates a store from pre-split lines.
func FromLines(lines []string, opts ...Option) *Store {
	s := New(opts...)
	for _, t := range lines {
		s.lines = append(s.lines, Line{Text: t, Visible: true})
	}
	return s
}

// normalizeLineEndings converts CRLF and CR line endings to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// Len returns the number of lines in the store.
func (s *Store) Len() int {
	return len(s.lines)
}

// Line returns a handle to the line at index i. Out-of-range indexes yield
// an invalid handle.
func (s *Store) Line(i int) Handle {
	return Handle{store: s, index: i}
}

// First returns a handle to the first line, invalid for an empty store.
func (s *Store) First() Handle {
	return s.Line(0)
}

// Last returns a handle to the last line, invalid for an empty store.
func (s *Store) Last() Handle {
	return s.Line(len(s.lines) - 1)
}

// SetText replaces the text of line i and bumps the revision. Folding state
// on the line is left untouched; callers are expected to re-run the fold
// processor over the affected range.
func (s *Store) SetText(i int, text string) error {
	if i < 0 || i >= len(s.lines) {
		return ErrIndexOutOfRange
	}
	s.lines[i].Text = text
	s.bump()
	return nil
}

// InsertLine inserts a new visible line before index i. Inserting at
// Len() appends.
func (s *Store) InsertLine(i int, text string) error {
	if i < 0 || i > len(s.lines) {
		return ErrIndexOutOfRange
	}
	s.lines = append(s.lines, Line{})
	copy(s.lines[i+1:], s.lines[i:])
	s.lines[i] = Line{Text: text, Visible: true}
	s.bump()
	return nil
}

// RemoveLine deletes the line at index i.
func (s *Store) RemoveLine(i int) error {
	if i < 0 || i >= len(s.lines) {
		return ErrIndexOutOfRange
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.bump()
	return nil
}

// Text returns the full document joined by LF.
func (s *Store) Text() string {
	texts := make([]string, len(s.lines))
	for i := range s.lines {
		texts[i] = s.lines[i].Text
	}
	return strings.Join(texts, "\n")
}

// TabWidth returns the store's configured tab width.
func (s *Store) TabWidth() int {
	return s.tabWidth
}

// Revision returns an identifier that changes whenever text is mutated.
// Consumers holding derived state (scopes, outlines) compare revisions to
// detect staleness.
func (s *Store) Revision() uuid.UUID {
	return s.revision
}

func (s *Store) bump() {
	s.revision = uuid.New()
}
