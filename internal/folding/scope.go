package folding

import (
	"math"
	"strings"

	"github.com/SirmoGames/pyqode.core/internal/linestore"
)

// Scope is an ephemeral view over the fold-able region governed by one
// trigger line. It is built by lookup, used for one query or mutation, and
// discarded; it holds no state beyond the trigger handle and recomputes
// everything from the current store on each call.
//
// Two scopes are equal iff they reference the same trigger line.
type Scope struct {
	trigger linestore.Handle
}

// NewScope creates a scope anchored at trigger. Returns ErrNotTrigger if
// the line does not open a fold-able scope.
func NewScope(trigger linestore.Handle) (*Scope, error) {
	if !trigger.IsTrigger() {
		return nil, ErrNotTrigger
	}
	return &Scope{trigger: trigger}, nil
}

// Trigger returns the scope's trigger line.
func (s *Scope) Trigger() linestore.Handle {
	return s.trigger
}

// Equal reports whether both scopes reference the same trigger line.
func (s *Scope) Equal(other *Scope) bool {
	return other != nil && s.trigger.Number() == other.trigger.Number()
}

// TriggerLevel returns the fold level of the trigger line itself.
func (s *Scope) TriggerLevel() int {
	return s.trigger.FoldLevel()
}

// ScopeLevel returns the fold level of the scope body, i.e. the line just
// after the trigger.
func (s *Scope) ScopeLevel() int {
	return s.trigger.Next().FoldLevel()
}

// Collapsed reports whether the scope is currently folded.
func (s *Scope) Collapsed() bool {
	return s.trigger.Collapsed()
}

// GetRange returns the scope's line range as (first, last). first is the
// trigger's line number and is not part of the body; last is the number of
// the final body line. When ignoreBlankLines is set, trailing blank lines
// are trimmed from the end of the range.
func (s *Scope) GetRange(ignoreBlankLines bool) (first, last int) {
	refLevel := s.TriggerLevel()
	first = s.trigger.Number()

	block := s.trigger.Next()
	if !block.Valid() {
		return first, first
	}
	last = block.Number()

	if s.ScopeLevel() == refLevel {
		// Zones set programmatically, such as import blocks, keep the body
		// at the trigger's own level; compare against one level up.
		refLevel--
	}
	for block.Valid() && block.FoldLevel() > refLevel {
		last = block.Number()
		block = block.Next()
	}

	if ignoreBlankLines && last > 0 {
		b := s.trigger.Store().Line(last)
		for b.Number() > 0 && b.Blank() {
			b = b.Prev()
			last = b.Number()
		}
	}
	return first, last
}

// Fold collapses the scope: every line strictly inside the range is hidden,
// the trigger line itself stays visible. Folding an already collapsed scope
// is a no-op beyond the first call.
func (s *Scope) Fold() {
	_, end := s.GetRange(true)
	s.trigger.SetCollapsed(true)
	for block := s.trigger.Next(); block.Valid() && block.Number() <= end; block = block.Next() {
		block.SetVisible(false)
	}
}

// Unfold expands the scope one level: all direct body lines become visible
// and child scopes are expanded recursively, except that a collapsed child
// stays closed — only its trigger line and the blank tail after its body
// are revealed. This yields one-level-at-a-time expansion rather than a
// deep unfold.
func (s *Scope) Unfold() {
	s.trigger.SetVisible(true)
	s.trigger.SetCollapsed(false)
	for _, block := range s.DirectLines(false) {
		block.SetVisible(true)
	}
	for _, child := range s.ChildScopes() {
		if !child.Collapsed() {
			child.Unfold()
			continue
		}
		// Leave it closed but reveal the trigger line and the trailing
		// blank boundary lines; the body stays hidden.
		childStart, bodyEnd := child.GetRange(true)
		_, fullEnd := child.GetRange(false)
		store := s.trigger.Store()
		store.Line(childStart).SetVisible(true)
		for block := store.Line(fullEnd); block.Number() > bodyEnd; block = block.Prev() {
			block.SetVisible(true)
		}
	}
}

// DirectLines returns the lines directly under this scope, excluding any
// line owned by a nested scope. The result is recomputed from current store
// state on every call and is invalidated by any mutation.
func (s *Scope) DirectLines(ignoreBlankLines bool) []linestore.Handle {
	_, end := s.GetRange(ignoreBlankLines)
	ref := s.ScopeLevel()

	var lines []linestore.Handle
	for block := s.trigger.Next(); block.Valid() && block.Number() <= end; block = block.Next() {
		if block.FoldLevel() == ref && !block.IsTrigger() {
			lines = append(lines, block)
		}
	}
	return lines
}

// ChildScopes returns the direct nested scopes, one per trigger at the
// body's level. Recomputed from current store state on every call.
func (s *Scope) ChildScopes() []*Scope {
	_, end := s.GetRange(true)
	ref := s.ScopeLevel()

	var children []*Scope
	for block := s.trigger.Next(); block.Valid() && block.Number() <= end; block = block.Next() {
		if block.FoldLevel() == ref && block.IsTrigger() {
			if child, err := NewScope(block); err == nil {
				children = append(children, child)
			}
		}
	}
	return children
}

// Parent returns the nearest enclosing scope, or nil at top level.
func (s *Scope) Parent() *Scope {
	if s.TriggerLevel() == 0 || s.trigger.Number() == 0 {
		return nil
	}

	ref := s.TriggerLevel() - 1
	block := s.trigger.Prev()
	for block.Number() > 0 && (!block.IsTrigger() || block.FoldLevel() > ref) {
		block = block.Prev()
	}

	parent, err := NewScope(block)
	if err != nil {
		return nil
	}
	return parent
}

// Text returns the scope body joined by newlines, truncated to maxLines.
// Non-positive maxLines means unbounded.
func (s *Scope) Text(maxLines int) string {
	if maxLines <= 0 {
		maxLines = math.MaxInt
	}

	_, end := s.GetRange(true)
	var lines []string
	for block := s.trigger.Next(); block.Valid() && block.Number() <= end && len(lines) < maxLines; block = block.Next() {
		lines = append(lines, block.Text())
	}
	return strings.Join(lines, "\n")
}

// FindParentScope locates the trigger line governing the scope that
// contains line. A line that is itself a trigger is returned unchanged.
// The returned handle is not yet a Scope; callers pass it to NewScope.
func FindParentScope(line linestore.Handle) linestore.Handle {
	if line.IsTrigger() {
		return line
	}

	// Reference level comes from the next non-blank line.
	probe := line
	for probe.Valid() && probe.Blank() {
		probe = probe.Next()
	}
	ref := probe.FoldLevel() - 1

	block := line
	for block.Number() > 0 && (!block.IsTrigger() || block.FoldLevel() > ref) {
		block = block.Prev()
	}
	return block
}
