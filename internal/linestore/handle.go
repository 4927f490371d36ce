package linestore

import "strings"

// Handle is a lightweight reference to one line of a Store. Handles past
// either end of the document are invalid: getters return zero values and
// setters do nothing, which lets callers walk off the boundaries without
// explicit checks.
//
// The zero Handle is invalid.
type Handle struct {
	store *Store
	index int
}

// Valid reports whether the handle references an existing line.
func (h Handle) Valid() bool {
	return h.store != nil && h.index >= 0 && h.index < len(h.store.lines)
}

// Number returns the 0-based line index, or -1 for an invalid handle.
func (h Handle) Number() int {
	if !h.Valid() {
		return -1
	}
	return h.index
}

// Store returns the owning store, nil for the zero handle.
func (h Handle) Store() *Store {
	return h.store
}

// Prev returns a handle to the previous line.
func (h Handle) Prev() Handle {
	return Handle{store: h.store, index: h.index - 1}
}

// Next returns a handle to the next line.
func (h Handle) Next() Handle {
	return Handle{store: h.store, index: h.index + 1}
}

// Text returns the line content.
func (h Handle) Text() string {
	if !h.Valid() {
		return ""
	}
	return h.store.lines[h.index].Text
}

// Blank reports whether the line is empty or whitespace-only. Invalid
// handles are not blank.
func (h Handle) Blank() bool {
	if !h.Valid() {
		return false
	}
	return strings.TrimSpace(h.store.lines[h.index].Text) == ""
}

// FoldLevel returns the line's fold level, 0 for an invalid handle.
func (h Handle) FoldLevel() int {
	if !h.Valid() {
		return 0
	}
	return h.store.lines[h.index].FoldLevel
}

// SetFoldLevel assigns the line's fold level.
func (h Handle) SetFoldLevel(level int) {
	if !h.Valid() {
		return
	}
	h.store.lines[h.index].FoldLevel = level
}

// IsTrigger reports whether the line opens a fold-able scope.
func (h Handle) IsTrigger() bool {
	if !h.Valid() {
		return false
	}
	return h.store.lines[h.index].Trigger
}

// SetTrigger assigns the line's trigger flag.
func (h Handle) SetTrigger(trigger bool) {
	if !h.Valid() {
		return
	}
	h.store.lines[h.index].Trigger = trigger
}

// Collapsed reports whether the line's scope is folded. Meaningful only
// when IsTrigger is true.
func (h Handle) Collapsed() bool {
	if !h.Valid() {
		return false
	}
	return h.store.lines[h.index].Collapsed
}

// SetCollapsed assigns the line's collapsed flag.
func (h Handle) SetCollapsed(collapsed bool) {
	if !h.Valid() {
		return
	}
	h.store.lines[h.index].Collapsed = collapsed
}

// Visible reports whether the line is currently displayed.
func (h Handle) Visible() bool {
	if !h.Valid() {
		return false
	}
	return h.store.lines[h.index].Visible
}

// SetVisible assigns the line's visibility flag.
func (h Handle) SetVisible(visible bool) {
	if !h.Valid() {
		return
	}
	h.store.lines[h.index].Visible = visible
}
