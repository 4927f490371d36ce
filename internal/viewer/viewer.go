// Package viewer provides a small read-only terminal browser over a folded
// document. It renders the currently visible lines with a gutter marker per
// trigger and lets the user collapse and expand scopes interactively. All
// mutation goes through folding.Scope, so the engine's invariants hold.
package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/SirmoGames/pyqode.core/internal/folding"
	"github.com/SirmoGames/pyqode.core/internal/linestore"
)

// Gutter markers for trigger lines.
const (
	markerExpanded  = '▾'
	markerCollapsed = '▸'
)

// Viewer is an interactive fold browser over a line store.
type Viewer struct {
	screen tcell.Screen
	store  *linestore.Store

	// cursor indexes into the current visible-line list.
	cursor int
	// top is the first visible-list index shown on screen.
	top int
}

// New creates a viewer with a real terminal screen.
func New(store *linestore.Store) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, store), nil
}

// NewWithScreen creates a viewer on an existing screen. Used by tests with
// tcell's simulation screen.
func NewWithScreen(screen tcell.Screen, store *linestore.Store) *Viewer {
	return &Viewer{screen: screen, store: store}
}

// Run initializes the screen and processes events until the user quits.
func (v *Viewer) Run() error {
	if err := v.screen.Init(); err != nil {
		return err
	}
	defer v.screen.Fini()

	for {
		v.draw()
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		}
	}
}

// handleKey processes one key event. Returns true when the viewer should
// exit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
		return true
	case ev.Key() == tcell.KeyUp, ev.Rune() == 'k':
		v.moveCursor(-1)
	case ev.Key() == tcell.KeyDown, ev.Rune() == 'j':
		v.moveCursor(1)
	case ev.Key() == tcell.KeyEnter, ev.Rune() == ' ':
		v.toggle()
	}
	return false
}

// visibleLines returns handles of all currently visible lines, recomputed
// from store state.
func (v *Viewer) visibleLines() []linestore.Handle {
	var lines []linestore.Handle
	for block := v.store.First(); block.Valid(); block = block.Next() {
		if block.Visible() {
			lines = append(lines, block)
		}
	}
	return lines
}

// moveCursor moves the cursor by delta within the visible lines.
func (v *Viewer) moveCursor(delta int) {
	count := len(v.visibleLines())
	if count == 0 {
		return
	}
	v.cursor += delta
	if v.cursor < 0 {
		v.cursor = 0
	}
	if v.cursor >= count {
		v.cursor = count - 1
	}
}

// toggle folds or unfolds the scope at the cursor. On a trigger line the
// line's own scope toggles; elsewhere the enclosing scope does.
func (v *Viewer) toggle() {
	visible := v.visibleLines()
	if v.cursor >= len(visible) {
		return
	}
	line := visible[v.cursor]

	if !line.IsTrigger() {
		line = folding.FindParentScope(line)
	}
	scope, err := folding.NewScope(line)
	if err != nil {
		return
	}

	if scope.Collapsed() {
		scope.Unfold()
	} else {
		scope.Fold()
		// Keep the cursor on a visible line: move it to the trigger.
		for i, h := range v.visibleLines() {
			if h.Number() == line.Number() {
				v.cursor = i
				break
			}
		}
	}
}

// draw renders the visible lines with their gutter.
func (v *Viewer) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	visible := v.visibleLines()

	if v.cursor >= len(visible) && len(visible) > 0 {
		v.cursor = len(visible) - 1
	}

	// Scroll so the cursor stays on screen.
	if v.cursor < v.top {
		v.top = v.cursor
	}
	if v.cursor >= v.top+height {
		v.top = v.cursor - height + 1
	}

	gutterStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	lineStyle := tcell.StyleDefault
	cursorStyle := tcell.StyleDefault.Reverse(true)

	for row := 0; row < height; row++ {
		idx := v.top + row
		if idx >= len(visible) {
			break
		}
		block := visible[idx]

		marker := ' '
		if block.IsTrigger() {
			marker = markerExpanded
			if block.Collapsed() {
				marker = markerCollapsed
			}
		}
		gutter := fmt.Sprintf("%4d %c ", block.Number()+1, marker)

		style := lineStyle
		if idx == v.cursor {
			style = cursorStyle
		}

		col := 0
		for _, r := range gutter {
			v.drawRune(col, row, r, gutterStyle)
			col++
		}
		for _, r := range block.Text() {
			if col >= width {
				break
			}
			v.drawRune(col, row, r, style)
			col++
		}
	}

	v.screen.Show()
}

func (v *Viewer) drawRune(x, y int, r rune, style tcell.Style) {
	v.screen.SetContent(x, y, r, nil, style)
}
