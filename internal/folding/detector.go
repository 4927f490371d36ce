package folding

import "github.com/SirmoGames/pyqode.core/internal/linestore"

// Detector computes the raw fold level of a line.
//
// Implementations must be deterministic: the same pair of lines always
// yields the same level. They need not enforce level contiguity between
// consecutive lines, that is the Processor's job, but should aim for it.
// A negative return is a contract violation; the Processor clamps it to 0.
type Detector interface {
	// DetectFoldLevel returns the fold level for cur. prev is the nearest
	// preceding non-blank line, or an invalid handle when cur is the first
	// non-blank line of the document. Strategies that only look at the
	// current line may ignore prev.
	DetectFoldLevel(prev, cur linestore.Handle) int
}

// IndentDetector is the reference detector. It derives the fold level from
// the line's leading whitespace: level = indent columns / tab width,
// rounded down so levels stay aligned to indentation guides.
type IndentDetector struct {
	// TabWidth is the number of columns a tab occupies. Defaults to
	// linestore.DefaultTabWidth when non-positive.
	TabWidth int
}

// DetectFoldLevel implements Detector.
func (d IndentDetector) DetectFoldLevel(prev, cur linestore.Handle) int {
	width := d.TabWidth
	if width <= 0 {
		width = linestore.DefaultTabWidth
	}
	return indentColumns(cur.Text(), width) / width
}

// indentColumns measures the leading whitespace of text in columns, with
// tabs expanded to tabWidth columns.
func indentColumns(text string, tabWidth int) int {
	cols := 0
	for _, r := range text {
		switch r {
		case ' ':
			cols++
		case '\t':
			cols += tabWidth
		default:
			return cols
		}
	}
	return cols
}
