package linestore

// Line is one row of the document together with its folding state.
type Line struct {
	// Text is the line content, without a trailing newline.
	Text string

	// FoldLevel is the nesting depth assigned to the line. Zero for
	// top-level lines.
	FoldLevel int

	// Trigger marks a line that opens a fold-able scope, i.e. the next
	// non-blank line's level exceeds this line's level.
	Trigger bool

	// Collapsed is meaningful only when Trigger is set. It records whether
	// the scope opened by this line is currently folded.
	Collapsed bool

	// Visible reports whether the line is currently displayed. It is false
	// when the line sits inside a collapsed ancestor scope.
	Visible bool
}
