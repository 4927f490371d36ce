package folding

import (
	"fmt"
	"io"

	"github.com/SirmoGames/pyqode.core/internal/linestore"
)

// PrintTree writes the current fold state of the store to w, one record per
// trigger line, for debugging and verification. With verbose set,
// non-trigger lines are included too.
//
// Record format, line numbers 1-based:
//
//	l<N>:<level><trigger><visibility>
//
// where trigger is '+' for an expanded trigger, '-' for a collapsed one and
// absent for non-trigger lines, and visibility is 'V' for visible or 'I'
// for hidden. Output is byte-stable across calls when no edits occur in
// between. The dump has no side effects on the store.
func PrintTree(s *linestore.Store, w io.Writer, verbose bool) error {
	for block := s.First(); block.Valid(); block = block.Next() {
		visibility := "V"
		if !block.Visible() {
			visibility = "I"
		}

		if block.IsTrigger() {
			mark := "+"
			if block.Collapsed() {
				mark = "-"
			}
			if _, err := fmt.Fprintf(w, "l%d:%d%s%s\n", block.Number()+1, block.FoldLevel(), mark, visibility); err != nil {
				return err
			}
		} else if verbose {
			if _, err := fmt.Fprintf(w, "l%d:%d%s\n", block.Number()+1, block.FoldLevel(), visibility); err != nil {
				return err
			}
		}
	}
	return nil
}
