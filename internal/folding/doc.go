// Package folding derives a hierarchical fold tree from the flat line
// sequence held in a linestore.Store and exposes scope-level operations
// over it.
//
// The engine has three moving parts:
//
//   - Detector: a pluggable strategy that computes a raw fold level for a
//     line. IndentDetector, the reference implementation, derives levels
//     from leading whitespace.
//   - Processor: consumes one line at a time in document order, calls the
//     detector, and reconciles the line's level and trigger flags with its
//     neighbors so that levels stay contiguous and blank lines inherit
//     correctly.
//   - Scope: an ephemeral view anchored at a trigger line. It computes the
//     line range the trigger governs, folds and unfolds it, and navigates
//     to parent and child scopes.
//
// A full pass over a document looks like:
//
//	store := linestore.FromString(src)
//	proc := folding.NewProcessor(folding.IndentDetector{TabWidth: store.TabWidth()})
//	proc.ProcessAll(store)
//
//	scope, err := folding.NewScope(store.Line(0))
//	if err != nil {
//	    // line 0 does not open a scope
//	}
//	scope.Fold()
//
// Scopes are never stored: they are built by lookup, used for one query or
// mutation, and discarded. After any edit and reprocessing, previously
// constructed scopes are stale and must be re-derived.
//
// All operations run synchronously on the caller's goroutine and mutate
// visibility atomically with respect to the caller; see linestore for the
// single-writer contract.
package folding
