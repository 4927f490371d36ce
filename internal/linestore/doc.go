// Package linestore provides the ordered sequence of line records the
// folding engine operates on. Each line carries its text together with the
// folding side-table: fold level, trigger flag, collapsed flag and
// visibility.
//
// Lines are addressed through lightweight Handle values that navigate the
// document the way a cursor would:
//
//	store := linestore.FromString("def f():\n    x = 1\n")
//	for line := store.First(); line.Valid(); line = line.Next() {
//	    // inspect or mutate folding state
//	}
//
// Handles past either end of the document are invalid sentinels: getters on
// them return zero values and setters do nothing, so backward and forward
// walks never need explicit boundary checks.
//
// Concurrency:
//
// The store performs no locking of its own. It assumes a single writer — the
// thread running the fold pass — and any host embedding it in a concurrent
// environment must provide its own mutual exclusion. The revision ID changes
// on every text mutation so consumers can detect stale derived state.
package linestore
