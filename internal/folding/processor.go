package folding

import (
	"github.com/SirmoGames/pyqode.core/internal/linestore"
	"github.com/SirmoGames/pyqode.core/internal/logging"
)

// Processor reconciles per-line folding state as lines are processed in
// document order. It calls the configured Detector for the raw level of
// each non-blank line and handles the corner cases itself: blank lines
// inherit the preceding level, trigger flags land on the last non-blank
// line before a level increase, and runaway level jumps are corrected so
// the tree stays well formed.
//
// Callers run one pass at a time; see the package documentation.
type Processor struct {
	detector Detector
	limit    int
	logger   *logging.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithLimit caps accepted fold levels at limit. Zero or negative means
// unbounded, the default.
func WithLimit(limit int) ProcessorOption {
	return func(p *Processor) {
		p.limit = limit
	}
}

// WithLogger sets the logger used for corrected-inconsistency reports.
// Defaults to logging.Nop.
func WithLogger(logger *logging.Logger) ProcessorOption {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProcessor creates a Processor using det for raw level detection.
func NewProcessor(det Detector, opts ...ProcessorOption) *Processor {
	p := &Processor{
		detector: det,
		logger:   logging.Nop,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ProcessAll runs ProcessLine over every line of the store in document
// order, the way a full re-highlight pass would.
func (p *Processor) ProcessAll(s *linestore.Store) {
	var prev linestore.Handle
	for cur := s.First(); cur.Valid(); cur = cur.Next() {
		p.ProcessLine(prev, cur)
		if !cur.Blank() {
			prev = cur
		}
	}
}

// ProcessLine updates cur's folding state from the detector and reconciles
// it with its neighbors. prev is the nearest preceding non-blank line;
// pass an invalid handle when there is none. Blank lines between prev and
// cur are reconciled here, callers never process them against each other.
//
// Level increases of more than one are clamped to prev's level plus one and
// logged at debug level; folding degrades gracefully rather than producing
// an invalid tree. Level decreases are passed through unclamped, matching
// the asymmetry of the reference behavior.
func (p *Processor) ProcessLine(prev, cur linestore.Handle) {
	if !cur.Valid() {
		return
	}

	prevLevel := prev.FoldLevel()

	var level int
	if cur.Blank() {
		// Blank lines always take the level of the preceding line.
		level = prevLevel
	} else {
		level = p.detector.DetectFoldLevel(prev, cur)
		if level < 0 {
			level = 0
		}
		if p.limit > 0 && level > p.limit {
			level = p.limit
		}
	}

	if level > prevLevel {
		// Raise any preceding blank run to the new level and anchor the
		// trigger on the last non-blank line before the run. If the run
		// reaches the top of the document the first blank keeps it.
		block := cur.Prev()
		last := block
		for block.Valid() && block.Blank() {
			block.SetFoldLevel(level)
			last = block
			block = block.Prev()
		}
		if block.Valid() {
			block.SetTrigger(true)
		} else if last.Valid() {
			last.SetTrigger(true)
		}
	}

	if delta := level - prevLevel; delta > 1 {
		p.logger.Debug(
			"(l%d) inconsistent fold level, difference between consecutive lines cannot be greater than 1 (%d)",
			cur.Number()+1, delta)
		level = prevLevel + 1
	}

	if !cur.Blank() {
		prev.SetTrigger(level > prevLevel)
	}
	cur.SetFoldLevel(level)

	// Enter pressed at the start of a trigger line: the blank left behind
	// still carries the trigger state, so move it onto the line that now
	// holds the content and clear the blank.
	if before := cur.Prev(); before.Valid() && before.Blank() && before.IsTrigger() {
		cur.SetTrigger(true)
		cur.SetCollapsed(before.Collapsed())
		before.SetTrigger(false)
		before.SetCollapsed(false)
	}
}
