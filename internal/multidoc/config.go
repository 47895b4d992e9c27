package multidoc

// Config holds the heuristic knobs for doc-type smoothing and page grouping.
// It is passed explicitly into every operation so independent requests can run
// with different thresholds and nothing in this package holds process-wide
// state.
type Config struct {
	// ForwardFill inherits the previous page's doc_type onto an unlabeled
	// page when the pages share enough field keys.
	ForwardFill bool

	// BridgeGap fills a single unlabeled page sandwiched between two pages
	// carrying the same doc_type (A, _, A -> A, A, A).
	BridgeGap bool

	// MinFieldsForNewDoc is the number of novel field keys on an unlabeled
	// page that signals a new document rather than a continuation.
	MinFieldsForNewDoc int

	// MinKeyOverlapForContinuation is the number of repeated keys required
	// to treat an unlabeled page as a continuation of the previous page.
	MinKeyOverlapForContinuation int
}

// DefaultConfig returns the tuning used in production.
func DefaultConfig() Config {
	return Config{
		ForwardFill:                  true,
		BridgeGap:                    true,
		MinFieldsForNewDoc:           3,
		MinKeyOverlapForContinuation: 1,
	}
}

// normalized clamps thresholds into their documented ranges
// (MinFieldsForNewDoc >= 1, MinKeyOverlapForContinuation >= 0).
func (c Config) normalized() Config {
	if c.MinFieldsForNewDoc < 1 {
		c.MinFieldsForNewDoc = 1
	}
	if c.MinKeyOverlapForContinuation < 0 {
		c.MinKeyOverlapForContinuation = 0
	}
	return c
}
