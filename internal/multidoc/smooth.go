package multidoc

import "kyclens/internal/domain"

// SmoothDocTypes repairs missing doc_type labels across the page sequence and
// returns a same-length slice of repaired labels. Input pages are never
// mutated.
//
// Two passes run over the label sequence:
//
//  1. Forward fill: an unlabeled page inherits the previous page's label when
//     it shares at least MinKeyOverlapForContinuation keys with it, unless the
//     page introduces MinFieldsForNewDoc or more novel keys (a structurally
//     different document is likely starting, so the page stays unlabeled for
//     the grouper to resolve).
//  2. Gap bridging: a single still-empty slot between two pages carrying the
//     same label takes that label regardless of key overlap. Runs of two or
//     more empty slots are never bridged.
//
// The first page has no predecessor, so forward fill never applies to it.
func SmoothDocTypes(pages []domain.PageResult, cfg Config) []string {
	cfg = cfg.normalized()

	labels := make([]string, len(pages))
	for i := range pages {
		labels[i] = pages[i].DocType
	}
	if !cfg.ForwardFill && !cfg.BridgeGap {
		return labels
	}

	keySets := make([]map[string]struct{}, len(pages))
	for i := range pages {
		keySets[i] = pages[i].KeySet()
	}

	out := make([]string, len(labels))
	copy(out, labels)

	if cfg.ForwardFill {
		for i := 1; i < len(out); i++ {
			if out[i] != "" || out[i-1] == "" {
				continue
			}
			// Novelty override: many unseen keys suggest a new document,
			// so leave the page for the grouper.
			if novelKeys(keySets[i], keySets[i-1]) >= cfg.MinFieldsForNewDoc {
				continue
			}
			if keyOverlap(keySets[i], keySets[i-1]) >= cfg.MinKeyOverlapForContinuation {
				out[i] = out[i-1]
			}
		}
	}

	if cfg.BridgeGap {
		for i := 1; i < len(out)-1; i++ {
			if out[i] == "" && out[i-1] != "" && out[i+1] == out[i-1] {
				out[i] = out[i-1]
			}
		}
	}

	return out
}

// keyOverlap counts keys present in both sets.
func keyOverlap(a, b map[string]struct{}) int {
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// novelKeys counts keys in cur that do not appear in prev.
func novelKeys(cur, prev map[string]struct{}) int {
	n := 0
	for k := range cur {
		if _, ok := prev[k]; !ok {
			n++
		}
	}
	return n
}
