package multidoc

import "kyclens/internal/domain"

// GroupPages partitions page indices into contiguous groups, each representing
// one logical document. smoothed must be the same length as pages and is
// normally the output of SmoothDocTypes.
//
// Scanning in order, a new group starts before page i when, relative to the
// previous page, either:
//
//   - the smoothed label changes from one non-empty value to a different
//     non-empty value, or
//   - the label is still empty AND the page introduces at least
//     MinFieldsForNewDoc novel keys AND shares fewer than
//     MinKeyOverlapForContinuation keys with the previous page. Both
//     conditions are required so genuine continuations that use slightly
//     different vocabulary are not split.
//
// Every input page index lands in exactly one group, groups are internally
// contiguous, and they are ordered by their first page index.
func GroupPages(pages []domain.PageResult, smoothed []string, cfg Config) [][]int {
	cfg = cfg.normalized()

	if len(pages) == 0 {
		return nil
	}

	keySets := make([]map[string]struct{}, len(pages))
	for i := range pages {
		keySets[i] = pages[i].KeySet()
	}

	var groups [][]int
	current := []int{0}

	for i := 1; i < len(pages); i++ {
		if startsNewGroup(i, smoothed, keySets, cfg) {
			groups = append(groups, current)
			current = []int{i}
			continue
		}
		current = append(current, i)
	}
	groups = append(groups, current)

	return groups
}

func startsNewGroup(i int, smoothed []string, keySets []map[string]struct{}, cfg Config) bool {
	// Unambiguous new document: the label switches between two values.
	if smoothed[i] != "" && smoothed[i-1] != "" && smoothed[i] != smoothed[i-1] {
		return true
	}

	// Smoothing could not resolve the page; split only on a strong structural
	// signal.
	if smoothed[i] == "" {
		return novelKeys(keySets[i], keySets[i-1]) >= cfg.MinFieldsForNewDoc &&
			keyOverlap(keySets[i], keySets[i-1]) < cfg.MinKeyOverlapForContinuation
	}

	return false
}

// groupDocType picks the label attributed to a group: the first non-empty
// smoothed label among its member pages, or empty if none carries one.
func groupDocType(indices []int, smoothed []string) string {
	for _, idx := range indices {
		if smoothed[idx] != "" {
			return smoothed[idx]
		}
	}
	return ""
}
