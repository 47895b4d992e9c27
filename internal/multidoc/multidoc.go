// Package multidoc turns an ordered sequence of per-page extraction results
// into coherent logical documents. Pages arrive with partially missing
// doc_type labels and overlapping field sets; the pipeline repairs labels
// (SmoothDocTypes), cuts the sequence into contiguous groups (GroupPages),
// and merges each group's fields into one record (MergeGroup).
//
// The whole package is pure: no I/O, no clock, no shared mutable state.
// GroupAndMerge is safe to call concurrently for independent requests.
package multidoc

import "kyclens/internal/domain"

// GroupAndMerge runs the full pipeline over pages, which must already be
// sorted by ascending PageIndex. It is total and deterministic: the same
// input and config always produce the same output, including for degenerate
// inputs where no page carries a label or any fields.
func GroupAndMerge(pages []domain.PageResult, cfg Config) []domain.DocumentGroup {
	if len(pages) == 0 {
		return nil
	}

	smoothed := SmoothDocTypes(pages, cfg)
	groups := GroupPages(pages, smoothed, cfg)

	docs := make([]domain.DocumentGroup, 0, len(groups))
	for gid, indices := range groups {
		segment := make([]domain.PageResult, 0, len(indices))
		pageIndices := make([]int, 0, len(indices))
		for _, idx := range indices {
			segment = append(segment, pages[idx])
			pageIndices = append(pageIndices, pages[idx].PageIndex)
		}

		merged, extra := MergeGroup(segment)
		docs = append(docs, domain.DocumentGroup{
			GroupID:           gid,
			DocType:           groupDocType(indices, smoothed),
			PageIndices:       pageIndices,
			MergedFields:      merged,
			MergedExtraFields: extra,
		})
	}

	return docs
}
