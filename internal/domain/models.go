package domain

// FieldValue is a single extracted value with its model-reported confidence.
// Confidence is clamped to [0,1] by the normalizer before any downstream code
// sees it; the grouping engine treats it as opaque metadata.
type FieldValue struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// PageResult is the normalized extraction output for one rasterized page.
// PageIndex is 0-based and pages are always handled in ascending order.
// DocType is empty when the model could not classify the page or declined to
// repeat a label on a continuation page.
type PageResult struct {
	PageIndex   int                   `json:"page_index"`
	DocType     string                `json:"doc_type,omitempty"`
	Fields      map[string]FieldValue `json:"fields"`
	ExtraFields map[string]FieldValue `json:"extra_fields"`
}

// KeySet returns the union of canonical and extra field keys on the page.
func (p PageResult) KeySet() map[string]struct{} {
	keys := make(map[string]struct{}, len(p.Fields)+len(p.ExtraFields))
	for k := range p.Fields {
		keys[k] = struct{}{}
	}
	for k := range p.ExtraFields {
		keys[k] = struct{}{}
	}
	return keys
}

// DocumentGroup is one logical document assembled from a contiguous run of
// pages. GroupID is 0-based in discovery order; PageIndices is contiguous,
// non-empty, and across all groups covers every input page exactly once.
type DocumentGroup struct {
	GroupID           int                   `json:"group_id"`
	DocType           string                `json:"doc_type,omitempty"`
	PageIndices       []int                 `json:"page_indices"`
	MergedFields      map[string]FieldValue `json:"merged_fields"`
	MergedExtraFields map[string]FieldValue `json:"merged_extra_fields"`
}

// ExtractionMeta carries request-level statistics for monitoring.
type ExtractionMeta struct {
	TotalPages  int   `json:"total_pages"`
	TotalGroups int   `json:"total_groups"`
	ElapsedMS   int64 `json:"elapsed_ms"`
}

// ExtractionResult is the top-level payload returned by the multi-document
// extraction endpoint.
type ExtractionResult struct {
	Documents []DocumentGroup `json:"documents"`
	Meta      ExtractionMeta  `json:"meta"`
}
