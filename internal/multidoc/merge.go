package multidoc

import "kyclens/internal/domain"

// MergeGroup merges the canonical and extra field maps of a group's member
// pages into one map each, using first-non-empty-wins semantics: pages are
// visited in ascending page-index order and a later page never overwrites an
// earlier page's value for the same key, regardless of confidence. Later
// pages of a multi-page document tend to restate front-page values with OCR
// noise, so the earliest clean read is treated as authoritative.
func MergeGroup(pages []domain.PageResult) (fields, extra map[string]domain.FieldValue) {
	fields = make(map[string]domain.FieldValue)
	extra = make(map[string]domain.FieldValue)
	for _, p := range pages {
		mergeInto(fields, p.Fields)
		mergeInto(extra, p.ExtraFields)
	}
	return fields, extra
}

func mergeInto(dest, src map[string]domain.FieldValue) {
	for k, v := range src {
		if v.Value == "" {
			continue
		}
		if _, ok := dest[k]; !ok {
			dest[k] = v
		}
	}
}
