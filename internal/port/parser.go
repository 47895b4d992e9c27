package port

import "context"

// PageInput carries one rasterized page image for vision-model extraction.
type PageInput struct {
	ImagePNG  []byte
	PageIndex int
}

// RawPageResult is the loose per-page model output before normalization.
// Field values may be plain strings, {value, confidence} objects, lists, or
// anything else the model emitted; the normalizer coerces them.
type RawPageResult struct {
	DocType     string                 `json:"doc_type"`
	Fields      map[string]interface{} `json:"fields"`
	ExtraFields map[string]interface{} `json:"extra_fields"`
}

// PageParser abstracts a single vision-model extraction call for one page.
type PageParser interface {
	ParsePage(ctx context.Context, input PageInput) (*RawPageResult, error)
}
