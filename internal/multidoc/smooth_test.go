package multidoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kyclens/internal/domain"
	"kyclens/internal/multidoc"
)

// page builds a PageResult with the given canonical keys, each holding a
// non-empty value.
func page(idx int, docType string, keys ...string) domain.PageResult {
	fields := make(map[string]domain.FieldValue, len(keys))
	for _, k := range keys {
		fields[k] = domain.FieldValue{Value: "v:" + k, Confidence: 0.9}
	}
	return domain.PageResult{
		PageIndex:   idx,
		DocType:     docType,
		Fields:      fields,
		ExtraFields: map[string]domain.FieldValue{},
	}
}

func TestSmoothDocTypes_ForwardFillOnOverlap(t *testing.T) {
	pages := []domain.PageResult{
		page(0, "passport", "surname", "date_of_birth"),
		page(1, "", "surname", "issue_date"),
	}

	got := multidoc.SmoothDocTypes(pages, multidoc.DefaultConfig())

	assert.Equal(t, []string{"passport", "passport"}, got)
}

func TestSmoothDocTypes_NoOverlapNoFill(t *testing.T) {
	cfg := multidoc.DefaultConfig()
	cfg.MinFieldsForNewDoc = 5 // keep the novelty override out of the way

	pages := []domain.PageResult{
		page(0, "passport", "surname", "date_of_birth"),
		page(1, "", "meter_number", "tariff"),
	}

	got := multidoc.SmoothDocTypes(pages, cfg)

	assert.Equal(t, []string{"passport", ""}, got)
}

func TestSmoothDocTypes_NoveltyOverrideSkipsFill(t *testing.T) {
	// Page 1 shares one key but introduces three novel ones: a structurally
	// different document is likely starting, so it must stay unlabeled.
	pages := []domain.PageResult{
		page(0, "passport", "surname", "passport_number"),
		page(1, "", "surname", "license_number", "license_class", "issuing_office"),
	}

	got := multidoc.SmoothDocTypes(pages, multidoc.DefaultConfig())

	assert.Equal(t, []string{"passport", ""}, got)
}

func TestSmoothDocTypes_ChainedForwardFill(t *testing.T) {
	pages := []domain.PageResult{
		page(0, "passport", "surname", "date_of_birth"),
		page(1, "", "surname", "issue_date"),
		page(2, "", "issue_date"),
	}

	got := multidoc.SmoothDocTypes(pages, multidoc.DefaultConfig())

	assert.Equal(t, []string{"passport", "passport", "passport"}, got)
}

func TestSmoothDocTypes_BridgeGap(t *testing.T) {
	cfg := multidoc.DefaultConfig()
	cfg.ForwardFill = false

	pages := []domain.PageResult{
		page(0, "id_card", "surname"),
		page(1, "", "visa_number"),
		page(2, "id_card", "expiry_date"),
	}

	got := multidoc.SmoothDocTypes(pages, cfg)

	assert.Equal(t, []string{"id_card", "id_card", "id_card"}, got)
}

func TestSmoothDocTypes_DoubleGapNotBridged(t *testing.T) {
	cfg := multidoc.DefaultConfig()
	cfg.ForwardFill = false

	pages := []domain.PageResult{
		page(0, "id_card", "surname"),
		page(1, "", "visa_number"),
		page(2, "", "barcode_value"),
		page(3, "id_card", "expiry_date"),
	}

	got := multidoc.SmoothDocTypes(pages, cfg)

	assert.Equal(t, []string{"id_card", "", "", "id_card"}, got)
}

func TestSmoothDocTypes_FirstPageNeverFilled(t *testing.T) {
	pages := []domain.PageResult{
		page(0, "", "surname"),
		page(1, "passport", "surname", "passport_number"),
	}

	got := multidoc.SmoothDocTypes(pages, multidoc.DefaultConfig())

	assert.Equal(t, []string{"", "passport"}, got)
}

func TestSmoothDocTypes_Disabled(t *testing.T) {
	cfg := multidoc.Config{ForwardFill: false, BridgeGap: false, MinFieldsForNewDoc: 3, MinKeyOverlapForContinuation: 1}

	pages := []domain.PageResult{
		page(0, "passport", "surname"),
		page(1, "", "surname"),
		page(2, "passport", "surname"),
	}

	got := multidoc.SmoothDocTypes(pages, cfg)

	assert.Equal(t, []string{"passport", "", "passport"}, got)
}

func TestSmoothDocTypes_DoesNotMutateInput(t *testing.T) {
	pages := []domain.PageResult{
		page(0, "passport", "surname"),
		page(1, "", "surname"),
	}

	_ = multidoc.SmoothDocTypes(pages, multidoc.DefaultConfig())

	assert.Equal(t, "", pages[1].DocType)
}

func TestSmoothDocTypes_OverlapThresholds(t *testing.T) {
	tests := []struct {
		name       string
		minOverlap int
		want       string
	}{
		{"zero overlap required always fills", 0, "passport"},
		{"one shared key meets threshold of 1", 1, "passport"},
		{"threshold of 2 not met by one shared key", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := multidoc.DefaultConfig()
			cfg.MinFieldsForNewDoc = 10
			cfg.MinKeyOverlapForContinuation = tt.minOverlap
			cfg.BridgeGap = false

			pages := []domain.PageResult{
				page(0, "passport", "surname", "date_of_birth"),
				page(1, "", "surname", "notes"),
			}

			got := multidoc.SmoothDocTypes(pages, cfg)
			assert.Equal(t, tt.want, got[1])
		})
	}
}

func TestSmoothDocTypes_ExtraFieldsCountTowardOverlap(t *testing.T) {
	p0 := page(0, "utility_bill", "meter_number")
	p1 := page(1, "")
	p1.ExtraFields = map[string]domain.FieldValue{
		"meter_number": {Value: "88211", Confidence: 0.7},
	}

	got := multidoc.SmoothDocTypes([]domain.PageResult{p0, p1}, multidoc.DefaultConfig())

	assert.Equal(t, []string{"utility_bill", "utility_bill"}, got)
}
