// Package normalize coerces loose per-page model output into the canonical
// FieldValue maps the grouping engine consumes. Models return field values in
// several shapes (plain strings, {value, confidence} objects, lists, bare
// numbers); everything converges here, with confidence bounded to [0,1] and
// substituted with a default when absent or out of range.
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"kyclens/internal/domain"
	"kyclens/internal/port"
)

// DefaultConfidence is assigned when the model omits a confidence or reports
// one outside [0,1].
const DefaultConfidence = 0.5

// PageResult converts a raw model result into a normalized PageResult for the
// given page index. Fields that normalize to an empty value are dropped.
func PageResult(raw *port.RawPageResult, pageIndex int, defaultConf float64) domain.PageResult {
	if defaultConf < 0 || defaultConf > 1 {
		defaultConf = DefaultConfidence
	}
	out := domain.PageResult{
		PageIndex:   pageIndex,
		Fields:      map[string]domain.FieldValue{},
		ExtraFields: map[string]domain.FieldValue{},
	}
	if raw == nil {
		return out
	}
	out.DocType = strings.TrimSpace(raw.DocType)
	out.Fields = fieldMap(raw.Fields, defaultConf)
	out.ExtraFields = fieldMap(raw.ExtraFields, defaultConf)
	return out
}

func fieldMap(src map[string]interface{}, defaultConf float64) map[string]domain.FieldValue {
	out := make(map[string]domain.FieldValue, len(src))
	for k, v := range src {
		fv := FieldValue(v, defaultConf)
		if fv.Value == "" {
			continue
		}
		out[k] = fv
	}
	return out
}

// FieldValue coerces a single raw value into a FieldValue.
//
// Accepted shapes:
//   - object: "value"/"VALUE"/"val" key plus optional "confidence", falling
//     back to the lowest-keyed scalar member when no value key is present
//   - list: stringified non-nil members joined with a single space
//   - scalar: stringified, default confidence
//   - nil: empty value (dropped by the caller)
func FieldValue(raw interface{}, defaultConf float64) domain.FieldValue {
	switch v := raw.(type) {
	case nil:
		return domain.FieldValue{Confidence: defaultConf}
	case map[string]interface{}:
		val := objectValue(v)
		conf := defaultConf
		if c, ok := v["confidence"]; ok {
			conf = clampConfidence(c, defaultConf)
		}
		return domain.FieldValue{Value: val, Confidence: conf}
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			parts = append(parts, scalarString(item))
		}
		return domain.FieldValue{Value: strings.TrimSpace(strings.Join(parts, " ")), Confidence: defaultConf}
	default:
		return domain.FieldValue{Value: scalarString(v), Confidence: defaultConf}
	}
}

func objectValue(obj map[string]interface{}) string {
	for _, key := range []string{"value", "VALUE", "val"} {
		if v, ok := obj[key]; ok && v != nil {
			return scalarString(v)
		}
	}
	// Fallback: the scalar member with the lowest key. Key order is fixed so
	// the same input always yields the same value.
	keys := make([]string, 0, len(obj))
	for k := range obj {
		if k == "confidence" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch obj[k].(type) {
		case string, float64, int, bool:
			return scalarString(obj[k])
		}
	}
	return ""
}

func scalarString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func clampConfidence(raw interface{}, fallback float64) float64 {
	var c float64
	switch v := raw.(type) {
	case float64:
		c = v
	case int:
		c = float64(v)
	case string:
		var parsed float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%f", &parsed); err != nil {
			return fallback
		}
		c = parsed
	default:
		return fallback
	}
	if c < 0 || c > 1 {
		return fallback
	}
	return c
}
