package merger

import (
	"github.com/goccy/go-json"

	"birmerge/internal/document"
	"birmerge/internal/domain"
)

// Filter returns a copy of result whose segments are limited to those with a
// non-empty bdb, in their original order, and the number of segments removed.
// A result without a segment array is returned unchanged.
func Filter(result document.Tree) (document.Tree, int) {
	out := document.CopyTree(result)
	response := document.Object(out, domain.TargetResponseKey)
	if response == nil {
		return out, 0
	}
	segments, ok := response[domain.TargetSegmentsKey].([]any)
	if !ok {
		return out, 0
	}

	kept := make([]any, 0, len(segments))
	for _, seg := range segments {
		if bdb, _ := document.Lookup(seg, "bdb"); truthy(bdb) {
			kept = append(kept, seg)
		}
	}
	response[domain.TargetSegmentsKey] = kept
	return out, len(segments) - len(kept)
}

// truthy reports whether v is a non-empty value: not null, not false, not a
// zero number and not an empty string, array or object.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	case float64:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
