package merger

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"birmerge/internal/domain"
)

// IdentifierKeys are the source keys checked, in order, for the segment
// identifier. The first one present wins.
var IdentifierKeys = []string{"bdb", "BDB"}

type transformFunc func(value any) (any, error)

// fieldRule copies one source field into the paired target segment.
type fieldRule struct {
	name string
	// sources are candidate source paths; the first present one is used.
	sources [][]string
	target  []string
	// keepNull copies an explicit null instead of treating it as absent.
	keepNull bool
	// skipEmpty treats an empty string, what an empty XML element converts
	// to, as absent.
	skipEmpty bool
	transform transformFunc
	// when set, the rule also fires if only this source path is present,
	// writing missing() to the target.
	anchor  []string
	missing func() any
}

// segmentRules are applied to every paired segment in order.
var segmentRules = []fieldRule{
	{
		name:     "bdb",
		sources:  identifierPaths(),
		target:   []string{"bdb"},
		keepNull: true,
	},
	{
		name:      "bdbInfo.quality.score",
		sources:   [][]string{{"BDBInfo", "Quality", "Score"}},
		target:    []string{"bdbInfo", "quality", "score"},
		skipEmpty: true,
		transform: toInteger,
	},
	{
		name:      "bdbInfo.type",
		sources:   [][]string{{"BDBInfo", "Type"}},
		target:    []string{"bdbInfo", "type"},
		skipEmpty: true,
		transform: upperList,
	},
	{
		name:      "bdbInfo.subtype",
		sources:   [][]string{{"BDBInfo", "Subtype"}},
		target:    []string{"bdbInfo", "subtype"},
		transform: splitTokens,
		anchor:    []string{"BDBInfo"},
		missing:   func() any { return []any{} },
	},
	{
		name:      "bdbInfo.creationDate",
		sources:   [][]string{{"BDBInfo", "CreationDate"}},
		target:    []string{"bdbInfo", "creationDate"},
		skipEmpty: true,
	},
	{
		name:      "bdbInfo.format.type",
		sources:   [][]string{{"BDBInfo", "Format", "Type"}},
		target:    []string{"bdbInfo", "format", "type"},
		skipEmpty: true,
	},
}

func identifierPaths() [][]string {
	paths := make([][]string, len(IdentifierKeys))
	for i, key := range IdentifierKeys {
		paths[i] = []string{key}
	}
	return paths
}

// toInteger converts a score to an int64. Strings are trimmed first, the way
// an integer parser accepting surrounding whitespace does.
func toInteger(value any) (any, error) {
	switch v := value.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrScoreConversion, v)
		}
		return n, nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrScoreConversion, v)
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int64(v), nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrScoreConversion, v)
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: unsupported value of type %T", domain.ErrScoreConversion, value)
	}
}

// upperList upper-cases a type value and wraps it in an array. A repeated
// element, already an array, is upper-cased element-wise.
func upperList(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return []any{strings.ToUpper(v)}, nil
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("type: unsupported element of type %T", item)
			}
			out = append(out, strings.ToUpper(s))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("type: unsupported value of type %T", value)
	}
}

// splitTokens splits a subtype on whitespace.
func splitTokens(value any) (any, error) {
	var parts []string
	switch v := value.(type) {
	case string:
		parts = strings.Fields(v)
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("subtype: unsupported element of type %T", item)
			}
			parts = append(parts, strings.Fields(s)...)
		}
	default:
		return nil, fmt.Errorf("subtype: unsupported value of type %T", value)
	}

	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out, nil
}
