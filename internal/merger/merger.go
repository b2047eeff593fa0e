// Package merger copies biometric segment fields from a converted source tree
// into a target template and filters the result.
package merger

import (
	"fmt"
	"log/slog"

	"birmerge/internal/document"
	"birmerge/internal/domain"
)

// Options controls a merge.
type Options struct {
	Pairing domain.PairingPolicy
	Logger  *slog.Logger
}

// Warning is a field-level problem that was recovered from.
type Warning struct {
	Segment int
	Field   string
	Value   any
	Err     error
}

func (w Warning) Error() string {
	return fmt.Sprintf("segment %d: %s: %v", w.Segment, w.Field, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// Report summarizes what a merge did.
type Report struct {
	SourceSegments int
	TargetSegments int
	Paired         int
	Warnings       []Warning
}

// Merge returns a new tree built from a deep copy of target with the fields
// of each source segment applied to the target segment at the same position.
// Neither input is modified.
func Merge(target, source document.Tree, opts Options) (document.Tree, *Report, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	pairing := opts.Pairing
	if pairing == "" {
		pairing = domain.PairingTruncate
	}

	result := document.CopyTree(target)
	targetSegments, ok := document.Array(result, domain.TargetResponseKey, domain.TargetSegmentsKey)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s.%s is not an array",
			domain.ErrInvalidTemplate, domain.TargetResponseKey, domain.TargetSegmentsKey)
	}
	sourceSegments, err := SourceSegments(source)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{
		SourceSegments: len(sourceSegments),
		TargetSegments: len(targetSegments),
	}

	if len(sourceSegments) != len(targetSegments) {
		if pairing == domain.PairingStrict {
			return nil, nil, fmt.Errorf("%w: %d source, %d target",
				domain.ErrSegmentMismatch, len(sourceSegments), len(targetSegments))
		}
		log.Info("merger.Merge: segment counts differ, pairing by position",
			"source_segments", len(sourceSegments),
			"target_segments", len(targetSegments))
	}

	n := min(len(sourceSegments), len(targetSegments))
	for i := 0; i < n; i++ {
		tgt, ok := targetSegments[i].(map[string]any)
		if !ok {
			report.Warnings = append(report.Warnings, Warning{Segment: i, Field: "segment",
				Value: targetSegments[i], Err: fmt.Errorf("target segment is %T, want object", targetSegments[i])})
			continue
		}
		src, ok := sourceSegments[i].(map[string]any)
		if !ok {
			report.Warnings = append(report.Warnings, Warning{Segment: i, Field: "segment",
				Value: sourceSegments[i], Err: fmt.Errorf("source segment is %T, want object", sourceSegments[i])})
			continue
		}

		report.Warnings = append(report.Warnings, mergeSegment(i, tgt, src)...)
		report.Paired++
	}

	for _, w := range report.Warnings {
		log.Warn("merger.Merge: field skipped", "segment", w.Segment, "field", w.Field, "value", w.Value, "error", w.Err)
	}
	return result, report, nil
}

// SourceSegments returns BIR.BIR as an array, wrapping a lone segment.
func SourceSegments(source document.Tree) ([]any, error) {
	raw, ok := document.Lookup(source, domain.SourceRootKey, domain.SourceSegmentKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s not found", domain.ErrParse, domain.SourceRootKey, domain.SourceSegmentKey)
	}
	if list, ok := raw.([]any); ok {
		return list, nil
	}
	return []any{raw}, nil
}

// mergeSegment applies segmentRules to one pair. tgt is modified in place.
func mergeSegment(index int, tgt, src map[string]any) []Warning {
	var warnings []Warning
	for _, rule := range segmentRules {
		value, found := resolve(src, rule)
		if !found {
			if rule.anchor == nil {
				continue
			}
			if _, anchored := document.Lookup(src, rule.anchor...); !anchored {
				continue
			}
			setPath(tgt, rule.target, rule.missing())
			continue
		}

		if rule.transform != nil {
			converted, err := rule.transform(value)
			if err != nil {
				warnings = append(warnings, Warning{Segment: index, Field: rule.name, Value: value, Err: err})
				continue
			}
			value = converted
		}
		setPath(tgt, rule.target, value)
	}
	return warnings
}

// resolve returns the value of the first candidate source path present in
// src. Nulls count as absent unless the rule keeps them, and empty strings
// count as absent for rules that skip them.
func resolve(src map[string]any, rule fieldRule) (any, bool) {
	for _, path := range rule.sources {
		value, ok := document.Lookup(src, path...)
		if !ok {
			continue
		}
		if value == nil && !rule.keepNull {
			return nil, false
		}
		if s, ok := value.(string); ok && s == "" && rule.skipEmpty {
			return nil, false
		}
		return value, true
	}
	return nil, false
}

func setPath(obj map[string]any, path []string, value any) {
	for _, key := range path[:len(path)-1] {
		obj = document.EnsureObject(obj, key)
	}
	obj[path[len(path)-1]] = value
}
