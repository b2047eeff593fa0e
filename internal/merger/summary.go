package merger

import (
	"fmt"

	"birmerge/internal/document"
	"birmerge/internal/domain"
)

// Summarize flattens the segments of a merged tree that Filter would keep.
// Index is the segment's position in merged, the same position merge
// warnings refer to, so pass the tree before filtering.
func Summarize(merged document.Tree) []domain.SegmentSummary {
	segments, _ := document.Array(merged, domain.TargetResponseKey, domain.TargetSegmentsKey)
	summaries := make([]domain.SegmentSummary, 0, len(segments))
	for i, seg := range segments {
		if bdb, _ := document.Lookup(seg, "bdb"); !truthy(bdb) {
			continue
		}
		summaries = append(summaries, domain.SegmentSummary{
			Index:        i,
			BDB:          scalar(seg, "bdb"),
			QualityScore: scalar(seg, "bdbInfo", "quality", "score"),
			Type:         stringList(seg, "bdbInfo", "type"),
			Subtype:      stringList(seg, "bdbInfo", "subtype"),
			CreationDate: scalar(seg, "bdbInfo", "creationDate"),
			FormatType:   scalar(seg, "bdbInfo", "format", "type"),
		})
	}
	return summaries
}

func scalar(v any, path ...string) string {
	found, ok := document.Lookup(v, path...)
	if !ok || found == nil {
		return ""
	}
	if s, ok := found.(string); ok {
		return s
	}
	return fmt.Sprint(found)
}

func stringList(v any, path ...string) []string {
	found, ok := document.Lookup(v, path...)
	if !ok || found == nil {
		return nil
	}
	list, ok := found.([]any)
	if !ok {
		return []string{fmt.Sprint(found)}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, fmt.Sprint(item))
	}
	return out
}
