// Package converter turns BIR XML documents into generic trees.
package converter

import (
	"context"
	"fmt"
	"sync"

	"github.com/clbanning/mxj/v2"
	"golang.org/x/net/html/charset"

	"birmerge/internal/document"
	"birmerge/internal/domain"
)

var charsetOnce sync.Once

// XMLConverter converts XML text into a document.Tree the way xmltodict-style
// converters do: elements become keys, repeated elements become arrays,
// attributes are prefixed with "-" and element text next to attributes is
// stored under "#text". It implements port.Converter.
type XMLConverter struct{}

// NewXMLConverter creates a new XMLConverter. Documents that declare a
// non-UTF-8 encoding are transcoded before parsing.
func NewXMLConverter() *XMLConverter {
	charsetOnce.Do(func() {
		mxj.XmlCharsetReader = charset.NewReaderLabel
	})
	return &XMLConverter{}
}

// Convert parses xml and normalizes BIR.BIR to an array.
func (c *XMLConverter) Convert(ctx context.Context, xml []byte) (document.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := mxj.NewMapXml(xml)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}

	tree := document.Tree(m)
	if err := NormalizeSegments(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// NormalizeSegments wraps BIR.BIR in a one-element array when the document
// holds a single segment.
func NormalizeSegments(tree document.Tree) error {
	root, ok := tree[domain.SourceRootKey].(map[string]any)
	if !ok {
		return fmt.Errorf("%w: root element %q not found", domain.ErrParse, domain.SourceRootKey)
	}

	segments, ok := root[domain.SourceSegmentKey]
	if !ok {
		return fmt.Errorf("%w: no %s.%s segments", domain.ErrParse, domain.SourceRootKey, domain.SourceSegmentKey)
	}
	if _, isList := segments.([]any); !isList {
		root[domain.SourceSegmentKey] = []any{segments}
	}
	return nil
}
