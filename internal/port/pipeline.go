package port

import (
	"context"

	"birmerge/internal/document"
	"birmerge/internal/domain"
)

// Decoder turns an exchange envelope into raw XML text.
type Decoder interface {
	Decode(ctx context.Context, envelope []byte) ([]byte, error)
}

// Converter turns XML text into a source tree with BIR.BIR as an array.
type Converter interface {
	Convert(ctx context.Context, xml []byte) (document.Tree, error)
}

// InputSelector picks one input file from a directory.
type InputSelector interface {
	Select(dir, suffix string) (string, error)
}

// ReportWriter writes a per-segment summary of a result.
type ReportWriter interface {
	// Suffix is appended to the input base name to form the report file name.
	Suffix() string
	Write(path string, segments []domain.SegmentSummary) error
}
