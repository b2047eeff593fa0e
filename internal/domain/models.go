package domain

// Envelope and tree keys used by the exchange format.
const (
	EnvelopeResponseKey  = "response"
	EnvelopeDocumentsKey = "documents"
	EnvelopeValueKey     = "value"

	SourceRootKey    = "BIR"
	SourceSegmentKey = "BIR"

	TargetResponseKey = "response"
	TargetSegmentsKey = "segments"
)

// ResultFileSuffix is appended to the input base name to form the result file name.
const ResultFileSuffix = "_updated_target_file.json"

// SegmentSummary is a flattened view of one merged target segment, used by reports.
type SegmentSummary struct {
	Index        int
	BDB          string
	QualityScore string
	Type         []string
	Subtype      []string
	CreationDate string
	FormatType   string
}
