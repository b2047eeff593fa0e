package domain

// PairingPolicy decides how source and target segment lists of different
// lengths are reconciled.
type PairingPolicy string

const (
	// PairingTruncate zips the two lists and stops at the shorter one.
	PairingTruncate PairingPolicy = "truncate"
	// PairingStrict rejects lists of different lengths.
	PairingStrict PairingPolicy = "strict"
)

// ValidPairingPolicies lists the accepted pairing policy values.
var ValidPairingPolicies = map[PairingPolicy]bool{
	PairingTruncate: true,
	PairingStrict:   true,
}

// SelectionPolicy decides which input file is picked when several match.
type SelectionPolicy string

const (
	SelectionLexicographic SelectionPolicy = "lexicographic"
	SelectionNewest        SelectionPolicy = "newest"
)

// ValidSelectionPolicies lists the accepted selection policy values.
var ValidSelectionPolicies = map[SelectionPolicy]bool{
	SelectionLexicographic: true,
	SelectionNewest:        true,
}

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)
