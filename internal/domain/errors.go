package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoInput         = errors.New("no matching input file found")
	ErrDecode          = errors.New("envelope could not be decoded")
	ErrParse           = errors.New("xml could not be converted")
	ErrFileIO          = errors.New("file could not be read or written")
	ErrInvalidTemplate = errors.New("target template is malformed")
	ErrSegmentMismatch = errors.New("source and target segment counts differ")
	ErrScoreConversion = errors.New("quality score is not an integer")
	ErrPublish         = errors.New("result upload to storage failed")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// Stage names a pipeline step for error reporting.
type Stage string

const (
	StageSelect  Stage = "select"
	StageDecode  Stage = "decode"
	StageConvert Stage = "convert"
	StageMerge   Stage = "merge"
	StageWrite   Stage = "write"
	StageReport  Stage = "report"
	StagePublish Stage = "publish"
)

// StageError records which pipeline stage failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Exit codes returned by the birmerge command.
const (
	ExitOK              = 0
	ExitUnexpected      = 1
	ExitNoInput         = 2
	ExitDecode          = 3
	ExitParse           = 4
	ExitFileIO          = 5
	ExitSegmentMismatch = 6
	ExitPublish         = 7
	ExitInvalidConfig   = 8
)

// ExitCode maps an error from a pipeline run to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidConfig):
		return ExitInvalidConfig
	case errors.Is(err, ErrNoInput):
		return ExitNoInput
	case errors.Is(err, ErrDecode):
		return ExitDecode
	case errors.Is(err, ErrParse):
		return ExitParse
	case errors.Is(err, ErrFileIO), errors.Is(err, ErrInvalidTemplate):
		return ExitFileIO
	case errors.Is(err, ErrSegmentMismatch):
		return ExitSegmentMismatch
	case errors.Is(err, ErrPublish):
		return ExitPublish
	default:
		return ExitUnexpected
	}
}
