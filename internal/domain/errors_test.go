package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"birmerge/internal/domain"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, domain.ExitOK},
		{errors.New("boom"), domain.ExitUnexpected},
		{domain.ErrNoInput, domain.ExitNoInput},
		{domain.ErrDecode, domain.ExitDecode},
		{domain.ErrParse, domain.ExitParse},
		{domain.ErrFileIO, domain.ExitFileIO},
		{domain.ErrInvalidTemplate, domain.ExitFileIO},
		{domain.ErrSegmentMismatch, domain.ExitSegmentMismatch},
		{domain.ErrPublish, domain.ExitPublish},
		{domain.ErrInvalidConfig, domain.ExitInvalidConfig},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ExitCode(tt.err), "%v", tt.err)
	}
}

func TestExitCode_UnwrapsStageErrors(t *testing.T) {
	err := &domain.StageError{
		Stage: domain.StageDecode,
		Err:   fmt.Errorf("%w: bad padding", domain.ErrDecode),
	}

	assert.Equal(t, domain.ExitDecode, domain.ExitCode(fmt.Errorf("run: %w", err)))
	assert.Equal(t, "decode stage: envelope could not be decoded: bad padding", err.Error())

	var stageErr *domain.StageError
	assert.True(t, errors.As(err, &stageErr))
	assert.Equal(t, domain.StageDecode, stageErr.Stage)
}
