package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"birmerge/internal/config"
	"birmerge/internal/document"
	"birmerge/internal/domain"
	"birmerge/internal/merger"
	"birmerge/internal/port"
)

// RunInput selects what a run processes. An empty InputFile means the input
// directory is scanned.
type RunInput struct {
	InputFile string
}

// RunResult describes a completed run.
type RunResult struct {
	RunID             uuid.UUID
	InputFile         string
	ResultFile        string
	ReportFiles       []string
	PublishedLocation string
	PresignedURL      string
	Merge             merger.Report
	Kept              int
	Dropped           int
}

// PipelineService defines the conversion pipeline contract.
type PipelineService interface {
	Run(ctx context.Context, input RunInput) (*RunResult, error)
}

type pipelineService struct {
	decoder   port.Decoder
	converter port.Converter
	selector  port.InputSelector
	reports   []port.ReportWriter
	storage   port.ObjectStorage
	cfg       *config.Config
	log       *slog.Logger
}

// NewPipelineService creates a new PipelineService implementation. storage
// may be nil when publishing is disabled.
func NewPipelineService(
	decoder port.Decoder,
	converter port.Converter,
	selector port.InputSelector,
	reports []port.ReportWriter,
	storage port.ObjectStorage,
	cfg *config.Config,
	log *slog.Logger,
) PipelineService {
	if log == nil {
		log = slog.Default()
	}
	return &pipelineService{
		decoder:   decoder,
		converter: converter,
		selector:  selector,
		reports:   reports,
		storage:   storage,
		cfg:       cfg,
		log:       log,
	}
}

func (s *pipelineService) Run(ctx context.Context, input RunInput) (*RunResult, error) {
	res := &RunResult{RunID: uuid.New()}
	log := s.log.With("run_id", res.RunID.String())

	inputPath := input.InputFile
	if inputPath == "" {
		selected, err := s.selector.Select(s.cfg.Input.Dir, s.cfg.Input.Suffix)
		if err != nil {
			return nil, &domain.StageError{Stage: domain.StageSelect, Err: err}
		}
		inputPath = selected
	}
	res.InputFile = inputPath
	log.Info("pipelineService.Run: selected input file", "path", inputPath)

	artifacts := IntermediatePaths(s.cfg.Work.Dir, inputPath)
	if !s.cfg.Work.KeepIntermediate {
		defer s.cleanup(log, artifacts)
	}

	source, err := s.decodeAndConvert(ctx, log, inputPath, artifacts)
	if err != nil {
		return nil, err
	}

	merged, result, err := s.merge(ctx, log, source, res)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageMerge, Err: err}
	}

	res.ResultFile = filepath.Join(s.cfg.Results.Dir, document.ResultFileName(inputPath))
	if err := document.Save(res.ResultFile, result); err != nil {
		return nil, &domain.StageError{Stage: domain.StageWrite, Err: err}
	}
	log.Info("pipelineService.Run: result saved",
		"path", res.ResultFile, "kept", res.Kept, "dropped", res.Dropped)

	if err := s.writeReports(log, inputPath, merged, res); err != nil {
		return nil, &domain.StageError{Stage: domain.StageReport, Err: err}
	}

	if s.cfg.Publish.Enabled {
		if err := s.publish(ctx, log, res); err != nil {
			return nil, &domain.StageError{Stage: domain.StagePublish, Err: err}
		}
	}

	return res, nil
}

// IntermediatePaths returns the XML and converted-JSON artifact paths for an
// input file.
func IntermediatePaths(workDir, inputPath string) []string {
	base := document.BaseName(inputPath)
	return []string{
		filepath.Join(workDir, base+"_output.xml"),
		filepath.Join(workDir, base+"_converted.json"),
	}
}

func (s *pipelineService) decodeAndConvert(ctx context.Context, log *slog.Logger, inputPath string, artifacts []string) (document.Tree, error) {
	envelope, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageDecode,
			Err: fmt.Errorf("%w: reading %s: %w", domain.ErrFileIO, inputPath, err)}
	}

	xml, err := s.decoder.Decode(ctx, envelope)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageDecode, Err: err}
	}
	if err := writeArtifact(artifacts[0], xml); err != nil {
		return nil, &domain.StageError{Stage: domain.StageDecode, Err: err}
	}
	log.Info("pipelineService.Run: decoded XML saved", "path", artifacts[0])

	source, err := s.converter.Convert(ctx, xml)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageConvert, Err: err}
	}
	if err := document.Save(artifacts[1], source); err != nil {
		return nil, &domain.StageError{Stage: domain.StageConvert, Err: err}
	}
	log.Info("pipelineService.Run: converted XML to JSON", "path", artifacts[1])
	return source, nil
}

// merge returns the merged tree and its filtered form.
func (s *pipelineService) merge(ctx context.Context, log *slog.Logger, source document.Tree, res *RunResult) (document.Tree, document.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	target, err := document.Load(s.cfg.Template.Path)
	if err != nil {
		if errors.Is(err, domain.ErrFileIO) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidTemplate, s.cfg.Template.Path, err)
	}

	merged, report, err := merger.Merge(target, source, merger.Options{
		Pairing: s.cfg.Merge.Pairing,
		Logger:  log,
	})
	if err != nil {
		return nil, nil, err
	}
	res.Merge = *report

	filtered, dropped := merger.Filter(merged)
	segments, _ := document.Array(filtered, domain.TargetResponseKey, domain.TargetSegmentsKey)
	res.Kept = len(segments)
	res.Dropped = dropped

	log.Info("pipelineService.Run: target updated",
		"paired", report.Paired, "warnings", len(report.Warnings))
	return merged, filtered, nil
}

func (s *pipelineService) writeReports(log *slog.Logger, inputPath string, merged document.Tree, res *RunResult) error {
	if len(s.reports) == 0 {
		return nil
	}
	summaries := merger.Summarize(merged)
	base := document.BaseName(inputPath)
	for _, w := range s.reports {
		p := filepath.Join(s.cfg.Results.Dir, base+w.Suffix())
		if err := w.Write(p, summaries); err != nil {
			return err
		}
		res.ReportFiles = append(res.ReportFiles, p)
		log.Info("pipelineService.Run: report written", "path", p, "segments", len(summaries))
	}
	return nil
}

func (s *pipelineService) publish(ctx context.Context, log *slog.Logger, res *RunResult) error {
	if s.storage == nil {
		return fmt.Errorf("%w: no object storage configured", domain.ErrPublish)
	}

	f, err := os.Open(res.ResultFile)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", domain.ErrFileIO, res.ResultFile, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", domain.ErrFileIO, res.ResultFile, err)
	}

	key := path.Join(s.cfg.Publish.Prefix, res.RunID.String(), filepath.Base(res.ResultFile))
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Publish.Bucket,
		Key:         key,
		Body:        f,
		ContentType: "application/json",
		Size:        info.Size(),
		Metadata: map[string]string{
			"run-id":     res.RunID.String(),
			"input-file": filepath.Base(res.InputFile),
		},
	})
	if err != nil {
		log.Error("pipelineService.Run: upload failed", "bucket", s.cfg.Publish.Bucket, "key", key, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrPublish, err)
	}
	res.PublishedLocation = out.Location
	log.Info("pipelineService.Run: result published", "location", out.Location, "etag", out.ETag)

	if s.cfg.Publish.PresignExpiry > 0 {
		url, err := s.storage.GetPresignedURL(ctx, s.cfg.Publish.Bucket, key, s.cfg.Publish.PresignExpiry)
		if err != nil {
			// The object is already uploaded; a missing link is not fatal.
			log.Warn("pipelineService.Run: presign failed", "key", key, "error", err)
			return nil
		}
		res.PresignedURL = url
	}
	return nil
}

func (s *pipelineService) cleanup(log *slog.Logger, artifacts []string) {
	for _, p := range artifacts {
		err := os.Remove(p)
		switch {
		case err == nil:
			log.Info("pipelineService.Run: deleted temporary file", "path", p)
		case errors.Is(err, os.ErrNotExist):
			log.Info("pipelineService.Run: temporary file not found for deletion", "path", p)
		default:
			log.Warn("pipelineService.Run: could not delete temporary file", "path", p, "error", err)
		}
	}
}

func writeArtifact(p string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", domain.ErrFileIO, filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", domain.ErrFileIO, p, err)
	}
	return nil
}
