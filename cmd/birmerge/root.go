package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"birmerge/internal/config"
	"birmerge/internal/converter"
	"birmerge/internal/csvexport"
	"birmerge/internal/decoder"
	"birmerge/internal/domain"
	"birmerge/internal/logging"
	"birmerge/internal/port"
	"birmerge/internal/selector"
	"birmerge/internal/service"
	s3storage "birmerge/internal/storage/s3"
	"birmerge/internal/xlsxexport"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"input-dir":         "input.dir",
	"input-suffix":      "input.suffix",
	"selection":         "input.selection",
	"template":          "template.path",
	"results-dir":       "results.dir",
	"work-dir":          "work.dir",
	"keep-intermediate": "work.keep_intermediate",
	"pairing":           "merge.pairing",
	"report-csv":        "report.csv",
	"report-xlsx":       "report.xlsx",
	"publish":           "publish.enabled",
	"log-level":         "log.level",
	"log-format":        "log.format",
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var configFile string

	cmd := &cobra.Command{
		Use:   "birmerge [input-file]",
		Short: "Merge a BIR exchange envelope into a target JSON template",
		Long: "birmerge decodes the base64 BIR document held in an exchange envelope, " +
			"converts it to JSON, copies the segment fields into the target template " +
			"and writes the segments that carry a BDB to the results directory.\n\n" +
			"Without an input file the input directory is scanned. Every flag can also " +
			"be set with a " + config.EnvPrefix + "_ environment variable or a config file.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				v.SetConfigFile(configFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("%w: reading %s: %w", domain.ErrInvalidConfig, configFile, err)
				}
			}
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}

			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return run(cmd, cfg, input)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	f.String("input-dir", "", "directory scanned for input envelopes (default \"input\")")
	f.String("input-suffix", "", "suffix of input envelope files (default \".txt\")")
	f.String("selection", "", "input selection policy: lexicographic or newest")
	f.String("template", "", "target template path (default \"TEMPLATE.json\")")
	f.String("results-dir", "", "directory for result files (default \"result\")")
	f.String("work-dir", "", "directory for intermediate files (default \".\")")
	f.Bool("keep-intermediate", false, "keep the intermediate XML and JSON files")
	f.String("pairing", "", "segment pairing policy: truncate or strict")
	f.Bool("report-csv", false, "write a per-segment CSV report")
	f.Bool("report-xlsx", false, "write a per-segment XLSX report")
	f.Bool("publish", false, "upload the result file to S3")
	f.String("log-level", "", "log level: debug, info, warn or error")
	f.String("log-format", "", "log format: console or json")

	for name, key := range flagKeys {
		_ = v.BindPFlag(key, f.Lookup(name))
	}
	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config, input string) error {
	log, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	sel, err := selector.New(cfg.Input.Selection)
	if err != nil {
		return err
	}

	var reports []port.ReportWriter
	if cfg.Report.CSV {
		reports = append(reports, csvexport.NewReport())
	}
	if cfg.Report.XLSX {
		reports = append(reports, xlsxexport.NewReport())
	}

	var storage port.ObjectStorage
	if cfg.Publish.Enabled {
		storage, err = s3storage.NewS3Client(cmd.Context(), &cfg.S3)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrPublish, err)
		}
	}

	svc := service.NewPipelineService(
		decoder.NewEnvelopeDecoder(),
		converter.NewXMLConverter(),
		sel,
		reports,
		storage,
		cfg,
		log,
	)

	res, err := svc.Run(cmd.Context(), service.RunInput{InputFile: input})
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), res)
	return nil
}

func printSummary(w io.Writer, res *service.RunResult) {
	fmt.Fprintf(w, "Input:   %s\n", res.InputFile)
	fmt.Fprintf(w, "Result:  %s (%d kept, %d dropped)\n", res.ResultFile, res.Kept, res.Dropped)
	if len(res.ReportFiles) > 0 {
		fmt.Fprintf(w, "Reports: %s\n", strings.Join(res.ReportFiles, ", "))
	}
	if res.PublishedLocation != "" {
		fmt.Fprintf(w, "Published: %s\n", res.PublishedLocation)
	}
	if res.PresignedURL != "" {
		fmt.Fprintf(w, "Download: %s\n", res.PresignedURL)
	}
	for _, warn := range res.Merge.Warnings {
		fmt.Fprintf(w, "Warning: %v\n", warn)
	}
}
