package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"birmerge/internal/domain"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "BIRMERGE"

// Config holds all application configuration.
type Config struct {
	Input    InputConfig
	Template TemplateConfig
	Results  ResultsConfig
	Work     WorkConfig
	Merge    MergeConfig
	Report   ReportConfig
	Publish  PublishConfig
	S3       S3Config
	Log      LogConfig
}

// InputConfig describes where input envelopes are found.
type InputConfig struct {
	Dir       string                 `mapstructure:"dir"`
	Suffix    string                 `mapstructure:"suffix"`
	Selection domain.SelectionPolicy `mapstructure:"selection"`
}

// TemplateConfig points at the target template.
type TemplateConfig struct {
	Path string `mapstructure:"path"`
}

// ResultsConfig holds result output settings.
type ResultsConfig struct {
	Dir string `mapstructure:"dir"`
}

// WorkConfig holds settings for intermediate artifacts.
type WorkConfig struct {
	Dir              string `mapstructure:"dir"`
	KeepIntermediate bool   `mapstructure:"keep_intermediate"`
}

// MergeConfig holds merge settings.
type MergeConfig struct {
	Pairing domain.PairingPolicy `mapstructure:"pairing"`
}

// ReportConfig toggles the per-segment summary reports.
type ReportConfig struct {
	CSV  bool `mapstructure:"csv"`
	XLSX bool `mapstructure:"xlsx"`
}

// PublishConfig holds settings for uploading results to object storage.
type PublishConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Bucket        string `mapstructure:"bucket"`
	Prefix        string `mapstructure:"prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string           `mapstructure:"level"`
	Format domain.LogFormat `mapstructure:"format"`
}

// SlogLevel parses Level into a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", domain.ErrInvalidConfig, l.Level)
	}
	return level, nil
}

// envBindings maps nested keys to environment variables.
var envBindings = map[string]string{
	"input.dir":              "BIRMERGE_INPUT_DIR",
	"input.suffix":           "BIRMERGE_INPUT_SUFFIX",
	"input.selection":        "BIRMERGE_INPUT_SELECTION",
	"template.path":          "BIRMERGE_TEMPLATE_PATH",
	"results.dir":            "BIRMERGE_RESULTS_DIR",
	"work.dir":               "BIRMERGE_WORK_DIR",
	"work.keep_intermediate": "BIRMERGE_WORK_KEEP_INTERMEDIATE",
	"merge.pairing":          "BIRMERGE_MERGE_PAIRING",
	"report.csv":             "BIRMERGE_REPORT_CSV",
	"report.xlsx":            "BIRMERGE_REPORT_XLSX",
	"publish.enabled":        "BIRMERGE_PUBLISH_ENABLED",
	"publish.bucket":         "BIRMERGE_PUBLISH_BUCKET",
	"publish.prefix":         "BIRMERGE_PUBLISH_PREFIX",
	"publish.presign_expiry": "BIRMERGE_PUBLISH_PRESIGN_EXPIRY",
	"s3.region":              "BIRMERGE_S3_REGION",
	"s3.endpoint":            "BIRMERGE_S3_ENDPOINT",
	"s3.access_key":          "BIRMERGE_S3_ACCESS_KEY",
	"s3.secret_key":          "BIRMERGE_S3_SECRET_KEY",
	"log.level":              "BIRMERGE_LOG_LEVEL",
	"log.format":             "BIRMERGE_LOG_FORMAT",
}

// NewViper returns a viper instance with defaults and environment bindings
// installed. Callers may bind flags or a config file before calling FromViper.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Input defaults
	v.SetDefault("input.dir", "input")
	v.SetDefault("input.suffix", ".txt")
	v.SetDefault("input.selection", string(domain.SelectionLexicographic))

	v.SetDefault("template.path", "TEMPLATE.json")
	v.SetDefault("results.dir", "result")

	// Work defaults
	v.SetDefault("work.dir", ".")
	v.SetDefault("work.keep_intermediate", false)

	v.SetDefault("merge.pairing", string(domain.PairingTruncate))

	v.SetDefault("report.csv", false)
	v.SetDefault("report.xlsx", false)

	// Publish defaults
	v.SetDefault("publish.enabled", false)
	v.SetDefault("publish.bucket", "")
	v.SetDefault("publish.prefix", "birmerge/results")
	v.SetDefault("publish.presign_expiry", 3600)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", string(domain.LogFormatConsole))

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	return v
}

// Load reads configuration from environment variables with the BIRMERGE_ prefix.
func Load() (*Config, error) {
	return FromViper(NewViper())
}

// FromViper builds a Config from an initialized viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.Input = InputConfig{
		Dir:       v.GetString("input.dir"),
		Suffix:    v.GetString("input.suffix"),
		Selection: domain.SelectionPolicy(strings.ToLower(v.GetString("input.selection"))),
	}
	cfg.Template = TemplateConfig{
		Path: v.GetString("template.path"),
	}
	cfg.Results = ResultsConfig{
		Dir: v.GetString("results.dir"),
	}
	cfg.Work = WorkConfig{
		Dir:              v.GetString("work.dir"),
		KeepIntermediate: v.GetBool("work.keep_intermediate"),
	}
	cfg.Merge = MergeConfig{
		Pairing: domain.PairingPolicy(strings.ToLower(v.GetString("merge.pairing"))),
	}
	cfg.Report = ReportConfig{
		CSV:  v.GetBool("report.csv"),
		XLSX: v.GetBool("report.xlsx"),
	}
	cfg.Publish = PublishConfig{
		Enabled:       v.GetBool("publish.enabled"),
		Bucket:        v.GetString("publish.bucket"),
		Prefix:        v.GetString("publish.prefix"),
		PresignExpiry: v.GetInt64("publish.presign_expiry"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: domain.LogFormat(strings.ToLower(v.GetString("log.format"))),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting has an accepted value.
func (c *Config) Validate() error {
	if c.Input.Dir == "" {
		return fmt.Errorf("%w: input.dir is required", domain.ErrInvalidConfig)
	}
	if c.Template.Path == "" {
		return fmt.Errorf("%w: template.path is required", domain.ErrInvalidConfig)
	}
	if c.Results.Dir == "" {
		return fmt.Errorf("%w: results.dir is required", domain.ErrInvalidConfig)
	}
	if c.Work.Dir == "" {
		return fmt.Errorf("%w: work.dir is required", domain.ErrInvalidConfig)
	}
	if !domain.ValidSelectionPolicies[c.Input.Selection] {
		return fmt.Errorf("%w: input.selection %q", domain.ErrInvalidConfig, c.Input.Selection)
	}
	if !domain.ValidPairingPolicies[c.Merge.Pairing] {
		return fmt.Errorf("%w: merge.pairing %q", domain.ErrInvalidConfig, c.Merge.Pairing)
	}
	if c.Log.Format != domain.LogFormatConsole && c.Log.Format != domain.LogFormatJSON {
		return fmt.Errorf("%w: log.format %q", domain.ErrInvalidConfig, c.Log.Format)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Publish.Enabled && c.Publish.Bucket == "" {
		return fmt.Errorf("%w: publish.bucket is required when publishing", domain.ErrInvalidConfig)
	}
	return nil
}
