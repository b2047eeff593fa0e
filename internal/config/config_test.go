package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"birmerge/internal/config"
	"birmerge/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "input", cfg.Input.Dir)
	assert.Equal(t, ".txt", cfg.Input.Suffix)
	assert.Equal(t, domain.SelectionLexicographic, cfg.Input.Selection)
	assert.Equal(t, "TEMPLATE.json", cfg.Template.Path)
	assert.Equal(t, "result", cfg.Results.Dir)
	assert.Equal(t, ".", cfg.Work.Dir)
	assert.False(t, cfg.Work.KeepIntermediate)
	assert.Equal(t, domain.PairingTruncate, cfg.Merge.Pairing)
	assert.False(t, cfg.Report.CSV)
	assert.False(t, cfg.Publish.Enabled)
	assert.Equal(t, int64(3600), cfg.Publish.PresignExpiry)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, domain.LogFormatConsole, cfg.Log.Format)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BIRMERGE_INPUT_DIR", "/data/in")
	t.Setenv("BIRMERGE_INPUT_SELECTION", "NEWEST")
	t.Setenv("BIRMERGE_MERGE_PAIRING", "strict")
	t.Setenv("BIRMERGE_WORK_KEEP_INTERMEDIATE", "true")
	t.Setenv("BIRMERGE_REPORT_XLSX", "1")
	t.Setenv("BIRMERGE_PUBLISH_ENABLED", "true")
	t.Setenv("BIRMERGE_PUBLISH_BUCKET", "results-bucket")
	t.Setenv("BIRMERGE_LOG_FORMAT", "json")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/in", cfg.Input.Dir)
	assert.Equal(t, domain.SelectionNewest, cfg.Input.Selection)
	assert.Equal(t, domain.PairingStrict, cfg.Merge.Pairing)
	assert.True(t, cfg.Work.KeepIntermediate)
	assert.True(t, cfg.Report.XLSX)
	assert.True(t, cfg.Publish.Enabled)
	assert.Equal(t, "results-bucket", cfg.Publish.Bucket)
	assert.Equal(t, domain.LogFormatJSON, cfg.Log.Format)
}

func TestFromViper_FileValuesUnderEnv(t *testing.T) {
	v := config.NewViper()
	v.Set("template.path", "templates/target.yaml")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "templates/target.yaml", cfg.Template.Path)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"selection", map[string]string{"BIRMERGE_INPUT_SELECTION": "random"}},
		{"pairing", map[string]string{"BIRMERGE_MERGE_PAIRING": "loose"}},
		{"log format", map[string]string{"BIRMERGE_LOG_FORMAT": "xml"}},
		{"log level", map[string]string{"BIRMERGE_LOG_LEVEL": "verbose"}},
		{"publish without bucket", map[string]string{"BIRMERGE_PUBLISH_ENABLED": "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestValidate_RequiredPaths(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	cfg.Template.Path = ""
	assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfig)
}

func TestLogConfig_SlogLevel(t *testing.T) {
	level, err := config.LogConfig{Level: "debug"}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = config.LogConfig{Level: "WARN"}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}
