package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKDL_Defaults(t *testing.T) {
	cfg, err := parseKDL("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "", cfg.LogFormat)
	assert.Equal(t, 0, cfg.Parallelism.NumThreads)
	assert.False(t, cfg.Aggregation.SingleMap)
	assert.Equal(t, 10, cfg.Verifier.PollTimeoutSec)
}

func TestParseKDL_LogFormat(t *testing.T) {
	kdlContent := `
log_format "OpenStack"
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "OpenStack", cfg.LogFormat)
}

func TestParseKDL_Parallelism(t *testing.T) {
	kdlContent := `
parallelism {
    num_threads 8
}
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8, cfg.Parallelism.NumThreads)
}

func TestParseKDL_Aggregation(t *testing.T) {
	kdlContent := `
aggregation {
    single_map true
}
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Aggregation.SingleMap)
}

func TestParseKDL_Verifier(t *testing.T) {
	kdlContent := `
verifier {
    server "https://checksums.example.org"
    poll_timeout_sec 5
}
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://checksums.example.org", cfg.Verifier.Server)
	assert.Equal(t, 5, cfg.Verifier.PollTimeoutSec)
}

func TestParseKDL_FullConfig(t *testing.T) {
	kdlContent := `
project {
    root "."
    name "test-project"
}

log_format "HDFS"
custom_formats_path "formats.toml"

parallelism {
    num_threads 4
}

aggregation {
    single_map true
}

verifier {
    server "https://checksums.example.org"
    poll_timeout_sec 15
}
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "test-project", cfg.Project.Name)
	assert.Equal(t, "HDFS", cfg.LogFormat)
	assert.Equal(t, "formats.toml", cfg.CustomFormatsPath)
	assert.Equal(t, 4, cfg.Parallelism.NumThreads)
	assert.True(t, cfg.Aggregation.SingleMap)
	assert.Equal(t, "https://checksums.example.org", cfg.Verifier.Server)
	assert.Equal(t, 15, cfg.Verifier.PollTimeoutSec)
}

func TestParseSize(t *testing.T) {
	sz, err := parseSize("5MB")
	require.NoError(t, err)
	assert.Equal(t, int64(5*1024*1024), sz)

	sz, err = parseSize("1GB")
	require.NoError(t, err)
	assert.Equal(t, int64(1024*1024*1024), sz)
}
