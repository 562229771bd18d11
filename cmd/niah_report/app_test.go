package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jianzhao-Huang/JFK-NIAH/internal/results"
)

func TestAppRunEndToEnd(t *testing.T) {
	resultsDir := t.TempDir()
	outDir := t.TempDir()

	files := map[string]string{
		"gpt-4_len_1000_depth_0_v1_results.json": `{"model":"gpt-4","context_length":1000,"depth_percent":0,"score":10}`,
		"gpt-4_len_1000_depth_0_v2_results.json": `{"model":"gpt-4","context_length":1000,"depth_percent":0,"score":6}`,
		"gpt-4_len_2000_depth_50_results.json":   `{"model":"gpt-4","context_length":2000,"depth_percent":50,"score":8}`,
		"broken.json":                            `{"context_length":2000}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(resultsDir, name), []byte(content), 0o644))
	}

	opts := appOptions{
		ResultsDir:  resultsDir,
		HeatmapPath: filepath.Join(outDir, "heatmap.png"),
		PDFPath:     filepath.Join(outDir, "report.pdf"),
		Title:       "Fact Retrieval",
		ScoreMin:    1,
		ScoreMax:    10,
	}
	require.NoError(t, newApp(zap.NewNop().Sugar()).Run(opts))

	png, err := os.ReadFile(opts.HeatmapPath)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	pdf, err := os.ReadFile(opts.PDFPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestAppRunNoUsableRecords(t *testing.T) {
	opts := appOptions{
		ResultsDir:  t.TempDir(),
		HeatmapPath: filepath.Join(t.TempDir(), "heatmap.png"),
	}
	err := newApp(zap.NewNop().Sugar()).Run(opts)
	assert.Error(t, err)
}

func TestAppRunMissingDir(t *testing.T) {
	opts := appOptions{ResultsDir: filepath.Join(t.TempDir(), "nope")}
	err := newApp(zap.NewNop().Sugar()).Run(opts)
	assert.Error(t, err)
}

func TestModelName(t *testing.T) {
	assert.Equal(t, "", modelName(nil))
	assert.Equal(t, "gpt-4", modelName([]results.TrialRecord{
		{Model: "gpt-4"}, {}, {Model: "gpt-4"},
	}))
	assert.Equal(t, "", modelName([]results.TrialRecord{
		{Model: "gpt-4"}, {Model: "claude-3"},
	}))
}
