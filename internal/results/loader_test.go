package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "gpt-4_len_1000_depth_0_results.json", `{
		"model": "gpt-4",
		"context_length": 1000,
		"depth_percent": 0,
		"version": 1,
		"needle": "The best thing to do in San Francisco is eat a sandwich.",
		"model_response": "Eat a sandwich.",
		"score": 10,
		"test_duration_seconds": 12.5,
		"test_timestamp_utc": "2024-02-18 10:00:00+0000"
	}`)
	writeFile(t, dir, "gpt-4_len_2000_depth_50_results.json", `{
		"model": "gpt-4", "context_length": 2000, "depth_percent": 50, "score": 6
	}`)
	writeFile(t, dir, "missing_score.json", `{"context_length": 1000, "depth_percent": 25}`)
	writeFile(t, dir, "null_score.json", `{"context_length": 1000, "depth_percent": 25, "score": null}`)
	writeFile(t, dir, "garbage.json", `{not json`)
	writeFile(t, dir, "notes.txt", "not a result file")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	report, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Files, "only *.json files are considered")
	assert.Equal(t, 3, report.Skipped)
	assert.Len(t, report.Warnings, 3)
	require.Len(t, report.Records, 2)

	// Files load in name order, so the depth-0 trial comes first.
	first := report.Records[0]
	assert.Equal(t, "gpt-4", first.Model)
	require.True(t, first.Complete())
	assert.Equal(t, 1000, *first.ContextLength)
	assert.Equal(t, 0.0, *first.DepthPercent)
	assert.Equal(t, 10.0, *first.Score)
	assert.Equal(t, 12.5, first.TestDurationSeconds)

	second := report.Records[1]
	require.True(t, second.Complete())
	assert.Equal(t, 50.0, *second.DepthPercent)
	assert.Equal(t, 6.0, *second.Score)
}

func TestLoadDirEmpty(t *testing.T) {
	report, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, report.Files)
	assert.Empty(t, report.Records)
	assert.Empty(t, report.Warnings)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestCompleteDistinguishesAbsentFromZero(t *testing.T) {
	depth, score := 0.0, 0.0
	ctx := 0

	rec := TrialRecord{DepthPercent: &depth, ContextLength: &ctx, Score: &score}
	assert.True(t, rec.Complete())

	rec.Score = nil
	assert.False(t, rec.Complete())
}
