package results

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// LoadDir reads every *.json file in dir into a TrialRecord, one file per
// trial. Files that cannot be read or decoded, and records missing any of
// depth_percent, context_length or score, are skipped with a warning rather
// than failing the whole run. Only an unreadable directory is fatal.
func LoadDir(dir string) (*LoadReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read results directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	// Deterministic order regardless of directory listing order.
	sort.Strings(names)

	report := &LoadReport{}
	for _, name := range names {
		report.Files++

		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			report.Skipped++
			report.Warnings = append(report.Warnings, fmt.Sprintf("Skipping %s: %v", name, err))
			continue
		}

		var rec TrialRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			report.Skipped++
			report.Warnings = append(report.Warnings, fmt.Sprintf("Skipping %s: invalid JSON: %v", name, err))
			continue
		}

		if !rec.Complete() {
			report.Skipped++
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("Skipping %s: missing depth_percent, context_length or score", name))
			continue
		}

		report.Records = append(report.Records, rec)
	}

	return report, nil
}
