/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report_writer.go
Description: Writes evaluation reports as timestamped, versioned JSON files under a
per-kind subdirectory so runs of the same command sort together.
*/

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteEvaluationReport writes report to dir/kind/<timestamp>_<kind>_v<version>.json
// and returns the file path.
func WriteEvaluationReport(dir, kind, version string, report interface{}) (string, error) {
	if kind == "" {
		return "", fmt.Errorf("report kind is required")
	}
	reportDir := filepath.Join(dir, kind)
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	// 2026-01-02_15-04-05.000000_eval_v1.0.0.json
	timestamp := time.Now().Format("2006-01-02_15-04-05.000000")
	path := filepath.Join(reportDir, fmt.Sprintf("%s_%s_v%s.json", timestamp, kind, version))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
