/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: batch.go
Description: The batch command. Reads a YAML list of input vectors, evaluates them in parallel
against one compiled Sugeno system, and prints or writes the results in input order.
*/

package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/sugeno-fis/pkg/sugeno"
	"github.com/kleascm/sugeno-fis/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// BatchEntry is one evaluated vector in a batch report
type BatchEntry struct {
	Index  int                `json:"index"`
	Inputs map[string]float64 `json:"inputs"`
	Output float64            `json:"output"`
	Error  string             `json:"error,omitempty"`
}

// BatchReport is written by batch --output
type BatchReport struct {
	RunID    string        `json:"run_id"`
	File     string        `json:"file"`
	System   string        `json:"system"`
	Workers  int           `json:"workers"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration_ns"`
	Results  []BatchEntry  `json:"results"`
}

// NewBatchCommand creates the batch command
func NewBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file.fis>",
		Short: "Evaluate many input vectors in parallel",
		Long: `Compile a Sugeno .fis file and evaluate every vector of a YAML file such as

  - service: 1
    food: 7
  - service: 5
    food: 5

Vectors are spread over --workers goroutines; results keep the order of the file.`,
		Args: cobra.ExactArgs(1),
		RunE: RunBatch,
	}
	cmd.Flags().String("inputs", "", "YAML file with a list of input vectors (required)")
	cmd.Flags().Int("workers", 0, "Number of parallel workers (0 = auto-detect)")
	cmd.Flags().Int("precision", 4, "Digits after the decimal point")
	cmd.Flags().String("output", "", "Directory for a JSON batch report")
	cmd.MarkFlagRequired("inputs")

	viper.BindPFlag("batch.workers", cmd.Flags().Lookup("workers"))
	viper.BindPFlag("batch.precision", cmd.Flags().Lookup("precision"))
	viper.BindPFlag("batch.output", cmd.Flags().Lookup("output"))
	return cmd
}

// RunBatch evaluates every vector of the inputs file
func RunBatch(cmd *cobra.Command, args []string) error {
	logger, err := SetupLogging(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	inputsPath, _ := cmd.Flags().GetString("inputs")
	vectors, err := LoadVectors(inputsPath)
	if err != nil {
		return err
	}

	engine, err := loadEngine(args[0], logger)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	workers := viper.GetInt("batch.workers")
	start := time.Now()
	results, err := engine.EvaluateBatch(cmd.Context(), vectors, workers)
	if err != nil {
		return fmt.Errorf("batch %s interrupted: %w", runID, err)
	}
	duration := time.Since(start)

	entries, failed := batchEntries(results)
	logger.LogBatch(runID, len(entries), failed, duration)

	precision := viper.GetInt("batch.precision")
	out := cmd.OutOrStdout()
	for _, e := range entries {
		if e.Error != "" {
			fmt.Fprintf(out, "#%d %s -> error: %s\n", e.Index, formatVector(e.Inputs), e.Error)
			continue
		}
		fmt.Fprintf(out, "#%d %s -> %s=%.*f\n", e.Index, formatVector(e.Inputs), engine.OutputName(), precision, e.Output)
	}
	fmt.Fprintf(out, "📊 %d vectors, %d failed, run %s\n", len(entries), failed, runID)

	if dir := viper.GetString("batch.output"); dir != "" {
		report := BatchReport{
			RunID:    runID,
			File:     args[0],
			System:   engine.Name(),
			Workers:  workers,
			Failed:   failed,
			Duration: duration,
			Results:  entries,
		}
		path, err := utils.WriteEvaluationReport(dir, "batch", Version, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "📁 report written to %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d/%d vectors failed", failed, len(entries))
	}
	return nil
}

// LoadVectors reads a YAML sequence of name: value maps
func LoadVectors(path string) ([]map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inputs: %w", err)
	}
	var vectors []map[string]float64
	if err := yaml.Unmarshal(data, &vectors); err != nil {
		return nil, fmt.Errorf("failed to decode inputs %s: %w", path, err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("inputs %s contain no vectors", path)
	}
	return vectors, nil
}

func batchEntries(results []sugeno.BatchResult) ([]BatchEntry, int) {
	entries := make([]BatchEntry, len(results))
	failed := 0
	for i, r := range results {
		entries[i] = BatchEntry{Index: r.Index, Inputs: r.Inputs, Output: r.Output}
		if r.Err != nil {
			entries[i].Error = r.Err.Error()
			failed++
		}
	}
	return entries, failed
}

func formatVector(v map[string]float64) string {
	parts := make([]string, 0, len(v))
	for _, k := range sortedKeys(v) {
		parts = append(parts, fmt.Sprintf("%s=%g", k, v[k]))
	}
	return strings.Join(parts, " ")
}
