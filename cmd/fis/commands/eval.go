/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: eval.go
Description: The eval command. Evaluates one input vector against a Sugeno .fis file,
optionally printing each rule's contribution and writing a JSON report.
*/

package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/sugeno-fis/pkg/fis"
	"github.com/kleascm/sugeno-fis/pkg/sugeno"
	"github.com/kleascm/sugeno-fis/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EvaluationReport is written by eval --output
type EvaluationReport struct {
	RunID     string             `json:"run_id"`
	File      string             `json:"file"`
	System    string             `json:"system"`
	Method    fis.Method         `json:"method"`
	Inputs    map[string]float64 `json:"inputs"`
	Output    float64            `json:"output"`
	Rules     []sugeno.RuleTrace `json:"rules,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// NewEvalCommand creates the eval command
func NewEvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <file.fis>",
		Short: "Evaluate a Sugeno system for one input vector",
		Long: `Compile a Sugeno .fis file and evaluate it for the inputs given with --input name=value.
Every input of the system must be given exactly once. --explain prints the firing strength
and consequent level of each rule.`,
		Args: cobra.ExactArgs(1),
		RunE: RunEval,
	}
	cmd.Flags().StringArrayP("input", "i", nil, "Input value as name=value (repeatable)")
	cmd.Flags().Bool("explain", false, "Print each rule's contribution")
	cmd.Flags().Int("precision", 4, "Digits after the decimal point")
	cmd.Flags().String("output", "", "Directory for a JSON evaluation report")

	viper.BindPFlag("eval.precision", cmd.Flags().Lookup("precision"))
	viper.BindPFlag("eval.output", cmd.Flags().Lookup("output"))
	return cmd
}

// RunEval evaluates a single input vector
func RunEval(cmd *cobra.Command, args []string) error {
	logger, err := SetupLogging(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	pairs, _ := cmd.Flags().GetStringArray("input")
	inputs, err := parseAssignments(pairs)
	if err != nil {
		return err
	}
	explain, _ := cmd.Flags().GetBool("explain")
	precision := viper.GetInt("eval.precision")
	if precision < 0 {
		return fmt.Errorf("precision must not be negative, got %d", precision)
	}

	engine, err := loadEngine(args[0], logger)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	trace, err := engine.Explain(inputs)
	if err != nil {
		logger.LogEvaluation(runID, inputs, 0, err)
		return err
	}
	logger.LogEvaluation(runID, inputs, trace.Output, nil)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s = %.*f\n", engine.OutputName(), precision, trace.Output)
	if explain {
		printTrace(out, trace, precision)
	}

	if dir := viper.GetString("eval.output"); dir != "" {
		report := EvaluationReport{
			RunID:     runID,
			File:      args[0],
			System:    trace.System,
			Method:    trace.Method,
			Inputs:    trace.Inputs,
			Output:    trace.Output,
			Timestamp: time.Now(),
		}
		if explain {
			report.Rules = trace.Rules
		}
		path, err := utils.WriteEvaluationReport(dir, "eval", Version, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "📁 report written to %s\n", path)
	}
	return nil
}

func printTrace(w io.Writer, trace *sugeno.Trace, precision int) {
	fmt.Fprintf(w, "method: %s\n", trace.Method)
	for _, r := range trace.Rules {
		if !r.HasConsequent {
			fmt.Fprintf(w, "  %-8s firing=%.*f weight=%g (no consequent)\n", r.Name, precision, r.Firing, r.Weight)
			continue
		}
		fmt.Fprintf(w, "  %-8s firing=%.*f weight=%g level=%.*f\n",
			r.Name, precision, r.Firing, r.Weight, precision, r.Level)
	}
}
