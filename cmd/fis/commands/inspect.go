/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inspect.go
Description: The inspect command. Parses a .fis file and prints its variables, membership
functions, and rules in readable form or as JSON. Works for both Mamdani and Sugeno files.
*/

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kleascm/sugeno-fis/pkg/fis"
	"github.com/spf13/cobra"
)

type mfSummary struct {
	Position int       `json:"position"`
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Params   []float64 `json:"params"`
}

type variableSummary struct {
	Name  string      `json:"name"`
	Range [2]float64  `json:"range"`
	MFs   []mfSummary `json:"mfs"`
}

type ruleSummary struct {
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`
	Connector string  `json:"connector"`
	Text      string  `json:"text"`
}

// SystemSummary is the printable view of a parsed system
type SystemSummary struct {
	Name    string            `json:"name"`
	Source  string            `json:"source"`
	Type    fis.InferenceType `json:"type"`
	Version string            `json:"version,omitempty"`
	Methods fis.Methods       `json:"methods"`
	Inputs  []variableSummary `json:"inputs"`
	Outputs []variableSummary `json:"outputs"`
	Rules   []ruleSummary     `json:"rules"`
}

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.fis>",
		Short: "Print the structure of a .fis file",
		Long: `Parse a .fis file and print its system settings, input and output variables,
membership functions, and rules. Use --json for machine-readable output.`,
		Args: cobra.ExactArgs(1),
		RunE: RunInspect,
	}
	cmd.Flags().Bool("json", false, "Print the summary as JSON")
	return cmd
}

// RunInspect parses a file and prints its summary
func RunInspect(cmd *cobra.Command, args []string) error {
	logger, err := SetupLogging(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	sys, err := loadSystem(args[0], logger)
	if err != nil {
		return err
	}
	summary := Summarize(sys)

	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	printSummary(out, summary)
	return nil
}

// Summarize flattens a system into a SystemSummary
func Summarize(sys *fis.System) SystemSummary {
	s := SystemSummary{
		Name:    sys.Name(),
		Source:  sys.Source(),
		Type:    sys.Type(),
		Version: sys.Version(),
		Methods: sys.Methods(),
	}
	for _, v := range sys.Inputs() {
		s.Inputs = append(s.Inputs, summarizeVariable(v))
	}
	for _, v := range sys.Outputs() {
		s.Outputs = append(s.Outputs, summarizeVariable(v))
	}
	for _, r := range sys.Rules() {
		s.Rules = append(s.Rules, ruleSummary{
			Name:      r.Name(),
			Weight:    r.Weight(),
			Connector: r.Connector().String(),
			Text:      ruleText(r),
		})
	}
	return s
}

func summarizeVariable(v *fis.Variable) variableSummary {
	vs := variableSummary{Name: v.Name(), Range: v.Range()}
	for i, mf := range v.MFs() {
		vs.MFs = append(vs.MFs, mfSummary{
			Position: i + 1,
			Name:     mf.Name,
			Kind:     mf.Kind().String(),
			Params:   mf.Shape.Params(),
		})
	}
	return vs
}

// ruleText renders a rule as IF ... THEN ...
func ruleText(r *fis.Rule) string {
	clauses := make([]string, 0, len(r.Inputs()))
	for _, in := range r.Inputs() {
		is := "is"
		if in.Negated {
			is = "is not"
		}
		clauses = append(clauses, fmt.Sprintf("%s %s %s", in.VariableName, is, in.MFName))
	}
	text := "IF " + strings.Join(clauses, " "+r.Connector().String()+" ")

	outs := r.Outputs()
	if len(outs) == 0 {
		return text + " THEN nothing"
	}
	return fmt.Sprintf("%s THEN %s is %s", text, outs[0].VariableName, outs[0].MFName)
}

func printSummary(w io.Writer, s SystemSummary) {
	fmt.Fprintf(w, "System: %s (%s)\n", s.Name, s.Type)
	if s.Version != "" {
		fmt.Fprintf(w, "Version: %s\n", s.Version)
	}
	m := s.Methods
	fmt.Fprintf(w, "Methods: and=%s or=%s imp=%s agg=%s defuzz=%s\n", m.And, m.Or, m.Imp, m.Agg, m.Defuzz)

	printVariables(w, "Input", s.Inputs)
	printVariables(w, "Output", s.Outputs)

	fmt.Fprintf(w, "Rules (%d):\n", len(s.Rules))
	for _, r := range s.Rules {
		fmt.Fprintf(w, "  %s: %s (%g)\n", r.Name, r.Text, r.Weight)
	}
}

func printVariables(w io.Writer, label string, vars []variableSummary) {
	for i, v := range vars {
		fmt.Fprintf(w, "%s%d: %s [%g %g]\n", label, i+1, v.Name, v.Range[0], v.Range[1])
		for _, mf := range v.MFs {
			fmt.Fprintf(w, "  MF%d %-12s %-9s %v\n", mf.Position, mf.Name, mf.Kind, mf.Params)
		}
	}
}
