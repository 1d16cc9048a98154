/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rule.go
Description: Fuzzy rules. A rule references variables and membership functions by resolved
index and 1-based position, keeps their names for display, and carries a connector and weight.
*/

package fis

import (
	"fmt"
	"math"
)

// MaxNumOutputs is the number of outputs a system may declare
const MaxNumOutputs = 1

// Connector joins the antecedents of a rule
type Connector int

const (
	And Connector = 1
	Or  Connector = 2
)

var connectorCodes = map[int]Connector{
	1: And,
	2: Or,
}

// ParseConnector decodes the connector code at the end of a rule line
func ParseConnector(code int) (Connector, error) {
	c, ok := connectorCodes[code]
	if !ok {
		return 0, fmt.Errorf("%w: connector %d not implemented", ErrDomain, code)
	}
	return c, nil
}

// String returns AND or OR
func (c Connector) String() string {
	switch c {
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		return fmt.Sprintf("Connector(%d)", int(c))
	}
}

// RuleInput is one antecedent clause
type RuleInput struct {
	Variable     int    `json:"variable"` // 0-based input index
	VariableName string `json:"variable_name"`
	MF           int    `json:"mf"` // 1-based membership function position
	MFName       string `json:"mf_name"`
	Negated      bool   `json:"negated"`
}

// RuleOutput is one consequent clause
type RuleOutput struct {
	Variable     int    `json:"variable"` // 0-based output index
	VariableName string `json:"variable_name"`
	MF           int    `json:"mf"`
	MFName       string `json:"mf_name"`
}

// Rule is an immutable fuzzy rule
type Rule struct {
	name      string
	weight    float64
	connector Connector
	inputs    []RuleInput
	outputs   []RuleOutput
}

// NewRule validates weight and consequent count and builds a rule
func NewRule(name string, weight float64, connector Connector, inputs []RuleInput, outputs []RuleOutput) (*Rule, error) {
	if math.IsNaN(weight) || weight < 0 || weight > 1 {
		return nil, fmt.Errorf("%w: rule %q weight %v outside [0,1]", ErrDomain, name, weight)
	}
	if connector != And && connector != Or {
		return nil, fmt.Errorf("%w: rule %q connector %d not implemented", ErrDomain, name, int(connector))
	}
	if len(outputs) > MaxNumOutputs {
		return nil, fmt.Errorf("%w: rule %q has %d consequents, at most %d allowed", ErrConsistency, name, len(outputs), MaxNumOutputs)
	}

	r := &Rule{
		name:      name,
		weight:    weight,
		connector: connector,
		inputs:    make([]RuleInput, len(inputs)),
		outputs:   make([]RuleOutput, len(outputs)),
	}
	copy(r.inputs, inputs)
	copy(r.outputs, outputs)
	return r, nil
}

func (r *Rule) Name() string { return r.name }
func (r *Rule) Weight() float64 { return r.weight }
func (r *Rule) Connector() Connector { return r.connector }

// Inputs returns a copy of the antecedents in declaration order
func (r *Rule) Inputs() []RuleInput {
	out := make([]RuleInput, len(r.inputs))
	copy(out, r.inputs)
	return out
}

// Outputs returns a copy of the consequents
func (r *Rule) Outputs() []RuleOutput {
	out := make([]RuleOutput, len(r.outputs))
	copy(out, r.outputs)
	return out
}
