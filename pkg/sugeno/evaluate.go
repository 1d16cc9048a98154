/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: evaluate.go
Description: Sugeno evaluation. Each rule's firing strength is scaled by its weight and paired
with the level of its linear or constant consequent; the pairs are reduced by weighted average
or weighted sum. Evaluation is a pure function of the engine and the input vector.
*/

package sugeno

import (
	"fmt"
	"math"

	"github.com/kleascm/sugeno-fis/pkg/fis"
	"gonum.org/v1/gonum/floats"
)

// RuleTrace records how one rule contributed to an evaluation
type RuleTrace struct {
	Name           string  `json:"name"`
	Firing         float64 `json:"firing"`
	Weight         float64 `json:"weight"`
	WeightedFiring float64 `json:"weighted_firing"`
	Level          float64 `json:"level"`
	HasConsequent  bool    `json:"has_consequent"`
}

// Trace is the full breakdown of one evaluation
type Trace struct {
	System string             `json:"system"`
	Inputs map[string]float64 `json:"inputs"`
	Method fis.Method         `json:"method"`
	Output float64            `json:"output"`
	Rules  []RuleTrace        `json:"rules"`
}

// Evaluate returns the crisp output for inputs keyed by input name
func (e *Engine) Evaluate(inputs map[string]float64) (float64, error) {
	return e.run(inputs, nil)
}

// Explain evaluates like Evaluate and also returns every rule's contribution
func (e *Engine) Explain(inputs map[string]float64) (*Trace, error) {
	trace := &Trace{
		System: e.name,
		Inputs: make(map[string]float64, len(inputs)),
		Method: e.defuzz,
		Rules:  make([]RuleTrace, 0, len(e.rules)),
	}
	for k, v := range inputs {
		trace.Inputs[k] = v
	}
	out, err := e.run(inputs, trace)
	if err != nil {
		return nil, err
	}
	trace.Output = out
	return trace, nil
}

// vector orders inputs by declaration; the cardinality check runs before anything else
func (e *Engine) vector(inputs map[string]float64) ([]float64, error) {
	if len(inputs) != len(e.inputs) {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidInputs, len(e.inputs), len(inputs))
	}
	x := make([]float64, len(e.inputs))
	for name, v := range inputs {
		i, ok := e.inputIndex[name]
		if !ok {
			return nil, fmt.Errorf("%w: input %q", ErrUnknownVariable, name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s=%v", ErrNonFiniteInput, name, v)
		}
		x[i] = v
	}
	return x, nil
}

func (e *Engine) run(inputs map[string]float64, trace *Trace) (float64, error) {
	x, err := e.vector(inputs)
	if err != nil {
		return 0, err
	}

	weights := make([]float64, 0, len(e.rules))
	levels := make([]float64, 0, len(e.rules))

	for _, r := range e.rules {
		firing, err := r.firing(x)
		if err != nil {
			return 0, err
		}
		rt := RuleTrace{Name: r.name, Firing: firing, Weight: r.weight, WeightedFiring: firing * r.weight}

		// a rule whose consequent code was 0 does not affect the output
		if len(r.outputs) > 0 {
			level, err := r.outputs[0].mf.Level(x)
			if err != nil {
				return 0, fmt.Errorf("rule %q: %w", r.name, err)
			}
			rt.Level = level
			rt.HasConsequent = true
			weights = append(weights, rt.WeightedFiring)
			levels = append(levels, level)
		}

		if trace != nil {
			trace.Rules = append(trace.Rules, rt)
		}
	}

	return defuzzify(e.defuzz, weights, levels)
}

// firing is the rule's unweighted firing strength
func (r *compiledRule) firing(x []float64) (float64, error) {
	if len(r.inputs) == 1 {
		d, err := r.inputs[0].degree(x)
		if err != nil {
			return 0, fmt.Errorf("rule %q: %w", r.name, err)
		}
		return d, nil
	}
	degrees := make([]float64, len(r.inputs))
	for i, in := range r.inputs {
		d, err := in.degree(x)
		if err != nil {
			return 0, fmt.Errorf("rule %q: %w", r.name, err)
		}
		degrees[i] = d
	}
	return r.combine(degrees), nil
}

func (b boundInput) degree(x []float64) (float64, error) {
	d, err := b.mf.Degree(x[b.variable])
	if err != nil {
		return 0, err
	}
	if b.negated {
		return not(d), nil
	}
	return d, nil
}

func defuzzify(method fis.Method, weights, levels []float64) (float64, error) {
	if len(weights) == 0 {
		if method == fis.MethodWtSum {
			return 0, nil
		}
		return 0, ErrNoRuleFired
	}

	weighted := floats.Dot(weights, levels)
	switch method {
	case fis.MethodWtSum:
		return weighted, nil
	case fis.MethodWtAver:
		total := floats.Sum(weights)
		if total == 0 {
			return 0, ErrNoRuleFired
		}
		return weighted / total, nil
	default:
		return 0, fmt.Errorf("%w: DefuzzMethod %q", ErrMethodNotImplemented, method)
	}
}
