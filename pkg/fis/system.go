/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: system.go
Description: The System model and its Builder. The builder accumulates parsed fields section by
section and performs every declared-versus-actual consistency check once in Build, so a System
only ever exists in a fully valid, immutable state.
*/

package fis

import (
	"fmt"
)

// System is a validated fuzzy inference system. It owns its variables and rules.
type System struct {
	name       string
	source     string
	infType    InferenceType
	version    string
	methods    Methods
	numInputs  int
	numOutputs int
	numRules   int
	inputs     []*Variable
	outputs    []*Variable
	rules      []*Rule
}

func (s *System) Name() string { return s.name }
func (s *System) Source() string { return s.source }
func (s *System) Type() InferenceType { return s.infType }
func (s *System) Version() string { return s.version }
func (s *System) Methods() Methods { return s.methods }
func (s *System) NumInputs() int { return s.numInputs }
func (s *System) NumOutputs() int { return s.numOutputs }
func (s *System) NumRules() int { return s.numRules }
func (s *System) Input(i int) *Variable { return s.inputs[i] }
func (s *System) Output(i int) *Variable { return s.outputs[i] }

// Inputs returns the input variables in declaration order
func (s *System) Inputs() []*Variable {
	out := make([]*Variable, len(s.inputs))
	copy(out, s.inputs)
	return out
}

// Outputs returns the output variables in declaration order
func (s *System) Outputs() []*Variable {
	out := make([]*Variable, len(s.outputs))
	copy(out, s.outputs)
	return out
}

// Rules returns the rules in declaration order
func (s *System) Rules() []*Rule {
	out := make([]*Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// InputByName looks up an input variable
func (s *System) InputByName(name string) (*Variable, bool) {
	return lookup(s.inputs, name)
}

// OutputByName looks up an output variable
func (s *System) OutputByName(name string) (*Variable, bool) {
	return lookup(s.outputs, name)
}

func lookup(vars []*Variable, name string) (*Variable, bool) {
	for _, v := range vars {
		if v.name == name {
			return v, true
		}
	}
	return nil, false
}

// Builder accumulates the fields of a System while a source is being consumed
type Builder struct {
	name       string
	source     string
	infType    InferenceType
	version    string
	methods    Methods
	numInputs  int
	numOutputs int
	numRules   int
	declared   map[string]bool
	inputs     []*Variable
	outputs    []*Variable
	rules      []*Rule
}

// NewBuilder starts an empty system read from source
func NewBuilder(source string) *Builder {
	return &Builder{
		source:   source,
		declared: make(map[string]bool),
	}
}

// SetName sets the system name
func (b *Builder) SetName(name string) {
	b.name = name
	b.declared["Name"] = true
}

// SetVersion sets the file format version
func (b *Builder) SetVersion(v string) {
	b.version = v
}

// SetType sets the inference type. It must be called before SetMethod.
func (b *Builder) SetType(t InferenceType) {
	b.infType = t
	b.methods = DefaultMethods(t)
	b.declared["Type"] = true
}

// Type returns the inference type set so far
func (b *Builder) Type() InferenceType { return b.infType }

// SetMethod validates and sets one method selection against the inference type
func (b *Builder) SetMethod(kind MethodKind, name string) error {
	if !b.declared["Type"] {
		return fmt.Errorf("%w: %s set before Type", ErrFormat, kind)
	}
	m, err := ParseMethod(b.infType, kind, name)
	if err != nil {
		return err
	}
	switch kind {
	case MethodAnd:
		b.methods.And = m
	case MethodOr:
		b.methods.Or = m
	case MethodImp:
		b.methods.Imp = m
	case MethodAgg:
		b.methods.Agg = m
	case MethodDefuzz:
		b.methods.Defuzz = m
	}
	return nil
}

// SetCount records one of NumInputs, NumOutputs, or NumRules
func (b *Builder) SetCount(key string, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrDomain, key, n)
	}
	switch key {
	case "NumInputs":
		b.numInputs = n
	case "NumOutputs":
		if n > MaxNumOutputs {
			return fmt.Errorf("%w: NumOutputs=%d exceeds the maximum of %d", ErrDomain, n, MaxNumOutputs)
		}
		b.numOutputs = n
	case "NumRules":
		b.numRules = n
	default:
		return fmt.Errorf("%w: unknown count %q", ErrFormat, key)
	}
	b.declared[key] = true
	return nil
}

// NumInputs returns the declared input count
func (b *Builder) NumInputs() int { return b.numInputs }

// NumOutputs returns the declared output count
func (b *Builder) NumOutputs() int { return b.numOutputs }

// AddInput appends the next input variable
func (b *Builder) AddInput(v *Variable) {
	b.inputs = append(b.inputs, v)
}

// AddOutput appends the next output variable
func (b *Builder) AddOutput(v *Variable) {
	b.outputs = append(b.outputs, v)
}

// Inputs returns the inputs added so far
func (b *Builder) Inputs() []*Variable { return b.inputs }

// Outputs returns the outputs added so far
func (b *Builder) Outputs() []*Variable { return b.outputs }

// AddRule appends a rule
func (b *Builder) AddRule(r *Rule) {
	b.rules = append(b.rules, r)
}

// Build runs every consistency check and returns the immutable System
func (b *Builder) Build() (*System, error) {
	for _, key := range []string{"Name", "Type", "NumInputs", "NumOutputs", "NumRules"} {
		if !b.declared[key] {
			return nil, fmt.Errorf("%w: [System] is missing %s", ErrConsistency, key)
		}
	}
	if len(b.inputs) != b.numInputs {
		return nil, fmt.Errorf("%w: NumInputs=%d but %d inputs defined", ErrConsistency, b.numInputs, len(b.inputs))
	}
	if len(b.outputs) != b.numOutputs {
		return nil, fmt.Errorf("%w: NumOutputs=%d but %d outputs defined", ErrConsistency, b.numOutputs, len(b.outputs))
	}
	if len(b.rules) != b.numRules {
		return nil, fmt.Errorf("%w: NumRules=%d but %d rules defined", ErrConsistency, b.numRules, len(b.rules))
	}

	if err := checkUniqueNames(b.inputs); err != nil {
		return nil, err
	}
	if err := checkUniqueNames(b.outputs); err != nil {
		return nil, err
	}
	for _, r := range b.rules {
		if err := b.checkRule(r); err != nil {
			return nil, err
		}
	}

	return &System{
		name:       b.name,
		source:     b.source,
		infType:    b.infType,
		version:    b.version,
		methods:    b.methods,
		numInputs:  b.numInputs,
		numOutputs: b.numOutputs,
		numRules:   b.numRules,
		inputs:     append([]*Variable(nil), b.inputs...),
		outputs:    append([]*Variable(nil), b.outputs...),
		rules:      append([]*Rule(nil), b.rules...),
	}, nil
}

func checkUniqueNames(vars []*Variable) error {
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v.name] {
			return fmt.Errorf("%w: %s name %q declared twice", ErrConsistency, v.role, v.name)
		}
		seen[v.name] = true
	}
	return nil
}

func (b *Builder) checkRule(r *Rule) error {
	for _, in := range r.inputs {
		if in.Variable < 0 || in.Variable >= len(b.inputs) {
			return fmt.Errorf("%w: rule %q references undeclared input %d", ErrConsistency, r.name, in.Variable+1)
		}
		if _, ok := b.inputs[in.Variable].MF(in.MF); !ok {
			return fmt.Errorf("%w: rule %q references MF%d missing on input %q", ErrConsistency, r.name, in.MF, b.inputs[in.Variable].name)
		}
	}
	for _, out := range r.outputs {
		if out.Variable < 0 || out.Variable >= len(b.outputs) {
			return fmt.Errorf("%w: rule %q references undeclared output %d", ErrConsistency, r.name, out.Variable+1)
		}
		if _, ok := b.outputs[out.Variable].MF(out.MF); !ok {
			return fmt.Errorf("%w: rule %q references MF%d missing on output %q", ErrConsistency, r.name, out.MF, b.outputs[out.Variable].name)
		}
	}
	return nil
}
