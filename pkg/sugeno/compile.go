/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: compile.go
Description: Compiles a validated Sugeno System into an Engine. Variable references are
resolved to indices once, every membership function is bound to its typed shape, and each
rule's connector is bound to a combine function chosen from the system's AND/OR methods.
*/

package sugeno

import (
	"errors"
	"fmt"

	"github.com/kleascm/sugeno-fis/pkg/fis"
	"github.com/kleascm/sugeno-fis/pkg/membership"
)

var (
	ErrNotSugeno            = errors.New("not a sugeno system")
	ErrMethodNotImplemented = errors.New("method not implemented")
	ErrUnknownVariable      = errors.New("unknown variable")
	ErrInvalidShape         = errors.New("membership function cannot be used here")
	ErrInvalidInputs        = errors.New("invalid number of inputs")
	ErrNoRuleFired          = errors.New("total weighted firing strength is zero")
	ErrNonFiniteInput       = errors.New("input is not a finite number")
)

// Variable is the compiled view of an input or output
type Variable struct {
	Name  string
	Range [2]float64
	MFs   map[string]membership.Function
}

type boundInput struct {
	variable int
	name     string
	mf       membership.Function
	negated  bool
}

type boundOutput struct {
	variable int
	name     string
	mf       membership.Function
}

type compiledRule struct {
	name      string
	weight    float64
	connector fis.Connector
	combine   combineFunc
	inputs    []boundInput
	outputs   []boundOutput
}

// Engine evaluates a compiled Sugeno system. It is read-only after Compile
// and may be shared by concurrent callers.
type Engine struct {
	name       string
	defuzz     fis.Method
	inputs     []Variable
	outputs    []Variable
	inputIndex map[string]int
	rules      []compiledRule
}

// Compile binds a Sugeno system to evaluable functions
func Compile(sys *fis.System) (*Engine, error) {
	if sys == nil {
		return nil, fmt.Errorf("%w: nil system", ErrNotSugeno)
	}
	if sys.Type() != fis.Sugeno {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotSugeno, sys.Name(), sys.Type())
	}
	if sys.NumOutputs() == 0 {
		return nil, fmt.Errorf("%w: %q declares no output", ErrUnknownVariable, sys.Name())
	}

	methods := sys.Methods()
	if methods.Defuzz != fis.MethodWtAver && methods.Defuzz != fis.MethodWtSum {
		return nil, fmt.Errorf("%w: DefuzzMethod %q", ErrMethodNotImplemented, methods.Defuzz)
	}

	e := &Engine{
		name:       sys.Name(),
		defuzz:     methods.Defuzz,
		inputIndex: make(map[string]int, sys.NumInputs()),
	}

	for i, v := range sys.Inputs() {
		cv, err := compileVariable(v, false)
		if err != nil {
			return nil, err
		}
		e.inputs = append(e.inputs, cv)
		e.inputIndex[v.Name()] = i
	}
	for _, v := range sys.Outputs() {
		cv, err := compileVariable(v, true)
		if err != nil {
			return nil, err
		}
		e.outputs = append(e.outputs, cv)
	}

	for _, r := range sys.Rules() {
		cr, err := e.compileRule(r, methods)
		if err != nil {
			return nil, err
		}
		e.rules = append(e.rules, cr)
	}

	return e, nil
}

func compileVariable(v *fis.Variable, consequent bool) (Variable, error) {
	cv := Variable{
		Name:  v.Name(),
		Range: v.Range(),
		MFs:   make(map[string]membership.Function, v.NumMFs()),
	}
	for _, mf := range v.MFs() {
		if mf.Kind().IsConsequent() != consequent {
			return Variable{}, fmt.Errorf("%w: %s %q on %s %q", ErrInvalidShape, mf.Kind(), mf.Name, v.Role(), v.Name())
		}
		cv.MFs[mf.Name] = mf.Clone()
	}
	return cv, nil
}

func (e *Engine) compileRule(r *fis.Rule, methods fis.Methods) (compiledRule, error) {
	method := methods.And
	if r.Connector() == fis.Or {
		method = methods.Or
	}
	combine, ok := connectors[connectorKey{connector: r.Connector(), method: method}]
	if !ok {
		return compiledRule{}, fmt.Errorf("%w: %s with %q in rule %q", ErrMethodNotImplemented, r.Connector(), method, r.Name())
	}

	cr := compiledRule{
		name:      r.Name(),
		weight:    r.Weight(),
		connector: r.Connector(),
		combine:   combine,
	}
	for _, in := range r.Inputs() {
		mf, err := resolve(e.inputs, in.Variable, in.VariableName, in.MFName)
		if err != nil {
			return compiledRule{}, fmt.Errorf("rule %q: %w", r.Name(), err)
		}
		cr.inputs = append(cr.inputs, boundInput{variable: in.Variable, name: in.VariableName, mf: mf, negated: in.Negated})
	}
	for _, out := range r.Outputs() {
		mf, err := resolve(e.outputs, out.Variable, out.VariableName, out.MFName)
		if err != nil {
			return compiledRule{}, fmt.Errorf("rule %q: %w", r.Name(), err)
		}
		cr.outputs = append(cr.outputs, boundOutput{variable: out.Variable, name: out.VariableName, mf: mf})
	}
	return cr, nil
}

// resolve checks that index and name agree and returns the bound membership function
func resolve(vars []Variable, index int, name, mfName string) (membership.Function, error) {
	if index < 0 || index >= len(vars) || vars[index].Name != name {
		return membership.Function{}, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	mf, ok := vars[index].MFs[mfName]
	if !ok {
		return membership.Function{}, fmt.Errorf("%w: membership function %q on %q", ErrUnknownVariable, mfName, name)
	}
	return mf, nil
}

// Name returns the name of the compiled system
func (e *Engine) Name() string { return e.name }

// DefuzzMethod returns wtaver or wtsum
func (e *Engine) DefuzzMethod() fis.Method { return e.defuzz }

// Inputs returns copies of the compiled inputs in declaration order
func (e *Engine) Inputs() []Variable {
	out := make([]Variable, len(e.inputs))
	for i, v := range e.inputs {
		out[i] = Variable{Name: v.Name, Range: v.Range, MFs: make(map[string]membership.Function, len(v.MFs))}
		for name, mf := range v.MFs {
			out[i].MFs[name] = mf.Clone()
		}
	}
	return out
}

// InputNames returns the input names in declaration order
func (e *Engine) InputNames() []string {
	names := make([]string, len(e.inputs))
	for i, v := range e.inputs {
		names[i] = v.Name
	}
	return names
}

// NumRules returns the number of compiled rules
func (e *Engine) NumRules() int { return len(e.rules) }

// OutputName returns the name of the single output
func (e *Engine) OutputName() string { return e.outputs[0].Name }
