/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: membership.go
Description: Membership function model for the FIS toolkit. Each function kind carries its
own strongly typed parameter struct, validated for arity and numeric sanity on construction.
Functions are immutable values owned by the variable that declares them.
*/

package membership

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownKind      = errors.New("unknown membership function")
	ErrArity            = errors.New("wrong number of parameters")
	ErrInvalidParameter = errors.New("parameter is not a finite number")
)

// Kind identifies the shape of a membership function
type Kind int

const (
	KindTriangular Kind = iota + 1
	KindTrapezoidal
	KindGaussian
	KindGaussian2
	KindLinear
	KindConstant
)

var kindNames = map[Kind]string{
	KindTriangular:  "trimf",
	KindTrapezoidal: "trapmf",
	KindGaussian:    "gaussmf",
	KindGaussian2:   "gauss2mf",
	KindLinear:      "linear",
	KindConstant:    "constant",
}

// String returns the .fis name of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsConsequent reports whether the kind describes an output level rather than a degree.
func (k Kind) IsConsequent() bool {
	return k == KindLinear || k == KindConstant
}

// ParseKind resolves a .fis function name such as "trimf"
func ParseKind(name string) (Kind, error) {
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Arity returns the number of parameters the kind expects. numInputs is only
// consulted for linear functions, which take one coefficient per input plus a constant.
func (k Kind) Arity(numInputs int) int {
	switch k {
	case KindTriangular:
		return 3
	case KindTrapezoidal, KindGaussian2:
		return 4
	case KindGaussian:
		return 2
	case KindLinear:
		return numInputs + 1
	case KindConstant:
		return 1
	default:
		return -1
	}
}

// Shape is implemented by the parameter struct of each kind
type Shape interface {
	Kind() Kind
	Params() []float64
}

// Triangular is trimf [a b c]
type Triangular struct{ A, B, C float64 }

// Trapezoidal is trapmf [a b c d]
type Trapezoidal struct{ A, B, C, D float64 }

// Gaussian is gaussmf [sigma mean]
type Gaussian struct{ Sigma, Mean float64 }

// Gaussian2 is gauss2mf [sigma1 mean1 sigma2 mean2]
type Gaussian2 struct{ Sigma1, Mean1, Sigma2, Mean2 float64 }

// Linear is a first-order Sugeno consequent [c1 ... cN constant]
type Linear struct {
	Coefficients []float64
	Constant     float64
}

// Constant is a zero-order Sugeno consequent [value]
type Constant struct{ Value float64 }

func (Triangular) Kind() Kind { return KindTriangular }
func (Trapezoidal) Kind() Kind { return KindTrapezoidal }
func (Gaussian) Kind() Kind { return KindGaussian }
func (Gaussian2) Kind() Kind { return KindGaussian2 }
func (Linear) Kind() Kind { return KindLinear }
func (Constant) Kind() Kind { return KindConstant }

func (s Triangular) Params() []float64 { return []float64{s.A, s.B, s.C} }
func (s Trapezoidal) Params() []float64 { return []float64{s.A, s.B, s.C, s.D} }
func (s Gaussian) Params() []float64 { return []float64{s.Sigma, s.Mean} }
func (s Gaussian2) Params() []float64 {
	return []float64{s.Sigma1, s.Mean1, s.Sigma2, s.Mean2}
}
func (s Linear) Params() []float64 {
	out := make([]float64, 0, len(s.Coefficients)+1)
	out = append(out, s.Coefficients...)
	return append(out, s.Constant)
}
func (s Constant) Params() []float64 { return []float64{s.Value} }

// Function is a named membership function
type Function struct {
	Name  string
	Shape Shape
}

// Kind returns the kind of the underlying shape
func (f Function) Kind() Kind {
	return f.Shape.Kind()
}

// Clone returns a copy of f that shares no memory with it
func (f Function) Clone() Function {
	if s, ok := f.Shape.(Linear); ok {
		s.Coefficients = append([]float64(nil), s.Coefficients...)
		f.Shape = s
	}
	return f
}

// New builds a membership function of the given kind from raw parameter values.
// numInputs is the number of system inputs and only matters for linear functions.
func New(name string, kind Kind, values []float64, numInputs int) (Function, error) {
	want := kind.Arity(numInputs)
	if want < 0 {
		return Function{}, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
	if len(values) != want {
		return Function{}, fmt.Errorf("%w: %s %q expects %d, got %d", ErrArity, kind, name, want, len(values))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Function{}, fmt.Errorf("%w: %s %q parameter %d is %v", ErrInvalidParameter, kind, name, i+1, v)
		}
	}

	var shape Shape
	switch kind {
	case KindTriangular:
		shape = Triangular{A: values[0], B: values[1], C: values[2]}
	case KindTrapezoidal:
		shape = Trapezoidal{A: values[0], B: values[1], C: values[2], D: values[3]}
	case KindGaussian:
		shape = Gaussian{Sigma: values[0], Mean: values[1]}
	case KindGaussian2:
		shape = Gaussian2{Sigma1: values[0], Mean1: values[1], Sigma2: values[2], Mean2: values[3]}
	case KindLinear:
		coeffs := make([]float64, numInputs)
		copy(coeffs, values[:numInputs])
		shape = Linear{Coefficients: coeffs, Constant: values[numInputs]}
	case KindConstant:
		shape = Constant{Value: values[0]}
	}

	return Function{Name: name, Shape: shape}, nil
}
