/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: methods.go
Description: Inference types and the method selections each of them allows. Mamdani and
Sugeno accept different method and membership function sets; lookups are keyed by type.
*/

package fis

import (
	"fmt"
	"strings"

	"github.com/kleascm/sugeno-fis/pkg/membership"
)

// InferenceType selects Mamdani or Sugeno inference
type InferenceType string

const (
	Mamdani InferenceType = "mamdani"
	Sugeno  InferenceType = "sugeno"
)

// ParseInferenceType resolves the Type field of a [System] block
func ParseInferenceType(s string) (InferenceType, error) {
	switch InferenceType(strings.ToLower(s)) {
	case Mamdani:
		return Mamdani, nil
	case Sugeno:
		return Sugeno, nil
	default:
		return "", fmt.Errorf("%w: inference type %q is neither mamdani nor sugeno", ErrFormat, s)
	}
}

// MethodKind names one of the five method selections of a system
type MethodKind string

const (
	MethodAnd    MethodKind = "AndMethod"
	MethodOr     MethodKind = "OrMethod"
	MethodImp    MethodKind = "ImpMethod"
	MethodAgg    MethodKind = "AggMethod"
	MethodDefuzz MethodKind = "DefuzzMethod"
)

// Method is a method name such as "min" or "wtaver"
type Method string

const (
	MethodMin      Method = "min"
	MethodProd     Method = "prod"
	MethodMax      Method = "max"
	MethodProbOr   Method = "probor"
	MethodSum      Method = "sum"
	MethodWtAver   Method = "wtaver"
	MethodWtSum    Method = "wtsum"
	MethodCentroid Method = "centroid"
	MethodBisector Method = "bisector"
	MethodMOM      Method = "mom"
	MethodLOM      Method = "lom"
	MethodSOM      Method = "som"
)

var allowedMethods = map[InferenceType]map[MethodKind][]Method{
	Mamdani: {
		MethodAnd:    {MethodMin, MethodProd},
		MethodOr:     {MethodMax, MethodProbOr},
		MethodImp:    {MethodMin, MethodProd},
		MethodAgg:    {MethodMax, MethodSum, MethodProbOr},
		MethodDefuzz: {MethodCentroid, MethodBisector, MethodMOM, MethodLOM, MethodSOM},
	},
	Sugeno: {
		MethodAnd:    {MethodMin, MethodProd},
		MethodOr:     {MethodMax, MethodProbOr},
		MethodImp:    {MethodProd, MethodMin},
		MethodAgg:    {MethodSum, MethodMax},
		MethodDefuzz: {MethodWtAver, MethodWtSum},
	},
}

// ParseMethod validates a method name for the given inference type and method kind
func ParseMethod(t InferenceType, kind MethodKind, name string) (Method, error) {
	allowed, ok := allowedMethods[t][kind]
	if !ok {
		return "", fmt.Errorf("%w: no %s for inference type %q", ErrFormat, kind, t)
	}
	m := Method(strings.ToLower(name))
	for _, a := range allowed {
		if a == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %s %q is not a %s method", ErrFormat, kind, name, t)
}

// Methods holds the method selections of a system
type Methods struct {
	And    Method `json:"and"`
	Or     Method `json:"or"`
	Imp    Method `json:"imp"`
	Agg    Method `json:"agg"`
	Defuzz Method `json:"defuzz"`
}

// DefaultMethods returns the selections used when a [System] block omits them
func DefaultMethods(t InferenceType) Methods {
	if t == Sugeno {
		return Methods{And: MethodProd, Or: MethodProbOr, Imp: MethodProd, Agg: MethodSum, Defuzz: MethodWtAver}
	}
	return Methods{And: MethodMin, Or: MethodMax, Imp: MethodMin, Agg: MethodMax, Defuzz: MethodCentroid}
}

// Role tells input variables from output variables
type Role string

const (
	RoleInput  Role = "input"
	RoleOutput Role = "output"
)

var allowedKinds = map[InferenceType]map[Role][]membership.Kind{
	Mamdani: {
		RoleInput: {membership.KindTriangular, membership.KindTrapezoidal, membership.KindGaussian,
			membership.KindGaussian2, membership.KindConstant},
		RoleOutput: {membership.KindTriangular, membership.KindTrapezoidal, membership.KindGaussian,
			membership.KindGaussian2, membership.KindConstant},
	},
	Sugeno: {
		RoleInput: {membership.KindTriangular, membership.KindTrapezoidal, membership.KindGaussian,
			membership.KindGaussian2},
		RoleOutput: {membership.KindLinear, membership.KindConstant},
	},
}

// ParseFunctionKind resolves a membership function name allowed for the role under the inference type
func ParseFunctionKind(t InferenceType, role Role, name string) (membership.Kind, error) {
	kind, err := membership.ParseKind(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	for _, k := range allowedKinds[t][role] {
		if k == kind {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: function %q is not allowed on %s %ss", ErrFormat, name, t, role)
}
