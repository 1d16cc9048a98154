/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: connectors.go
Description: Combine functions for rule antecedents, keyed by connector and method.
*/

package sugeno

import (
	"github.com/kleascm/sugeno-fis/pkg/fis"
	"gonum.org/v1/gonum/floats"
)

// combineFunc reduces antecedent degrees to a firing strength; degrees is never empty
type combineFunc func(degrees []float64) float64

type connectorKey struct {
	connector fis.Connector
	method    fis.Method
}

var connectors = map[connectorKey]combineFunc{
	{fis.And, fis.MethodMin}:   floats.Min,
	{fis.And, fis.MethodProd}:  product,
	{fis.Or, fis.MethodMax}:    floats.Max,
	{fis.Or, fis.MethodProbOr}: probOr,
}

func product(degrees []float64) float64 {
	return floats.Prod(degrees)
}

// probOr folds a + b - a*b over the degrees from left to right
func probOr(degrees []float64) float64 {
	acc := degrees[0]
	for _, w := range degrees[1:] {
		acc = acc + w - acc*w
	}
	return acc
}

// not is the standard fuzzy complement
func not(x float64) float64 {
	return 1 - x
}
