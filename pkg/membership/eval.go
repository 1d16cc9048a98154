/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: eval.go
Description: Numeric evaluation of membership functions. Input shapes map a crisp value to a
degree in [0,1]; consequent shapes map the input vector to a Sugeno output level.
*/

package membership

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Degree evaluates an input shape at x. Consequent shapes are not degrees and return an error.
func (f Function) Degree(x float64) (float64, error) {
	switch s := f.Shape.(type) {
	case Triangular:
		return triangular(x, s.A, s.B, s.C), nil
	case Trapezoidal:
		return trapezoidal(x, s.A, s.B, s.C, s.D), nil
	case Gaussian:
		return gaussian(x, s.Mean, s.Sigma), nil
	case Gaussian2:
		return gaussian2(x, s.Mean1, s.Sigma1, s.Mean2, s.Sigma2), nil
	default:
		return 0, fmt.Errorf("%s %q has no membership degree", f.Kind(), f.Name)
	}
}

// Level evaluates a consequent shape against the input vector, ordered as the
// system declares its inputs. A constant ignores the inputs entirely.
func (f Function) Level(inputs []float64) (float64, error) {
	switch s := f.Shape.(type) {
	case Linear:
		if len(inputs) != len(s.Coefficients) {
			return 0, fmt.Errorf("%w: linear %q has %d coefficients, got %d inputs", ErrArity, f.Name, len(s.Coefficients), len(inputs))
		}
		return LinearCombination(s.Coefficients, inputs) + s.Constant, nil
	case Constant:
		return s.Value, nil
	default:
		return 0, fmt.Errorf("%s %q has no output level", f.Kind(), f.Name)
	}
}

// LinearCombination returns sum(coeffs[i] * inputs[i]); both slices must have equal length.
func LinearCombination(coeffs, inputs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	return floats.Dot(coeffs, inputs)
}

func triangular(x, a, b, c float64) float64 {
	switch {
	case x == b:
		return 1
	case x < b:
		if x <= a || a == b {
			return 0
		}
		return (x - a) / (b - a)
	default:
		if x >= c || b == c {
			return 0
		}
		return (c - x) / (c - b)
	}
}

func trapezoidal(x, a, b, c, d float64) float64 {
	switch {
	case x >= b && x <= c:
		return 1
	case x < b:
		if x <= a || a == b {
			return 0
		}
		return (x - a) / (b - a)
	default:
		if x >= d || c == d {
			return 0
		}
		return (d - x) / (d - c)
	}
}

func gaussian(x, mean, sigma float64) float64 {
	if sigma == 0 {
		if x == mean {
			return 1
		}
		return 0
	}
	z := (x - mean) / sigma
	return math.Exp(-z * z / 2)
}

// gaussian2 is flat at 1 between the two means; a left mean above the right one
// yields the product of both halves and never reaches 1.
func gaussian2(x, mean1, sigma1, mean2, sigma2 float64) float64 {
	left, right := 1.0, 1.0
	if x < mean1 {
		left = gaussian(x, mean1, sigma1)
	}
	if x > mean2 {
		right = gaussian(x, mean2, sigma2)
	}
	return left * right
}
