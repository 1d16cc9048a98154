/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: membership_test.go
Description: Tests for membership function construction, arity validation, and evaluation
of every supported shape including degenerate edges.
*/

package membership_test

import (
	"math"
	"testing"

	"github.com/kleascm/sugeno-fis/pkg/membership"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, name := range []string{"trimf", "trapmf", "gaussmf", "gauss2mf", "linear", "constant"} {
		kind, err := membership.ParseKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, kind.String())
	}

	_, err := membership.ParseKind("sigmf")
	assert.ErrorIs(t, err, membership.ErrUnknownKind)
}

// TestArity checks every kind against its exact parameter count and one off
func TestArity(t *testing.T) {
	const numInputs = 3
	cases := []struct {
		kind  membership.Kind
		arity int
	}{
		{membership.KindTriangular, 3},
		{membership.KindTrapezoidal, 4},
		{membership.KindGaussian, 2},
		{membership.KindGaussian2, 4},
		{membership.KindLinear, numInputs + 1},
		{membership.KindConstant, 1},
	}

	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			values := make([]float64, tc.arity)
			for i := range values {
				values[i] = float64(i + 1)
			}
			fn, err := membership.New("mf", tc.kind, values, numInputs)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, fn.Kind())
			assert.Equal(t, values, fn.Shape.Params())

			_, err = membership.New("mf", tc.kind, values[:tc.arity-1], numInputs)
			assert.ErrorIs(t, err, membership.ErrArity)

			_, err = membership.New("mf", tc.kind, append(values, 9), numInputs)
			assert.ErrorIs(t, err, membership.ErrArity)
		})
	}
}

func TestNewRejectsNonFinite(t *testing.T) {
	_, err := membership.New("bad", membership.KindTriangular, []float64{0, math.NaN(), 1}, 0)
	assert.ErrorIs(t, err, membership.ErrInvalidParameter)

	_, err = membership.New("bad", membership.KindConstant, []float64{math.Inf(1)}, 0)
	assert.ErrorIs(t, err, membership.ErrInvalidParameter)
}

func TestTriangularDegree(t *testing.T) {
	fn, err := membership.New("good", membership.KindTriangular, []float64{2.5, 5, 7.5}, 0)
	require.NoError(t, err)

	cases := map[float64]float64{
		0:    0,
		2.5:  0,
		3.75: 0.5,
		5:    1,
		6.25: 0.5,
		7.5:  0,
		10:   0,
	}
	for x, want := range cases {
		got, err := fn.Degree(x)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12, "x=%v", x)
	}
}

func TestTriangularShoulders(t *testing.T) {
	left, err := membership.New("left", membership.KindTriangular, []float64{0, 0, 5}, 0)
	require.NoError(t, err)
	got, _ := left.Degree(0)
	assert.Equal(t, 1.0, got)
	got, _ = left.Degree(-1)
	assert.Equal(t, 0.0, got)

	right, err := membership.New("right", membership.KindTriangular, []float64{5, 10, 10}, 0)
	require.NoError(t, err)
	got, _ = right.Degree(10)
	assert.Equal(t, 1.0, got)
	got, _ = right.Degree(11)
	assert.Equal(t, 0.0, got)
}

func TestTrapezoidalDegree(t *testing.T) {
	poor, err := membership.New("poor", membership.KindTrapezoidal, []float64{0, 0, 2.5, 5}, 0)
	require.NoError(t, err)

	cases := map[float64]float64{
		0:    1,
		1:    1,
		2.5:  1,
		3.75: 0.5,
		5:    0,
		8:    0,
	}
	for x, want := range cases {
		got, err := poor.Degree(x)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12, "x=%v", x)
	}

	delicious, err := membership.New("delicious", membership.KindTrapezoidal, []float64{5.2, 9.2, 10, 10}, 0)
	require.NoError(t, err)
	got, err := delicious.Degree(7)
	require.NoError(t, err)
	assert.InDelta(t, 0.45, got, 1e-12)
}

func TestGaussianDegree(t *testing.T) {
	fn, err := membership.New("mid", membership.KindGaussian, []float64{2, 5}, 0)
	require.NoError(t, err)

	got, err := fn.Degree(5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, _ = fn.Degree(7)
	assert.InDelta(t, math.Exp(-0.5), got, 1e-12)

	lo, _ := fn.Degree(3)
	assert.InDelta(t, got, lo, 1e-12, "gaussian must be symmetric")

	spike, err := membership.New("spike", membership.KindGaussian, []float64{0, 1}, 0)
	require.NoError(t, err)
	got, _ = spike.Degree(1)
	assert.Equal(t, 1.0, got)
	got, _ = spike.Degree(1.5)
	assert.Equal(t, 0.0, got)
}

func TestGaussian2Degree(t *testing.T) {
	fn, err := membership.New("plateau", membership.KindGaussian2, []float64{1, 3, 2, 6}, 0)
	require.NoError(t, err)

	for _, x := range []float64{3, 4.5, 6} {
		got, err := fn.Degree(x)
		require.NoError(t, err)
		assert.Equal(t, 1.0, got, "x=%v", x)
	}

	got, _ := fn.Degree(2)
	assert.InDelta(t, math.Exp(-0.5), got, 1e-12)
	got, _ = fn.Degree(8)
	assert.InDelta(t, math.Exp(-0.5), got, 1e-12)

	crossed, err := membership.New("crossed", membership.KindGaussian2, []float64{1, 6, 1, 4}, 0)
	require.NoError(t, err)
	got, _ = crossed.Degree(5)
	assert.InDelta(t, math.Exp(-0.5)*math.Exp(-0.5), got, 1e-12)
}

func TestConsequentLevels(t *testing.T) {
	lin, err := membership.New("lin", membership.KindLinear, []float64{2, -1, 3}, 2)
	require.NoError(t, err)

	level, err := lin.Level([]float64{4, 5})
	require.NoError(t, err)
	assert.InDelta(t, 2*4-5+3, level, 1e-12)

	_, err = lin.Level([]float64{4})
	assert.ErrorIs(t, err, membership.ErrArity)

	c, err := membership.New("tip", membership.KindConstant, []float64{25}, 2)
	require.NoError(t, err)
	level, err = c.Level([]float64{4, 5})
	require.NoError(t, err)
	assert.Equal(t, 25.0, level)

	_, err = c.Degree(1)
	assert.Error(t, err)

	tri, _ := membership.New("tri", membership.KindTriangular, []float64{0, 1, 2}, 0)
	_, err = tri.Level([]float64{1})
	assert.Error(t, err)
}

func TestLinearCombination(t *testing.T) {
	assert.Equal(t, 0.0, membership.LinearCombination(nil, nil))
	assert.Equal(t, 11.0, membership.LinearCombination([]float64{1, 2}, []float64{3, 4}))
}

func TestCloneDetachesCoefficients(t *testing.T) {
	lin, err := membership.New("lin", membership.KindLinear, []float64{1, 2, 10}, 2)
	require.NoError(t, err)

	c := lin.Clone()
	c.Shape.(membership.Linear).Coefficients[0] = 1000
	assert.Equal(t, []float64{1, 2}, lin.Shape.(membership.Linear).Coefficients)

	tri, err := membership.New("tri", membership.KindTriangular, []float64{0, 1, 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, tri, tri.Clone())
}
