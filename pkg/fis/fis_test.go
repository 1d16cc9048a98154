/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: fis_test.go
Description: Tests for the FIS model: method and connector decoding, rule weight bounds,
variable completeness, and the builder's atomic consistency checks.
*/

package fis_test

import (
	"testing"

	"github.com/kleascm/sugeno-fis/pkg/fis"
	"github.com/kleascm/sugeno-fis/pkg/membership"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMF(t *testing.T, name string, kind membership.Kind, values []float64, numInputs int) membership.Function {
	t.Helper()
	mf, err := membership.New(name, kind, values, numInputs)
	require.NoError(t, err)
	return mf
}

func buildVariable(t *testing.T, role fis.Role, index int, name string, mfs ...membership.Function) *fis.Variable {
	t.Helper()
	vb := fis.NewVariableBuilder(role, index).SetName(name).SetRange(0, 10)
	require.NoError(t, vb.SetNumMFs(len(mfs)))
	for i, mf := range mfs {
		require.NoError(t, vb.AddMF(i+1, mf))
	}
	v, err := vb.Build()
	require.NoError(t, err)
	return v
}

func TestParseInferenceType(t *testing.T) {
	typ, err := fis.ParseInferenceType("sugeno")
	require.NoError(t, err)
	assert.Equal(t, fis.Sugeno, typ)

	typ, err = fis.ParseInferenceType("Mamdani")
	require.NoError(t, err)
	assert.Equal(t, fis.Mamdani, typ)

	_, err = fis.ParseInferenceType("tsukamoto")
	assert.ErrorIs(t, err, fis.ErrFormat)
}

func TestParseMethodPerType(t *testing.T) {
	m, err := fis.ParseMethod(fis.Sugeno, fis.MethodDefuzz, "wtsum")
	require.NoError(t, err)
	assert.Equal(t, fis.MethodWtSum, m)

	_, err = fis.ParseMethod(fis.Mamdani, fis.MethodDefuzz, "wtaver")
	assert.ErrorIs(t, err, fis.ErrFormat)

	_, err = fis.ParseMethod(fis.Sugeno, fis.MethodDefuzz, "centroid")
	assert.ErrorIs(t, err, fis.ErrFormat)

	_, err = fis.ParseMethod(fis.Sugeno, fis.MethodAnd, "max")
	assert.ErrorIs(t, err, fis.ErrFormat)
	assert.Contains(t, err.Error(), "AndMethod")
}

func TestParseFunctionKind(t *testing.T) {
	kind, err := fis.ParseFunctionKind(fis.Sugeno, fis.RoleOutput, "linear")
	require.NoError(t, err)
	assert.Equal(t, membership.KindLinear, kind)

	_, err = fis.ParseFunctionKind(fis.Sugeno, fis.RoleInput, "linear")
	assert.ErrorIs(t, err, fis.ErrFormat)

	_, err = fis.ParseFunctionKind(fis.Sugeno, fis.RoleOutput, "trimf")
	assert.ErrorIs(t, err, fis.ErrFormat)

	_, err = fis.ParseFunctionKind(fis.Mamdani, fis.RoleOutput, "linear")
	assert.ErrorIs(t, err, fis.ErrFormat)

	_, err = fis.ParseFunctionKind(fis.Mamdani, fis.RoleInput, "bellmf")
	assert.ErrorIs(t, err, fis.ErrFormat)
	assert.ErrorIs(t, err, membership.ErrUnknownKind)
}

func TestParseConnector(t *testing.T) {
	c, err := fis.ParseConnector(1)
	require.NoError(t, err)
	assert.Equal(t, fis.And, c)
	assert.Equal(t, "AND", c.String())

	c, err = fis.ParseConnector(2)
	require.NoError(t, err)
	assert.Equal(t, fis.Or, c)

	for _, code := range []int{0, 3, -1, 42} {
		_, err := fis.ParseConnector(code)
		assert.ErrorIs(t, err, fis.ErrDomain, "code %d", code)
	}
}

func TestRuleWeightBounds(t *testing.T) {
	for _, w := range []float64{0, 0.5, 1} {
		r, err := fis.NewRule("r", w, fis.And, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, w, r.Weight())
	}
	for _, w := range []float64{-0.01, 1.01, 7} {
		_, err := fis.NewRule("r", w, fis.And, nil, nil)
		assert.ErrorIs(t, err, fis.ErrDomain, "weight %v", w)
	}
}

func TestRuleRejectsTooManyOutputs(t *testing.T) {
	outs := []fis.RuleOutput{{MF: 1}, {MF: 1}}
	_, err := fis.NewRule("r", 1, fis.Or, nil, outs)
	assert.ErrorIs(t, err, fis.ErrConsistency)
}

func TestRuleIsolatedFromCallerSlices(t *testing.T) {
	ins := []fis.RuleInput{{Variable: 0, MF: 1}}
	r, err := fis.NewRule("r", 1, fis.And, ins, nil)
	require.NoError(t, err)
	ins[0].MF = 9
	assert.Equal(t, 1, r.Inputs()[0].MF)
}

func TestVariableBuilder(t *testing.T) {
	low := mustMF(t, "low", membership.KindTriangular, []float64{0, 0, 5}, 0)
	high := mustMF(t, "high", membership.KindTriangular, []float64{5, 10, 10}, 0)

	v := buildVariable(t, fis.RoleInput, 0, "temp", low, high)
	assert.Equal(t, "temp", v.Name())
	assert.Equal(t, 2, v.NumMFs())
	assert.Equal(t, 2, v.MFPosition("high"))
	assert.Equal(t, 0, v.MFPosition("missing"))
	byName, found := v.MFByName("high")
	assert.True(t, found)
	assert.Equal(t, "high", byName.Name)
	_, found = v.MFByName("missing")
	assert.False(t, found)

	mf, ok := v.MF(1)
	require.True(t, ok)
	assert.Equal(t, "low", mf.Name)
	_, ok = v.MF(3)
	assert.False(t, ok)
	_, ok = v.MF(0)
	assert.False(t, ok)
}

func TestVariableBuilderCountMismatch(t *testing.T) {
	vb := fis.NewVariableBuilder(fis.RoleInput, 0).SetName("temp").SetRange(0, 10)
	require.NoError(t, vb.SetNumMFs(3))
	require.NoError(t, vb.AddMF(1, mustMF(t, "low", membership.KindGaussian, []float64{1, 0}, 0)))

	_, err := vb.Build()
	assert.ErrorIs(t, err, fis.ErrConsistency)
	assert.Contains(t, err.Error(), "declares 3")
}

func TestVariableBuilderGapAndDuplicates(t *testing.T) {
	vb := fis.NewVariableBuilder(fis.RoleInput, 0).SetName("temp").SetRange(0, 10)
	require.NoError(t, vb.SetNumMFs(2))
	mf := mustMF(t, "low", membership.KindGaussian, []float64{1, 0}, 0)
	require.NoError(t, vb.AddMF(1, mf))
	assert.ErrorIs(t, vb.AddMF(1, mf), fis.ErrFormat)
	require.NoError(t, vb.AddMF(3, mf))

	_, err := vb.Build()
	assert.ErrorIs(t, err, fis.ErrConsistency)
}

func newTipBuilder(t *testing.T) *fis.Builder {
	t.Helper()
	b := fis.NewBuilder("memory")
	b.SetName("tip")
	b.SetType(fis.Sugeno)
	require.NoError(t, b.SetCount("NumInputs", 1))
	require.NoError(t, b.SetCount("NumOutputs", 1))
	require.NoError(t, b.SetCount("NumRules", 1))
	b.AddInput(buildVariable(t, fis.RoleInput, 0, "service",
		mustMF(t, "poor", membership.KindTrapezoidal, []float64{0, 0, 2.5, 5}, 0)))
	b.AddOutput(buildVariable(t, fis.RoleOutput, 0, "tip",
		mustMF(t, "cheap", membership.KindConstant, []float64{5}, 1)))
	return b
}

func TestBuilderBuildsImmutableSystem(t *testing.T) {
	b := newTipBuilder(t)
	r, err := fis.NewRule("rule1", 1, fis.And,
		[]fis.RuleInput{{Variable: 0, VariableName: "service", MF: 1, MFName: "poor"}},
		[]fis.RuleOutput{{Variable: 0, VariableName: "tip", MF: 1, MFName: "cheap"}})
	require.NoError(t, err)
	b.AddRule(r)

	sys, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "tip", sys.Name())
	assert.Equal(t, fis.Sugeno, sys.Type())
	assert.Equal(t, fis.DefaultMethods(fis.Sugeno), sys.Methods())
	assert.Len(t, sys.Inputs(), 1)
	assert.Len(t, sys.Rules(), 1)

	in, ok := sys.InputByName("service")
	require.True(t, ok)
	assert.Equal(t, 0, in.Index())
	_, ok = sys.OutputByName("service")
	assert.False(t, ok)

	rules := sys.Rules()
	rules[0] = nil
	assert.NotNil(t, sys.Rules()[0])
}

func TestBuilderCountMismatch(t *testing.T) {
	b := newTipBuilder(t)
	_, err := b.Build()
	assert.ErrorIs(t, err, fis.ErrConsistency)
	assert.Contains(t, err.Error(), "NumRules=1")
}

func TestBuilderDanglingRuleReference(t *testing.T) {
	b := newTipBuilder(t)
	r, err := fis.NewRule("rule1", 1, fis.And,
		[]fis.RuleInput{{Variable: 0, MF: 4}},
		[]fis.RuleOutput{{Variable: 0, MF: 1}})
	require.NoError(t, err)
	b.AddRule(r)

	_, err = b.Build()
	assert.ErrorIs(t, err, fis.ErrConsistency)
	assert.Contains(t, err.Error(), "MF4")
}

func TestBuilderRequiresSystemFields(t *testing.T) {
	b := fis.NewBuilder("memory")
	_, err := b.Build()
	assert.ErrorIs(t, err, fis.ErrConsistency)

	assert.ErrorIs(t, b.SetMethod(fis.MethodAnd, "min"), fis.ErrFormat)
	b.SetType(fis.Mamdani)
	require.NoError(t, b.SetMethod(fis.MethodAnd, "prod"))
	assert.ErrorIs(t, b.SetMethod(fis.MethodDefuzz, "wtaver"), fis.ErrFormat)

	assert.ErrorIs(t, b.SetCount("NumOutputs", 2), fis.ErrDomain)
	assert.ErrorIs(t, b.SetCount("NumInputs", -1), fis.ErrDomain)
	assert.ErrorIs(t, b.SetCount("NumThings", 1), fis.ErrFormat)
}
