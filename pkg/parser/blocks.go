/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: blocks.go
Description: Block builders for the .fis parser. The [System] block sets the inference type and
method selections, variable blocks produce one Variable each, and the [Rules] block decodes the
compact numeric rule encoding into Rules.
*/

package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kleascm/sugeno-fis/pkg/fis"
	"github.com/kleascm/sugeno-fis/pkg/membership"
	"github.com/sirupsen/logrus"
)

var methodKeys = map[string]fis.MethodKind{
	"AndMethod":    fis.MethodAnd,
	"OrMethod":     fis.MethodOr,
	"ImpMethod":    fis.MethodImp,
	"AggMethod":    fis.MethodAgg,
	"DefuzzMethod": fis.MethodDefuzz,
}

// parseSystem applies the [System] block. Type is applied first because the
// allowed method names depend on it, wherever it appears in the block.
func (p *parser) parseSystem(b *block) error {
	type entry struct {
		no         int
		key, value string
	}
	entries := make([]entry, 0, len(b.lines))
	typeSeen := false

	for _, l := range b.lines {
		key, value, err := keyValue(l)
		if err != nil {
			return p.fail(l.no, err)
		}
		if key == "Type" {
			t, err := fis.ParseInferenceType(unquote(value))
			if err != nil {
				return p.fail(l.no, err)
			}
			p.builder.SetType(t)
			typeSeen = true
			continue
		}
		entries = append(entries, entry{no: l.no, key: key, value: value})
	}
	if !typeSeen {
		return p.fail(b.no, fmt.Errorf("%w: [System] has no Type", fis.ErrConsistency))
	}

	for _, e := range entries {
		var err error
		switch e.key {
		case "Name":
			p.builder.SetName(unquote(e.value))
		case "Version":
			p.builder.SetVersion(unquote(e.value))
		case "NumInputs", "NumOutputs", "NumRules":
			var n int
			if n, err = parseInt(e.key, e.value); err == nil {
				err = p.builder.SetCount(e.key, n)
			}
		default:
			kind, ok := methodKeys[e.key]
			if !ok {
				err = fmt.Errorf("%w: unknown [System] key %q", fis.ErrFormat, e.key)
				break
			}
			err = p.builder.SetMethod(kind, unquote(e.value))
		}
		if err != nil {
			return p.fail(e.no, err)
		}
	}
	return nil
}

// parseVariable builds one input or output from its block
func (p *parser) parseVariable(b *block, role fis.Role, index int) (*fis.Variable, error) {
	vb := fis.NewVariableBuilder(role, index)

	for _, l := range b.lines {
		key, value, err := keyValue(l)
		if err != nil {
			return nil, p.fail(l.no, err)
		}

		switch {
		case key == "Name":
			vb.SetName(unquote(value))
		case key == "Range":
			bounds, err := parseFloatList(key, value)
			if err != nil {
				return nil, p.fail(l.no, err)
			}
			if len(bounds) != 2 {
				return nil, p.fail(l.no, fmt.Errorf("%w: Range needs 2 values, got %d", fis.ErrFormat, len(bounds)))
			}
			vb.SetRange(bounds[0], bounds[1])
		case key == "NumMFs":
			n, err := parseInt(key, value)
			if err == nil {
				err = vb.SetNumMFs(n)
			}
			if err != nil {
				return nil, p.fail(l.no, err)
			}
		case strings.HasPrefix(key, "MF"):
			pos, err := strconv.Atoi(strings.TrimPrefix(key, "MF"))
			if err != nil {
				return nil, p.fail(l.no, fmt.Errorf("%w: bad membership function key %q", fis.ErrFormat, key))
			}
			mf, err := p.parseMF(key, value, role)
			if err == nil {
				err = vb.AddMF(pos, mf)
			}
			if err != nil {
				return nil, p.fail(l.no, err)
			}
		default:
			return nil, p.fail(l.no, fmt.Errorf("%w: unknown [%s] key %q", fis.ErrFormat, b.header, key))
		}
	}

	v, err := vb.Build()
	if err != nil {
		return nil, p.fail(b.no, err)
	}
	p.log.WithFields(logrus.Fields{
		"block":   b.header,
		"name":    v.Name(),
		"num_mfs": v.NumMFs(),
	}).Debug("parsed variable block")
	return v, nil
}

// parseMF decodes 'name':'func',[p1 p2 ...]
func (p *parser) parseMF(key, value string, role fis.Role) (membership.Function, error) {
	name, rest, ok := strings.Cut(unquote(value), ":")
	if !ok {
		return membership.Function{}, fmt.Errorf("%w: %s=%q is missing ':'", fis.ErrFormat, key, value)
	}
	funcName, rawParams, ok := strings.Cut(rest, ",")
	if !ok {
		return membership.Function{}, fmt.Errorf("%w: %s=%q is missing ','", fis.ErrFormat, key, value)
	}
	name, funcName = strings.TrimSpace(name), strings.TrimSpace(funcName)
	if name == "" {
		return membership.Function{}, fmt.Errorf("%w: %s has an empty name", fis.ErrFormat, key)
	}

	kind, err := fis.ParseFunctionKind(p.builder.Type(), role, funcName)
	if err != nil {
		return membership.Function{}, err
	}
	params, err := parseFloatList(key, rawParams)
	if err != nil {
		return membership.Function{}, err
	}

	mf, err := membership.New(name, kind, params, p.builder.NumInputs())
	switch {
	case errors.Is(err, membership.ErrInvalidParameter):
		return membership.Function{}, fmt.Errorf("%w: %w", fis.ErrType, err)
	case err != nil:
		return membership.Function{}, fmt.Errorf("%w: %w", fis.ErrFormat, err)
	}
	return mf, nil
}

// parseRules decodes one rule per line of the [Rules] block
func (p *parser) parseRules(b *block) error {
	if n := len(p.builder.Inputs()); n != p.builder.NumInputs() {
		return p.fail(b.no, fmt.Errorf("%w: NumInputs=%d but %d inputs defined", fis.ErrConsistency, p.builder.NumInputs(), n))
	}
	if n := len(p.builder.Outputs()); n != p.builder.NumOutputs() {
		return p.fail(b.no, fmt.Errorf("%w: NumOutputs=%d but %d outputs defined", fis.ErrConsistency, p.builder.NumOutputs(), n))
	}

	for i, l := range b.lines {
		r, err := p.parseRule(fmt.Sprintf("rule%d", i+1), l.text)
		if err != nil {
			return p.fail(l.no, err)
		}
		p.builder.AddRule(r)
	}
	p.log.WithField("rules", len(b.lines)).Debug("parsed [Rules] block")
	return nil
}

// parseRule decodes <input-codes>, <output-codes> (<weight>) : <connector>
func (p *parser) parseRule(name, text string) (*fis.Rule, error) {
	body, connText, ok := cutLast(text, ":")
	if !ok {
		return nil, fmt.Errorf("%w: rule %q has no ':' connector", fis.ErrFormat, text)
	}
	code, err := strconv.Atoi(strings.TrimSpace(connText))
	if err != nil {
		return nil, fmt.Errorf("%w: rule connector %q is not an integer", fis.ErrType, strings.TrimSpace(connText))
	}
	connector, err := fis.ParseConnector(code)
	if err != nil {
		return nil, err
	}

	open, closing := strings.Index(body, "("), strings.LastIndex(body, ")")
	if open < 0 || closing < open {
		return nil, fmt.Errorf("%w: rule %q has no (weight)", fis.ErrFormat, text)
	}
	weightText := strings.TrimSpace(body[open+1 : closing])
	weight, err := strconv.ParseFloat(weightText, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: rule weight %q is not a number", fis.ErrType, weightText)
	}

	inText, outText, ok := strings.Cut(body[:open], ",")
	if !ok {
		return nil, fmt.Errorf("%w: rule %q has no ',' between antecedents and consequents", fis.ErrFormat, text)
	}
	inCodes, err := parseCodes(inText, p.builder.NumInputs(), "antecedent")
	if err != nil {
		return nil, err
	}
	outCodes, err := parseCodes(outText, p.builder.NumOutputs(), "consequent")
	if err != nil {
		return nil, err
	}

	inputs := p.builder.Inputs()
	var ruleInputs []fis.RuleInput
	for i, c := range inCodes {
		if c == 0 {
			continue
		}
		pos := c
		if pos < 0 {
			pos = -pos
		}
		mf, ok := inputs[i].MF(pos)
		if !ok {
			return nil, fmt.Errorf("%w: membership function %d does not exist on input %q", fis.ErrConsistency, pos, inputs[i].Name())
		}
		ruleInputs = append(ruleInputs, fis.RuleInput{
			Variable:     i,
			VariableName: inputs[i].Name(),
			MF:           pos,
			MFName:       mf.Name,
			Negated:      c < 0,
		})
	}
	if len(ruleInputs) == 0 {
		return nil, fmt.Errorf("%w: rule %q has no antecedents", fis.ErrConsistency, text)
	}

	outputs := p.builder.Outputs()
	var ruleOutputs []fis.RuleOutput
	for i, c := range outCodes {
		if c < 0 {
			return nil, fmt.Errorf("%w: consequent cannot be negated (%d on output %q)", fis.ErrDomain, c, outputs[i].Name())
		}
		if c == 0 {
			continue
		}
		mf, ok := outputs[i].MF(c)
		if !ok {
			return nil, fmt.Errorf("%w: membership function %d does not exist on output %q", fis.ErrConsistency, c, outputs[i].Name())
		}
		ruleOutputs = append(ruleOutputs, fis.RuleOutput{
			Variable:     i,
			VariableName: outputs[i].Name(),
			MF:           c,
			MFName:       mf.Name,
		})
	}

	return fis.NewRule(name, weight, connector, ruleInputs, ruleOutputs)
}

// parseCodes reads exactly want whitespace-separated integers
func parseCodes(text string, want int, what string) ([]int, error) {
	fields := strings.Fields(text)
	if len(fields) != want {
		return nil, fmt.Errorf("%w: rule has %d %s codes, expected %d", fis.ErrFormat, len(fields), what, want)
	}
	codes := make([]int, len(fields))
	for i, f := range fields {
		c, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s code %q is not an integer", fis.ErrType, what, f)
		}
		codes[i] = c
	}
	return codes, nil
}

func cutLast(s, sep string) (string, string, bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
