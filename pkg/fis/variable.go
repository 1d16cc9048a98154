/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: variable.go
Description: Input and output variables of a fuzzy inference system. A variable owns a numeric
range and a fixed number of membership functions addressed by 1-based position.
*/

package fis

import (
	"fmt"

	"github.com/kleascm/sugeno-fis/pkg/membership"
)

// Variable is an input or output of the system
type Variable struct {
	name  string
	role  Role
	rng   [2]float64
	mfs   []membership.Function
	index int
}

// Name returns the variable name
func (v *Variable) Name() string { return v.name }

// Role reports whether this is an input or an output
func (v *Variable) Role() Role { return v.role }

// Range returns [min, max]
func (v *Variable) Range() [2]float64 { return v.rng }

// Index returns the 0-based position among the system's inputs or outputs
func (v *Variable) Index() int { return v.index }

// NumMFs returns the number of membership functions
func (v *Variable) NumMFs() int { return len(v.mfs) }

// MF returns the membership function at 1-based position pos
func (v *Variable) MF(pos int) (membership.Function, bool) {
	if pos < 1 || pos > len(v.mfs) {
		return membership.Function{}, false
	}
	return v.mfs[pos-1].Clone(), true
}

// MFs returns a copy of the membership functions in position order
func (v *Variable) MFs() []membership.Function {
	out := make([]membership.Function, len(v.mfs))
	for i, mf := range v.mfs {
		out[i] = mf.Clone()
	}
	return out
}

// MFPosition returns the 1-based position of the named membership function, or 0
func (v *Variable) MFPosition(name string) int {
	for i, mf := range v.mfs {
		if mf.Name == name {
			return i + 1
		}
	}
	return 0
}

// MFByName returns the named membership function
func (v *Variable) MFByName(name string) (membership.Function, bool) {
	return v.MF(v.MFPosition(name))
}

// VariableBuilder accumulates the fields of one [InputN] or [OutputN] block
type VariableBuilder struct {
	role      Role
	index     int
	name      string
	rng       [2]float64
	hasRange  bool
	declared  int
	hasNumMFs bool
	mfs       map[int]membership.Function
}

// NewVariableBuilder starts a variable at 0-based index among inputs or outputs
func NewVariableBuilder(role Role, index int) *VariableBuilder {
	return &VariableBuilder{
		role:  role,
		index: index,
		mfs:   make(map[int]membership.Function),
	}
}

// SetName sets the variable name
func (b *VariableBuilder) SetName(name string) *VariableBuilder {
	b.name = name
	return b
}

// SetRange sets [min, max]; min < max is not enforced
func (b *VariableBuilder) SetRange(min, max float64) *VariableBuilder {
	b.rng = [2]float64{min, max}
	b.hasRange = true
	return b
}

// SetNumMFs sets the declared membership function count
func (b *VariableBuilder) SetNumMFs(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: NumMFs must not be negative, got %d", ErrDomain, n)
	}
	b.declared = n
	b.hasNumMFs = true
	return nil
}

// AddMF places a membership function at 1-based position pos
func (b *VariableBuilder) AddMF(pos int, mf membership.Function) error {
	if pos < 1 {
		return fmt.Errorf("%w: MF position must be 1 or greater, got %d", ErrFormat, pos)
	}
	if _, dup := b.mfs[pos]; dup {
		return fmt.Errorf("%w: MF%d declared twice on %s %q", ErrFormat, pos, b.role, b.name)
	}
	b.mfs[pos] = mf.Clone()
	return nil
}

// Build checks the declared count against the parsed membership functions
func (b *VariableBuilder) Build() (*Variable, error) {
	label := fmt.Sprintf("%s%d", b.role, b.index+1)
	if b.name == "" {
		return nil, fmt.Errorf("%w: %s has no Name", ErrConsistency, label)
	}
	if !b.hasRange {
		return nil, fmt.Errorf("%w: %s %q has no Range", ErrConsistency, label, b.name)
	}
	if !b.hasNumMFs {
		return nil, fmt.Errorf("%w: %s %q has no NumMFs", ErrConsistency, label, b.name)
	}
	if len(b.mfs) != b.declared {
		return nil, fmt.Errorf("%w: %s %q declares %d membership functions but defines %d",
			ErrConsistency, label, b.name, b.declared, len(b.mfs))
	}

	v := &Variable{
		name:  b.name,
		role:  b.role,
		rng:   b.rng,
		index: b.index,
		mfs:   make([]membership.Function, b.declared),
	}
	seen := make(map[string]bool, b.declared)
	for pos := 1; pos <= b.declared; pos++ {
		mf, ok := b.mfs[pos]
		if !ok {
			return nil, fmt.Errorf("%w: %s %q is missing MF%d", ErrConsistency, label, b.name, pos)
		}
		if seen[mf.Name] {
			return nil, fmt.Errorf("%w: %s %q declares membership function %q twice", ErrConsistency, label, b.name, mf.Name)
		}
		seen[mf.Name] = true
		v.mfs[pos-1] = mf
	}
	return v, nil
}
