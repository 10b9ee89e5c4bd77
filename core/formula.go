package core

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/schooltools/rankbook/schema"
)

// validate checks the declarative struct tags on loaded formulas.
var validate = validator.New(validator.WithRequiredStructEnabled())

// FormulaRegistry exposes the formula definitions a pass may compute
// under. It is built once from a read-only snapshot; the engine never
// writes formulas back.
type FormulaRegistry struct {
	formulas []schema.Formula
}

// NewFormulaRegistry wraps a snapshot of formula definitions.
func NewFormulaRegistry(formulas []schema.Formula) *FormulaRegistry {
	return &FormulaRegistry{formulas: formulas}
}

// Resolve returns the formula for the given id, or the single active
// formula when id is schema.ActiveFormulaID. The returned formula is
// always validated; callers never receive a formula that cannot
// produce a defined score.
func (r *FormulaRegistry) Resolve(id string) (*schema.Formula, error) {
	if id == schema.ActiveFormulaID {
		return r.resolveActive()
	}
	for i := range r.formulas {
		if r.formulas[i].ID == id {
			return checkedCopy(&r.formulas[i])
		}
	}
	return nil, fmt.Errorf("%w: id %q", ErrFormulaNotFound, id)
}

// resolveActive finds the one formula flagged active. Zero active
// formulas and multiple active formulas are both configuration errors.
func (r *FormulaRegistry) resolveActive() (*schema.Formula, error) {
	var active *schema.Formula
	for i := range r.formulas {
		if !r.formulas[i].IsActive {
			continue
		}
		if active != nil {
			return nil, fmt.Errorf("%w: formulas %q and %q are both flagged active", ErrInvalidFormula, active.ID, r.formulas[i].ID)
		}
		active = &r.formulas[i]
	}
	if active == nil {
		return nil, ErrNoActiveFormula
	}
	return checkedCopy(active)
}

// checkedCopy validates a formula and returns a deep copy so callers
// cannot mutate the registry snapshot.
func checkedCopy(f *schema.Formula) (*schema.Formula, error) {
	if err := ValidateFormula(f); err != nil {
		return nil, err
	}
	out := *f
	out.Weights = make(map[string]float64, len(f.Weights))
	for k, v := range f.Weights {
		out.Weights[k] = v
	}
	return &out, nil
}

// ValidateFormula checks that a formula can produce a defined score:
// struct shape, all weights >= 0, at least one weight > 0, and a
// passing threshold within [0,100].
func ValidateFormula(f *schema.Formula) error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormula, err)
	}
	var positive bool
	for label, w := range f.Weights {
		if label == "" {
			return fmt.Errorf("%w: formula %q has a weight with an empty assessment type", ErrInvalidFormula, f.ID)
		}
		if w < 0 {
			return fmt.Errorf("%w: formula %q has negative weight %.3f for %q", ErrInvalidFormula, f.ID, w, label)
		}
		if w > 0 {
			positive = true
		}
	}
	if !positive {
		return fmt.Errorf("%w: formula %q has no positive weight", ErrInvalidFormula, f.ID)
	}
	return nil
}
