package units

import (
	"fmt"
	"slices"
)

// Registry is an immutable mapping from quantity name to Quantity.
// It is built once with NewRegistry and never modified afterwards, so it can be
// shared between goroutines without locking.
type Registry struct {
	order  []string
	byName map[string]Quantity
}

// NewRegistry creates a registry holding qs, in that order.
// Quantity names must be unique.
func NewRegistry(qs ...Quantity) (*Registry, error) {
	r := &Registry{
		order:  make([]string, 0, len(qs)),
		byName: make(map[string]Quantity, len(qs)),
	}
	for _, q := range qs {
		if q == nil {
			return nil, fmt.Errorf("registry: nil quantity")
		}
		name := q.Name()
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("registry: %w: %q", ErrDuplicateQuantity, name)
		}
		r.byName[name] = q
		r.order = append(r.order, name)
	}
	return r, nil
}

// Lookup returns the quantity registered under name.
func (r *Registry) Lookup(name string) (Quantity, error) {
	q, ok := r.byName[name]
	if !ok {
		return nil, &UnknownQuantityError{Quantity: name}
	}
	return q, nil
}

// Quantities returns all quantity names in registration order.
func (r *Registry) Quantities() []string {
	return slices.Clone(r.order)
}

// ListUnits returns the unit names of quantity in definition order.
func (r *Registry) ListUnits(quantity string) ([]string, error) {
	q, err := r.Lookup(quantity)
	if err != nil {
		return nil, err
	}
	return q.Units(), nil
}

// Factor returns the factor of unit to the reference unit of a linear quantity.
func (r *Registry) Factor(quantity, unit string) (float64, error) {
	q, err := r.Lookup(quantity)
	if err != nil {
		return 0, err
	}
	lq, ok := q.(*LinearQuantity)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotLinear, quantity)
	}
	f, ok := lq.Factor(unit)
	if !ok {
		return 0, &UnknownUnitError{Quantity: quantity, Unit: unit, Side: SideNone}
	}
	return f, nil
}

// Transform returns the transform pair of unit for an affine quantity.
func (r *Registry) Transform(quantity, unit string) (Transform, error) {
	q, err := r.Lookup(quantity)
	if err != nil {
		return Transform{}, err
	}
	aq, ok := q.(*AffineQuantity)
	if !ok {
		return Transform{}, fmt.Errorf("%w: %s", ErrNotAffine, quantity)
	}
	t, ok := aq.Transform(unit)
	if !ok {
		return Transform{}, &UnknownUnitError{Quantity: quantity, Unit: unit, Side: SideNone}
	}
	return t, nil
}

// TemperatureTransform returns the Kelvin transform pair of a temperature unit.
func (r *Registry) TemperatureTransform(unit string) (Transform, error) {
	return r.Transform(Temperature, unit)
}
