package units

import (
	"fmt"
	"math"
)

// LinearBuilder builds a LinearQuantity with a fluent API.
// The first error encountered is kept and returned by Build.
type LinearBuilder struct {
	q   *LinearQuantity
	err error
}

// NewLinear starts a new linear quantity.
func NewLinear(name string) *LinearBuilder {
	b := &LinearBuilder{
		q: &LinearQuantity{
			name:    name,
			factors: make(map[string]float64),
		},
	}
	if name == "" {
		b.err = fmt.Errorf("linear quantity: %w", ErrEmptyName)
	}
	return b
}

// Unit adds a unit and its factor to the reference unit.
func (b *LinearBuilder) Unit(name string, factor float64) *LinearBuilder {
	if b.err != nil {
		return b
	}
	switch {
	case name == "":
		b.err = fmt.Errorf("%s: unit: %w", b.q.name, ErrEmptyName)
	case math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0:
		b.err = fmt.Errorf("%s: unit %q: %w (got %v)", b.q.name, name, ErrInvalidFactor, factor)
	default:
		if _, dup := b.q.factors[name]; dup {
			b.err = fmt.Errorf("%s: %w: %q", b.q.name, ErrDuplicateUnit, name)
			return b
		}
		b.q.factors[name] = factor
		b.q.order = append(b.q.order, name)
	}
	return b
}

// Build validates and returns the quantity. Exactly one unit must have factor 1.
func (b *LinearBuilder) Build() (*LinearQuantity, error) {
	if b.err != nil {
		return nil, b.err
	}
	var refs []string
	for _, name := range b.q.order {
		if b.q.factors[name] == 1 {
			refs = append(refs, name)
		}
	}
	if len(refs) != 1 {
		return nil, fmt.Errorf("%s: %w (found %d)", b.q.name, ErrReference, len(refs))
	}
	b.q.reference = refs[0]
	return b.q, nil
}

// MustBuild is like Build but panics on error. Intended for static tables.
func (b *LinearBuilder) MustBuild() *LinearQuantity {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}

// AffineBuilder builds an AffineQuantity with a fluent API.
type AffineBuilder struct {
	q   *AffineQuantity
	err error
}

// inverseProbes are the points used to check that a transform pair round-trips.
var inverseProbes = []float64{-273.15, -40, 0, 1, 100, 1e6}

// NewAffine starts a new affine quantity whose reference unit is reference.
// The reference unit must be added with Unit like any other.
func NewAffine(name, reference string) *AffineBuilder {
	b := &AffineBuilder{
		q: &AffineQuantity{
			name:       name,
			reference:  reference,
			transforms: make(map[string]Transform),
		},
	}
	if name == "" || reference == "" {
		b.err = fmt.Errorf("affine quantity: %w", ErrEmptyName)
	}
	return b
}

// Unit adds a unit with its transforms to and from the reference unit.
func (b *AffineBuilder) Unit(name string, toReference, fromReference func(float64) float64) *AffineBuilder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.err = fmt.Errorf("%s: unit: %w", b.q.name, ErrEmptyName)
		return b
	}
	if toReference == nil || fromReference == nil {
		b.err = fmt.Errorf("%s: unit %q: %w: nil function", b.q.name, name, ErrInvalidTransform)
		return b
	}
	if _, dup := b.q.transforms[name]; dup {
		b.err = fmt.Errorf("%s: %w: %q", b.q.name, ErrDuplicateUnit, name)
		return b
	}
	for _, x := range inverseProbes {
		back := fromReference(toReference(x))
		if math.Abs(back-x) > 1e-9*math.Max(1, math.Abs(x)) {
			b.err = fmt.Errorf("%s: unit %q: %w: round trip of %v gave %v", b.q.name, name, ErrInvalidTransform, x, back)
			return b
		}
	}
	b.q.transforms[name] = Transform{ToReference: toReference, FromReference: fromReference}
	b.q.order = append(b.q.order, name)
	return b
}

// Build validates and returns the quantity.
func (b *AffineBuilder) Build() (*AffineQuantity, error) {
	if b.err != nil {
		return nil, b.err
	}
	if _, ok := b.q.transforms[b.q.reference]; !ok {
		return nil, fmt.Errorf("%s: %w: %q is not defined", b.q.name, ErrReference, b.q.reference)
	}
	return b.q, nil
}

// MustBuild is like Build but panics on error.
func (b *AffineBuilder) MustBuild() *AffineQuantity {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}
