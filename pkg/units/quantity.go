package units

import "slices"

// Kind distinguishes how a quantity converts between its units.
type Kind int

const (
	// KindLinear converts through a multiplicative factor.
	KindLinear Kind = iota
	// KindAffine converts through an affine transform pair.
	KindAffine
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindAffine:
		return "affine"
	default:
		return "unknown"
	}
}

// Quantity is a measurable quantity and its table of units.
//
// The set of implementations is closed: LinearQuantity and AffineQuantity are
// the only two, which keeps the dispatch in Converter exhaustive.
type Quantity interface {
	// Name returns the quantity identifier, e.g. "longueur".
	Name() string
	// Kind reports whether the quantity is linear or affine.
	Kind() Kind
	// Reference returns the name of the reference unit.
	Reference() string
	// Units returns the unit names in definition order.
	Units() []string
	// Has reports whether unit is defined for the quantity.
	Has(unit string) bool

	convert(value float64, from, to string) (float64, error)
}

// =============================================================================
// LinearQuantity
// =============================================================================

// LinearQuantity converts between units with value * factor(from) / factor(to).
type LinearQuantity struct {
	name      string
	reference string
	order     []string
	factors   map[string]float64
}

// Name implements Quantity.
func (q *LinearQuantity) Name() string { return q.name }

// Kind implements Quantity.
func (q *LinearQuantity) Kind() Kind { return KindLinear }

// Reference implements Quantity.
func (q *LinearQuantity) Reference() string { return q.reference }

// Units implements Quantity. The returned slice is a copy.
func (q *LinearQuantity) Units() []string { return slices.Clone(q.order) }

// Has implements Quantity.
func (q *LinearQuantity) Has(unit string) bool {
	_, ok := q.factors[unit]
	return ok
}

// Factor returns the multiplier converting 1 unit into the reference unit.
func (q *LinearQuantity) Factor(unit string) (float64, bool) {
	f, ok := q.factors[unit]
	return f, ok
}

func (q *LinearQuantity) convert(value float64, from, to string) (float64, error) {
	ff, ok := q.factors[from]
	if !ok {
		return 0, &UnknownUnitError{Quantity: q.name, Unit: from, Side: SideSource}
	}
	ft, ok := q.factors[to]
	if !ok {
		return 0, &UnknownUnitError{Quantity: q.name, Unit: to, Side: SideTarget}
	}
	// x*f/f is not always x in binary floating point.
	if from == to {
		return value, nil
	}
	return value * ff / ft, nil
}

// =============================================================================
// AffineQuantity
// =============================================================================

// Transform maps a unit to and from the reference unit of an affine quantity.
type Transform struct {
	ToReference   func(float64) float64
	FromReference func(float64) float64
}

// AffineQuantity converts between units by going through the reference unit:
// FromReference[to](ToReference[from](value)).
type AffineQuantity struct {
	name       string
	reference  string
	order      []string
	transforms map[string]Transform
}

// Name implements Quantity.
func (q *AffineQuantity) Name() string { return q.name }

// Kind implements Quantity.
func (q *AffineQuantity) Kind() Kind { return KindAffine }

// Reference implements Quantity.
func (q *AffineQuantity) Reference() string { return q.reference }

// Units implements Quantity. The returned slice is a copy.
func (q *AffineQuantity) Units() []string { return slices.Clone(q.order) }

// Has implements Quantity.
func (q *AffineQuantity) Has(unit string) bool {
	_, ok := q.transforms[unit]
	return ok
}

// Transform returns the transform pair for unit.
func (q *AffineQuantity) Transform(unit string) (Transform, bool) {
	t, ok := q.transforms[unit]
	return t, ok
}

func (q *AffineQuantity) convert(value float64, from, to string) (float64, error) {
	tf, ok := q.transforms[from]
	if !ok {
		return 0, &UnknownUnitError{Quantity: q.name, Unit: from, Side: SideSource}
	}
	tt, ok := q.transforms[to]
	if !ok {
		return 0, &UnknownUnitError{Quantity: q.name, Unit: to, Side: SideTarget}
	}
	return tt.FromReference(tf.ToReference(value)), nil
}
