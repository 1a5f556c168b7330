package units

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by a lookup or conversion wraps one of
// these, so callers can match with errors.Is.
var (
	// ErrUnknownQuantity is wrapped by *UnknownQuantityError.
	ErrUnknownQuantity = errors.New("unknown quantity")
	// ErrUnknownUnit is wrapped by *UnknownUnitError.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrNotLinear is returned when a factor is requested from an affine quantity.
	ErrNotLinear = errors.New("quantity is not linear")
	// ErrNotAffine is returned when a transform is requested from a linear quantity.
	ErrNotAffine = errors.New("quantity is not affine")
)

// Construction errors, returned by the builders and NewRegistry.
var (
	ErrDuplicateUnit     = errors.New("duplicate unit")
	ErrDuplicateQuantity = errors.New("duplicate quantity")
	ErrInvalidFactor     = errors.New("factor must be finite and strictly positive")
	ErrReference         = errors.New("quantity must have exactly one reference unit")
	ErrInvalidTransform  = errors.New("invalid transform")
	ErrEmptyName         = errors.New("name must not be empty")
)

// Side identifies which unit of a conversion request failed validation.
type Side int

const (
	// SideSource is the unit the value is expressed in.
	SideSource Side = iota
	// SideTarget is the unit the value is converted to.
	SideTarget
	// SideNone is used by lookups that are not part of a conversion.
	SideNone
)

// String returns the string representation of the side.
func (s Side) String() string {
	switch s {
	case SideSource:
		return "source"
	case SideTarget:
		return "target"
	case SideNone:
		return "none"
	default:
		return "unknown"
	}
}

// UnknownQuantityError reports a quantity name that is not in the registry.
type UnknownQuantityError struct {
	Quantity string
}

func (e *UnknownQuantityError) Error() string {
	return fmt.Sprintf("unknown quantity: %q", e.Quantity)
}

func (e *UnknownQuantityError) Unwrap() error { return ErrUnknownQuantity }

// UnknownUnitError reports a unit name that is not defined for a known quantity.
type UnknownUnitError struct {
	Quantity string
	Unit     string
	Side     Side
}

func (e *UnknownUnitError) Error() string {
	if e.Side == SideNone {
		return fmt.Sprintf("unknown unit for %s: %q", e.Quantity, e.Unit)
	}
	return fmt.Sprintf("unknown %s unit for %s: %q", e.Side, e.Quantity, e.Unit)
}

func (e *UnknownUnitError) Unwrap() error { return ErrUnknownUnit }
