// Package units converts values between units of the seven SI base quantities.
//
// The package holds two things:
//   - a Registry: an immutable mapping from quantity name to its unit table
//   - a Converter: the single dispatch point that validates a request against
//     the registry and computes the converted value
//
// Quantities come in two kinds. A LinearQuantity converts through a positive
// factor to its reference unit (meter, kilogram, second, ...). An
// AffineQuantity converts through a pair of affine transforms to its reference
// unit; temperature is the only built-in one, with Kelvin as reference.
//
// Affine results are rounded to two decimal places by default while linear
// results keep full precision. See RoundingPolicy to change that.
//
// Nothing in this package performs I/O or holds mutable state. A Registry and a
// Converter are safe for concurrent use once constructed.
package units
