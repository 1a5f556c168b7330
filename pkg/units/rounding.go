package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RoundingPolicy selects which conversion results are rounded.
type RoundingPolicy int

const (
	// RoundAffine rounds affine (temperature) results only. This is the default
	// and keeps linear results at full precision.
	RoundAffine RoundingPolicy = iota
	// RoundAll rounds every result.
	RoundAll
	// RoundNone never rounds.
	RoundNone
)

// DefaultPrecision is the number of decimal places used when rounding.
const DefaultPrecision = 2

// String returns the string representation of the policy.
func (p RoundingPolicy) String() string {
	switch p {
	case RoundAffine:
		return "affine"
	case RoundAll:
		return "all"
	case RoundNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseRoundingPolicy converts a string to a RoundingPolicy.
// Returns RoundAffine and false if s is not a known policy.
func ParseRoundingPolicy(s string) (RoundingPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "affine", "temperature", "":
		return RoundAffine, true
	case "all":
		return RoundAll, true
	case "none":
		return RoundNone, true
	default:
		return RoundAffine, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p RoundingPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *RoundingPolicy) UnmarshalText(text []byte) error {
	v, ok := ParseRoundingPolicy(string(text))
	if !ok {
		return fmt.Errorf("invalid rounding policy %q (want affine, all or none)", text)
	}
	*p = v
	return nil
}

// applies reports whether results of kind k are rounded under p.
func (p RoundingPolicy) applies(k Kind) bool {
	switch p {
	case RoundAll:
		return true
	case RoundNone:
		return false
	default:
		return k == KindAffine
	}
}

// Round rounds x to places decimal places.
//
// Rounding is done on the shortest exact decimal expansion of x, so ties are
// resolved on the actual binary value (2.675 rounds to 2.67). NaN and
// infinities are returned unchanged.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || places < 0 {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return r
}
