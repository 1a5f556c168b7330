package units

// Converter is the conversion entry point. It dispatches a request to the
// quantity found in its registry and applies the rounding policy.
type Converter struct {
	registry  *Registry
	policy    RoundingPolicy
	precision int
}

// Option configures a Converter.
type Option func(*Converter)

// WithRounding sets the rounding policy.
func WithRounding(p RoundingPolicy) Option {
	return func(c *Converter) {
		c.policy = p
	}
}

// WithPrecision sets the number of decimal places used when rounding.
// Negative values are ignored.
func WithPrecision(places int) Option {
	return func(c *Converter) {
		if places >= 0 {
			c.precision = places
		}
	}
}

// NewConverter creates a converter over reg. A nil reg uses the built-in registry.
func NewConverter(reg *Registry, opts ...Option) *Converter {
	if reg == nil {
		reg = defaultRegistry
	}
	c := &Converter{
		registry:  reg,
		policy:    RoundAffine,
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the registry the converter reads from.
func (c *Converter) Registry() *Registry { return c.registry }

// Policy returns the rounding policy.
func (c *Converter) Policy() RoundingPolicy { return c.policy }

// Precision returns the number of decimal places used when rounding.
func (c *Converter) Precision() int { return c.precision }

// Convert converts value from sourceUnit to targetUnit within quantity.
//
// The quantity is resolved first; an unknown quantity fails with
// *UnknownQuantityError before any unit is looked at. The source unit is then
// validated before the target unit, and either failure is reported as
// *UnknownUnitError naming the unit, the side and the quantity.
func (c *Converter) Convert(value float64, sourceUnit, targetUnit, quantity string) (float64, error) {
	q, err := c.registry.Lookup(quantity)
	if err != nil {
		return 0, err
	}
	result, err := q.convert(value, sourceUnit, targetUnit)
	if err != nil {
		return 0, err
	}
	if c.policy.applies(q.Kind()) {
		result = Round(result, c.precision)
	}
	return result, nil
}

// ListUnits returns the unit names defined for quantity.
func (c *Converter) ListUnits(quantity string) ([]string, error) {
	return c.registry.ListUnits(quantity)
}

// Quantities returns all known quantity names.
func (c *Converter) Quantities() []string {
	return c.registry.Quantities()
}

var defaultConverter = NewConverter(defaultRegistry)

// Convert converts value with the built-in registry and default rounding.
func Convert(value float64, sourceUnit, targetUnit, quantity string) (float64, error) {
	return defaultConverter.Convert(value, sourceUnit, targetUnit, quantity)
}

// ListUnits lists the units of quantity in the built-in registry.
func ListUnits(quantity string) ([]string, error) {
	return defaultConverter.ListUnits(quantity)
}

// Quantities lists the quantities of the built-in registry.
func Quantities() []string {
	return defaultConverter.Quantities()
}

// ConvertLength converts between units of Length.
func ConvertLength(value float64, from, to string) (float64, error) {
	return Convert(value, from, to, Length)
}

// ConvertMass converts between units of Mass.
func ConvertMass(value float64, from, to string) (float64, error) {
	return Convert(value, from, to, Mass)
}

// ConvertTime converts between units of Time.
func ConvertTime(value float64, from, to string) (float64, error) {
	return Convert(value, from, to, Time)
}

// ConvertElectricCurrent converts between units of ElectricCurrent.
func ConvertElectricCurrent(value float64, from, to string) (float64, error) {
	return Convert(value, from, to, ElectricCurrent)
}

// ConvertTemperature converts between units of Temperature.
func ConvertTemperature(value float64, from, to string) (float64, error) {
	return Convert(value, from, to, Temperature)
}

// ConvertLuminousIntensity converts between units of LuminousIntensity.
func ConvertLuminousIntensity(value float64, from, to string) (float64, error) {
	return Convert(value, from, to, LuminousIntensity)
}

// ConvertAmountOfSubstance converts between units of AmountOfSubstance.
func ConvertAmountOfSubstance(value float64, from, to string) (float64, error) {
	return Convert(value, from, to, AmountOfSubstance)
}
