package units

// Built-in quantity names. These strings are part of the public contract and
// appear in persisted history and configuration files.
const (
	Length            = "longueur"
	Mass              = "masse"
	Time              = "temps"
	ElectricCurrent   = "intensite_electrique"
	Temperature       = "temperature"
	LuminousIntensity = "intensite_lumineuse"
	AmountOfSubstance = "quantite_matiere"
)

// Offsets and ratios of the temperature scales.
const (
	kelvinOffset     = 273.15
	fahrenheitOffset = 32.0
)

// The explicit float64 conversions prevent the compiler from fusing the
// multiply and the add, so results match IEEE-754 step-by-step evaluation.

func celsiusToKelvin(c float64) float64 { return c + kelvinOffset }

func kelvinToCelsius(k float64) float64 { return k - kelvinOffset }

func fahrenheitToKelvin(f float64) float64 {
	return float64((f-fahrenheitOffset)*5/9) + kelvinOffset
}

func kelvinToFahrenheit(k float64) float64 {
	return float64((k-kelvinOffset)*9/5) + fahrenheitOffset
}

func identity(x float64) float64 { return x }

var defaultRegistry = mustBuiltin()

// Default returns the built-in registry.
func Default() *Registry {
	return defaultRegistry
}

func mustBuiltin() *Registry {
	r, err := NewRegistry(
		NewLinear(Length).
			Unit("m", 1).
			Unit("km", 1000).
			Unit("dm", 0.1).
			Unit("cm", 0.01).
			Unit("mm", 0.001).
			Unit("µm", 1e-6).
			Unit("nm", 1e-9).
			Unit("pouce", 0.0254).
			Unit("pied", 0.3048).
			Unit("mile", 1609.34).
			Unit("yard", 0.9144).
			MustBuild(),
		NewLinear(Mass).
			Unit("kg", 1).
			Unit("g", 0.001).
			Unit("mg", 1e-6).
			Unit("µg", 1e-9).
			Unit("tonne", 1000).
			Unit("livre", 0.453592).
			Unit("once", 0.283495).
			MustBuild(),
		NewLinear(Time).
			Unit("s", 1).
			Unit("ms", 0.001).
			Unit("µs", 1e-6).
			Unit("ns", 1e-9).
			Unit("min", 60).
			Unit("h", 3600).
			Unit("jour", 86400).
			Unit("an", 31536000). // 365 days
			MustBuild(),
		NewLinear(ElectricCurrent).
			Unit("A", 1).
			Unit("mA", 0.001).
			Unit("kA", 1000).
			Unit("µA", 1e-6).
			MustBuild(),
		NewAffine(Temperature, "K").
			Unit("K", identity, identity).
			Unit("°C", celsiusToKelvin, kelvinToCelsius).
			Unit("°F", fahrenheitToKelvin, kelvinToFahrenheit).
			MustBuild(),
		NewLinear(LuminousIntensity).
			Unit("cd", 1).
			Unit("mcd", 0.001).
			Unit("kcd", 1000).
			MustBuild(),
		NewLinear(AmountOfSubstance).
			Unit("mol", 1).
			Unit("mmmol", 0.001).
			Unit("kmol", 1000).
			MustBuild(),
	)
	if err != nil {
		panic(err)
	}
	return r
}
