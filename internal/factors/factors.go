// Package factors holds the fixed environmental and technology constants the
// assessment calculations run against: fuel CO2 emission factors (kg CO2e per
// kWh, Net CV basis), the grid electricity factor, and the heat-supply
// technology table with its fuel/electric split and default efficiencies.
package factors

type FuelType string

const (
	FuelButane     FuelType = "Butane"
	FuelLNG        FuelType = "LNG"
	FuelLPG        FuelType = "LPG"
	FuelNaturalGas FuelType = "Natural gas"
	FuelPropane    FuelType = "Propane"
	FuelOil        FuelType = "Fuel oil"
	FuelCoal       FuelType = "Coal (industrial)"
)

// ElectricityCO2KgPerMWh is the grid emission factor in kg CO2e per MWh.
const ElectricityCO2KgPerMWh = 50.0

// defaultFuelFactor is used when the fuel type is not recognised. It matches
// the natural-gas factor so an unknown fuel errs toward the common case.
const defaultFuelFactor = 0.2027

var fuelEmissionFactors = map[FuelType]float64{
	FuelButane:     0.24107,
	FuelLNG:        0.20489,
	FuelLPG:        0.23032,
	FuelNaturalGas: 0.20270,
	FuelPropane:    0.23258,
	FuelOil:        0.28523,
	FuelCoal:       0.33944,
}

// EmissionFactor returns the CO2e factor for a fuel in kg per kWh (Net CV).
func EmissionFactor(fuel FuelType) float64 {
	if f, ok := fuelEmissionFactors[fuel]; ok {
		return f
	}
	return defaultFuelFactor
}

// FuelTypes lists the supported fuels in display order.
func FuelTypes() []FuelType {
	return []FuelType{
		FuelButane, FuelLNG, FuelLPG, FuelNaturalGas,
		FuelPropane, FuelOil, FuelCoal,
	}
}

type HeatSupplyTech string

const (
	TechFossilFuelBoiler   HeatSupplyTech = "Fossil fuel boiler"
	TechElectricBoiler     HeatSupplyTech = "Electric boiler"
	TechIndustrialHeatPump HeatSupplyTech = "Industrial heat pump"
	TechCHP                HeatSupplyTech = "Combined heat and power"
	TechOther              HeatSupplyTech = "Other"
)

// UsesFuel reports whether the technology burns fuel rather than drawing
// electricity. Electric boilers and existing heat pumps are the electric ones;
// anything unrecognised is treated as fuel-fired.
func UsesFuel(tech HeatSupplyTech) bool {
	switch tech {
	case TechElectricBoiler, TechIndustrialHeatPump:
		return false
	default:
		return true
	}
}

// DefaultEfficiencyPct suggests a system efficiency in percent for the
// technology when the customer does not know theirs.
func DefaultEfficiencyPct(tech HeatSupplyTech) float64 {
	switch tech {
	case TechElectricBoiler:
		return 95
	case TechIndustrialHeatPump:
		return 90
	case TechCHP:
		return 90
	default:
		return 80
	}
}

// Technologies lists the heat-supply options in display order.
func Technologies() []HeatSupplyTech {
	return []HeatSupplyTech{
		TechFossilFuelBoiler, TechElectricBoiler, TechIndustrialHeatPump,
		TechCHP, TechOther,
	}
}
