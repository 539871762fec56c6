// Package demand derives the process heat demand when the customer cannot
// state it directly: operating hours from the production calendar and an
// average thermal power estimated from the annual energy spend.
package demand

const (
	minOperatingHours = 100.0
	maxOperatingHours = 8760.0
	minDemandKW       = 10.0
	defaultDemandKW   = 100.0
)

// OperatingHours converts a production calendar to annual operating hours,
// clamped to [100, 8760].
func OperatingHours(days, hoursPerDay float64) float64 {
	h := days * hoursPerDay
	if h < minOperatingHours {
		return minOperatingHours
	}
	if h > maxOperatingHours {
		return maxOperatingHours
	}
	return h
}

type Input struct {
	AnnualSpendGBP        float64 `json:"annual_spend_gbp" yaml:"annual_spend_gbp"`
	UnitPriceGBPMWh       float64 `json:"unit_price_gbp_mwh" yaml:"unit_price_gbp_mwh"`
	SystemEfficiencyPct   float64 `json:"system_efficiency_pct,omitempty" yaml:"system_efficiency_pct"`
	ProductionDays        float64 `json:"production_days" yaml:"production_days"`
	ProductionHoursPerDay float64 `json:"production_hours_per_day" yaml:"production_hours_per_day"`
}

type Result struct {
	OperatingHours     float64 `json:"operating_hours"`
	EnergyPurchasedMWh float64 `json:"energy_purchased_mwh"`
	UsefulMWh          float64 `json:"useful_mwh"`
	QProcessKW         float64 `json:"q_process_kw"`
}

// Estimate never fails: with no usable price or hours it falls back to the
// fixed 100 kW placeholder, and anything it can compute is floored at 10 kW.
func Estimate(in Input) Result {
	if in.SystemEfficiencyPct <= 0 {
		in.SystemEfficiencyPct = 80
	}
	hours := OperatingHours(in.ProductionDays, in.ProductionHoursPerDay)

	res := Result{OperatingHours: hours, QProcessKW: defaultDemandKW}
	if in.UnitPriceGBPMWh <= 0 || hours <= 0 {
		return res
	}
	res.EnergyPurchasedMWh = in.AnnualSpendGBP / in.UnitPriceGBPMWh
	res.UsefulMWh = res.EnergyPurchasedMWh * in.SystemEfficiencyPct / 100.0
	q := res.UsefulMWh * 1000.0 / hours
	if q < minDemandKW {
		q = minDemandKW
	}
	res.QProcessKW = q
	return res
}
