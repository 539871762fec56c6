// Package economics turns a heat-pump performance result into money and
// carbon: annual energy balances against the current heat supply, capex for a
// high and a low sizing case, simple payback, a bisected IRR over a fixed
// ten-year annuity, and the cash-flow series behind the charts.
package economics

import (
	"encoding/json"
	"fmt"
	"math"

	"mechapres/internal/calc/demand"
	"mechapres/internal/calc/performance"
	"mechapres/internal/factors"
)

const (
	analysisYears   = 10
	minHPSizeKW     = 250.0
	hrToHPRatio     = 0.66
	lowSavingsShare = 0.15
)

// Investment holds the capex rate card. The zero value means "use the house
// defaults".
type Investment struct {
	DesignPMGBP     float64 `json:"design_pm_gbp" yaml:"design_pm_gbp"`
	FixedInstallGBP float64 `json:"fixed_install_gbp" yaml:"fixed_install_gbp"`
	HPCostPerKW     float64 `json:"hp_cost_per_kw" yaml:"hp_cost_per_kw"`
	HRCostPerKW     float64 `json:"hr_cost_per_kw" yaml:"hr_cost_per_kw"`
	VarInstallPerKW float64 `json:"var_install_per_kw" yaml:"var_install_per_kw"`
}

func DefaultInvestment() Investment {
	return Investment{
		DesignPMGBP:     50000,
		FixedInstallGBP: 50000,
		HPCostPerKW:     250,
		HRCostPerKW:     50,
		VarInstallPerKW: 10,
	}
}

type Input struct {
	Performance            performance.Result     `json:"performance"`
	ProductionDays         float64                `json:"production_days"`
	ProductionHoursPerDay  float64                `json:"production_hours_per_day"`
	HeatSupplyTech         factors.HeatSupplyTech `json:"heat_supply_tech"`
	FuelType               factors.FuelType       `json:"fuel_type"`
	SystemEfficiency       float64                `json:"system_efficiency"`
	FuelPriceGBPMWh        float64                `json:"fuel_price_gbp_mwh"`
	ElectricityPriceGBPMWh float64                `json:"electricity_price_gbp_mwh"`
	Investment             Investment             `json:"investment"`
}

// Case is one sizing scenario. SimplePaybackYears is +Inf when the savings
// never repay the capex; BreakevenYear is nil when the cumulative cash flow
// never crosses zero inside the analysis horizon.
type Case struct {
	HPSizeKW           float64   `json:"hp_size_kw"`
	HRSizeKW           float64   `json:"hr_size_kw"`
	CapexGBP           float64   `json:"capex_gbp"`
	AnnualSavingsGBP   float64   `json:"annual_savings_gbp"`
	SimplePaybackYears float64   `json:"simple_payback_years"`
	IRRPct             float64   `json:"irr_pct"`
	CashFlow           []float64 `json:"cash_flow"`
	CumulativeCashFlow []float64 `json:"cumulative_cash_flow"`
	BreakevenYear      *int      `json:"breakeven_year,omitempty"`
}

type Result struct {
	OperatingHours     float64 `json:"operating_hours"`
	QSteamMWh          float64 `json:"q_steam_mwh"`
	ECurrentMWh        float64 `json:"e_current_mwh"`
	EHeatPumpMWh       float64 `json:"e_heat_pump_mwh"`
	CostCurrentGBP     float64 `json:"cost_current_gbp"`
	CostMechapresGBP   float64 `json:"cost_mechapres_gbp"`
	CO2CurrentTonnes   float64 `json:"co2_current_tonnes"`
	CO2MechapresTonnes float64 `json:"co2_mechapres_tonnes"`
	CO2SavingsTonnes   float64 `json:"co2_savings_tonnes"`
	Low                Case    `json:"low"`
	High               Case    `json:"high"`
}

func Calculate(in Input) (Result, error) {
	if in.Performance.COPReal <= 0 {
		return Result{}, fmt.Errorf("heat pump COP must be greater than zero")
	}
	if in.SystemEfficiency <= 0 || in.SystemEfficiency > 1 {
		return Result{}, fmt.Errorf("system efficiency must be a fraction between 0 and 1")
	}
	if in.FuelPriceGBPMWh < 0 || in.ElectricityPriceGBPMWh < 0 {
		return Result{}, fmt.Errorf("energy prices must not be negative")
	}
	if in.Investment == (Investment{}) {
		in.Investment = DefaultInvestment()
	}

	hours := demand.OperatingHours(in.ProductionDays, in.ProductionHoursPerDay)
	usesFuel := factors.UsesFuel(in.HeatSupplyTech)
	currentPrice := in.ElectricityPriceGBPMWh
	if usesFuel {
		currentPrice = in.FuelPriceGBPMWh
	}

	qSteamMWh := in.Performance.CapacityMWth * hours
	eHeatPumpMWh := qSteamMWh / in.Performance.COPReal
	eCurrentMWh := qSteamMWh / in.SystemEfficiency

	costCurrent := eCurrentMWh * currentPrice
	costMechapres := eHeatPumpMWh * in.ElectricityPriceGBPMWh

	// MWh times kg/kWh lands directly in tonnes.
	var co2Current float64
	if usesFuel {
		co2Current = eCurrentMWh * factors.EmissionFactor(in.FuelType)
	} else {
		co2Current = eCurrentMWh * factors.ElectricityCO2KgPerMWh / 1000.0
	}
	co2Mechapres := eHeatPumpMWh * factors.ElectricityCO2KgPerMWh / 1000.0

	hpHighKW := math.Max(minHPSizeKW, in.Performance.CapacityMWth*1000.0)
	hpLowKW := math.Max(minHPSizeKW, hpHighKW/2.0)

	savingsHigh := math.Max(costCurrent-costMechapres, 0)
	savingsLow := math.Max(lowSavingsShare*savingsHigh, 0)

	return Result{
		OperatingHours:     hours,
		QSteamMWh:          qSteamMWh,
		ECurrentMWh:        eCurrentMWh,
		EHeatPumpMWh:       eHeatPumpMWh,
		CostCurrentGBP:     costCurrent,
		CostMechapresGBP:   costMechapres,
		CO2CurrentTonnes:   co2Current,
		CO2MechapresTonnes: co2Mechapres,
		CO2SavingsTonnes:   math.Max(0, co2Current-co2Mechapres),
		Low:                buildCase(in.Investment, hpLowKW, savingsLow),
		High:               buildCase(in.Investment, hpHighKW, savingsHigh),
	}, nil
}

func buildCase(inv Investment, hpKW, savings float64) Case {
	hrKW := hrToHPRatio * hpKW
	capex := inv.DesignPMGBP + inv.FixedInstallGBP +
		hpKW*inv.HPCostPerKW + hrKW*inv.HRCostPerKW + (hpKW+hrKW)*inv.VarInstallPerKW
	cf, cum := cashFlowSeries(capex, savings)
	return Case{
		HPSizeKW:           hpKW,
		HRSizeKW:           hrKW,
		CapexGBP:           capex,
		AnnualSavingsGBP:   savings,
		SimplePaybackYears: simplePayback(capex, savings),
		IRRPct:             irrFromSavings(capex, savings, analysisYears),
		CashFlow:           cf,
		CumulativeCashFlow: cum,
		BreakevenYear:      findBreakeven(cum),
	}
}

func simplePayback(capex, savings float64) float64 {
	if savings > 0 {
		return capex / savings
	}
	return math.Inf(1)
}

// irrFromSavings finds the discount rate that zeroes the NPV of a constant
// annual saving against the upfront capex, by bisection on [0%, 100%].
func irrFromSavings(capex, savings float64, years int) float64 {
	if savings <= 0 {
		return 0
	}
	low, high := 0.0, 1.0
	for i := 0; i < 60; i++ {
		r := (low + high) / 2
		npv := -capex
		for t := 1; t <= years; t++ {
			npv += savings / math.Pow(1+r, float64(t))
		}
		if npv > 0 {
			low = r
		} else {
			high = r
		}
	}
	return (low + high) / 2 * 100.0
}

func cashFlowSeries(capex, savings float64) (cashFlow, cumulative []float64) {
	cashFlow = make([]float64, 0, analysisYears+1)
	cumulative = make([]float64, 0, analysisYears+1)
	cashFlow = append(cashFlow, -capex)
	cumulative = append(cumulative, -capex)
	for y := 1; y <= analysisYears; y++ {
		cashFlow = append(cashFlow, savings)
		cumulative = append(cumulative, cumulative[len(cumulative)-1]+savings)
	}
	return cashFlow, cumulative
}

func findBreakeven(cumulative []float64) *int {
	for i, v := range cumulative {
		if v >= 0 {
			year := i
			return &year
		}
	}
	return nil
}

// MarshalJSON encodes a never-repaying payback as null.
func (c Case) MarshalJSON() ([]byte, error) {
	type alias Case
	out := struct {
		alias
		SimplePaybackYears *float64 `json:"simple_payback_years"`
	}{alias: alias(c)}
	if !math.IsInf(c.SimplePaybackYears, 1) {
		out.SimplePaybackYears = &c.SimplePaybackYears
	}
	return json.Marshal(out)
}

func (c *Case) UnmarshalJSON(data []byte) error {
	type alias Case
	aux := struct {
		*alias
		SimplePaybackYears *float64 `json:"simple_payback_years"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.SimplePaybackYears = math.Inf(1)
	if aux.SimplePaybackYears != nil {
		c.SimplePaybackYears = *aux.SimplePaybackYears
	}
	return nil
}
