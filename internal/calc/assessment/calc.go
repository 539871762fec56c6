// Package assessment chains the full evaluation: feasibility gate, demand
// resolution, performance model and economics, with the glue the stages need
// (gate assumptions feeding the performance temperatures, waste-heat
// percentage bands, cost defaults). A terminal gate or an impossible lift is
// a valid outcome, not an error; the stages after the stop simply stay empty.
package assessment

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"mechapres/internal/calc/demand"
	"mechapres/internal/calc/economics"
	"mechapres/internal/calc/feasibility"
	"mechapres/internal/calc/performance"
	"mechapres/internal/factors"
)

type Site struct {
	ProcessTempC          *float64                 `json:"process_temp_c" yaml:"process_temp_c"`
	EnergyVector          feasibility.EnergyVector `json:"energy_vector" yaml:"energy_vector"`
	TargetSupplyTempC     *float64                 `json:"target_supply_temp_c" yaml:"target_supply_temp_c"`
	SteamPressureBarA     *float64                 `json:"steam_pressure_bar_a,omitempty" yaml:"steam_pressure_bar_a"`
	HeatSupplyTech        factors.HeatSupplyTech   `json:"heat_supply_tech" yaml:"heat_supply_tech"`
	SystemEfficiencyPct   float64                  `json:"system_efficiency_pct,omitempty" yaml:"system_efficiency_pct"`
	ProductionDays        float64                  `json:"production_days" yaml:"production_days"`
	ProductionHoursPerDay float64                  `json:"production_hours_per_day" yaml:"production_hours_per_day"`
}

type WasteHeat struct {
	Available         bool                    `json:"available" yaml:"available"`
	HowReleased       feasibility.ReleasePath `json:"how_released,omitempty" yaml:"how_released"`
	TempKnown         bool                    `json:"temp_known" yaml:"temp_known"`
	TempC             *float64                `json:"temp_c,omitempty" yaml:"temp_c"`
	AmountKnown       bool                    `json:"amount_known" yaml:"amount_known"`
	AmountKW          *float64                `json:"amount_kw,omitempty" yaml:"amount_kw"`
	AmountBand        string                  `json:"amount_band,omitempty" yaml:"amount_band"`
	Medium            feasibility.Medium      `json:"medium,omitempty" yaml:"medium"`
	Captured          feasibility.Answer      `json:"captured,omitempty" yaml:"captured"`
	ExistingProcessor feasibility.Answer      `json:"existing_processor,omitempty" yaml:"existing_processor"`
}

type Energy struct {
	FuelType               factors.FuelType `json:"fuel_type,omitempty" yaml:"fuel_type"`
	FuelPriceGBPMWh        float64          `json:"fuel_price_gbp_mwh" yaml:"fuel_price_gbp_mwh"`
	ElectricityPriceGBPMWh float64          `json:"electricity_price_gbp_mwh" yaml:"electricity_price_gbp_mwh"`
	AnnualSpendGBP         float64          `json:"annual_spend_gbp,omitempty" yaml:"annual_spend_gbp"`
	QProcessKW             float64          `json:"q_process_kw,omitempty" yaml:"q_process_kw"`
}

type Input struct {
	Site       Site                  `json:"site" yaml:"site"`
	WasteHeat  WasteHeat             `json:"waste_heat" yaml:"waste_heat"`
	Energy     Energy                `json:"energy" yaml:"energy"`
	Investment *economics.Investment `json:"investment,omitempty" yaml:"investment"`
}

type Result struct {
	Reference      string              `json:"reference"`
	GeneratedAt    time.Time           `json:"generated_at"`
	Gate           feasibility.Result  `json:"gate"`
	QProcessKW     float64             `json:"q_process_kw,omitempty"`
	OperatingHours float64             `json:"operating_hours,omitempty"`
	Performance    *performance.Result `json:"performance,omitempty"`
	Economics      *economics.Result   `json:"economics,omitempty"`
	Message        string              `json:"message,omitempty"`
}

// Validate enforces the form ranges. Optional fields are checked only when
// present; the gate deals with missing values on its own terms.
func (in Input) Validate() error {
	if in.Site.ProcessTempC != nil && (*in.Site.ProcessTempC < 20 || *in.Site.ProcessTempC > 300) {
		return fmt.Errorf("process temperature must be between 20 and 300 °C")
	}
	if in.Site.TargetSupplyTempC != nil && (*in.Site.TargetSupplyTempC < 50 || *in.Site.TargetSupplyTempC > 250) {
		return fmt.Errorf("target supply temperature must be between 50 and 250 °C")
	}
	if in.Site.SteamPressureBarA != nil && (*in.Site.SteamPressureBarA < 1 || *in.Site.SteamPressureBarA > 20) {
		return fmt.Errorf("steam pressure must be between 1 and 20 barA")
	}
	if in.Site.ProductionDays < 1 || in.Site.ProductionDays > 365 {
		return fmt.Errorf("production days must be between 1 and 365")
	}
	if in.Site.ProductionHoursPerDay < 1 || in.Site.ProductionHoursPerDay > 24 {
		return fmt.Errorf("production hours per day must be between 1 and 24")
	}
	if in.Site.SystemEfficiencyPct != 0 && (in.Site.SystemEfficiencyPct < 40 || in.Site.SystemEfficiencyPct > 100) {
		return fmt.Errorf("system efficiency must be between 40 and 100 percent")
	}
	if in.Energy.FuelPriceGBPMWh < 0 || in.Energy.FuelPriceGBPMWh > 300 {
		return fmt.Errorf("fuel price must be between 0 and 300 £/MWh")
	}
	if in.Energy.ElectricityPriceGBPMWh < 0 || in.Energy.ElectricityPriceGBPMWh > 300 {
		return fmt.Errorf("electricity price must be between 0 and 300 £/MWh")
	}
	if in.Energy.QProcessKW != 0 && (in.Energy.QProcessKW < 10 || in.Energy.QProcessKW > 50000) {
		return fmt.Errorf("process heat demand must be between 10 and 50000 kW")
	}
	return nil
}

// Run executes the pipeline. It errors only on invalid input; every outcome
// the site can legitimately produce, including "not viable", comes back as a
// Result with the later stages unset and Message saying why.
func Run(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{
		Reference:   NewReference(),
		GeneratedAt: time.Now().UTC(),
	}

	gate := feasibility.Evaluate(gateInput(in))
	res.Gate = gate
	switch gate.Status {
	case feasibility.StatusNotViable, feasibility.StatusSuggestHX:
		res.Message = StatusHeadline(gate.Status)
		return res, nil
	}

	if in.Site.SystemEfficiencyPct <= 0 {
		in.Site.SystemEfficiencyPct = factors.DefaultEfficiencyPct(in.Site.HeatSupplyTech)
	}

	qProcess, hours, err := resolveDemand(in)
	if err != nil {
		return Result{}, err
	}
	res.QProcessKW = qProcess
	res.OperatingHours = hours

	// The gate's assumed waste percentage spreads into a min/max band around
	// itself; without an assumption the band sits around 40%.
	assumed := 40.0
	if gate.Assumptions.WastePct != nil {
		assumed = *gate.Assumptions.WastePct
	}
	wasteMin := math.Max(10, math.Min(90, assumed-10))
	wasteMax := math.Max(wasteMin+5, math.Min(100, assumed+10))

	perf, err := performance.Calculate(performance.Input{
		WasteTempC:  wasteTemp(in, gate),
		SupplyTempC: in.Site.TargetSupplyTempC,
		QProcessKW:  qProcess,
		WasteMinPct: wasteMin,
		WasteMaxPct: wasteMax,
	})
	if err != nil {
		return Result{}, err
	}
	res.Performance = &perf

	if perf.COPReal <= 0 {
		res.Message = "COP calculation failed. The temperature lift may be too high for a heat pump. Please review your temperature inputs."
		return res, nil
	}

	var inv economics.Investment
	if in.Investment != nil {
		inv = *in.Investment
	}
	econ, err := economics.Calculate(economics.Input{
		Performance:            perf,
		ProductionDays:         in.Site.ProductionDays,
		ProductionHoursPerDay:  in.Site.ProductionHoursPerDay,
		HeatSupplyTech:         in.Site.HeatSupplyTech,
		FuelType:               in.Energy.FuelType,
		SystemEfficiency:       in.Site.SystemEfficiencyPct / 100.0,
		FuelPriceGBPMWh:        in.Energy.FuelPriceGBPMWh,
		ElectricityPriceGBPMWh: in.Energy.ElectricityPriceGBPMWh,
		Investment:             inv,
	})
	if err != nil {
		return Result{}, err
	}
	res.Economics = &econ
	return res, nil
}

// resolveDemand prefers the customer's own figure and otherwise estimates
// from the annual energy spend.
func resolveDemand(in Input) (qProcessKW, hours float64, err error) {
	hours = demand.OperatingHours(in.Site.ProductionDays, in.Site.ProductionHoursPerDay)
	if in.Energy.QProcessKW > 0 {
		return in.Energy.QProcessKW, hours, nil
	}
	if in.Energy.AnnualSpendGBP <= 0 {
		return 0, 0, fmt.Errorf("provide the process heat demand or the annual energy spend")
	}
	unitPrice := in.Energy.ElectricityPriceGBPMWh
	if factors.UsesFuel(in.Site.HeatSupplyTech) {
		unitPrice = in.Energy.FuelPriceGBPMWh
	}
	est := demand.Estimate(demand.Input{
		AnnualSpendGBP:        in.Energy.AnnualSpendGBP,
		UnitPriceGBPMWh:       unitPrice,
		SystemEfficiencyPct:   in.Site.SystemEfficiencyPct,
		ProductionDays:        in.Site.ProductionDays,
		ProductionHoursPerDay: in.Site.ProductionHoursPerDay,
	})
	return est.QProcessKW, est.OperatingHours, nil
}

// wasteTemp picks the performance model's source temperature: the gate's
// settled assumption when it got that far, otherwise the survey answers.
func wasteTemp(in Input, gate feasibility.Result) *float64 {
	if gate.Assumptions.TIn1 != nil {
		return gate.Assumptions.TIn1
	}
	if in.WasteHeat.TempKnown && in.WasteHeat.TempC != nil {
		return in.WasteHeat.TempC
	}
	return in.Site.ProcessTempC
}

func gateInput(in Input) feasibility.Input {
	return feasibility.Input{
		ProcessTempC:      in.Site.ProcessTempC,
		EnergyVector:      in.Site.EnergyVector,
		TargetSupplyTempC: in.Site.TargetSupplyTempC,
		SteamPressureBarA: in.Site.SteamPressureBarA,
		HasWasteHeat:      in.WasteHeat.Available,
		HowReleased:       in.WasteHeat.HowReleased,
		WasteTempKnown:    in.WasteHeat.TempKnown,
		WasteTempC:        in.WasteHeat.TempC,
		WasteAmountKnown:  in.WasteHeat.AmountKnown,
		QWasteKW:          in.WasteHeat.AmountKW,
		WasteAmountBand:   in.WasteHeat.AmountBand,
		WasteMedium:       in.WasteHeat.Medium,
		Captured:          in.WasteHeat.Captured,
		ExistingProcessor: in.WasteHeat.ExistingProcessor,
	}
}

// StatusHeadline is the one-line reading of a gate status shown on reports.
func StatusHeadline(s feasibility.Status) string {
	switch s {
	case feasibility.StatusNotViable:
		return "Not suitable for heat pump applications"
	case feasibility.StatusSuggestHX:
		return "Heat exchanger may be more suitable than a heat pump"
	case feasibility.StatusCaution:
		return "Heat pump is feasible with some considerations"
	default:
		return "Excellent heat pump application!"
	}
}

// NewReference issues a customer-facing assessment reference.
func NewReference() string {
	block, _, _ := strings.Cut(uuid.New().String(), "-")
	return "MHP-" + strings.ToUpper(block)
}
