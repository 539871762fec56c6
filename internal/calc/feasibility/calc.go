// Package feasibility implements the preliminary heat-pump gate: an ordered
// sequence of knock-out checks over site temperatures, the delivery vector and
// the waste-heat profile. The gate never rejects a request; inputs it cannot
// work with degrade to a caution status with an explanatory note.
package feasibility

import (
	"fmt"
	"strconv"
	"strings"
)

type EnergyVector string

const (
	VectorSteam    EnergyVector = "Steam"
	VectorHotWater EnergyVector = "Hot Water"
	VectorHotAir   EnergyVector = "Hot Air"
)

type ReleasePath string

const (
	ReleaseDedicatedExhaust   ReleasePath = "Dedicated cooling system or exhaust pipe"
	ReleaseGeneralVentilation ReleasePath = "General ventilation in the production area"
	ReleaseOther              ReleasePath = "Other / Not sure"
)

type Medium string

const (
	MediumHumidAir  Medium = "Humid air"
	MediumDryHotAir Medium = "Dry hot air"
	MediumHotWater  Medium = "Hot water"
	MediumPureSteam Medium = "Pure steam"
	MediumUnknown   Medium = "Don't know"
)

// Answer is a tri-state survey answer; the empty string means not answered.
type Answer string

const (
	Yes Answer = "Yes"
	No  Answer = "No"
)

type Status string

const (
	StatusNotViable Status = "not_viable"
	StatusSuggestHX Status = "suggest_hx"
	StatusCaution   Status = "caution"
	StatusProceed   Status = "proceed"
)

const (
	processTempMin   = 80.0
	processTempMax   = 200.0
	hpTargetMax      = 180.0
	steamPressureMax = 10.0
	hotAirOKMax      = 110.0
	hotAirCautionMax = 150.0
)

type Input struct {
	ProcessTempC      *float64     `json:"process_temp_c" yaml:"process_temp_c"`
	EnergyVector      EnergyVector `json:"energy_vector" yaml:"energy_vector"`
	TargetSupplyTempC *float64     `json:"target_supply_temp_c" yaml:"target_supply_temp_c"`
	SteamPressureBarA *float64     `json:"steam_pressure_bar_a,omitempty" yaml:"steam_pressure_bar_a"`
	HasWasteHeat      bool         `json:"has_waste_heat" yaml:"has_waste_heat"`
	HowReleased       ReleasePath  `json:"how_released,omitempty" yaml:"how_released"`
	WasteTempKnown    bool         `json:"waste_temp_known" yaml:"waste_temp_known"`
	WasteTempC        *float64     `json:"waste_temp_c,omitempty" yaml:"waste_temp_c"`
	WasteAmountKnown  bool         `json:"waste_amount_known" yaml:"waste_amount_known"`
	QWasteKW          *float64     `json:"q_waste_kw,omitempty" yaml:"q_waste_kw"`
	WasteAmountBand   string       `json:"waste_amount_band,omitempty" yaml:"waste_amount_band"`
	WasteMedium       Medium       `json:"waste_medium,omitempty" yaml:"waste_medium"`
	Captured          Answer       `json:"waste_heat_captured,omitempty" yaml:"waste_heat_captured"`
	ExistingProcessor Answer       `json:"has_waste_heat_processor,omitempty" yaml:"has_waste_heat_processor"`
}

// Assumptions carries the values the gate settled on for the downstream
// models, keyed by their symbol names. T_in1 is always present on a
// non-terminal result; exactly one of Q_waste_kW and waste_pct is present.
type Assumptions struct {
	TIn1      *float64 `json:"T_in1,omitempty"`
	QWasteKW  *float64 `json:"Q_waste_kW,omitempty"`
	WastePct  *float64 `json:"waste_pct,omitempty"`
	WasteForm string   `json:"waste_form,omitempty"`
}

type Result struct {
	Status      Status      `json:"status"`
	Notes       []string    `json:"notes"`
	Assumptions Assumptions `json:"assumptions"`
}

var mediumNotes = map[Medium]string{
	MediumHumidAir:  "Waste heat available as humid air — heat pump integration possible, with final sizing refined at design stage.",
	MediumDryHotAir: "Waste heat available as dry hot air — suitable for heat pump via an air-to-refrigerant heat exchanger.",
	MediumHotWater:  "Waste heat available as hot water — highly suitable for heat-pump integration.",
	MediumPureSteam: "Waste heat available as pure steam — heat pump integration possible with suitable condenser design.",
}

// Evaluate runs the checks in order. Terminal checks return immediately with a
// single note and empty assumptions; the rest accumulate notes, and any
// accumulated note downgrades the final status from proceed to caution.
func Evaluate(in Input) Result {
	notes := []string{}
	var as Assumptions

	if in.ProcessTempC == nil || in.TargetSupplyTempC == nil {
		return terminal(StatusCaution, "Please provide all required temperature values.")
	}
	processTemp := *in.ProcessTempC
	supplyTemp := *in.TargetSupplyTempC

	if processTemp < processTempMin || processTemp > processTempMax {
		return terminal(StatusNotViable,
			fmt.Sprintf("Process temperature %.0f°C is outside the 80–200 °C window — heat pump not viable.", processTemp))
	}

	switch strings.ToLower(string(in.EnergyVector)) {
	case "steam":
		if in.SteamPressureBarA == nil {
			return terminal(StatusCaution, "Provide steam pressure (barA) to check heat-pump feasibility.")
		}
		if *in.SteamPressureBarA > steamPressureMax {
			return terminal(StatusNotViable,
				fmt.Sprintf("Steam pressure %.1f barA > %.1f barA — heat pump not possible.", *in.SteamPressureBarA, steamPressureMax))
		}
	case "hot air":
		if supplyTemp > hpTargetMax {
			return terminal(StatusNotViable,
				fmt.Sprintf("Required hot-air temperature %.0f°C > %.1f°C — heat pump not possible.", supplyTemp, hpTargetMax))
		}
		if supplyTemp > hotAirCautionMax {
			return terminal(StatusNotViable, "Hot air >150 °C — heat pump not recommended (consider heat exchangers).")
		}
		if supplyTemp > hotAirOKMax && supplyTemp <= hotAirCautionMax {
			notes = append(notes, "Hot air 110–150 °C — feasible but COP may be modest (high lift).")
		}
	case "hot water":
		if supplyTemp > hpTargetMax {
			return terminal(StatusNotViable,
				fmt.Sprintf("Required hot-water temperature %.0f°C > %.1f°C — heat pump not possible.", supplyTemp, hpTargetMax))
		}
	default:
		// unrecognised vectors carry no vector-specific limits
	}

	if !in.HasWasteHeat {
		return terminal(StatusSuggestHX, "No waste heat identified — this may be better suited to direct heat recovery via heat exchangers.")
	}

	switch in.HowReleased {
	case ReleaseGeneralVentilation:
		return terminal(StatusNotViable, "Waste heat only available via general room ventilation — better suited to heat recovery through heat exchangers than a heat pump.")
	case ReleaseDedicatedExhaust:
		notes = append(notes, "Waste heat from a dedicated cooling system or exhaust — suitable for heat-pump integration.")
	}

	if in.WasteTempKnown && in.WasteTempC != nil {
		as.TIn1 = fptr(*in.WasteTempC)
	} else {
		as.TIn1 = fptr(processTemp)
		notes = append(notes, "Waste-heat temperature unknown — assuming equal to process temperature.")
	}

	if in.WasteAmountKnown && in.QWasteKW != nil && *in.QWasteKW > 0 {
		as.QWasteKW = fptr(*in.QWasteKW)
		notes = append(notes, fmt.Sprintf("Using user-provided waste heat level Q_waste ≈ %.0f kW.", *in.QWasteKW))
	} else {
		hi := ParseBandUpper(in.WasteAmountBand)
		as.WastePct = fptr(hi)
		notes = append(notes, fmt.Sprintf("Waste-heat amount unknown — using upper estimate ≈ %.0f%% of energy input.", hi))
	}

	if in.WasteMedium != "" && in.WasteMedium != MediumUnknown {
		as.WasteForm = string(in.WasteMedium)
		if n, ok := mediumNotes[in.WasteMedium]; ok {
			notes = append(notes, n)
		}
	}

	switch in.Captured {
	case Yes:
		notes = append(notes, "Waste heat is already captured — integration may be simpler and cheaper.")
	case No:
		notes = append(notes, "Waste heat not yet captured — additional pipework/ducting or a heat exchanger may be needed.")
	}

	switch in.ExistingProcessor {
	case Yes:
		notes = append(notes, "There is already a waste-heat processing system on site (e.g. ORC or heat-recovery unit).")
	case No:
		notes = append(notes, "No existing waste-heat processor — Mechapres could be the main technology to use that heat.")
	}

	status := StatusProceed
	if len(notes) > 0 {
		status = StatusCaution
	}
	return Result{Status: status, Notes: notes, Assumptions: as}
}

// ParseBandUpper extracts the upper bound of a waste-heat percentage band such
// as "31-50% (average for modern processes)" or "31–50% of energy input". Both
// hyphen and en-dash separators are accepted; the higher of the first two
// numbers wins, and anything unparseable falls back to 50.
func ParseBandUpper(band string) float64 {
	s := strings.ReplaceAll(band, "–", "-")
	var nums []int
	for i := 0; i < len(s) && len(nums) < 2; {
		if s[i] < '0' || s[i] > '9' {
			i++
			continue
		}
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		n, err := strconv.Atoi(s[i:j])
		if err != nil {
			return 50
		}
		nums = append(nums, n)
		i = j
	}
	if len(nums) < 2 {
		return 50
	}
	if nums[0] > nums[1] {
		return float64(nums[0])
	}
	return float64(nums[1])
}

func terminal(s Status, note string) Result {
	return Result{Status: s, Notes: []string{note}}
}

func fptr(v float64) *float64 { return &v }
