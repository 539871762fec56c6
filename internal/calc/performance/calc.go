// Package performance models the steam-generation heat pump: condenser and
// evaporator temperatures from the site temperatures, Carnot and real COP,
// waste-heat demand band and electrical draw.
package performance

import (
	"encoding/json"
	"fmt"
	"math"
)

// Condensation must sit slightly below the delivered steam temperature.
const condenserDeliveryMarginC = 2.0

type Input struct {
	WasteTempC    *float64 `json:"waste_temp_c" yaml:"waste_temp_c"`
	SupplyTempC   *float64 `json:"supply_temp_c" yaml:"supply_temp_c"`
	QProcessKW    float64  `json:"q_process_kw" yaml:"q_process_kw"`
	AppCondenser  float64  `json:"app_condenser_k,omitempty" yaml:"app_condenser_k"`
	AppEvaporator float64  `json:"app_evaporator_k,omitempty" yaml:"app_evaporator_k"`
	MinEvapTempC  float64  `json:"min_evap_temp_c,omitempty" yaml:"min_evap_temp_c"`
	LorentzEff    float64  `json:"lorentz_eff,omitempty" yaml:"lorentz_eff"`
	WasteMinPct   float64  `json:"waste_min_pct,omitempty" yaml:"waste_min_pct"`
	WasteMaxPct   float64  `json:"waste_max_pct,omitempty" yaml:"waste_max_pct"`
}

type Result struct {
	TCondSteamC    float64 `json:"t_cond_steam_c"`
	TEvapC         float64 `json:"t_evap_c"`
	COPCarnot      float64 `json:"cop_carnot"`
	COPReal        float64 `json:"cop_real"`
	WasteHeatMinKW float64 `json:"waste_heat_min_kw"`
	WasteHeatMaxKW float64 `json:"waste_heat_max_kw"`
	EMinKW         float64 `json:"e_min_kw"`
	EMaxKW         float64 `json:"e_max_kw"`
	CapacityMWth   float64 `json:"capacity_mwth"`
}

// Calculate sizes the heat pump against the process demand. A lift the cycle
// cannot make (condensation at or below evaporation) is not an error: it comes
// back as COPReal 0 with infinite electrical draw.
func Calculate(in Input) (Result, error) {
	if in.WasteTempC == nil || in.SupplyTempC == nil {
		return Result{}, fmt.Errorf("waste and supply temperatures are required")
	}
	if in.QProcessKW <= 0 {
		return Result{}, fmt.Errorf("process heat demand must be greater than zero")
	}
	if in.AppCondenser <= 0 {
		in.AppCondenser = 8
	}
	if in.AppEvaporator <= 0 {
		in.AppEvaporator = 8
	}
	if in.MinEvapTempC <= 0 {
		in.MinEvapTempC = 70
	}
	if in.LorentzEff <= 0 {
		in.LorentzEff = 0.60
	}
	if in.WasteMinPct <= 0 {
		in.WasteMinPct = 30
	}
	if in.WasteMaxPct <= 0 {
		in.WasteMaxPct = 60
	}

	tCond := *in.SupplyTempC + in.AppCondenser - condenserDeliveryMarginC
	tEvap := math.Max(*in.WasteTempC-in.AppEvaporator, in.MinEvapTempC)

	copCarnot := 0.0
	if tCond > tEvap {
		tcK, teK := tCond+273.15, tEvap+273.15
		copCarnot = tcK / (tcK - teK)
	}
	copReal := math.Max(0, in.LorentzEff*copCarnot)

	eMax := math.Inf(1)
	eMin := math.Inf(1)
	if copReal > 0 {
		eMax = in.QProcessKW / copReal
		eMin = eMax / 2.0
	}

	return Result{
		TCondSteamC:    tCond,
		TEvapC:         tEvap,
		COPCarnot:      copCarnot,
		COPReal:        copReal,
		WasteHeatMinKW: in.QProcessKW * in.WasteMinPct / 100.0,
		WasteHeatMaxKW: in.QProcessKW * in.WasteMaxPct / 100.0,
		EMinKW:         eMin,
		EMaxKW:         eMax,
		CapacityMWth:   in.QProcessKW / 1000.0,
	}, nil
}

// MarshalJSON encodes the infinite electrical draw of an impossible lift as
// null, which encoding/json cannot do for bare floats.
func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result
	out := struct {
		alias
		EMinKW *float64 `json:"e_min_kw"`
		EMaxKW *float64 `json:"e_max_kw"`
	}{alias: alias(r)}
	if !math.IsInf(r.EMinKW, 1) {
		out.EMinKW = &r.EMinKW
	}
	if !math.IsInf(r.EMaxKW, 1) {
		out.EMaxKW = &r.EMaxKW
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores null draws to +Inf so a round-tripped result keeps
// the same meaning.
func (r *Result) UnmarshalJSON(data []byte) error {
	type alias Result
	aux := struct {
		*alias
		EMinKW *float64 `json:"e_min_kw"`
		EMaxKW *float64 `json:"e_max_kw"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.EMinKW = math.Inf(1)
	r.EMaxKW = math.Inf(1)
	if aux.EMinKW != nil {
		r.EMinKW = *aux.EMinKW
	}
	if aux.EMaxKW != nil {
		r.EMaxKW = *aux.EMaxKW
	}
	return nil
}
