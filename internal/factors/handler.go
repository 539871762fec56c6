package factors

import (
	"encoding/json"
	"net/http"
)

type fuelEntry struct {
	Name           FuelType `json:"name"`
	FactorKgPerKWh float64  `json:"factor_kg_per_kwh"`
}

type techEntry struct {
	Name                 HeatSupplyTech `json:"name"`
	UsesFuel             bool           `json:"uses_fuel"`
	DefaultEfficiencyPct float64        `json:"default_efficiency_pct"`
}

type listResponse struct {
	Fuels                  []fuelEntry `json:"fuels"`
	Technologies           []techEntry `json:"technologies"`
	ElectricityCO2KgPerMWh float64     `json:"electricity_co2_kg_per_mwh"`
}

type Handler struct{}

// List serves the constant tables so the form frontend can populate its
// dropdowns and show the factors behind the numbers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp := listResponse{ElectricityCO2KgPerMWh: ElectricityCO2KgPerMWh}
	for _, f := range FuelTypes() {
		resp.Fuels = append(resp.Fuels, fuelEntry{Name: f, FactorKgPerKWh: EmissionFactor(f)})
	}
	for _, t := range Technologies() {
		resp.Technologies = append(resp.Technologies, techEntry{
			Name:                 t,
			UsesFuel:             UsesFuel(t),
			DefaultEfficiencyPct: DefaultEfficiencyPct(t),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
