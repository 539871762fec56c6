package feasibility

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerCalc(t *testing.T) {
	h := &Handler{}
	body := `{
		"process_temp_c": 150,
		"energy_vector": "Steam",
		"target_supply_temp_c": 150,
		"steam_pressure_bar_a": 5,
		"has_waste_heat": true,
		"how_released": "Dedicated cooling system or exhaust pipe",
		"waste_temp_known": true,
		"waste_temp_c": 100,
		"waste_amount_known": true,
		"q_waste_kw": 1000,
		"waste_medium": "Hot water",
		"waste_heat_captured": "Yes",
		"has_waste_heat_processor": "No"
	}`
	req := httptest.NewRequest("POST", "/api/calc/feasibility", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Calc(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Status != StatusCaution {
		t.Errorf("status = %q, want caution", res.Status)
	}
	if res.Assumptions.TIn1 == nil || *res.Assumptions.TIn1 != 100 {
		t.Errorf("T_in1 = %v, want 100", res.Assumptions.TIn1)
	}
	if !strings.Contains(rec.Body.String(), `"T_in1"`) {
		t.Errorf("assumptions must serialize under symbol names: %s", rec.Body.String())
	}
}

func TestHandlerCalcBadPayload(t *testing.T) {
	h := &Handler{}
	req := httptest.NewRequest("POST", "/api/calc/feasibility", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Calc(rec, req)
	if rec.Code != 400 {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
