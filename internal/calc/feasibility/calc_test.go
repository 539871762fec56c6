package feasibility

import (
	"reflect"
	"strings"
	"testing"
)

func fp(v float64) *float64 { return &v }

func baseInput() Input {
	return Input{
		ProcessTempC:      fp(150),
		EnergyVector:      VectorSteam,
		TargetSupplyTempC: fp(150),
		SteamPressureBarA: fp(5),
		HasWasteHeat:      true,
		HowReleased:       ReleaseDedicatedExhaust,
		WasteTempKnown:    true,
		WasteTempC:        fp(100),
		WasteAmountKnown:  true,
		QWasteKW:          fp(1000),
		WasteMedium:       MediumHotWater,
		Captured:          Yes,
		ExistingProcessor: No,
	}
}

func TestEvaluateFullProfile(t *testing.T) {
	res := Evaluate(baseInput())

	if res.Status != StatusCaution {
		t.Fatalf("status = %q, want caution", res.Status)
	}
	if res.Assumptions.TIn1 == nil || *res.Assumptions.TIn1 != 100 {
		t.Errorf("T_in1 = %v, want 100", res.Assumptions.TIn1)
	}
	if res.Assumptions.QWasteKW == nil || *res.Assumptions.QWasteKW != 1000 {
		t.Errorf("Q_waste_kW = %v, want 1000", res.Assumptions.QWasteKW)
	}
	if res.Assumptions.WastePct != nil {
		t.Errorf("waste_pct set alongside Q_waste_kW: %v", *res.Assumptions.WastePct)
	}
	if res.Assumptions.WasteForm != "Hot water" {
		t.Errorf("waste_form = %q, want Hot water", res.Assumptions.WasteForm)
	}

	want := []string{
		"Waste heat from a dedicated cooling system or exhaust — suitable for heat-pump integration.",
		"Using user-provided waste heat level Q_waste ≈ 1000 kW.",
		"Waste heat available as hot water — highly suitable for heat-pump integration.",
		"Waste heat is already captured — integration may be simpler and cheaper.",
		"No existing waste-heat processor — Mechapres could be the main technology to use that heat.",
	}
	if !reflect.DeepEqual(res.Notes, want) {
		t.Errorf("notes = %#v, want %#v", res.Notes, want)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	a := Evaluate(baseInput())
	b := Evaluate(baseInput())
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same input produced different results:\n%#v\n%#v", a, b)
	}
}

func TestEvaluateTerminal(t *testing.T) {
	cases := []struct {
		name       string
		mutate     func(*Input)
		wantStatus Status
		wantNote   string
	}{
		{
			name:       "missing process temperature",
			mutate:     func(in *Input) { in.ProcessTempC = nil },
			wantStatus: StatusCaution,
			wantNote:   "Please provide all required temperature values.",
		},
		{
			name:       "missing supply temperature",
			mutate:     func(in *Input) { in.TargetSupplyTempC = nil },
			wantStatus: StatusCaution,
			wantNote:   "Please provide all required temperature values.",
		},
		{
			name:       "process temperature too high",
			mutate:     func(in *Input) { in.ProcessTempC = fp(250) },
			wantStatus: StatusNotViable,
			wantNote:   "Process temperature 250°C is outside the 80–200 °C window — heat pump not viable.",
		},
		{
			name:       "process temperature too low",
			mutate:     func(in *Input) { in.ProcessTempC = fp(60) },
			wantStatus: StatusNotViable,
			wantNote:   "Process temperature 60°C is outside the 80–200 °C window — heat pump not viable.",
		},
		{
			name:       "steam pressure missing",
			mutate:     func(in *Input) { in.SteamPressureBarA = nil },
			wantStatus: StatusCaution,
			wantNote:   "Provide steam pressure (barA) to check heat-pump feasibility.",
		},
		{
			name:       "steam pressure above limit",
			mutate:     func(in *Input) { in.SteamPressureBarA = fp(12) },
			wantStatus: StatusNotViable,
			wantNote:   "Steam pressure 12.0 barA > 10.0 barA — heat pump not possible.",
		},
		{
			name: "hot air target above hard cap",
			mutate: func(in *Input) {
				in.EnergyVector = VectorHotAir
				in.TargetSupplyTempC = fp(190)
			},
			wantStatus: StatusNotViable,
			wantNote:   "Required hot-air temperature 190°C > 180.0°C — heat pump not possible.",
		},
		{
			name: "hot air target above caution cap",
			mutate: func(in *Input) {
				in.EnergyVector = VectorHotAir
				in.TargetSupplyTempC = fp(160)
			},
			wantStatus: StatusNotViable,
			wantNote:   "Hot air >150 °C — heat pump not recommended (consider heat exchangers).",
		},
		{
			name: "hot water target above cap",
			mutate: func(in *Input) {
				in.EnergyVector = VectorHotWater
				in.TargetSupplyTempC = fp(185)
			},
			wantStatus: StatusNotViable,
			wantNote:   "Required hot-water temperature 185°C > 180.0°C — heat pump not possible.",
		},
		{
			name:       "no waste heat",
			mutate:     func(in *Input) { in.HasWasteHeat = false },
			wantStatus: StatusSuggestHX,
			wantNote:   "No waste heat identified — this may be better suited to direct heat recovery via heat exchangers.",
		},
		{
			name:       "general ventilation only",
			mutate:     func(in *Input) { in.HowReleased = ReleaseGeneralVentilation },
			wantStatus: StatusNotViable,
			wantNote:   "Waste heat only available via general room ventilation — better suited to heat recovery through heat exchangers than a heat pump.",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := baseInput()
			c.mutate(&in)
			res := Evaluate(in)
			if res.Status != c.wantStatus {
				t.Fatalf("status = %q, want %q", res.Status, c.wantStatus)
			}
			if len(res.Notes) != 1 || res.Notes[0] != c.wantNote {
				t.Errorf("notes = %#v, want exactly [%q]", res.Notes, c.wantNote)
			}
			if !reflect.DeepEqual(res.Assumptions, Assumptions{}) {
				t.Errorf("terminal result carries assumptions: %#v", res.Assumptions)
			}
		})
	}
}

func TestEvaluateBoundaries(t *testing.T) {
	in := baseInput()
	in.ProcessTempC = fp(80)
	if res := Evaluate(in); res.Status == StatusNotViable {
		t.Errorf("80°C should be inside the window")
	}
	in.ProcessTempC = fp(200)
	if res := Evaluate(in); res.Status == StatusNotViable {
		t.Errorf("200°C should be inside the window")
	}
	in = baseInput()
	in.SteamPressureBarA = fp(10)
	if res := Evaluate(in); res.Status == StatusNotViable {
		t.Errorf("10 barA should pass the steam gate")
	}
}

func TestEvaluateHotAirLadder(t *testing.T) {
	in := baseInput()
	in.EnergyVector = VectorHotAir

	in.TargetSupplyTempC = fp(140)
	res := Evaluate(in)
	if res.Status != StatusCaution {
		t.Fatalf("status = %q, want caution", res.Status)
	}
	if res.Notes[0] != "Hot air 110–150 °C — feasible but COP may be modest (high lift)." {
		t.Errorf("first note = %q, want the high-lift caution", res.Notes[0])
	}
	if res.Assumptions.TIn1 == nil {
		t.Errorf("high-lift caution must not stop the gate")
	}

	in.TargetSupplyTempC = fp(150)
	if res := Evaluate(in); res.Notes[0] != "Hot air 110–150 °C — feasible but COP may be modest (high lift)." {
		t.Errorf("150°C should still be in the caution band")
	}

	in.TargetSupplyTempC = fp(110)
	if res := Evaluate(in); strings.Contains(res.Notes[0], "high lift") {
		t.Errorf("110°C should not trigger the high-lift note")
	}
}

func TestEvaluateUnknownVectorFallsThrough(t *testing.T) {
	in := baseInput()
	in.EnergyVector = "Thermal Oil"
	in.TargetSupplyTempC = fp(250)
	in.SteamPressureBarA = nil
	res := Evaluate(in)
	if res.Status == StatusNotViable {
		t.Errorf("unknown vectors must not hit vector-specific limits, got %#v", res)
	}
	if res.Assumptions.TIn1 == nil {
		t.Errorf("gate should have proceeded to assumptions")
	}
}

func TestEvaluateVectorCaseInsensitive(t *testing.T) {
	in := baseInput()
	in.EnergyVector = "steam"
	in.SteamPressureBarA = fp(12)
	if res := Evaluate(in); res.Status != StatusNotViable {
		t.Errorf("lowercase vector should still match the steam gate, got %q", res.Status)
	}
}

func TestEvaluateUnknownTempAndAmount(t *testing.T) {
	in := baseInput()
	in.WasteTempKnown = false
	in.WasteAmountKnown = false
	in.QWasteKW = nil
	in.WasteAmountBand = "51-80% (Typical for processes without any control for minimising waste heat)"
	res := Evaluate(in)

	if res.Assumptions.TIn1 == nil || *res.Assumptions.TIn1 != 150 {
		t.Errorf("T_in1 = %v, want process temperature 150", res.Assumptions.TIn1)
	}
	if res.Assumptions.WastePct == nil || *res.Assumptions.WastePct != 80 {
		t.Errorf("waste_pct = %v, want 80", res.Assumptions.WastePct)
	}
	if res.Assumptions.QWasteKW != nil {
		t.Errorf("Q_waste_kW set alongside waste_pct")
	}

	var haveTemp, haveAmt bool
	for _, n := range res.Notes {
		if n == "Waste-heat temperature unknown — assuming equal to process temperature." {
			haveTemp = true
		}
		if n == "Waste-heat amount unknown — using upper estimate ≈ 80% of energy input." {
			haveAmt = true
		}
	}
	if !haveTemp || !haveAmt {
		t.Errorf("missing assumption notes: %#v", res.Notes)
	}
}

func TestEvaluateAmountKnownButZero(t *testing.T) {
	in := baseInput()
	in.QWasteKW = fp(0)
	res := Evaluate(in)
	if res.Assumptions.QWasteKW != nil {
		t.Errorf("zero waste amount must fall back to the band estimate")
	}
	if res.Assumptions.WastePct == nil || *res.Assumptions.WastePct != 50 {
		t.Errorf("waste_pct = %v, want default 50", res.Assumptions.WastePct)
	}
}

func TestEvaluateUnknownMedium(t *testing.T) {
	in := baseInput()
	in.WasteMedium = MediumUnknown
	res := Evaluate(in)
	if res.Assumptions.WasteForm != "" {
		t.Errorf("waste_form = %q, want empty for unknown medium", res.Assumptions.WasteForm)
	}
	in.WasteMedium = "Oil mist"
	res = Evaluate(in)
	if res.Assumptions.WasteForm != "Oil mist" {
		t.Errorf("unrecognised medium should still be recorded, got %q", res.Assumptions.WasteForm)
	}
	for _, n := range res.Notes {
		if strings.HasPrefix(n, "Waste heat available as") {
			t.Errorf("unrecognised medium must not get a medium note: %q", n)
		}
	}
}

func TestParseBandUpper(t *testing.T) {
	cases := []struct {
		band string
		want float64
	}{
		{"10-30% (very efficient process)", 30},
		{"31-50% (average for modern processes)", 50},
		{"51-80% (Typical for processes without any control for minimising waste heat)", 80},
		{"10–30% of energy input", 30},
		{"31–50% of energy input", 50},
		{"51–80% of energy input", 80},
		{"", 50},
		{"unknown", 50},
		{"75%", 50},
		{"80-51%", 80},
	}
	for _, c := range cases {
		t.Run(c.band, func(t *testing.T) {
			if got := ParseBandUpper(c.band); got != c.want {
				t.Errorf("ParseBandUpper(%q) = %v, want %v", c.band, got, c.want)
			}
		})
	}
}
