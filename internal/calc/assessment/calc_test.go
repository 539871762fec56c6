package assessment

import (
	"math"
	"strings"
	"testing"
	"time"

	"mechapres/internal/calc/feasibility"
	"mechapres/internal/factors"
)

func fp(v float64) *float64 { return &v }

func fullInput() Input {
	return Input{
		Site: Site{
			ProcessTempC:          fp(150),
			EnergyVector:          feasibility.VectorSteam,
			TargetSupplyTempC:     fp(150),
			SteamPressureBarA:     fp(5),
			HeatSupplyTech:        factors.TechFossilFuelBoiler,
			SystemEfficiencyPct:   80,
			ProductionDays:        250,
			ProductionHoursPerDay: 12,
		},
		WasteHeat: WasteHeat{
			Available:         true,
			HowReleased:       feasibility.ReleaseDedicatedExhaust,
			TempKnown:         true,
			TempC:             fp(100),
			AmountKnown:       true,
			AmountKW:          fp(1000),
			Medium:            feasibility.MediumHotWater,
			Captured:          feasibility.Yes,
			ExistingProcessor: feasibility.No,
		},
		Energy: Energy{
			FuelType:               factors.FuelNaturalGas,
			FuelPriceGBPMWh:        50,
			ElectricityPriceGBPMWh: 100,
			QProcessKW:             1000,
		},
	}
}

func TestRunFullPipeline(t *testing.T) {
	res, err := Run(fullInput())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Gate.Status != feasibility.StatusCaution {
		t.Errorf("gate status = %q, want caution", res.Gate.Status)
	}
	if res.Performance == nil || res.Economics == nil {
		t.Fatalf("pipeline did not finish: perf=%v econ=%v", res.Performance, res.Economics)
	}
	if math.Abs(res.Performance.COPReal-4.0233) > 1e-3 {
		t.Errorf("COP_real = %v, want ~4.0233", res.Performance.COPReal)
	}
	if res.QProcessKW != 1000 {
		t.Errorf("Q_process = %v, want the manual 1000", res.QProcessKW)
	}
	if res.OperatingHours != 3000 {
		t.Errorf("hours = %v, want 3000", res.OperatingHours)
	}
	if math.Abs(res.Economics.CostCurrentGBP-187500) > 1e-6 {
		t.Errorf("cost_current = %v, want 187500", res.Economics.CostCurrentGBP)
	}
	// Investment omitted, so the house rate card applies.
	if math.Abs(res.Economics.High.CapexGBP-399600) > 1e-6 {
		t.Errorf("high capex = %v, want 399600", res.Economics.High.CapexGBP)
	}
	if res.Message != "" {
		t.Errorf("completed run should carry no stop message, got %q", res.Message)
	}
}

func TestRunReferenceAndTimestamp(t *testing.T) {
	res, err := Run(fullInput())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(res.Reference, "MHP-") || len(res.Reference) != 12 {
		t.Errorf("reference = %q, want MHP- plus eight characters", res.Reference)
	}
	for _, c := range res.Reference[4:] {
		if !strings.ContainsRune("0123456789ABCDEF", c) {
			t.Errorf("reference %q contains non-hex %q", res.Reference, c)
		}
	}
	if res.GeneratedAt.IsZero() || res.GeneratedAt.Location() != time.UTC {
		t.Errorf("generated_at = %v, want a UTC timestamp", res.GeneratedAt)
	}

	other, _ := Run(fullInput())
	if other.Reference == res.Reference {
		t.Errorf("references must differ between runs: %q", res.Reference)
	}
}

func TestRunStopsOnTerminalGate(t *testing.T) {
	in := fullInput()
	in.Site.ProcessTempC = fp(250)
	res, err := Run(in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Gate.Status != feasibility.StatusNotViable {
		t.Fatalf("gate status = %q, want not_viable", res.Gate.Status)
	}
	if res.Performance != nil || res.Economics != nil {
		t.Errorf("terminal gate must stop the pipeline")
	}
	if res.Message != "Not suitable for heat pump applications" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestRunStopsOnSuggestHX(t *testing.T) {
	in := fullInput()
	in.WasteHeat.Available = false
	res, err := Run(in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Gate.Status != feasibility.StatusSuggestHX {
		t.Fatalf("gate status = %q, want suggest_hx", res.Gate.Status)
	}
	if res.Performance != nil || res.Economics != nil {
		t.Errorf("suggest_hx must stop the pipeline")
	}
	if res.Message != "Heat exchanger may be more suitable than a heat pump" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestRunStopsOnImpossibleLift(t *testing.T) {
	in := fullInput()
	// 60°C steam delivery condenses below the evaporator floor.
	in.Site.TargetSupplyTempC = fp(60)
	res, err := Run(in)
	if err != nil {
		t.Fatalf("impossible lift must not be an error: %v", err)
	}
	if res.Performance == nil || res.Performance.COPReal != 0 {
		t.Fatalf("performance = %+v, want COP_real 0", res.Performance)
	}
	if res.Economics != nil {
		t.Errorf("economics must not run on a zero COP")
	}
	if !strings.Contains(res.Message, "temperature lift") {
		t.Errorf("message = %q, want lift guidance", res.Message)
	}
}

func TestRunEstimatesDemandFromSpend(t *testing.T) {
	in := fullInput()
	in.Energy.QProcessKW = 0
	in.Energy.AnnualSpendGBP = 500000
	res, err := Run(in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// £500k / £50 per MWh * 80% * 1000 / 3000 h
	want := 500000.0 / 50 * 0.8 * 1000 / 3000
	if math.Abs(res.QProcessKW-want) > 1e-6 {
		t.Errorf("Q_process = %v, want %v", res.QProcessKW, want)
	}
}

func TestRunWasteBandDrivesPerformance(t *testing.T) {
	in := fullInput()
	in.WasteHeat.AmountKnown = false
	in.WasteHeat.AmountKW = nil
	in.WasteHeat.AmountBand = "51-80% (Typical for processes without any control for minimising waste heat)"
	res, err := Run(in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Assumed 80% spreads to a 70–90 band around itself.
	if math.Abs(res.Performance.WasteHeatMinKW-700) > 1e-9 {
		t.Errorf("waste min = %v, want 700", res.Performance.WasteHeatMinKW)
	}
	if math.Abs(res.Performance.WasteHeatMaxKW-900) > 1e-9 {
		t.Errorf("waste max = %v, want 900", res.Performance.WasteHeatMaxKW)
	}
}

func TestRunDefaultWasteBandWhenAmountKnown(t *testing.T) {
	res, err := Run(fullInput())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// No percentage assumption, so the band sits around the default 40.
	if math.Abs(res.Performance.WasteHeatMinKW-300) > 1e-9 {
		t.Errorf("waste min = %v, want 300", res.Performance.WasteHeatMinKW)
	}
	if math.Abs(res.Performance.WasteHeatMaxKW-500) > 1e-9 {
		t.Errorf("waste max = %v, want 500", res.Performance.WasteHeatMaxKW)
	}
}

func TestRunValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Input)
		want   string
	}{
		{"process temp out of form range", func(in *Input) { in.Site.ProcessTempC = fp(400) }, "process temperature"},
		{"supply temp out of form range", func(in *Input) { in.Site.TargetSupplyTempC = fp(20) }, "target supply temperature"},
		{"steam pressure out of form range", func(in *Input) { in.Site.SteamPressureBarA = fp(25) }, "steam pressure"},
		{"zero production days", func(in *Input) { in.Site.ProductionDays = 0 }, "production days"},
		{"hours per day over 24", func(in *Input) { in.Site.ProductionHoursPerDay = 30 }, "hours per day"},
		{"efficiency below form floor", func(in *Input) { in.Site.SystemEfficiencyPct = 20 }, "system efficiency"},
		{"price over form ceiling", func(in *Input) { in.Energy.ElectricityPriceGBPMWh = 400 }, "electricity price"},
		{"manual demand out of range", func(in *Input) { in.Energy.QProcessKW = 60000 }, "process heat demand"},
		{
			"no demand and no spend",
			func(in *Input) { in.Energy.QProcessKW = 0; in.Energy.AnnualSpendGBP = 0 },
			"annual energy spend",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := fullInput()
			c.mutate(&in)
			_, err := Run(in)
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Errorf("err = %v, want message containing %q", err, c.want)
			}
		})
	}
}

func TestStatusHeadline(t *testing.T) {
	cases := []struct {
		status feasibility.Status
		want   string
	}{
		{feasibility.StatusNotViable, "Not suitable for heat pump applications"},
		{feasibility.StatusSuggestHX, "Heat exchanger may be more suitable than a heat pump"},
		{feasibility.StatusCaution, "Heat pump is feasible with some considerations"},
		{feasibility.StatusProceed, "Excellent heat pump application!"},
	}
	for _, c := range cases {
		if got := StatusHeadline(c.status); got != c.want {
			t.Errorf("StatusHeadline(%q) = %q, want %q", c.status, got, c.want)
		}
	}
}
