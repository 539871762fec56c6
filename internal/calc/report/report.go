// Package report renders the assessment PDFs: the two-page quick estimate
// anyone can download, and the detailed report issued against contact details
// with a ten-year cumulative cash-flow chart drawn onto the page.
package report

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"mechapres/internal/calc/assessment"
	"mechapres/internal/calc/economics"
	"mechapres/internal/calc/feasibility"
	"mechapres/internal/factors"
)

// Brand palette.
var (
	colPrimary   = [3]int{0, 102, 204}
	colSecondary = [3]int{0, 77, 153}
	colLightBlue = [3]int{230, 242, 255}
	colMuted     = [3]int{102, 102, 102}
	colSuccess   = [3]int{0, 170, 102}
	colError     = [3]int{204, 51, 51}
)

const (
	pageWidth = 210.0
	margin    = 12.0
)

// Contact identifies who asked for the detailed report. Name and email are
// required; consent gates email delivery.
type Contact struct {
	Name    string `json:"name" yaml:"name"`
	Company string `json:"company,omitempty" yaml:"company"`
	Email   string `json:"email" yaml:"email"`
	Phone   string `json:"phone,omitempty" yaml:"phone"`
	Consent bool   `json:"consent" yaml:"consent"`
}

// The PDF code page (cp1252) has no ≈.
var approx = strings.NewReplacer("≈", "~")

type painter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPainter() *painter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, 14, margin)
	pdf.SetAutoPageBreak(true, 16)
	return &painter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (p *painter) text(s string) string { return p.tr(approx.Replace(s)) }

func (p *painter) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pageHeader starts a page with the filled title band.
func (p *painter) pageHeader(title string, generated time.Time) {
	pdf := p.pdf
	pdf.AddPage()
	pdf.SetFillColor(colPrimary[0], colPrimary[1], colPrimary[2])
	pdf.Rect(0, 0, pageWidth, 26, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(margin, 6)
	pdf.Cell(0, 9, p.text(title))
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(margin, 15)
	pdf.Cell(0, 6, "Generated: "+generated.Format("2006-01-02 15:04"))
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(34)
}

func (p *painter) section(title string, col [3]int) {
	pdf := p.pdf
	pdf.SetTextColor(col[0], col[1], col[2])
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, p.text(title))
	pdf.Ln(9)
	pdf.SetTextColor(0, 0, 0)
}

func (p *painter) param(label, value string) {
	pdf := p.pdf
	pdf.SetX(margin + 8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(78, 6, p.text(label))
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, p.text(value))
	pdf.Ln(6)
}

func (p *painter) gap() { p.pdf.Ln(4) }

// outcome replaces the financial sections when the pipeline stopped at the
// gate or on an impossible lift.
func (p *painter) outcome(res assessment.Result) {
	pdf := p.pdf
	p.section("Assessment Outcome", colPrimary)
	pdf.SetX(margin + 8)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.MultiCell(0, 6, p.text(assessment.StatusHeadline(res.Gate.Status)), "", "L", false)
	if res.Message != "" && res.Message != assessment.StatusHeadline(res.Gate.Status) {
		pdf.SetX(margin + 8)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5.5, p.text(res.Message), "", "L", false)
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 10)
	for _, note := range res.Gate.Notes {
		pdf.SetX(margin + 8)
		pdf.MultiCell(0, 5.5, p.text("- "+note), "", "L", false)
		pdf.Ln(1)
	}
}

func (p *painter) investmentCase(c economics.Case) {
	p.param("Annual Savings:", Money(c.AnnualSavingsGBP))
	p.param("Investment Cost:", Money(c.CapexGBP))
	p.param("Payback Period:", Payback(c.SimplePaybackYears))
	p.param("IRR (10 years):", Percent(c.IRRPct))
}

func (p *painter) disclaimerBox(text string) {
	pdf := p.pdf
	const y = 240.0
	pdf.SetFillColor(colLightBlue[0], colLightBlue[1], colLightBlue[2])
	pdf.SetDrawColor(colPrimary[0], colPrimary[1], colPrimary[2])
	pdf.SetLineWidth(0.2)
	pdf.Rect(margin, y, pageWidth-2*margin, 36, "FD")
	pdf.SetXY(margin+4, y+3)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 5, "DISCLAIMER")
	pdf.SetXY(margin+4, y+9)
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(pageWidth-2*margin-8, 4, p.text(text), "", "L", false)
}

const quickDisclaimer = "This estimate is based on the information you provided and uses indicative assumptions. " +
	"Actual performance and costs may vary. For detailed feasibility analysis and custom quotation, " +
	"please contact info@mechapres.co.uk or visit www.mechapres.co.uk\n\n" +
	"For a comprehensive PDF report with charts and detailed analysis, request the detailed report " +
	"with your contact details."

// QuickEstimate renders the two-page estimate: the captured inputs, then the
// investment cases, carbon impact and cost comparison. An assessment that
// stopped early keeps page two but carries the outcome and its notes instead
// of financials.
func QuickEstimate(in assessment.Input, res assessment.Result) ([]byte, error) {
	p := newPainter()

	p.pageHeader("Heat Pump Assessment - Your Inputs", res.GeneratedAt)

	p.section("1. Basic Site Parameters", colPrimary)
	if in.Site.ProcessTempC != nil {
		p.param("Process Temperature:", fmt.Sprintf("%.0f°C", *in.Site.ProcessTempC))
	}
	p.param("Energy Vector:", string(in.Site.EnergyVector))
	p.param("Heat Supply Technology:", string(in.Site.HeatSupplyTech))
	if in.Energy.FuelType != "" {
		p.param("Fuel Type:", string(in.Energy.FuelType))
	}
	if in.Site.TargetSupplyTempC != nil {
		p.param("Required Supply Temperature:", fmt.Sprintf("%.0f°C", *in.Site.TargetSupplyTempC))
	}
	if in.Site.EnergyVector == feasibility.VectorSteam && in.Site.SteamPressureBarA != nil {
		p.param("Steam Supply Pressure:", fmt.Sprintf("%.0f barA", *in.Site.SteamPressureBarA))
	}
	p.param("Production Days/Year:", fmt.Sprintf("%.0f days", in.Site.ProductionDays))
	p.param("Production Hours/Day:", fmt.Sprintf("%.0f hours", in.Site.ProductionHoursPerDay))
	p.param("System Efficiency:", Percent(systemEfficiencyPct(in)))
	p.gap()

	p.section("2. Demand & Energy Prices", colPrimary)
	p.param("Fuel Cost:", fmt.Sprintf("£%.2f/MWh", in.Energy.FuelPriceGBPMWh))
	p.param("Electricity Cost:", fmt.Sprintf("£%.2f/MWh", in.Energy.ElectricityPriceGBPMWh))
	if in.Energy.QProcessKW > 0 {
		p.param("Process Heat Demand:", fmt.Sprintf("%.0f kW", in.Energy.QProcessKW))
	}
	if in.Energy.AnnualSpendGBP > 0 {
		p.param("Annual Energy Spend:", Money(in.Energy.AnnualSpendGBP))
	}
	p.gap()

	p.section("3. Waste Heat Assessment", colPrimary)
	p.param("Has Waste Heat:", yesNo(in.WasteHeat.Available))
	if in.WasteHeat.Available {
		if in.WasteHeat.HowReleased != "" {
			p.param("How Released:", string(in.WasteHeat.HowReleased))
		}
		p.param("Temperature Known:", yesNo(in.WasteHeat.TempKnown))
		if in.WasteHeat.TempKnown && in.WasteHeat.TempC != nil {
			p.param("Waste Heat Temperature:", fmt.Sprintf("%.0f°C", *in.WasteHeat.TempC))
		}
		p.param("Amount Known:", yesNo(in.WasteHeat.AmountKnown))
		if in.WasteHeat.AmountKnown && in.WasteHeat.AmountKW != nil {
			p.param("Waste Heat Available:", fmt.Sprintf("%.0f kW", *in.WasteHeat.AmountKW))
		} else if in.WasteHeat.AmountBand != "" {
			p.param("Waste Heat Estimate:", in.WasteHeat.AmountBand)
		}
		if in.WasteHeat.ExistingProcessor != "" {
			p.param("Existing Recovery Equipment:", string(in.WasteHeat.ExistingProcessor))
		}
		if in.WasteHeat.Medium != "" {
			p.param("Waste Heat Medium:", string(in.WasteHeat.Medium))
		}
	}

	p.pageHeader("Heat Pump Assessment - Results", res.GeneratedAt)
	if res.Economics == nil {
		p.outcome(res)
	} else {
		econ := res.Economics
		p.section("Investment and Returns - High Case", colPrimary)
		p.investmentCase(econ.High)
		p.gap()
		p.section("Investment and Returns - Low Case", colSecondary)
		p.investmentCase(econ.Low)
		p.gap()
		p.section("Environmental Impact", colSuccess)
		p.param("CO2 Reduction:", Number(econ.CO2SavingsTonnes)+" tonnes/year")
		p.param("Current CO2 Emissions:", Number(econ.CO2CurrentTonnes)+" tonnes/year")
		p.param("With Heat Pump CO2:", Number(econ.CO2MechapresTonnes)+" tonnes/year")
		p.gap()
		p.section("Energy Costs Comparison", colPrimary)
		p.param("Current Annual Energy Cost:", Money(econ.CostCurrentGBP))
		p.param("With Heat Pump Energy Cost:", Money(econ.CostMechapresGBP))
	}
	p.disclaimerBox(quickDisclaimer)

	return p.bytes()
}

// Detailed renders the full report: who asked for it, the headline results,
// the technical performance figures, the assessment notes, and the cash-flow
// projection charts for both investment cases.
func Detailed(in assessment.Input, contact Contact, res assessment.Result) ([]byte, error) {
	p := newPainter()
	pdf := p.pdf

	pdf.AddPage()
	pdf.SetTextColor(colPrimary[0], colPrimary[1], colPrimary[2])
	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetXY(margin, 12)
	pdf.Cell(0, 8, "Industrial Heat Pump Estimation Report")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(margin, 21)
	pdf.Cell(0, 5, "Generated on: "+res.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.SetXY(margin, 26)
	pdf.Cell(0, 5, "Reference: "+res.Reference)
	pdf.SetDrawColor(colPrimary[0], colPrimary[1], colPrimary[2])
	pdf.SetLineWidth(0.4)
	pdf.Line(margin, 33, pageWidth-margin, 33)
	pdf.SetLineWidth(0.2)
	pdf.SetY(39)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Contact Details")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []struct{ label, value string }{
		{"Name", contact.Name},
		{"Company", contact.Company},
		{"Email", contact.Email},
		{"Phone", contact.Phone},
	} {
		if line.value == "" {
			continue
		}
		pdf.SetX(margin + 8)
		pdf.Cell(0, 5, p.text(line.label+": "+line.value))
		pdf.Ln(5)
	}
	pdf.SetX(margin + 8)
	pdf.Cell(0, 5, "Consent to contact: "+yesNo(contact.Consent))
	pdf.Ln(9)

	if res.Economics == nil {
		p.outcome(res)
		detailedDisclaimer(p)
		return p.bytes()
	}
	econ := res.Economics

	p.section("Results Summary", colPrimary)
	p.param("Annual Cost Savings (high case):", Money(econ.High.AnnualSavingsGBP))
	p.param("CO2 Reduction:", Number(econ.CO2SavingsTonnes)+" t/year")
	p.param("Simple Payback (high case):", Payback(econ.High.SimplePaybackYears))
	p.param("Current Annual Energy Cost:", Money(econ.CostCurrentGBP))
	p.param("With Heat Pump Energy Cost:", Money(econ.CostMechapresGBP))
	p.gap()

	if perf := res.Performance; perf != nil {
		p.section("Technical Performance", colSecondary)
		p.param("Coefficient of Performance:", fmt.Sprintf("%.2f", perf.COPReal))
		p.param("Condensation Temperature:", fmt.Sprintf("%.1f°C", perf.TCondSteamC))
		p.param("Evaporation Temperature:", fmt.Sprintf("%.1f°C", perf.TEvapC))
		p.param("Thermal Capacity:", fmt.Sprintf("%.2f MWth", perf.CapacityMWth))
		p.param("Operating Hours:", fmt.Sprintf("%.0f h/year", econ.OperatingHours))
		p.param("Electrical Demand:", fmt.Sprintf("%.0f-%.0f kW", perf.EMinKW, perf.EMaxKW))
		p.gap()
	}

	if len(res.Gate.Notes) > 0 {
		p.section("Assessment Notes", colPrimary)
		pdf.SetFont("Helvetica", "", 9)
		for _, note := range res.Gate.Notes {
			pdf.SetX(margin + 8)
			pdf.MultiCell(0, 5, p.text("- "+note), "", "L", false)
			pdf.Ln(1)
		}
	}

	pdf.AddPage()
	pdf.SetY(16)
	p.section("10-Year Cash Flow Projection", colPrimary)
	p.cashFlowChart("High Case", econ.High, colPrimary, 30)
	p.cashFlowChart("Low Case", econ.Low, colSecondary, 140)
	detailedDisclaimer(p)

	return p.bytes()
}

func detailedDisclaimer(p *painter) {
	pdf := p.pdf
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(colMuted[0], colMuted[1], colMuted[2])
	pdf.SetXY(margin, 272)
	pdf.MultiCell(0, 4, "Disclaimer: Indicative estimates only. For detailed feasibility, contact info@mechapres.co.uk.", "", "L", false)
	pdf.SetTextColor(0, 0, 0)
}

// cashFlowChart plots the cumulative cash flow year by year inside a framed
// plot area, with the zero line and the break-even year marked.
func (p *painter) cashFlowChart(title string, c economics.Case, col [3]int, top float64) {
	pdf := p.pdf
	const (
		plotX = margin + 16
		plotW = pageWidth - 2*margin - 22
		plotH = 68.0
	)
	plotY := top + 9

	pdf.SetTextColor(col[0], col[1], col[2])
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(margin, top)
	pdf.Cell(0, 6, p.text(title))
	pdf.SetTextColor(0, 0, 0)

	cum := c.CumulativeCashFlow
	if len(cum) < 2 {
		return
	}
	min, max := cum[0], cum[0]
	for _, v := range cum {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if max < 0 {
		max = 0
	}
	span := max - min
	if span <= 0 {
		span = 1
	}
	xAt := func(year int) float64 {
		return plotX + float64(year)/float64(len(cum)-1)*plotW
	}
	yAt := func(v float64) float64 {
		return plotY + plotH - (v-min)/span*plotH
	}

	pdf.SetDrawColor(colMuted[0], colMuted[1], colMuted[2])
	pdf.SetLineWidth(0.2)
	pdf.Rect(plotX, plotY, plotW, plotH, "D")
	pdf.SetLineWidth(0.4)
	pdf.Line(plotX, yAt(0), plotX+plotW, yAt(0))

	pdf.SetFont("Helvetica", "", 7)
	for year := 0; year < len(cum); year++ {
		x := xAt(year)
		pdf.Line(x, plotY+plotH, x, plotY+plotH+1.2)
		pdf.SetXY(x-3, plotY+plotH+2)
		pdf.CellFormat(6, 3, fmt.Sprintf("%d", year), "", 0, "C", false, 0, "")
	}
	pdf.SetXY(plotX, plotY+plotH+6)
	pdf.CellFormat(plotW, 4, "Year", "", 0, "C", false, 0, "")
	for _, v := range []float64{min, 0, max} {
		pdf.SetXY(margin-4, yAt(v)-2)
		pdf.CellFormat(18, 4, p.text(moneyK(v)), "", 0, "R", false, 0, "")
	}

	pdf.SetDrawColor(col[0], col[1], col[2])
	pdf.SetFillColor(col[0], col[1], col[2])
	pdf.SetLineWidth(0.6)
	for i := 1; i < len(cum); i++ {
		pdf.Line(xAt(i-1), yAt(cum[i-1]), xAt(i), yAt(cum[i]))
	}
	for i, v := range cum {
		pdf.Circle(xAt(i), yAt(v), 0.8, "F")
	}
	pdf.SetLineWidth(0.2)

	if c.BreakevenYear != nil {
		year := *c.BreakevenYear
		pdf.SetFillColor(colSuccess[0], colSuccess[1], colSuccess[2])
		pdf.Circle(xAt(year), yAt(cum[year]), 1.6, "F")
		pdf.SetTextColor(colSuccess[0], colSuccess[1], colSuccess[2])
		pdf.SetFont("Helvetica", "B", 8)
		x := xAt(year) + 2
		if x > plotX+plotW-40 {
			x = xAt(year) - 42
		}
		pdf.SetXY(x, yAt(cum[year])-5)
		pdf.Cell(40, 4, fmt.Sprintf("Break-even: Year %d", year))
	} else {
		pdf.SetTextColor(colError[0], colError[1], colError[2])
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(plotX+2, plotY+2)
		pdf.Cell(70, 4, "Break-even not reached within 10 years")
	}
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(margin, plotY+plotH+12)
	pdf.Cell(0, 5, p.text("Total return after 10 years: "+Money(cum[len(cum)-1])))
}

func moneyK(v float64) string {
	return fmt.Sprintf("£%.0fk", v/1000.0)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// systemEfficiencyPct resolves the efficiency shown on the inputs page the
// same way the pipeline does when the customer left it blank.
func systemEfficiencyPct(in assessment.Input) float64 {
	if in.Site.SystemEfficiencyPct > 0 {
		return in.Site.SystemEfficiencyPct
	}
	return factors.DefaultEfficiencyPct(in.Site.HeatSupplyTech)
}
