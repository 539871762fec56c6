// Package export builds the cash-flow workbook: a summary sheet with both
// investment cases and a year-by-year cash-flow sheet behind the charts.
package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"mechapres/internal/calc/assessment"
	"mechapres/internal/calc/economics"
)

const (
	sheetSummary  = "Summary"
	sheetCashFlow = "Cash Flow"
)

// Workbook renders a completed assessment as an XLSX file. Assessments the
// gate stopped have no economics and nothing to export.
func Workbook(res assessment.Result) (*excelize.File, error) {
	if res.Economics == nil {
		return nil, fmt.Errorf("assessment stopped before economics, nothing to export")
	}
	econ := res.Economics

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetSummary)
	if _, err := f.NewSheet(sheetCashFlow); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	gbpFmt := "£#,##0"
	gbp, err := f.NewStyle(&excelize.Style{CustomNumFmt: &gbpFmt})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(sheetSummary, "A1", "Mechapres Heat Pump Assessment")
	f.SetCellStyle(sheetSummary, "A1", "A1", title)
	f.SetCellValue(sheetSummary, "A2", "Reference")
	f.SetCellValue(sheetSummary, "B2", res.Reference)
	f.SetCellValue(sheetSummary, "A3", "Generated")
	f.SetCellValue(sheetSummary, "B3", res.GeneratedAt.Format("2006-01-02 15:04"))

	f.SetCellValue(sheetSummary, "A5", "Metric")
	f.SetCellValue(sheetSummary, "B5", "High Case")
	f.SetCellValue(sheetSummary, "C5", "Low Case")
	f.SetCellStyle(sheetSummary, "A5", "C5", bold)

	caseRows := []struct {
		label string
		value func(c economics.Case) any
	}{
		{"Heat Pump Size (kW)", func(c economics.Case) any { return c.HPSizeKW }},
		{"Heat Recovery Size (kW)", func(c economics.Case) any { return c.HRSizeKW }},
		{"Investment Cost (£)", func(c economics.Case) any { return c.CapexGBP }},
		{"Annual Savings (£)", func(c economics.Case) any { return c.AnnualSavingsGBP }},
		{"Simple Payback (years)", func(c economics.Case) any { return paybackCell(c.SimplePaybackYears) }},
		{"IRR over 10 years (%)", func(c economics.Case) any { return c.IRRPct }},
		{"Break-even Year", func(c economics.Case) any { return breakevenCell(c.BreakevenYear) }},
	}
	for i, row := range caseRows {
		n := 6 + i
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", n), row.label)
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", n), row.value(econ.High))
		f.SetCellValue(sheetSummary, fmt.Sprintf("C%d", n), row.value(econ.Low))
	}
	f.SetCellStyle(sheetSummary, "B8", "C9", gbp)

	siteRows := []struct {
		label string
		value any
	}{
		{"Operating Hours (h/year)", econ.OperatingHours},
		{"Current Annual Energy Cost (£)", econ.CostCurrentGBP},
		{"With Heat Pump Energy Cost (£)", econ.CostMechapresGBP},
		{"CO2 Reduction (t/year)", econ.CO2SavingsTonnes},
	}
	for i, row := range siteRows {
		n := 14 + i
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", n), row.label)
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", n), row.value)
	}
	f.SetCellStyle(sheetSummary, "B15", "B16", gbp)
	f.SetColWidth(sheetSummary, "A", "A", 32)
	f.SetColWidth(sheetSummary, "B", "C", 16)

	f.SetCellValue(sheetCashFlow, "A1", "Year")
	f.SetCellValue(sheetCashFlow, "B1", "High Case Cash Flow (£)")
	f.SetCellValue(sheetCashFlow, "C1", "High Case Cumulative (£)")
	f.SetCellValue(sheetCashFlow, "D1", "Low Case Cash Flow (£)")
	f.SetCellValue(sheetCashFlow, "E1", "Low Case Cumulative (£)")
	f.SetCellStyle(sheetCashFlow, "A1", "E1", bold)

	for year := 0; year < len(econ.High.CashFlow); year++ {
		n := year + 2
		f.SetCellValue(sheetCashFlow, fmt.Sprintf("A%d", n), year)
		f.SetCellValue(sheetCashFlow, fmt.Sprintf("B%d", n), econ.High.CashFlow[year])
		f.SetCellValue(sheetCashFlow, fmt.Sprintf("C%d", n), econ.High.CumulativeCashFlow[year])
		f.SetCellValue(sheetCashFlow, fmt.Sprintf("D%d", n), econ.Low.CashFlow[year])
		f.SetCellValue(sheetCashFlow, fmt.Sprintf("E%d", n), econ.Low.CumulativeCashFlow[year])
	}
	last := len(econ.High.CashFlow) + 1
	f.SetCellStyle(sheetCashFlow, "B2", fmt.Sprintf("E%d", last), gbp)
	f.SetColWidth(sheetCashFlow, "A", "A", 8)
	f.SetColWidth(sheetCashFlow, "B", "E", 24)

	return f, nil
}

func paybackCell(years float64) any {
	if math.IsInf(years, 1) {
		return ">10 years"
	}
	return years
}

func breakevenCell(year *int) any {
	if year == nil {
		return "Not reached"
	}
	return *year
}
