package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mechapres/internal/calc/assessment"
	"mechapres/internal/calc/economics"
	"mechapres/internal/calc/export"
	"mechapres/internal/calc/report"
)

var jsonOut bool

var rootCmd = &cobra.Command{
	Use:   "assess",
	Short: "Mechapres heat pump assessment CLI",
	Long: `Runs the Mechapres industrial heat pump assessment against a site
described in YAML: the feasibility gate, the performance model and the
ten-year economics. Results print as tables or JSON, and the same input
file can produce the PDF estimate or the cash-flow workbook without the
server.`,
}

func main() {
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output JSON")
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(exportCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

// siteFile is the on-disk shape: the assessment input plus an optional
// contact block used by detailed reports.
type siteFile struct {
	assessment.Input `yaml:",inline"`
	Contact          report.Contact `yaml:"contact"`
}

func loadSite(path string) (assessment.Input, report.Contact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return assessment.Input{}, report.Contact{}, err
	}
	var sf siteFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return assessment.Input{}, report.Contact{}, fmt.Errorf("parse %s: %v", path, err)
	}
	return sf.Input, sf.Contact, nil
}

func runCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a full site assessment",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _, err := loadSite(file)
			if err != nil {
				return err
			}
			res, err := assessment.Run(in)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(res)
			}
			printResult(res)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "site.yaml", "path to the site YAML")
	return cmd
}

func reportCmd() *cobra.Command {
	var file, out string
	var detailed bool
	var flagContact report.Contact
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF estimate",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, contact, err := loadSite(file)
			if err != nil {
				return err
			}
			res, err := assessment.Run(in)
			if err != nil {
				return err
			}
			stamp := res.GeneratedAt.Format("20060102_1504")
			var pdf []byte
			name := "Mechapres_Quick_Estimate_" + stamp + ".pdf"
			if detailed {
				override(&contact.Name, flagContact.Name)
				override(&contact.Company, flagContact.Company)
				override(&contact.Email, flagContact.Email)
				override(&contact.Phone, flagContact.Phone)
				if contact.Name == "" || contact.Email == "" {
					return fmt.Errorf("a detailed report needs a contact name and email (flags or a contact block in %s)", file)
				}
				pdf, err = report.Detailed(in, contact, res)
				name = "Mechapres_Report_" + stamp + ".pdf"
			} else {
				pdf, err = report.QuickEstimate(in, res)
			}
			if err != nil {
				return err
			}
			if out == "" {
				out = name
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote %s (%s, %d bytes)\n", out, res.Reference, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "site.yaml", "path to the site YAML")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "full report with contact details")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (defaults to the report filename)")
	cmd.Flags().StringVar(&flagContact.Name, "name", "", "contact name (overrides the YAML contact block)")
	cmd.Flags().StringVar(&flagContact.Company, "company", "", "company")
	cmd.Flags().StringVar(&flagContact.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&flagContact.Phone, "phone", "", "phone")
	return cmd
}

func exportCmd() *cobra.Command {
	var file, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the cash-flow workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _, err := loadSite(file)
			if err != nil {
				return err
			}
			res, err := assessment.Run(in)
			if err != nil {
				return err
			}
			f, err := export.Workbook(res)
			if err != nil {
				return err
			}
			defer f.Close()
			if out == "" {
				out = "Mechapres_Cash_Flow_" + res.GeneratedAt.Format("20060102_1504") + ".xlsx"
			}
			if err := f.SaveAs(out); err != nil {
				return err
			}
			fmt.Println("Wrote", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "site.yaml", "path to the site YAML")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (defaults to the workbook filename)")
	return cmd
}

func printResult(res assessment.Result) {
	fmt.Printf("Reference: %s\n", res.Reference)
	fmt.Printf("Outcome:   %s\n", assessment.StatusHeadline(res.Gate.Status))
	for _, note := range res.Gate.Notes {
		fmt.Println("  -", note)
	}
	if res.Economics == nil {
		// The gate headline is already on screen; only a distinct message
		// (the impossible-lift case) adds anything.
		if res.Message != "" && res.Message != assessment.StatusHeadline(res.Gate.Status) {
			fmt.Println(res.Message)
		}
		return
	}

	perf := res.Performance
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Performance", "Value"})
	tw.AppendRow(table.Row{"COP (real)", fmt.Sprintf("%.2f", perf.COPReal)})
	tw.AppendRow(table.Row{"Condensation temperature", fmt.Sprintf("%.1f °C", perf.TCondSteamC)})
	tw.AppendRow(table.Row{"Evaporation temperature", fmt.Sprintf("%.1f °C", perf.TEvapC)})
	tw.AppendRow(table.Row{"Heat pump capacity", fmt.Sprintf("%.2f MWth", perf.CapacityMWth)})
	tw.AppendRow(table.Row{"Electrical demand", fmt.Sprintf("%.0f-%.0f kW", perf.EMinKW, perf.EMaxKW)})
	tw.AppendRow(table.Row{"Waste heat recovered", fmt.Sprintf("%.0f-%.0f kW", perf.WasteHeatMinKW, perf.WasteHeatMaxKW)})
	tw.Render()

	econ := res.Economics
	tw = table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Economics", "High Case", "Low Case"})
	tw.AppendRow(table.Row{"Heat pump size", kw(econ.High.HPSizeKW), kw(econ.Low.HPSizeKW)})
	tw.AppendRow(table.Row{"Heat recovery size", kw(econ.High.HRSizeKW), kw(econ.Low.HRSizeKW)})
	tw.AppendRow(table.Row{"Investment cost", report.Money(econ.High.CapexGBP), report.Money(econ.Low.CapexGBP)})
	tw.AppendRow(table.Row{"Annual savings", report.Money(econ.High.AnnualSavingsGBP), report.Money(econ.Low.AnnualSavingsGBP)})
	tw.AppendRow(table.Row{"Simple payback", report.Payback(econ.High.SimplePaybackYears), report.Payback(econ.Low.SimplePaybackYears)})
	tw.AppendRow(table.Row{"IRR (10 years)", report.Percent(econ.High.IRRPct), report.Percent(econ.Low.IRRPct)})
	tw.AppendRow(table.Row{"Break-even", breakeven(econ.High), breakeven(econ.Low)})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"Operating hours", report.Number(econ.OperatingHours) + " h/year"})
	tw.AppendRow(table.Row{"Energy cost (current)", report.Money(econ.CostCurrentGBP)})
	tw.AppendRow(table.Row{"Energy cost (heat pump)", report.Money(econ.CostMechapresGBP)})
	tw.AppendRow(table.Row{"CO2 reduction", report.Number(econ.CO2SavingsTonnes) + " t/year"})
	tw.Render()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func kw(v float64) string {
	return report.Number(v) + " kW"
}

func breakeven(c economics.Case) string {
	if c.BreakevenYear == nil {
		return "Not reached"
	}
	return fmt.Sprintf("Year %d", *c.BreakevenYear)
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
