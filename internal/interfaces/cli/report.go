package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/DealLens/internal/application/extraction"
	"github.com/turtacn/DealLens/internal/application/reporting"
	"github.com/turtacn/DealLens/internal/domain/valuation"
)

type reportOptions struct {
	input           string
	format          string
	defaultRevenueM float64
}

// NewReportCmd scores a saved extraction and summarises it per sector.
func NewReportCmd() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise extracted deals per sector",
		Long: "Load an extraction file, score every record and print the deal count,\n" +
			"mean multiple and enterprise value per sector. Records without revenue\n" +
			"are scored at --default-revenue.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runReport(cmd, cliCtx, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "extraction file (default: extract.output_file)")
	f.StringVarP(&opts.format, "format", "f", "", "table, json or csv (default: table, or json with --output json)")
	f.Float64Var(&opts.defaultRevenueM, "default-revenue", 0, "revenue in millions assumed for records without one (default: extract.default_revenue_m)")
	return cmd
}

func runReport(cmd *cobra.Command, cliCtx *CLIContext, opts *reportOptions) error {
	cfg := cliCtx.Config

	input := opts.input
	if input == "" {
		input = cfg.Extract.OutputFile
	}
	defaultRevenue := opts.defaultRevenueM
	if defaultRevenue <= 0 {
		defaultRevenue = cfg.Extract.DefaultRevenueM
	}
	formatName := opts.format
	if formatName == "" && cliCtx.JSON() {
		formatName = string(reporting.FormatJSON)
	}
	format, err := reporting.ParseReportFormat(formatName)
	if err != nil {
		return err
	}

	records, err := extraction.LoadRecords(input)
	if err != nil {
		return err
	}

	report := reporting.BuildSectorReport(records, valuation.Default(), defaultRevenue)
	return reporting.WriteSectorReport(cmd.OutOrStdout(), report, format)
}

//Personal.AI order the ending
